package refdes

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "single digit", input: "C1", expected: "C00001"},
		{name: "two digits", input: "C19", expected: "C00019"},
		{name: "five digits", input: "R12345", expected: "R12345"},
		{name: "multi letter prefix", input: "LED7", expected: "LED00007"},
		{name: "underscore prefix", input: "U_A3", expected: "U_A00003"},
		{name: "leading zero kept", input: "J01", expected: "J00001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := SortKey(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, key)
		})
	}
}

func TestSortKey_Invalid(t *testing.T) {
	tests := []string{
		"",
		"C",
		"12",
		"12A",
		"C123456",
		"C1A",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			key, err := SortKey(input)
			assert.Empty(t, key)
			require.Error(t, err)

			var refErr *InvalidReferenceError
			require.True(t, errors.As(err, &refErr))
			assert.Equal(t, input, refErr.Ref)
			assert.Contains(t, err.Error(), "invalid reference")
		})
	}
}

func TestSortKey_NaturalOrder(t *testing.T) {
	refs := []string{"C19", "C2", "C10", "C1", "R3", "C100"}

	keys := make(map[string]string, len(refs))
	for _, ref := range refs {
		key, err := SortKey(ref)
		require.NoError(t, err)
		keys[ref] = key
	}

	sort.Slice(refs, func(i, j int) bool { return keys[refs[i]] < keys[refs[j]] })

	assert.Equal(t, []string{"C1", "C2", "C10", "C19", "C100", "R3"}, refs)
}

func TestSortKey_NumericComparison(t *testing.T) {
	pairs := []struct {
		lower, higher string
	}{
		{"C2", "C19"},
		{"R9", "R10"},
		{"U99", "U100"},
		{"D1", "D99999"},
	}

	for _, p := range pairs {
		t.Run(p.lower+"<"+p.higher, func(t *testing.T) {
			lo, err := SortKey(p.lower)
			require.NoError(t, err)
			hi, err := SortKey(p.higher)
			require.NoError(t, err)
			assert.Less(t, lo, hi)
		})
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("R1"))
	assert.True(t, IsValid("SW12"))
	assert.False(t, IsValid("1R"))
	assert.False(t, IsValid("R"))
	assert.False(t, IsValid("R000001"))
}
