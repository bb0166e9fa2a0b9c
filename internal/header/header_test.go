package header

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseToken(t *testing.T) {
	tests := []struct {
		raw      string
		expected Kind
	}{
		{"$QTY", Qty},
		{"$REF", Ref},
		{"$X", X},
		{"$Y", Y},
		{"$ROT", Rot},
		{"$SIDE", Side},
		{"$SORT", Sort},
		{"Value", Field},
		{"$qty", Field},
		{"$OTHER", Field},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			tok := ParseToken(tt.raw)
			assert.Equal(t, tt.expected, tok.Kind)
			assert.Equal(t, tt.raw, tok.Raw)
		})
	}
}

func TestSpec_ColumnsUseOverrides(t *testing.T) {
	spec := NewSpec().
		MustAdd("Value", "").
		MustAdd("$REF", "Designator").
		MustAdd("Footprint", "").
		MustAdd("DPN", "LCSC#")

	assert.Equal(t, 4, spec.Len())
	assert.Equal(t, []string{"Value", "Designator", "Footprint", "LCSC#"}, spec.Columns())

	entries := spec.Entries()
	assert.Equal(t, Ref, entries[1].Token.Kind)
	assert.Equal(t, "DPN", entries[3].Token.Raw)
}

func TestSpec_Add_Errors(t *testing.T) {
	spec := NewSpec()
	require.NoError(t, spec.Add("Value", ""))

	assert.Error(t, spec.Add("", "x"))
	assert.Error(t, spec.Add("Value", "Other"))
	assert.Error(t, spec.Add("$SORT", ""))
	assert.Equal(t, 1, spec.Len())
}

func TestSpec_MustAddPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewSpec().MustAdd("A", "").MustAdd("A", "")
	})
}

func TestSpec_Validate(t *testing.T) {
	tests := []struct {
		name    string
		spec    *Spec
		family  Family
		wantErr string
	}{
		{
			name:   "bom tokens",
			spec:   NewSpec().MustAdd("$QTY", "Qty").MustAdd("$REF", "Designator").MustAdd("MPN", ""),
			family: BOM,
		},
		{
			name:   "pnp tokens",
			spec:   NewSpec().MustAdd("Reference", "Designator").MustAdd("$X", "").MustAdd("$Y", "").MustAdd("$ROT", "").MustAdd("$SIDE", "Layer"),
			family: PnP,
		},
		{
			name:    "position token in bom",
			spec:    NewSpec().MustAdd("$X", ""),
			family:  BOM,
			wantErr: "not supported in bom",
		},
		{
			name:    "quantity token in pnp",
			spec:    NewSpec().MustAdd("$QTY", ""),
			family:  PnP,
			wantErr: "not supported in pnp",
		},
		{
			name:    "empty",
			spec:    NewSpec(),
			family:  BOM,
			wantErr: "empty",
		},
		{
			name:    "column collision",
			spec:    NewSpec().MustAdd("Reference", "Designator").MustAdd("$REF", "Designator"),
			family:  BOM,
			wantErr: "produced by both",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate(tt.family)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "field", Field.String())
	assert.Equal(t, "$SIDE", Side.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())
}
