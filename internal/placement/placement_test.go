package placement

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/boardfab/internal/board"
	"github.com/dbsmedya/boardfab/internal/correction"
)

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{0, 0},
		{90, 90},
		{360, 0},
		{450, 90},
		{-90, 270},
		{-360, 0},
		{359.5, 359.5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, NormalizeAngle(tt.input), "NormalizeAngle(%v)", tt.input)
	}
}

func TestCorrect_Identity(t *testing.T) {
	in := Input{Position: board.Point{X: 12.345, Y: -6.5}, Rotation: 45, Footprint: "R_0603"}

	res, err := Correct(in, Options{})
	require.NoError(t, err)

	assert.Equal(t, 12.345, res.X)
	assert.Equal(t, -6.5, res.Y)
	assert.Equal(t, 45.0, res.Rotation)
	assert.Nil(t, res.Correction)
}

func TestCorrect_OffsetAndNegateY(t *testing.T) {
	in := Input{Position: board.Point{X: 10, Y: 20}, Rotation: 0, Footprint: "C_0603"}

	res, err := Correct(in, Options{
		Offset:      &board.Point{X: 1, Y: 1},
		Corrections: correction.NewTable(correction.NewEntry("SOT-23", 0, 0, 180)),
		NegateY:     true,
	})
	require.NoError(t, err)

	assert.Equal(t, 9.0, res.X)
	assert.Equal(t, -19.0, res.Y)
	assert.Equal(t, 0.0, res.Rotation)
}

func TestCorrect_RotationOnly(t *testing.T) {
	table := correction.NewTable(correction.NewEntry("SOT-23", 0, 0, 180))
	in := Input{Position: board.Point{X: 5, Y: 5}, Rotation: 270, Footprint: "Package_TO_SOT_SMD:SOT-23"}

	res, err := Correct(in, Options{Corrections: table})
	require.NoError(t, err)

	assert.Equal(t, 90.0, res.Rotation)
	assert.Equal(t, 5.0, res.X)
	assert.Equal(t, 5.0, res.Y)
	require.NotNil(t, res.Correction)
	assert.Equal(t, "SOT-23", res.Correction.Footprint)
}

func TestCorrect_OffsetScaledByRotation(t *testing.T) {
	tests := []struct {
		name      string
		rotation  float64
		entry     correction.Entry
		expectedX float64
		expectedY float64
		expectRot float64
	}{
		{
			name:      "quarter turn cancels x offset",
			rotation:  0,
			entry:     correction.NewEntry("FP", 1, 0, 90),
			expectedX: 0,
			expectedY: 0,
			expectRot: 90,
		},
		{
			name:      "zero rotation applies offsets unscaled",
			rotation:  0,
			entry:     correction.NewEntry("FP", 0.5, 0.25, 0),
			expectedX: 0.5,
			expectedY: 0.25,
			expectRot: 0,
		},
		{
			name:      "quarter turn keeps y offset",
			rotation:  90,
			entry:     correction.NewEntry("FP", 1, 0.5, 0),
			expectedX: 0,
			expectedY: 0.5,
			expectRot: 90,
		},
		{
			name:      "half turn flips x and drops y",
			rotation:  90,
			entry:     correction.NewEntry("FP", 1, 1, 90),
			expectedX: -1,
			expectedY: 0,
			expectRot: 180,
		},
		{
			name:      "full turn back to zero applies offsets unscaled",
			rotation:  270,
			entry:     correction.NewEntry("FP", 0.2, -0.3, 90),
			expectedX: 0.2,
			expectedY: -0.3,
			expectRot: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Correct(
				Input{Rotation: tt.rotation, Footprint: "FP"},
				Options{Corrections: correction.NewTable(tt.entry)},
			)
			require.NoError(t, err)

			assert.InDelta(t, tt.expectedX, res.X, 1e-9)
			assert.InDelta(t, tt.expectedY, res.Y, 1e-9)
			assert.Equal(t, tt.expectRot, res.Rotation)
		})
	}
}

func TestCorrect_Rounding(t *testing.T) {
	res, err := Correct(Input{Position: board.Point{X: 1.23456, Y: 7.0004}}, Options{})
	require.NoError(t, err)

	assert.Equal(t, 1.235, res.X)
	assert.Equal(t, 7.0, res.Y)
}

func TestCorrect_NoNegativeZero(t *testing.T) {
	res, err := Correct(Input{Position: board.Point{X: 1, Y: 1}}, Options{Offset: &board.Point{X: 1, Y: 1}, NegateY: true})
	require.NoError(t, err)

	assert.False(t, math.Signbit(res.Y))
	assert.Equal(t, "0", strconv.FormatFloat(res.Y, 'f', -1, 64))
}

func TestCorrect_RotationNotRounded(t *testing.T) {
	res, err := Correct(Input{Rotation: -0.12345}, Options{})
	require.NoError(t, err)
	assert.InDelta(t, 359.87655, res.Rotation, 1e-9)
}

func TestCorrect_Side(t *testing.T) {
	res, err := Correct(Input{Side: board.Side(1), Rotation: 90}, Options{NegateY: true})
	require.NoError(t, err)
	assert.Equal(t, "B", res.Side.String())
}

func TestCorrect_MissingRotation(t *testing.T) {
	table, err := correction.Load(strings.NewReader("Footprint,X,Y,Rotation\nSOIC-8,0.1,0,\n"))
	require.NoError(t, err)

	_, err = Correct(Input{Footprint: "Package_SO:SOIC-8"}, Options{Corrections: table})

	var missing *correction.MissingFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "SOIC-8", missing.Footprint)
}
