// Package placement corrects component positions for pick-and-place output.
package placement

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/dbsmedya/boardfab/internal/board"
	"github.com/dbsmedya/boardfab/internal/correction"
)

// Precision is the number of decimals positions are rounded to (micrometres).
const Precision = 3

// Input is the raw placement of one component.
type Input struct {
	Position  board.Point
	Rotation  float64
	Footprint string
	Side      board.Side
}

// Options are the run-wide correction settings. Every field is optional.
type Options struct {
	Offset      *board.Point
	Corrections *correction.Table
	NegateY     bool
}

// Result is a corrected placement.
type Result struct {
	X        float64
	Y        float64
	Rotation float64
	Side     board.Side
	// Correction is the applied table entry, if any.
	Correction *correction.Entry
}

// NormalizeAngle maps degrees into [0, 360).
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Correct applies the global offset, the footprint correction and Y negation
// to one component.
//
// The correction offset is scaled per axis by the corrected rotation: x by its
// cosine, y by its sine. Existing correction tables are written against this
// convention, so it is not a full rotation of the offset vector.
func Correct(in Input, opts Options) (Result, error) {
	x, y := in.Position.X, in.Position.Y
	rot := NormalizeAngle(in.Rotation)

	if opts.Offset != nil {
		x -= opts.Offset.X
		y -= opts.Offset.Y
	}

	entry, ok, err := opts.Corrections.Lookup(in.Footprint)
	if err != nil {
		return Result{}, err
	}

	res := Result{Side: in.Side}
	if ok {
		xo, yo := entry.X, entry.Y
		rot = NormalizeAngle(rot + entry.Rotation)
		if rot != 0 {
			rad := rot * math.Pi / 180
			xo *= math.Cos(rad)
			yo *= math.Sin(rad)
		}
		x += xo
		y += yo
		res.Correction = &entry
	}

	if opts.NegateY {
		y = -y
	}

	res.X = round(x)
	res.Y = round(y)
	res.Rotation = rot
	return res, nil
}

// round rounds to Precision decimals and maps -0 to 0 so it never prints as "-0".
func round(v float64) float64 {
	v = scalar.RoundEven(v, Precision)
	if v == 0 {
		return 0
	}
	return v
}
