// Package pnp builds pick-and-place tables with per-footprint corrections applied.
package pnp

import (
	"fmt"

	"github.com/dbsmedya/boardfab/internal/board"
	"github.com/dbsmedya/boardfab/internal/correction"
	"github.com/dbsmedya/boardfab/internal/filter"
	"github.com/dbsmedya/boardfab/internal/header"
	"github.com/dbsmedya/boardfab/internal/placement"
	"github.com/dbsmedya/boardfab/internal/refdes"
	"github.com/dbsmedya/boardfab/internal/table"
)

// Formatter rewrites a cell value before it is stored.
type Formatter func(value any) any

// Options control which components are placed and how positions are corrected.
type Options struct {
	Filter      filter.Predicate
	Corrections *correction.Table
	Offset      *board.Point
	NegateY     bool
	// Formatters are keyed by output column name.
	Formatters map[string]Formatter
	// OnPlaced, when set, is called for every component that produced a line.
	OnPlaced func(c *board.Component, res placement.Result)
}

// Build produces one line per placeable component, ordered by designator.
// Any invalid designator or broken correction aborts the whole table.
func Build(components []board.Component, spec *header.Spec, opts Options) (*table.Table, error) {
	entries := spec.Entries()
	correct := placement.Options{
		Offset:      opts.Offset,
		Corrections: opts.Corrections,
		NegateY:     opts.NegateY,
	}

	var lines []*table.Line
	for i := range components {
		c := &components[i]
		if c.DNP || c.ExcludeFromPosFiles {
			continue
		}
		if !opts.Filter.Accept(c) {
			continue
		}

		res, err := placement.Correct(placement.Input{
			Position:  c.Position,
			Rotation:  c.Rotation,
			Footprint: c.Footprint(),
			Side:      c.Side,
		}, correct)
		if err != nil {
			return nil, fmt.Errorf("component %s: %w", c.Ref, err)
		}

		key, err := refdes.SortKey(c.Ref)
		if err != nil {
			return nil, err
		}

		line := table.NewLine(key)
		for _, e := range entries {
			var value any
			switch e.Token.Kind {
			case header.X:
				value = res.X
			case header.Y:
				value = res.Y
			case header.Rot:
				value = res.Rotation
			case header.Side:
				value = res.Side.String()
			case header.Field:
				value = c.Field(e.Token.Raw)
			default:
				value = ""
			}
			if f := opts.Formatters[e.Column]; f != nil {
				value = f(value)
			}
			line.Set(e.Column, value)
		}
		lines = append(lines, line)

		if opts.OnPlaced != nil {
			opts.OnPlaced(c, res)
		}
	}

	return table.New(spec.Columns(), lines), nil
}

// Printf returns a Formatter that renders values with a fmt verb, e.g. "%.1f".
func Printf(format string) Formatter {
	return func(value any) any {
		return fmt.Sprintf(format, value)
	}
}
