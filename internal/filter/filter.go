// Package filter builds component predicates used to select which parts
// appear in a generated table.
package filter

import (
	"strings"

	"github.com/dbsmedya/boardfab/internal/board"
)

// Predicate reports whether a component is kept. A nil Predicate keeps everything.
type Predicate func(c *board.Component) bool

// Accept applies p, treating nil as accept-all.
func (p Predicate) Accept(c *board.Component) bool {
	if p == nil {
		return true
	}
	return p(c)
}

// FieldEquals keeps components whose field equals value.
func FieldEquals(field, value string, ignoreCase bool) Predicate {
	if ignoreCase {
		return func(c *board.Component) bool {
			return strings.EqualFold(c.Field(field), value)
		}
	}
	return func(c *board.Component) bool {
		return c.Field(field) == value
	}
}

// NotDNP keeps components that are to be placed.
func NotDNP() Predicate {
	return func(c *board.Component) bool {
		return !c.DNP
	}
}

// And keeps components accepted by every non-nil predicate.
// It returns nil when no predicate is given.
func And(predicates ...Predicate) Predicate {
	var active []Predicate
	for _, p := range predicates {
		if p != nil {
			active = append(active, p)
		}
	}
	switch len(active) {
	case 0:
		return nil
	case 1:
		return active[0]
	}
	return func(c *board.Component) bool {
		for _, p := range active {
			if !p(c) {
				return false
			}
		}
		return true
	}
}
