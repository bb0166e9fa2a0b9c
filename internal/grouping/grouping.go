// Package grouping partitions components into groups that share field values.
package grouping

import (
	"strings"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/dbsmedya/boardfab/internal/board"
)

// KeySeparator joins the grouping field values into a group key.
const KeySeparator = ", "

// ComponentGroup is a non-empty run of components sharing a key, in input order.
type ComponentGroup struct {
	Key        string
	Components []board.Component
}

// Groups holds groups in the order their keys were first seen.
type Groups struct {
	byKey *orderedmap.OrderedMap[string, *ComponentGroup]
}

// Key returns the group key of c for the given fields. Missing fields count as "".
func Key(c *board.Component, fields []string) string {
	values := make([]string, len(fields))
	for i, f := range fields {
		values[i] = c.Field(f)
	}
	return strings.Join(values, KeySeparator)
}

// Group partitions components by the values of fields.
func Group(components []board.Component, fields []string) *Groups {
	groups := &Groups{byKey: orderedmap.NewOrderedMap[string, *ComponentGroup]()}
	for i := range components {
		c := &components[i]
		key := Key(c, fields)
		g, ok := groups.byKey.Get(key)
		if !ok {
			g = &ComponentGroup{Key: key}
			groups.byKey.Set(key, g)
		}
		g.Components = append(g.Components, *c)
	}
	return groups
}

// Len returns the number of groups.
func (g *Groups) Len() int {
	return g.byKey.Len()
}

// Get returns the group with the given key.
func (g *Groups) Get(key string) (*ComponentGroup, bool) {
	return g.byKey.Get(key)
}

// All returns the groups in first-seen order.
func (g *Groups) All() []*ComponentGroup {
	all := make([]*ComponentGroup, 0, g.byKey.Len())
	for el := g.byKey.Front(); el != nil; el = el.Next() {
		all = append(all, el.Value)
	}
	return all
}
