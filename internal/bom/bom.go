// Package bom turns component groups into bill-of-materials lines.
package bom

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dbsmedya/boardfab/internal/board"
	"github.com/dbsmedya/boardfab/internal/filter"
	"github.com/dbsmedya/boardfab/internal/grouping"
	"github.com/dbsmedya/boardfab/internal/header"
	"github.com/dbsmedya/boardfab/internal/refdes"
	"github.com/dbsmedya/boardfab/internal/table"
)

// ListSeparator joins references and distinct field values within one cell.
const ListSeparator = ","

// Aggregate produces one BOM line per group that keeps at least one component
// after BOM exclusions and keep are applied. Lines are ordered by the first
// designator of each group.
func Aggregate(groups *grouping.Groups, spec *header.Spec, keep filter.Predicate) (*table.Table, error) {
	entries := spec.Entries()
	var lines []*table.Line

	for _, g := range groups.All() {
		members, keys, err := survivors(g.Components, keep)
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", g.Key, err)
		}
		if len(members) == 0 {
			continue
		}

		refs := make([]string, len(members))
		for i := range members {
			refs[i] = members[i].Ref
		}
		references := strings.Join(refs, ListSeparator)

		line := table.NewLine(keys[0])
		for _, e := range entries {
			switch e.Token.Kind {
			case header.Qty:
				line.Set(e.Column, len(members))
			case header.Ref:
				line.Set(e.Column, references)
			case header.Field:
				line.Set(e.Column, distinct(members, e.Token.Raw))
			default:
				line.Set(e.Column, "")
			}
		}
		lines = append(lines, line)
	}

	return table.New(spec.Columns(), lines), nil
}

// survivors drops BOM-excluded and filtered-out components and sorts the rest
// by designator. keys holds the matching sort keys.
func survivors(components []board.Component, keep filter.Predicate) ([]board.Component, []string, error) {
	type keyed struct {
		c   board.Component
		key string
	}
	var kept []keyed
	for i := range components {
		c := &components[i]
		if c.ExcludeFromBOM || !keep.Accept(c) {
			continue
		}
		key, err := refdes.SortKey(c.Ref)
		if err != nil {
			return nil, nil, err
		}
		kept = append(kept, keyed{c: *c, key: key})
	}

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].key < kept[j].key })

	members := make([]board.Component, len(kept))
	keys := make([]string, len(kept))
	for i, k := range kept {
		members[i] = k.c
		keys[i] = k.key
	}
	return members, keys, nil
}

// distinct joins the unique values of field across components, in first-seen order.
func distinct(components []board.Component, field string) string {
	seen := make(map[string]bool, len(components))
	var values []string
	for i := range components {
		v := components[i].Field(field)
		if seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	return strings.Join(values, ListSeparator)
}
