// Package header describes output table columns: which value each column holds
// and what the column is called.
package header

import (
	"fmt"

	"github.com/elliotchance/orderedmap/v2"
)

// Kind identifies what a header resolves to. Field is a plain component field;
// every other kind is a reserved token computed by the table builders.
type Kind int

const (
	Field Kind = iota
	Qty
	Ref
	X
	Y
	Rot
	Side
	Sort
)

var reservedTokens = map[string]Kind{
	"$QTY":  Qty,
	"$REF":  Ref,
	"$X":    X,
	"$Y":    Y,
	"$ROT":  Rot,
	"$SIDE": Side,
	"$SORT": Sort,
}

func (k Kind) String() string {
	switch k {
	case Field:
		return "field"
	case Qty:
		return "$QTY"
	case Ref:
		return "$REF"
	case X:
		return "$X"
	case Y:
		return "$Y"
	case Rot:
		return "$ROT"
	case Side:
		return "$SIDE"
	case Sort:
		return "$SORT"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Token is a parsed header field. Raw keeps the text as written so plain
// fields can be looked up on the component.
type Token struct {
	Kind Kind
	Raw  string
}

// ParseToken classifies a raw header field.
func ParseToken(raw string) Token {
	if kind, ok := reservedTokens[raw]; ok {
		return Token{Kind: kind, Raw: raw}
	}
	return Token{Kind: Field, Raw: raw}
}

// Entry is one column of a Spec.
type Entry struct {
	Token  Token
	Column string
}

// Family selects which reserved tokens a table understands.
type Family int

const (
	BOM Family = iota
	PnP
)

func (f Family) String() string {
	if f == PnP {
		return "pnp"
	}
	return "bom"
}

var familyTokens = map[Family]map[Kind]bool{
	BOM: {Qty: true, Ref: true},
	PnP: {X: true, Y: true, Rot: true, Side: true},
}

// Spec is an ordered set of header fields with optional column name overrides.
type Spec struct {
	columns *orderedmap.OrderedMap[string, string]
}

// NewSpec creates an empty Spec.
func NewSpec() *Spec {
	return &Spec{columns: orderedmap.NewOrderedMap[string, string]()}
}

// Add appends a header field. An empty name means the column is named after the field.
func (s *Spec) Add(field, name string) error {
	if field == "" {
		return fmt.Errorf("header field is empty")
	}
	if ParseToken(field).Kind == Sort {
		return fmt.Errorf("header field %q is reserved for internal ordering", field)
	}
	if _, exists := s.columns.Get(field); exists {
		return fmt.Errorf("duplicate header field %q", field)
	}
	s.columns.Set(field, name)
	return nil
}

// MustAdd is like Add but panics on error. Intended for fixed, known-good specs.
func (s *Spec) MustAdd(field, name string) *Spec {
	if err := s.Add(field, name); err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of columns.
func (s *Spec) Len() int {
	return s.columns.Len()
}

// Entries returns the columns in order.
func (s *Spec) Entries() []Entry {
	entries := make([]Entry, 0, s.columns.Len())
	for el := s.columns.Front(); el != nil; el = el.Next() {
		column := el.Value
		if column == "" {
			column = el.Key
		}
		entries = append(entries, Entry{Token: ParseToken(el.Key), Column: column})
	}
	return entries
}

// Columns returns the output header row.
func (s *Spec) Columns() []string {
	entries := s.Entries()
	columns := make([]string, len(entries))
	for i, e := range entries {
		columns[i] = e.Column
	}
	return columns
}

// Validate checks that every reserved token is understood by the table family
// and that no two fields produce the same column name.
func (s *Spec) Validate(family Family) error {
	if s.Len() == 0 {
		return fmt.Errorf("%s header is empty", family)
	}
	seen := make(map[string]string, s.Len())
	for _, e := range s.Entries() {
		if e.Token.Kind != Field && !familyTokens[family][e.Token.Kind] {
			return fmt.Errorf("token %s is not supported in %s headers", e.Token.Kind, family)
		}
		if prev, dup := seen[e.Column]; dup {
			return fmt.Errorf("column %q is produced by both %q and %q", e.Column, prev, e.Token.Raw)
		}
		seen[e.Column] = e.Token.Raw
	}
	return nil
}
