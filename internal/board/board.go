// Package board models the component records exported from a PCB design.
package board

import "fmt"

// ReferenceField is the field name under which a component's designator is exposed.
const ReferenceField = "Reference"

// FootprintField is the field name holding the footprint, optionally library-qualified.
const FootprintField = "Footprint"

// Point is a board position in millimetres.
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Side is the board side a component is mounted on. Zero is the top side.
type Side int

const Top Side = 0

// IsTop reports whether the component sits on the top side.
func (s Side) IsTop() bool {
	return s == Top
}

// String returns the single-letter layer code used in placement files.
func (s Side) String() string {
	if s.IsTop() {
		return "T"
	}
	return "B"
}

// Component is one placed part as supplied by the design tool.
type Component struct {
	Ref                 string
	Fields              map[string]string
	Position            Point
	Rotation            float64
	Side                Side
	DNP                 bool
	ExcludeFromBOM      bool
	ExcludeFromPosFiles bool
}

// Field returns the named field value, or "" when the component has no such field.
// The designator is always available as ReferenceField.
func (c *Component) Field(name string) string {
	if v, ok := c.Fields[name]; ok {
		return v
	}
	if name == ReferenceField {
		return c.Ref
	}
	return ""
}

// Footprint returns the component's footprint name.
func (c *Component) Footprint() string {
	return c.Field(FootprintField)
}

// Source supplies the components of one board and its auxiliary origin.
type Source interface {
	Components() ([]Component, error)
	AuxOrigin() (Point, error)
}

// DuplicateReferenceError is returned when two components share a designator.
type DuplicateReferenceError struct {
	Ref string
}

func (e *DuplicateReferenceError) Error() string {
	return fmt.Sprintf("duplicate component reference found: %s", e.Ref)
}

// Set is the working set of components for one run, in source order.
type Set struct {
	components []Component
	index      map[string]int
}

// NewSet builds a Set, failing on the first duplicate designator.
func NewSet(components []Component) (*Set, error) {
	s := &Set{
		components: make([]Component, 0, len(components)),
		index:      make(map[string]int, len(components)),
	}
	for _, c := range components {
		if _, exists := s.index[c.Ref]; exists {
			return nil, &DuplicateReferenceError{Ref: c.Ref}
		}
		s.index[c.Ref] = len(s.components)
		s.components = append(s.components, c)
	}
	return s, nil
}

// Load reads all components from src into a Set.
func Load(src Source) (*Set, error) {
	components, err := src.Components()
	if err != nil {
		return nil, fmt.Errorf("failed to read components: %w", err)
	}
	return NewSet(components)
}

// Len returns the number of components.
func (s *Set) Len() int {
	return len(s.components)
}

// All returns the components in source order. The slice must not be modified.
func (s *Set) All() []Component {
	return s.components
}

// Get returns the component with the given designator.
func (s *Set) Get(ref string) (*Component, bool) {
	i, ok := s.index[ref]
	if !ok {
		return nil, false
	}
	return &s.components[i], true
}

// StaticSource is an in-memory Source.
type StaticSource struct {
	Items  []Component
	Origin Point
}

func (s *StaticSource) Components() ([]Component, error) {
	return s.Items, nil
}

func (s *StaticSource) AuxOrigin() (Point, error) {
	return s.Origin, nil
}
