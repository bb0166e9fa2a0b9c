// Package correction holds per-footprint placement corrections required by an
// assembly house, keyed by footprint name.
package correction

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Column names of the correction table.
const (
	ColumnFootprint = "Footprint"
	ColumnX         = "X"
	ColumnY         = "Y"
	ColumnRotation  = "Rotation"
)

// LibraryDelimiter separates the library name from the footprint name.
const LibraryDelimiter = ":"

// Entry is the correction for one footprint. Offsets are in millimetres,
// rotation in degrees.
type Entry struct {
	Footprint   string
	X           float64
	Y           float64
	Rotation    float64
	hasRotation bool
}

// NewEntry creates a complete Entry.
func NewEntry(footprint string, x, y, rotation float64) Entry {
	return Entry{Footprint: footprint, X: x, Y: y, Rotation: rotation, hasRotation: true}
}

// HasRotation reports whether the row carried a rotation value.
func (e Entry) HasRotation() bool {
	return e.hasRotation
}

// MissingFieldError is returned when a matched correction row lacks a required value.
type MissingFieldError struct {
	Footprint string
	Field     string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("correction for footprint %q is missing required field %s", e.Footprint, e.Field)
}

// InvalidValueError is returned when a correction value is not a number.
type InvalidValueError struct {
	Footprint string
	Field     string
	Value     string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("correction for footprint %q has invalid %s value %q", e.Footprint, e.Field, e.Value)
}

// Table maps footprint names to corrections. A nil *Table has no entries.
type Table struct {
	entries map[string]Entry
}

// NewTable creates a Table. Later entries for the same footprint replace earlier ones.
func NewTable(entries ...Entry) *Table {
	t := &Table{entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		t.entries[e.Footprint] = e
	}
	return t
}

// Len returns the number of footprints in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Footprints returns the table keys in lexical order.
func (t *Table) Footprints() []string {
	if t == nil {
		return nil
	}
	keys := make([]string, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the entry stored under footprint, without library fallback.
func (t *Table) Get(footprint string) (Entry, bool) {
	if t.Len() == 0 {
		return Entry{}, false
	}
	e, ok := t.entries[footprint]
	return e, ok
}

// Resolve returns the table key that applies to footprint. The full name is tried
// first; a library-qualified name then falls back to its library-less part.
func (t *Table) Resolve(footprint string) (string, bool) {
	if t.Len() == 0 {
		return "", false
	}
	if _, ok := t.entries[footprint]; ok {
		return footprint, true
	}
	parts := strings.Split(footprint, LibraryDelimiter)
	if len(parts) == 2 {
		if _, ok := t.entries[parts[1]]; ok {
			return parts[1], true
		}
	}
	return "", false
}

// Lookup returns the correction for footprint. ok is false when no entry applies.
// A matched entry without a rotation yields a MissingFieldError.
func (t *Table) Lookup(footprint string) (Entry, bool, error) {
	key, ok := t.Resolve(footprint)
	if !ok {
		return Entry{}, false, nil
	}
	entry := t.entries[key]
	if !entry.hasRotation {
		return Entry{}, false, &MissingFieldError{Footprint: key, Field: ColumnRotation}
	}
	return entry, true, nil
}

// entryFromRow builds an Entry from column values. ok is false for rows without a footprint.
func entryFromRow(row map[string]string) (Entry, bool, error) {
	footprint := strings.TrimSpace(row[ColumnFootprint])
	if footprint == "" {
		return Entry{}, false, nil
	}
	entry := Entry{Footprint: footprint}

	var err error
	if entry.X, err = parseOffset(footprint, ColumnX, row[ColumnX]); err != nil {
		return Entry{}, false, err
	}
	if entry.Y, err = parseOffset(footprint, ColumnY, row[ColumnY]); err != nil {
		return Entry{}, false, err
	}
	if raw := strings.TrimSpace(row[ColumnRotation]); raw != "" {
		rot, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Entry{}, false, &InvalidValueError{Footprint: footprint, Field: ColumnRotation, Value: raw}
		}
		entry.Rotation = rot
		entry.hasRotation = true
	}
	return entry, true, nil
}

// parseOffset parses an offset column, treating a blank value as zero.
func parseOffset(footprint, field, raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &InvalidValueError{Footprint: footprint, Field: field, Value: raw}
	}
	return v, nil
}
