// Package table holds generated output tables and writes them as CSV.
package table

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/elliotchance/orderedmap/v2"
)

// Line is one output row: column name to value, in column order. Values are
// strings or numbers. The sort key orders lines but is never emitted.
type Line struct {
	values  *orderedmap.OrderedMap[string, any]
	sortKey string
}

// NewLine creates an empty line ordered by sortKey.
func NewLine(sortKey string) *Line {
	return &Line{values: orderedmap.NewOrderedMap[string, any](), sortKey: sortKey}
}

// Set stores a column value.
func (l *Line) Set(column string, value any) {
	l.values.Set(column, value)
}

// Get returns a column value.
func (l *Line) Get(column string) (any, bool) {
	return l.values.Get(column)
}

// Columns returns the columns set on the line, in insertion order.
func (l *Line) Columns() []string {
	return l.values.Keys()
}

// String returns the formatted value of column, or "" when it is not set.
func (l *Line) String(column string) string {
	v, ok := l.values.Get(column)
	if !ok {
		return ""
	}
	return FormatValue(v)
}

// Table is a header row plus lines.
type Table struct {
	Header []string
	Lines  []*Line
}

// New builds a Table with lines ordered by their sort keys. Lines with equal
// keys keep their relative order. Sort keys are cleared once ordered.
func New(header []string, lines []*Line) *Table {
	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].sortKey < lines[j].sortKey
	})
	for _, l := range lines {
		l.sortKey = ""
	}
	return &Table{Header: header, Lines: lines}
}

// Len returns the number of lines.
func (t *Table) Len() int {
	return len(t.Lines)
}

// Rows returns the formatted lines, one cell per header column. Columns a line
// does not carry are empty.
func (t *Table) Rows() [][]string {
	rows := make([][]string, len(t.Lines))
	for i, l := range t.Lines {
		row := make([]string, len(t.Header))
		for j, h := range t.Header {
			row[j] = l.String(h)
		}
		rows[i] = row
	}
	return rows
}

// Column returns the formatted values of one column across all lines.
func (t *Table) Column(name string) []string {
	values := make([]string, len(t.Lines))
	for i, l := range t.Lines {
		values[i] = l.String(name)
	}
	return values
}

// FormatValue renders a cell value for output.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
