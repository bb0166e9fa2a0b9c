// Package report prints human-readable run summaries and listings to a terminal.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"
)

var (
	titleStyle   = color.New(color.FgCyan, color.OpBold)
	sectionStyle = color.New(color.FgYellow, color.OpBold)
	okStyle      = color.New(color.FgGreen)
	warnStyle    = color.New(color.FgRed)
	dimStyle     = color.New(color.FgGray)
)

// Printer writes formatted output to w.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Header prints a framed title.
func (p *Printer) Header(format string, args ...interface{}) {
	title := fmt.Sprintf(format, args...)
	rule := strings.Repeat("=", runewidth.StringWidth(title)+4)
	fmt.Fprintln(p.w, rule)
	fmt.Fprintf(p.w, "  %s\n", titleStyle.Sprint(title))
	fmt.Fprintln(p.w, rule)
}

// Section prints a section title with an underline.
func (p *Printer) Section(title string) {
	fmt.Fprintf(p.w, "[%s]\n", sectionStyle.Sprint(title))
	fmt.Fprintln(p.w, strings.Repeat("-", runewidth.StringWidth(title)+2))
}

// OK prints a success line.
func (p *Printer) OK(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s %s\n", okStyle.Sprint("✓"), fmt.Sprintf(format, args...))
}

// Fail prints a failure line.
func (p *Printer) Fail(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s %s\n", warnStyle.Sprint("✗"), fmt.Sprintf(format, args...))
}

// Line prints a plain line.
func (p *Printer) Line(format string, args ...interface{}) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Fields prints label/value pairs with the values aligned.
func (p *Printer) Fields(pairs [][2]string) {
	width := 0
	for _, kv := range pairs {
		if w := runewidth.StringWidth(kv[0]); w > width {
			width = w
		}
	}
	for _, kv := range pairs {
		fmt.Fprintf(p.w, "  %s  %s\n", runewidth.FillRight(kv[0]+":", width+1), kv[1])
	}
}

// Table prints rows under a header with columns padded to their widest cell.
// Cells are measured by display width so wide characters stay aligned.
func (p *Printer) Table(header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i := range header {
			if i < len(row) {
				if w := runewidth.StringWidth(row[i]); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}

	p.row(header, widths, sectionStyle)
	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = strings.Repeat("-", w)
	}
	p.row(rule, widths, dimStyle)
	for _, row := range rows {
		p.row(row, widths, nil)
	}
}

func (p *Printer) row(cells []string, widths []int, style color.Style) {
	var sb strings.Builder
	sb.WriteString("  ")
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if i < len(widths)-1 {
			cell = runewidth.FillRight(cell, w)
		}
		if style != nil {
			cell = style.Sprint(cell)
		}
		sb.WriteString(cell)
		if i < len(widths)-1 {
			sb.WriteString("  ")
		}
	}
	fmt.Fprintln(p.w, sb.String())
}
