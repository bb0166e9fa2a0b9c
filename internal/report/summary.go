package report

import (
	"fmt"
	"strconv"

	"github.com/dbsmedya/boardfab/internal/config"
	"github.com/dbsmedya/boardfab/internal/correction"
	"github.com/dbsmedya/boardfab/internal/generator"
)

// Summary prints the statistics of a generate run.
func (p *Printer) Summary(board string, results []*generator.Result) {
	p.Header("Generated files for %s", board)
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.Profile,
			fileOrDash(r.BOMFile),
			strconv.Itoa(r.BOMLines),
			fileOrDash(r.PnPFile),
			strconv.Itoa(r.PnPLines),
			fmt.Sprintf("%d/%d", r.Corrected, r.Placed),
		})
	}
	p.Table([]string{"Profile", "BOM", "Lines", "Placement", "Lines", "Corrected"}, rows)
	fmt.Fprintln(p.w)
	p.OK("%d profile(s) written", len(results))
}

func fileOrDash(path string) string {
	if path == "" {
		return "-"
	}
	return path
}

// Profile prints the settings and columns of one profile.
func (p *Printer) Profile(name string, profile *config.ProfileConfig) {
	p.Section(name)
	p.Fields([][2]string{
		{"Group by", fmt.Sprint(profile.GroupFields())},
		{"BOM file", enabledFile(profile.BOM.Disabled, profile.BOM.File, config.DefaultBOMFile)},
		{"BOM filter", describeFilter(profile.BOM.Filter)},
		{"PnP file", enabledFile(profile.PnP.Disabled, profile.PnP.File, config.DefaultPnPFile)},
		{"PnP filter", describeFilter(profile.PnP.Filter)},
		{"Aux origin", strconv.FormatBool(profile.PnP.UseAuxOrigin)},
		{"Negate Y", strconv.FormatBool(profile.PnP.NegateY)},
		{"Corrections", strconv.FormatBool(!profile.PnP.SkipCorrections)},
	})
	if !profile.BOM.Disabled {
		p.Line("")
		p.Table([]string{"BOM field", "Column"}, headerRows(profile.BOM.Headers))
	}
	if !profile.PnP.Disabled {
		p.Line("")
		p.Table([]string{"PnP field", "Column"}, headerRows(profile.PnP.Headers))
	}
	p.Line("")
}

func enabledFile(disabled bool, file, fallback string) string {
	if disabled {
		return "disabled"
	}
	if file == "" {
		return fallback
	}
	return file
}

func describeFilter(f *config.FilterConfig) string {
	if f == nil {
		return "all components"
	}
	desc := ""
	if f.Field != "" {
		op := "=="
		if f.IgnoreCase {
			op = "~="
		}
		desc = fmt.Sprintf("%s %s %q", f.Field, op, f.Equals)
	}
	if f.ExcludeDNP {
		if desc != "" {
			desc += ", "
		}
		desc += "not DNP"
	}
	if desc == "" {
		return "all components"
	}
	return desc
}

func headerRows(headers []config.HeaderConfig) [][]string {
	rows := make([][]string, len(headers))
	for i, h := range headers {
		column := h.Name
		if column == "" {
			column = h.Field
		}
		rows[i] = []string{h.Field, column}
	}
	return rows
}

// Corrections prints a correction table sorted by footprint.
func (p *Printer) Corrections(t *correction.Table) {
	rows := make([][]string, 0, t.Len())
	for _, fp := range t.Footprints() {
		entry, _ := t.Get(fp)
		rotation := "missing"
		if entry.HasRotation() {
			rotation = formatFloat(entry.Rotation)
		}
		rows = append(rows, []string{fp, formatFloat(entry.X), formatFloat(entry.Y), rotation})
	}
	p.Table([]string{correction.ColumnFootprint, correction.ColumnX, correction.ColumnY, correction.ColumnRotation}, rows)
}

// Matches prints which correction entry applies to each footprint.
func (p *Printer) Matches(t *correction.Table, footprints []string) {
	rows := make([][]string, 0, len(footprints))
	for _, fp := range footprints {
		key, ok := t.Resolve(fp)
		if !ok {
			rows = append(rows, []string{fp, "-", ""})
			continue
		}
		entry, _, err := t.Lookup(fp)
		if err != nil {
			rows = append(rows, []string{fp, key, err.Error()})
			continue
		}
		rows = append(rows, []string{fp, key, fmt.Sprintf("x=%s y=%s rot=%s",
			formatFloat(entry.X), formatFloat(entry.Y), formatFloat(entry.Rotation))})
	}
	p.Table([]string{"Footprint", "Match", "Correction"}, rows)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
