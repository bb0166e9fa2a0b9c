package report

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/gookit/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/boardfab/internal/config"
	"github.com/dbsmedya/boardfab/internal/correction"
	"github.com/dbsmedya/boardfab/internal/generator"
)

func TestMain(m *testing.M) {
	color.Enable = false
	os.Exit(m.Run())
}

func lines(buf *bytes.Buffer) []string {
	return strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
}

func TestHeaderAndSection(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Header("Board %s", "demo")
	p.Section("jlcpcb")

	assert.Equal(t, []string{
		"==============",
		"  Board demo",
		"==============",
		"[jlcpcb]",
		"--------",
	}, lines(&buf))
}

func TestTable_AlignsWideCharacters(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Table([]string{"Ref", "Value"}, [][]string{
		{"R1", "10k"},
		{"電源", "5V"},
		{"C10"},
	})

	assert.Equal(t, []string{
		"  Ref   Value",
		"  ----  -----",
		"  R1    10k",
		"  電源  5V",
		"  C10   ",
	}, lines(&buf))
}

func TestFields(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Fields([][2]string{{"Group by", "[MPN]"}, {"Negate Y", "true"}, {"Aux", "false"}})

	assert.Equal(t, []string{
		"  Group by:  [MPN]",
		"  Negate Y:  true",
		"  Aux:       false",
	}, lines(&buf))
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Summary("demo", []*generator.Result{
		{Profile: "jlcpcb", BOMFile: "demo-bom-jlcpcb.csv", BOMLines: 2, PnPFile: "demo-pnp-jlcpcb.csv", PnPLines: 3, Placed: 3, Corrected: 2},
		{Profile: "bom-only", BOMFile: "demo-bom-bom-only.csv", BOMLines: 4},
	})

	out := buf.String()
	assert.Contains(t, out, "Generated files for demo")
	assert.Contains(t, out, "2/3")
	assert.Contains(t, out, "0/0")
	assert.Contains(t, out, "2 profile(s) written")

	var bomOnly string
	for _, l := range lines(&buf) {
		if strings.Contains(l, "bom-only") && strings.Contains(l, "demo-bom-bom-only.csv") {
			bomOnly = l
		}
	}
	require.NotEmpty(t, bomOnly)
	assert.Contains(t, bomOnly, " - ")
}

func TestProfile(t *testing.T) {
	var buf bytes.Buffer
	profile := config.JLCPCBProfile()
	NewPrinter(&buf).Profile("jlcpcb", &profile)

	out := buf.String()
	assert.Contains(t, out, "[jlcpcb]")
	assert.Contains(t, out, `Distributor ~= "jlcpcb", not DNP`)
	assert.Contains(t, out, config.DefaultBOMFile)
	assert.Contains(t, out, "$REF       Designator")
	assert.Contains(t, out, "DPN        LCSC#")
	assert.Contains(t, out, "Value      Value")
}

func TestDescribeFilter(t *testing.T) {
	assert.Equal(t, "all components", describeFilter(nil))
	assert.Equal(t, "all components", describeFilter(&config.FilterConfig{}))
	assert.Equal(t, `MPN == ""`, describeFilter(&config.FilterConfig{Field: "MPN"}))
	assert.Equal(t, "not DNP", describeFilter(&config.FilterConfig{ExcludeDNP: true}))
}

func TestCorrectionsAndMatches(t *testing.T) {
	table, err := correction.Load(strings.NewReader("Footprint,X,Y,Rotation\nSOT-23,0,0,180\nTSSOP-20,0.5,,\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.Corrections(table)

	assert.Equal(t, []string{
		"  Footprint  X    Y  Rotation",
		"  ---------  ---  -  --------",
		"  SOT-23     0    0  180",
		"  TSSOP-20   0.5  0  missing",
	}, lines(&buf))

	buf.Reset()
	p.Matches(table, []string{"Package_TO_SOT_SMD:SOT-23", "Package_SO:TSSOP-20", "R_0603"})

	out := lines(&buf)
	require.Len(t, out, 5)
	assert.Contains(t, out[2], "Package_TO_SOT_SMD:SOT-23  SOT-23")
	assert.Contains(t, out[2], "x=0 y=0 rot=180")
	assert.Contains(t, out[3], "required field Rotation")
	assert.Contains(t, out[4], "R_0603")
	assert.Contains(t, out[4], "-")
}
