// Package config provides configuration structures and loading for boardfab.
package config

import (
	"strings"
)

// Config represents the complete application configuration.
type Config struct {
	Board       BoardConfig              `yaml:"board" mapstructure:"board"`
	Corrections CorrectionsConfig        `yaml:"corrections" mapstructure:"corrections"`
	Output      OutputConfig             `yaml:"output" mapstructure:"output"`
	Profiles    map[string]ProfileConfig `yaml:"profiles" mapstructure:"profiles"`
	Logging     LoggingConfig            `yaml:"logging" mapstructure:"logging"`
}

// BoardConfig points at the component export of the board.
type BoardConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
	Name string `yaml:"name" mapstructure:"name"` // defaults to the export file's base name
}

// CorrectionsConfig selects where the footprint correction table comes from.
// At most one of File and Database may be set.
type CorrectionsConfig struct {
	File     string          `yaml:"file" mapstructure:"file"`
	Database *DatabaseConfig `yaml:"database,omitempty" mapstructure:"database"`
}

// Enabled reports whether a correction source is configured.
func (c CorrectionsConfig) Enabled() bool {
	return c.File != "" || c.Database != nil
}

// DatabaseConfig represents a MySQL parts database holding a correction table.
type DatabaseConfig struct {
	Host               string `yaml:"host" mapstructure:"host"`
	Port               int    `yaml:"port" mapstructure:"port"`
	User               string `yaml:"user" mapstructure:"user"`
	Password           string `yaml:"password" mapstructure:"password"`
	Database           string `yaml:"database" mapstructure:"database"`
	TLS                string `yaml:"tls" mapstructure:"tls"` // disable, preferred, required
	MaxConnections     int    `yaml:"max_connections" mapstructure:"max_connections"`
	MaxIdleConnections int    `yaml:"max_idle_connections" mapstructure:"max_idle_connections"`
	Table              string `yaml:"table" mapstructure:"table"`
}

// OutputConfig controls where generated files go.
type OutputConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"` // empty means next to the board export
}

// ProfileConfig describes the BOM and placement files for one assembly house.
type ProfileConfig struct {
	GroupBy []string  `yaml:"group_by" mapstructure:"group_by"`
	BOM     BOMConfig `yaml:"bom" mapstructure:"bom"`
	PnP     PnPConfig `yaml:"pnp" mapstructure:"pnp"`
}

// HeaderConfig is one output column: a field or reserved token and an optional column name.
type HeaderConfig struct {
	Field string `yaml:"field" mapstructure:"field"`
	Name  string `yaml:"name" mapstructure:"name"`
}

// FilterConfig selects the components that appear in a table.
type FilterConfig struct {
	Field      string `yaml:"field" mapstructure:"field"`
	Equals     string `yaml:"equals" mapstructure:"equals"`
	IgnoreCase bool   `yaml:"ignore_case" mapstructure:"ignore_case"`
	ExcludeDNP bool   `yaml:"exclude_dnp" mapstructure:"exclude_dnp"`
}

// FormatConfig applies a printf verb to one output column.
type FormatConfig struct {
	Column string `yaml:"column" mapstructure:"column"`
	Verb   string `yaml:"verb" mapstructure:"verb"`
}

// BOMConfig represents the bill-of-materials output.
type BOMConfig struct {
	Disabled bool           `yaml:"disabled" mapstructure:"disabled"`
	File     string         `yaml:"file" mapstructure:"file"`
	Headers  []HeaderConfig `yaml:"headers" mapstructure:"headers"`
	Filter   *FilterConfig  `yaml:"filter,omitempty" mapstructure:"filter"`
}

// PnPConfig represents the pick-and-place output.
type PnPConfig struct {
	Disabled        bool           `yaml:"disabled" mapstructure:"disabled"`
	File            string         `yaml:"file" mapstructure:"file"`
	Headers         []HeaderConfig `yaml:"headers" mapstructure:"headers"`
	Filter          *FilterConfig  `yaml:"filter,omitempty" mapstructure:"filter"`
	UseAuxOrigin    bool           `yaml:"use_aux_origin" mapstructure:"use_aux_origin"`
	NegateY         bool           `yaml:"negate_y" mapstructure:"negate_y"`
	SkipCorrections bool           `yaml:"skip_corrections" mapstructure:"skip_corrections"`
	Format          []FormatConfig `yaml:"format" mapstructure:"format"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultGroupBy is used when a profile does not name grouping fields.
var DefaultGroupBy = []string{"MPN"}

// Default file name templates. {board} and {profile} are substituted.
const (
	DefaultBOMFile = "{board}-bom-{profile}.csv"
	DefaultPnPFile = "{board}-pnp-{profile}.csv"
)

// DefaultProfileName is the profile added when the configuration defines none.
const DefaultProfileName = "jlcpcb"

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// DefaultDatabaseConfig returns the defaults applied to a configured parts database.
func DefaultDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Port:               3306,
		TLS:                "preferred",
		MaxConnections:     2,
		MaxIdleConnections: 1,
		Table:              "pnp_corrections",
	}
}

// JLCPCBProfile returns the JLCPCB assembly profile: parts grouped by MPN, only
// parts distributed by JLCPCB, placement relative to the auxiliary origin with
// Y pointing up.
func JLCPCBProfile() ProfileConfig {
	distributor := func(excludeDNP bool) *FilterConfig {
		return &FilterConfig{Field: "Distributor", Equals: "jlcpcb", IgnoreCase: true, ExcludeDNP: excludeDNP}
	}
	return ProfileConfig{
		GroupBy: []string{"MPN"},
		BOM: BOMConfig{
			File: DefaultBOMFile,
			Headers: []HeaderConfig{
				{Field: "Value"},
				{Field: "$REF", Name: "Designator"},
				{Field: "Footprint"},
				{Field: "DPN", Name: "LCSC#"},
			},
			Filter: distributor(true),
		},
		PnP: PnPConfig{
			File: DefaultPnPFile,
			Headers: []HeaderConfig{
				{Field: "Reference", Name: "Designator"},
				{Field: "$X", Name: "Mid X"},
				{Field: "$Y", Name: "Mid Y"},
				{Field: "$SIDE", Name: "Layer"},
				{Field: "$ROT", Name: "Rotation"},
			},
			Filter:       distributor(false),
			UseAuxOrigin: true,
			NegateY:      true,
		},
	}
}

// GroupFields returns the grouping fields, falling back to DefaultGroupBy.
func (p *ProfileConfig) GroupFields() []string {
	if len(p.GroupBy) == 0 {
		return DefaultGroupBy
	}
	return p.GroupBy
}

// BOMFile returns the BOM file name for a board and profile.
func (p *ProfileConfig) BOMFile(boardName, profile string) string {
	return expandFileTemplate(p.BOM.File, DefaultBOMFile, boardName, profile)
}

// PnPFile returns the placement file name for a board and profile.
func (p *ProfileConfig) PnPFile(boardName, profile string) string {
	return expandFileTemplate(p.PnP.File, DefaultPnPFile, boardName, profile)
}

func expandFileTemplate(tmpl, fallback, boardName, profile string) string {
	if tmpl == "" {
		tmpl = fallback
	}
	return strings.NewReplacer("{board}", boardName, "{profile}", profile).Replace(tmpl)
}
