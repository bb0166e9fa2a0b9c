// Package generator produces the BOM and pick-and-place files for the
// manufacturing profiles of one board.
package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dbsmedya/boardfab/internal/board"
	"github.com/dbsmedya/boardfab/internal/bom"
	"github.com/dbsmedya/boardfab/internal/config"
	"github.com/dbsmedya/boardfab/internal/correction"
	"github.com/dbsmedya/boardfab/internal/filter"
	"github.com/dbsmedya/boardfab/internal/grouping"
	"github.com/dbsmedya/boardfab/internal/logger"
	"github.com/dbsmedya/boardfab/internal/placement"
	"github.com/dbsmedya/boardfab/internal/pnp"
	"github.com/dbsmedya/boardfab/internal/table"
)

// DefaultBoardName is used when neither the configuration nor the source names the board.
const DefaultBoardName = "board"

// Output holds the in-memory tables of one profile before they are written.
type Output struct {
	Profile string
	BOM     *table.Table
	BOMPath string
	PnP     *table.Table
	PnPPath string

	Groups    int
	Placed    int
	Corrected int
}

// Result contains statistics of one written profile.
type Result struct {
	Profile     string
	BOMFile     string
	PnPFile     string
	BOMLines    int
	PnPLines    int
	Groups      int
	Placed      int
	Corrected   int
	StartedAt   time.Time
	CompletedAt time.Time
	Duration    time.Duration
}

// namedSource is implemented by sources that know their board name.
type namedSource interface {
	Name() string
}

// Generator builds output tables for a board. Initialize must be called
// before Build or Run.
type Generator struct {
	config      *config.Config
	source      board.Source
	corrections *correction.Table
	logger      *logger.Logger
	boardName   string
	outputDir   string
	set         *board.Set
}

// New creates a Generator for cfg reading components from source.
func New(cfg *config.Config, source board.Source) (*Generator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if source == nil {
		return nil, fmt.Errorf("board source is nil")
	}

	name := cfg.Board.Name
	if name == "" {
		if ns, ok := source.(namedSource); ok {
			name = ns.Name()
		}
	}
	if name == "" {
		name = DefaultBoardName
	}

	dir := cfg.Output.Dir
	if dir == "" && cfg.Board.Path != "" {
		dir = filepath.Dir(cfg.Board.Path)
	}
	if dir == "" {
		dir = "."
	}

	return &Generator{
		config:    cfg,
		source:    source,
		logger:    logger.NewDefault(),
		boardName: name,
		outputDir: dir,
	}, nil
}

// SetLogger replaces the default logger.
func (g *Generator) SetLogger(log *logger.Logger) {
	if log != nil {
		g.logger = log
	}
}

// SetCorrections sets the footprint correction table used for placement.
func (g *Generator) SetCorrections(t *correction.Table) {
	g.corrections = t
}

// BoardName returns the name used in output file names.
func (g *Generator) BoardName() string {
	return g.boardName
}

// OutputDir returns the directory files are written to.
func (g *Generator) OutputDir() string {
	return g.outputDir
}

// Components returns the loaded component set, or nil before Initialize.
func (g *Generator) Components() *board.Set {
	return g.set
}

// Initialize reads the board components and checks designator uniqueness.
func (g *Generator) Initialize() error {
	if g.set != nil {
		return nil
	}
	set, err := board.Load(g.source)
	if err != nil {
		return fmt.Errorf("failed to load board %s: %w", g.boardName, err)
	}
	g.set = set

	g.logger.Infow("Board loaded",
		"board", g.boardName,
		"components", set.Len(),
		"corrections", g.corrections.Len(),
	)
	return nil
}

// Build produces both tables of one profile in memory.
func (g *Generator) Build(profileName string) (*Output, error) {
	if g.set == nil {
		return nil, fmt.Errorf("generator not initialized")
	}
	profile, err := g.config.GetProfile(profileName)
	if err != nil {
		return nil, err
	}
	log := g.logger.WithProfile(profileName)
	out := &Output{Profile: profileName}

	if !profile.BOM.Disabled {
		if err := g.buildBOM(out, profile, log); err != nil {
			return nil, fmt.Errorf("profile %s: bom: %w", profileName, err)
		}
	}
	if !profile.PnP.Disabled {
		if err := g.buildPnP(out, profile, log); err != nil {
			return nil, fmt.Errorf("profile %s: pnp: %w", profileName, err)
		}
	}
	return out, nil
}

func (g *Generator) buildBOM(out *Output, profile *config.ProfileConfig, log *logger.Logger) error {
	spec, err := config.HeaderSpec(profile.BOM.Headers)
	if err != nil {
		return err
	}

	groups := grouping.Group(g.set.All(), profile.GroupFields())
	keep := logSkipped(filterFrom(profile.BOM.Filter), log, "bom")

	t, err := bom.Aggregate(groups, spec, keep)
	if err != nil {
		return err
	}

	out.BOM = t
	out.BOMPath = filepath.Join(g.outputDir, profile.BOMFile(g.boardName, out.Profile))
	out.Groups = groups.Len()
	log.Debugw("BOM built", "groups", groups.Len(), "lines", t.Len())
	return nil
}

func (g *Generator) buildPnP(out *Output, profile *config.ProfileConfig, log *logger.Logger) error {
	spec, err := config.HeaderSpec(profile.PnP.Headers)
	if err != nil {
		return err
	}

	opts := pnp.Options{
		Filter:     logSkipped(filterFrom(profile.PnP.Filter), log, "pnp"),
		NegateY:    profile.PnP.NegateY,
		Formatters: formattersFrom(profile.PnP.Format),
		OnPlaced: func(c *board.Component, res placement.Result) {
			out.Placed++
			if res.Correction != nil {
				out.Corrected++
				log.WithComponent(c.Ref).WithFootprint(c.Footprint()).Debugw("Correction applied",
					"matched", res.Correction.Footprint,
					"rotation", res.Rotation,
				)
			}
		},
	}
	if !profile.PnP.SkipCorrections {
		opts.Corrections = g.corrections
	}
	if profile.PnP.UseAuxOrigin {
		origin, err := g.source.AuxOrigin()
		if err != nil {
			return fmt.Errorf("failed to read auxiliary origin: %w", err)
		}
		opts.Offset = &origin
	}

	t, err := pnp.Build(g.set.All(), spec, opts)
	if err != nil {
		return err
	}

	out.PnP = t
	out.PnPPath = filepath.Join(g.outputDir, profile.PnPFile(g.boardName, out.Profile))
	log.Debugw("Placement built", "lines", t.Len(), "corrected", out.Corrected)
	return nil
}

// Write stores the tables of out and returns their statistics.
func (g *Generator) Write(out *Output) (*Result, error) {
	result := &Result{
		Profile:   out.Profile,
		Groups:    out.Groups,
		Placed:    out.Placed,
		Corrected: out.Corrected,
		StartedAt: time.Now(),
	}

	if err := os.MkdirAll(g.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	if out.BOM != nil {
		if err := table.WriteFile(out.BOMPath, out.BOM); err != nil {
			return nil, err
		}
		result.BOMFile = out.BOMPath
		result.BOMLines = out.BOM.Len()
	}
	if out.PnP != nil {
		if err := table.WriteFile(out.PnPPath, out.PnP); err != nil {
			return nil, err
		}
		result.PnPFile = out.PnPPath
		result.PnPLines = out.PnP.Len()
	}

	result.CompletedAt = time.Now()
	result.Duration = result.CompletedAt.Sub(result.StartedAt)

	g.logger.WithProfile(out.Profile).Infow("Profile written",
		"bom_file", result.BOMFile,
		"bom_lines", result.BOMLines,
		"pnp_file", result.PnPFile,
		"pnp_lines", result.PnPLines,
		"placed", result.Placed,
		"corrected", result.Corrected,
	)
	return result, nil
}

// BuildAll builds the named profiles in memory. An empty list builds every
// configured profile.
func (g *Generator) BuildAll(profiles []string) ([]*Output, error) {
	if len(profiles) == 0 {
		profiles = g.config.ListProfiles()
	}
	outputs := make([]*Output, 0, len(profiles))
	for _, name := range profiles {
		out, err := g.Build(name)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}

// Run builds every named profile, then writes them. Nothing is written when
// any profile fails to build. An empty list runs all configured profiles.
func (g *Generator) Run(profiles []string) ([]*Result, error) {
	if err := g.Initialize(); err != nil {
		return nil, err
	}

	outputs, err := g.BuildAll(profiles)
	if err != nil {
		return nil, err
	}

	results := make([]*Result, 0, len(outputs))
	for _, out := range outputs {
		res, err := g.Write(out)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// filterFrom converts a filter section into a predicate. A nil section keeps everything.
func filterFrom(cfg *config.FilterConfig) filter.Predicate {
	if cfg == nil {
		return nil
	}
	var preds []filter.Predicate
	if cfg.Field != "" {
		preds = append(preds, filter.FieldEquals(cfg.Field, cfg.Equals, cfg.IgnoreCase))
	}
	if cfg.ExcludeDNP {
		preds = append(preds, filter.NotDNP())
	}
	return filter.And(preds...)
}

// logSkipped wraps keep so rejected components are logged at debug level.
func logSkipped(keep filter.Predicate, log *logger.Logger, output string) filter.Predicate {
	if keep == nil {
		return nil
	}
	return func(c *board.Component) bool {
		if keep(c) {
			return true
		}
		log.WithComponent(c.Ref).Debugw("Component filtered out", "output", output)
		return false
	}
}

func formattersFrom(formats []config.FormatConfig) map[string]pnp.Formatter {
	if len(formats) == 0 {
		return nil
	}
	out := make(map[string]pnp.Formatter, len(formats))
	for _, f := range formats {
		out[f.Column] = pnp.Printf(f.Verb)
	}
	return out
}
