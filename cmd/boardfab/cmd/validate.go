package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/boardfab/internal/board"
	"github.com/dbsmedya/boardfab/internal/config"
	"github.com/dbsmedya/boardfab/internal/correction"
	"github.com/dbsmedya/boardfab/internal/database"
	"github.com/dbsmedya/boardfab/internal/generator"
	"github.com/dbsmedya/boardfab/internal/logger"
	"github.com/dbsmedya/boardfab/internal/refdes"
	"github.com/dbsmedya/boardfab/internal/report"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration, board export and corrections",
	Long: `Validate checks the configuration file and everything a generate run
depends on, without writing any file.

Checks performed:
  - Configuration syntax, profiles and header tokens
  - Board export readable, designators unique and well-formed
  - Correction table readable (file or parts database)
  - Every profile builds in memory

Example:
  boardfab validate --config boardfab.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	printer := report.NewPrinter(cmd.OutOrStdout())
	printer.Header("Configuration Validation")
	printer.Fields([][2]string{
		{"Config file", GetConfigFile()},
		{"Board", cfg.Board.Path},
		{"Profiles", fmt.Sprint(cfg.ListProfiles())},
	})
	printer.Line("")

	if err := cfg.Validate(); err != nil {
		var verrs config.ValidationErrors
		if errors.As(err, &verrs) {
			for _, e := range verrs {
				printer.Fail("%s", e.Error())
			}
		}
		return fmt.Errorf("configuration is invalid")
	}
	printer.OK("configuration")

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	hasErrors := false
	source := board.NewFileSource(cfg.Board.Path)
	if err := checkBoard(source, printer); err != nil {
		hasErrors = true
	}

	corrections, err := generator.LoadCorrections(database.SetupSignalHandler(), cfg.Corrections)
	switch {
	case err != nil:
		printer.Fail("corrections: %v", err)
		hasErrors = true
	case corrections == nil:
		printer.OK("corrections: none configured")
	default:
		printer.OK("corrections: %d footprint(s)", corrections.Len())
	}

	if !hasErrors {
		if err := checkProfiles(cfg, source, corrections, log, printer); err != nil {
			hasErrors = true
		}
	}

	printer.Line("")
	if hasErrors {
		return fmt.Errorf("validation failed")
	}
	printer.OK("all checks passed")
	return nil
}

// checkBoard reports every malformed designator and the first duplicate.
func checkBoard(source *board.FileSource, printer *report.Printer) error {
	components, err := source.Components()
	if err != nil {
		printer.Fail("board: %v", err)
		return err
	}

	var invalid error
	for i := range components {
		if _, err := refdes.SortKey(components[i].Ref); err != nil {
			printer.Fail("board: %v", err)
			invalid = err
		}
	}
	if invalid != nil {
		return invalid
	}

	if _, err := board.NewSet(components); err != nil {
		printer.Fail("board: %v", err)
		return err
	}
	printer.OK("board: %d component(s)", len(components))
	return nil
}

func checkProfiles(cfg *config.Config, source board.Source, corrections *correction.Table, log *logger.Logger, printer *report.Printer) error {
	gen, err := generator.New(cfg, source)
	if err != nil {
		return err
	}
	gen.SetLogger(log)
	gen.SetCorrections(corrections)
	if err := gen.Initialize(); err != nil {
		printer.Fail("board: %v", err)
		return err
	}

	var failed error
	for _, name := range cfg.ListProfiles() {
		out, err := gen.Build(name)
		if err != nil {
			printer.Fail("%v", err)
			failed = err
			continue
		}
		printer.OK("profile %s: %d corrected of %d placed", name, out.Corrected, out.Placed)
	}
	return failed
}
