package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/boardfab/internal/board"
	"github.com/dbsmedya/boardfab/internal/database"
	"github.com/dbsmedya/boardfab/internal/generator"
	"github.com/dbsmedya/boardfab/internal/report"
)

var (
	generateProfiles []string
	generateDryRun   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate BOM and pick-and-place files",
	Long: `Generate builds the bill of materials and pick-and-place table of every
selected profile and writes them as CSV files.

All tables are built in memory first; no file is written when any
profile fails.

Example:
  boardfab generate --config boardfab.yaml --profile jlcpcb`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringSliceVarP(&generateProfiles, "profile", "p", nil,
		"Profile to generate (repeatable, default all)")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false,
		"Build the tables and report them without writing files")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx := database.SetupSignalHandler()

	corrections, err := generator.LoadCorrections(ctx, cfg.Corrections)
	if err != nil {
		return err
	}

	gen, err := generator.New(cfg, board.NewFileSource(cfg.Board.Path))
	if err != nil {
		return err
	}
	gen.SetLogger(log)
	gen.SetCorrections(corrections)

	printer := report.NewPrinter(cmd.OutOrStdout())

	if generateDryRun {
		return dryRunGenerate(gen, printer)
	}

	results, err := gen.Run(generateProfiles)
	if err != nil {
		return fmt.Errorf("generate failed: %w", err)
	}
	printer.Summary(gen.BoardName(), results)
	return nil
}

func dryRunGenerate(gen *generator.Generator, printer *report.Printer) error {
	if err := gen.Initialize(); err != nil {
		return err
	}
	outputs, err := gen.BuildAll(generateProfiles)
	if err != nil {
		return fmt.Errorf("generate failed: %w", err)
	}

	rows := make([][]string, 0, len(outputs))
	for _, out := range outputs {
		bomLines, pnpLines := "-", "-"
		if out.BOM != nil {
			bomLines = strconv.Itoa(out.BOM.Len())
		}
		if out.PnP != nil {
			pnpLines = strconv.Itoa(out.PnP.Len())
		}
		rows = append(rows, []string{out.Profile, out.BOMPath, bomLines, out.PnPPath, pnpLines})
	}

	printer.Header("Dry run for %s", gen.BoardName())
	printer.Table([]string{"Profile", "BOM", "Lines", "Placement", "Lines"}, rows)
	printer.Line("")
	printer.OK("%d profile(s) built, nothing written", len(outputs))
	return nil
}
