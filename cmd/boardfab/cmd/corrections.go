package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/boardfab/internal/database"
	"github.com/dbsmedya/boardfab/internal/generator"
	"github.com/dbsmedya/boardfab/internal/report"
)

var correctionsCmd = &cobra.Command{
	Use:   "corrections [footprint...]",
	Short: "Show the footprint correction table",
	Long: `Corrections prints the configured correction table. When footprints
are given, it shows which entry applies to each one: the full footprint
name is tried first, then the name without its library prefix.

Example:
  boardfab corrections --config boardfab.yaml
  boardfab corrections Package_TO_SOT_SMD:SOT-23 Resistor_SMD:R_0603`,
	RunE: runCorrections,
}

func init() {
	rootCmd.AddCommand(correctionsCmd)
}

func runCorrections(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.Corrections.Enabled() {
		return fmt.Errorf("no correction source configured in %s", GetConfigFile())
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	table, err := generator.LoadCorrections(database.SetupSignalHandler(), cfg.Corrections)
	if err != nil {
		return err
	}

	printer := report.NewPrinter(cmd.OutOrStdout())
	if len(args) > 0 {
		printer.Matches(table, args)
		return nil
	}

	printer.Corrections(table)
	printer.Line("")
	printer.Line("Total: %d footprint(s)", table.Len())
	return nil
}
