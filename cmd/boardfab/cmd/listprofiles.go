package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dbsmedya/boardfab/internal/report"
)

var listProfilesCmd = &cobra.Command{
	Use:   "list-profiles",
	Short: "List all output profiles defined in configuration",
	Long: `List-profiles displays every manufacturing profile with its grouping,
filters, placement settings and output columns. When the configuration
defines no profile, the built-in jlcpcb profile is shown.

Example:
  boardfab list-profiles --config boardfab.yaml`,
	RunE: runListProfiles,
}

func init() {
	rootCmd.AddCommand(listProfilesCmd)
}

func runListProfiles(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	names := cfg.ListProfiles()
	printer := report.NewPrinter(cmd.OutOrStdout())
	printer.Line("Profiles defined in %s:", GetConfigFile())
	printer.Line("")

	for _, name := range names {
		profile, err := cfg.GetProfile(name)
		if err != nil {
			return err
		}
		printer.Profile(name, profile)
	}

	printer.Line("Total: %d profile(s)", len(names))
	return nil
}
