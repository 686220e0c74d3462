package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tallybook-dev/tallybook/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands
// registered.
func NewRootCommand() *cobra.Command {
	var ledgerDir string

	rootCmd := &cobra.Command{
		Use:     "tallybook",
		Short:   "Personal double-entry bookkeeping",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&ledgerDir, "ledger", ".", "ledger directory")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newAccountCommand(&ledgerDir))
	rootCmd.AddCommand(newRecordCommand(&ledgerDir))
	rootCmd.AddCommand(newBalanceCommand(&ledgerDir))
	rootCmd.AddCommand(newReportCommand(&ledgerDir))
	rootCmd.AddCommand(newExportCommand(&ledgerDir))
	rootCmd.AddCommand(newImportCommand(&ledgerDir))
	rootCmd.AddCommand(newDemoCommand(&ledgerDir))

	return rootCmd
}
