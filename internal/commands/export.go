package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tallybook-dev/tallybook/internal/export"
)

func newExportCommand(ledgerDir *string) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:       "export <accounts|records>",
		Short:     "Export ledger data as CSV",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"accounts", "records"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(*ledgerDir, args[0], out)
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output file (default stdout)")

	return cmd
}

func runExport(dir, what, out string) error {
	e, err := openLedger(dir)
	if err != nil {
		return err
	}
	defer e.close()

	w := os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("creating %s: %w", out, err)
		}
		defer f.Close()
		w = f
	}

	switch what {
	case "accounts":
		return export.WriteAccounts(w, e.store.Accounts())
	case "records":
		return export.WriteRecords(w, e.store.Records())
	default:
		return fmt.Errorf("unknown export target %q", what)
	}
}
