package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tallybook-dev/tallybook/internal/importer"
	"github.com/tallybook-dev/tallybook/internal/model"
)

func newImportCommand(ledgerDir *string) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import records from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(*ledgerDir, args[0], format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "simple", "import format")

	return cmd
}

func runImport(dir, path, format string) error {
	registry := importer.DefaultRegistry()
	parser := registry.Get(format)
	if parser == nil {
		return fmt.Errorf("unknown format %q (available: %s)", format, strings.Join(registry.Formats(), ", "))
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	parsed, err := parser.Parse(f)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	e, err := openLedger(dir)
	if err != nil {
		return err
	}
	defer e.close()

	added := 0
	for i, p := range parsed {
		credit, err := e.findAccount(p.CreditAccount)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
		debit, err := e.findAccount(p.DebitAccount)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
		r := model.NewRecord(p.Name, p.Amount, credit, debit, p.Date, p.Tag)
		if err := e.store.AddRecord(r); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
		e.audit("record-import", r.ID.String(), p.Name)
		added++
	}
	e.finishMutation(fmt.Sprintf("Import %d records from %s", added, path))

	fmt.Printf("Imported %d records\n", added)
	return nil
}
