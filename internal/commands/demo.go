package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tallybook-dev/tallybook/internal/demo"
)

func newDemoCommand(ledgerDir *string) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Replace the ledger with a year of demo data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(*ledgerDir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite a non-empty ledger")

	return cmd
}

func runDemo(dir string, force bool) error {
	e, err := openLedger(dir)
	if err != nil {
		return err
	}
	defer e.close()

	if !force && (len(e.store.Accounts()) > 0 || len(e.store.Records()) > 0) {
		return fmt.Errorf("ledger is not empty; use --force to replace it")
	}

	d := demo.Generate(time.Now())
	e.store.ReplaceAll(d.Accounts, d.Records)
	e.audit("demo-seed", "", fmt.Sprintf("%d accounts, %d records", len(d.Accounts), len(d.Records)))
	e.finishMutation("Seed demo data")

	fmt.Printf("Seeded %d accounts and %d records\n", len(d.Accounts), len(d.Records))
	return nil
}
