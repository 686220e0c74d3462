package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tallybook-dev/tallybook/internal/model"
)

func newAccountCommand(ledgerDir *string) *cobra.Command {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Manage accounts",
	}
	accountCmd.AddCommand(newAccountAddCommand(ledgerDir))
	accountCmd.AddCommand(newAccountListCommand(ledgerDir))
	accountCmd.AddCommand(newAccountDeleteCommand(ledgerDir))
	return accountCmd
}

func newAccountAddCommand(ledgerDir *string) *cobra.Command {
	var kind string
	var initial string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAccountAdd(*ledgerDir, args[0], kind, initial)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "account kind: asset, liability, equity, revenue or expense (required)")
	_ = cmd.MarkFlagRequired("kind")
	cmd.Flags().StringVar(&initial, "initial", "0", "balance before any record")

	return cmd
}

func runAccountAdd(dir, name, kindStr, initialStr string) error {
	kind := model.Kind(kindStr)
	if !kind.Valid() {
		return fmt.Errorf("unknown account kind %q", kindStr)
	}
	initial, err := decimal.NewFromString(initialStr)
	if err != nil {
		return fmt.Errorf("parsing initial value %q: %w", initialStr, err)
	}

	e, err := openLedger(dir)
	if err != nil {
		return err
	}
	defer e.close()

	a := model.NewAccount(name, kind, initial)
	e.store.AddAccount(a)
	e.audit("account-add", a.ID.String(), fmt.Sprintf("%s (%s)", a.Name, a.Kind))
	e.finishMutation(fmt.Sprintf("Add account %s", a.Name))

	fmt.Printf("Added %s account %s (%s)\n", kind, name, a.ID)
	return nil
}

func newAccountListCommand(ledgerDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts with current balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAccountList(*ledgerDir)
		},
	}
}

func runAccountList(dir string) error {
	e, err := openLedger(dir)
	if err != nil {
		return err
	}
	defer e.close()

	snap := e.store.Snapshot()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tKIND\tRECORDS\tBALANCE")
	for _, a := range snap.Accounts() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			shortID(a.ID), a.Name, a.Kind, snap.RecordCount(a), e.money(snap.CurrentAmount(a)))
	}
	return w.Flush()
}

func newAccountDeleteCommand(ledgerDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name-or-id>",
		Short: "Delete an account and every record referencing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAccountDelete(*ledgerDir, args[0])
		},
	}
}

func runAccountDelete(dir, ref string) error {
	e, err := openLedger(dir)
	if err != nil {
		return err
	}
	defer e.close()

	a, err := e.findAccount(ref)
	if err != nil {
		return err
	}

	cascaded, ok := e.store.DeleteAccount(a.ID)
	if !ok {
		return fmt.Errorf("account %s not found", ref)
	}
	e.audit("account-delete", a.ID.String(), fmt.Sprintf("%s, cascaded %d records", a.Name, cascaded))
	e.finishMutation(fmt.Sprintf("Delete account %s", a.Name))

	fmt.Printf("Deleted account %s and %d records\n", a.Name, cascaded)
	return nil
}
