package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/tallybook-dev/tallybook/internal/ledger"
	"github.com/tallybook-dev/tallybook/internal/model"
)

func newBalanceCommand(ledgerDir *string) *cobra.Command {
	var dateStr string

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show the balance sheet as of a closing date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBalance(*ledgerDir, dateStr)
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "closing date, YYYY-MM-DD (default today)")

	return cmd
}

func runBalance(dir, dateStr string) error {
	closing := time.Now()
	if dateStr != "" {
		var err error
		closing, err = parseCLIDate(dateStr)
		if err != nil {
			return err
		}
	}
	// Balances close at the last second of the chosen day.
	closing = ledger.EndOfDay(closing)

	e, err := openLedger(dir)
	if err != nil {
		return err
	}
	defer e.close()

	snap := e.store.Snapshot()

	fmt.Printf("Balance sheet as of %s\n\n", closing.Format("2006-01-02"))
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, kind := range model.Kinds {
		if kind.Attributes().Statement != model.BalanceSheet {
			continue
		}
		accounts := snap.AccountsOfKind(kind)
		if len(accounts) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s\t\t\n", kind)
		for _, a := range accounts {
			fmt.Fprintf(w, "  %s\t%s\t\n", a.Name, e.money(snap.AmountBefore(a, closing)))
		}
		fmt.Fprintf(w, "  total\t%s\t\n", e.money(snap.KindTotalBefore(kind, closing)))
	}
	return w.Flush()
}
