package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tallybook-dev/tallybook/internal/ledger"
	"github.com/tallybook-dev/tallybook/internal/model"
)

func newReportCommand(ledgerDir *string) *cobra.Command {
	var fromStr, toStr string
	var withSeries bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Income statement and balance trend over a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(*ledgerDir, fromStr, toStr, withSeries)
		},
	}

	cmd.Flags().StringVar(&fromStr, "from", "", "range start, YYYY-MM-DD (default first record)")
	cmd.Flags().StringVar(&toStr, "to", "", "range end, YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&withSeries, "series", false, "include asset/liability balance series")

	return cmd
}

func runReport(dir, fromStr, toStr string, withSeries bool) error {
	e, err := openLedger(dir)
	if err != nil {
		return err
	}
	defer e.close()

	snap := e.store.Snapshot()

	from, to := snap.AvailableDateRange()
	if fromStr != "" {
		if from, err = parseCLIDate(fromStr); err != nil {
			return err
		}
	}
	if toStr != "" {
		if to, err = parseCLIDate(toStr); err != nil {
			return err
		}
		to = ledger.EndOfDay(to)
	}
	if to.Before(from) {
		return fmt.Errorf("range end %s is before start %s", to.Format("2006-01-02"), from.Format("2006-01-02"))
	}

	fmt.Printf("Income statement %s to %s\n\n", from.Format("2006-01-02"), to.Format("2006-01-02"))
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, kind := range model.Kinds {
		if kind.Attributes().Statement != model.IncomeStatement {
			continue
		}
		fmt.Fprintf(w, "%s\t\t\n", kind)
		total := decimal.Zero
		for _, a := range snap.AccountsOfKind(kind) {
			activity := snap.AmountIn(a, from, to)
			if activity.IsZero() {
				continue
			}
			total = total.Add(activity)
			fmt.Fprintf(w, "  %s\t%s\t\n", a.Name, e.money(activity))
		}
		fmt.Fprintf(w, "  total\t%s\t\n", e.money(total))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if withSeries {
		return printSeries(e, snap, from, to)
	}
	return nil
}

// printSeries renders the asset and liability balance trend. The sweep
// runs on the series worker so a long range does not stall rendering of
// the statement above, and a superseding request would simply discard
// this one's result.
func printSeries(e *env, snap *ledger.Snapshot, from, to time.Time) error {
	worker := ledger.NewSeriesWorker()
	defer worker.Close()

	kinds := []model.Kind{model.KindAsset, model.KindLiability}
	points := make(map[model.Kind][]ledger.Point, len(kinds))
	for _, kind := range kinds {
		worker.Submit(ledger.SeriesRequest{Snapshot: snap, Kind: kind, From: from, To: to})
		res := <-worker.Results()
		points[res.Request.Kind] = res.Points
	}

	fmt.Printf("\nBalance trend (asset, liability)\n")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tASSET\tLIABILITY")
	assets := points[model.KindAsset]
	liabilities := points[model.KindLiability]
	for i := range assets {
		liability := decimal.Zero
		if i < len(liabilities) {
			sign := decimal.NewFromInt(int64(model.KindLiability.Attributes().ChartSign))
			liability = liabilities[i].Value.Mul(sign)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			assets[i].Time.Format("2006-01-02 15:04"), e.money(assets[i].Value), e.money(liability))
	}
	return w.Flush()
}
