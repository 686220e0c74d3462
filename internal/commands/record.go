package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tallybook-dev/tallybook/internal/model"
)

func newRecordCommand(ledgerDir *string) *cobra.Command {
	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "Manage records",
	}
	recordCmd.AddCommand(newRecordAddCommand(ledgerDir))
	recordCmd.AddCommand(newRecordListCommand(ledgerDir))
	recordCmd.AddCommand(newRecordDeleteCommand(ledgerDir))
	return recordCmd
}

func newRecordAddCommand(ledgerDir *string) *cobra.Command {
	var amountStr, creditRef, debitRef, dateStr, tagStr string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a record moving an amount between two accounts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecordAdd(*ledgerDir, args[0], amountStr, creditRef, debitRef, dateStr, tagStr)
		},
	}

	cmd.Flags().StringVar(&amountStr, "amount", "", "amount moved (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&creditRef, "credit", "", "credit-side account (required)")
	_ = cmd.MarkFlagRequired("credit")
	cmd.Flags().StringVar(&debitRef, "debit", "", "debit-side account (required)")
	_ = cmd.MarkFlagRequired("debit")
	cmd.Flags().StringVar(&dateStr, "date", "", "record date, YYYY-MM-DD or RFC 3339 (default now)")
	cmd.Flags().StringVar(&tagStr, "tag", string(model.TagShopping), "category tag")

	return cmd
}

func runRecordAdd(dir, name, amountStr, creditRef, debitRef, dateStr, tagStr string) error {
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return fmt.Errorf("parsing amount %q: %w", amountStr, err)
	}
	if amount.IsNegative() {
		return fmt.Errorf("amount must not be negative, got %s", amount)
	}

	tag := model.Tag(tagStr)
	if !tag.Valid() {
		return fmt.Errorf("unknown tag %q", tagStr)
	}

	date := time.Now()
	if dateStr != "" {
		date, err = parseCLIDate(dateStr)
		if err != nil {
			return err
		}
	}

	e, err := openLedger(dir)
	if err != nil {
		return err
	}
	defer e.close()

	credit, err := e.findAccount(creditRef)
	if err != nil {
		return err
	}
	debit, err := e.findAccount(debitRef)
	if err != nil {
		return err
	}
	if credit.ID == debit.ID {
		return fmt.Errorf("credit and debit accounts must differ")
	}

	r := model.NewRecord(name, amount, credit, debit, date, tag)
	if err := e.store.AddRecord(r); err != nil {
		return err
	}
	e.audit("record-add", r.ID.String(), fmt.Sprintf("%s: %s from %s to %s", name, amount, credit.Name, debit.Name))
	e.finishMutation(fmt.Sprintf("Add record %s", name))

	fmt.Printf("Added record %s (%s)\n", name, r.ID)
	return nil
}

func newRecordListCommand(ledgerDir *string) *cobra.Command {
	var accountRef string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List records, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecordList(*ledgerDir, accountRef)
		},
	}

	cmd.Flags().StringVar(&accountRef, "account", "", "only records crediting this account")

	return cmd
}

func runRecordList(dir, accountRef string) error {
	e, err := openLedger(dir)
	if err != nil {
		return err
	}
	defer e.close()

	snap := e.store.Snapshot()

	var records []model.Record
	if accountRef != "" {
		a, err := e.findAccount(accountRef)
		if err != nil {
			return err
		}
		records = snap.RecordsOf(a)
	} else {
		all := snap.Records()
		records = make([]model.Record, 0, len(all))
		for i := len(all) - 1; i >= 0; i-- {
			records = append(records, all[i])
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tNAME\tAMOUNT\tCREDIT\tDEBIT\tTAG")
	for _, r := range records {
		credit, err := snap.CreditAccount(r)
		if err != nil {
			return err
		}
		debit, err := snap.DebitAccount(r)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(r.ID), r.Date.Format("2006-01-02"), r.Name, e.money(r.Amount),
			credit.Name, debit.Name, r.Tag)
	}
	return w.Flush()
}

func newRecordDeleteCommand(ledgerDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecordDelete(*ledgerDir, args[0])
		},
	}
}

func runRecordDelete(dir, idStr string) error {
	id, err := uuid.Parse(idStr)
	if err != nil {
		return fmt.Errorf("parsing record id %q: %w", idStr, err)
	}

	e, err := openLedger(dir)
	if err != nil {
		return err
	}
	defer e.close()

	if !e.store.DeleteRecord(id) {
		return fmt.Errorf("record %s not found", id)
	}
	e.audit("record-delete", id.String(), "")
	e.finishMutation(fmt.Sprintf("Delete record %s", id))

	fmt.Printf("Deleted record %s\n", id)
	return nil
}

func parseCLIDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
