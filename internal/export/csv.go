// Package export writes ledger data as CSV for use outside tallybook.
// The persisted format stays JSON; CSV is an export surface only.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tallybook-dev/tallybook/internal/model"
)

// RecordHeader is the CSV header for a records export.
const RecordHeader = "id,name,amount,credit_account_id,debit_account_id,date,tag"

// AccountHeader is the CSV header for an accounts export.
const AccountHeader = "id,name,kind,initial_value"

const (
	recordFields = 7
	dateFormat   = time.RFC3339

	colRecID     = 0
	colRecName   = 1
	colRecAmount = 2
	colRecCredit = 3
	colRecDebit  = 4
	colRecDate   = 5
	colRecTag    = 6
)

const (
	accountFields = 4

	colAcctID      = 0
	colAcctName    = 1
	colAcctKind    = 2
	colAcctInitial = 3
)

// WriteRecords writes records as CSV, including the header.
func WriteRecords(w io.Writer, records []model.Record) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(RecordHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range records {
		if err := cw.Write(marshalRecord(r)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// WriteAccounts writes accounts as CSV, including the header.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(AccountHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, a := range accounts {
		if err := cw.Write(marshalAccount(a)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

func marshalRecord(r model.Record) []string {
	row := make([]string, recordFields)
	row[colRecID] = r.ID.String()
	row[colRecName] = r.Name
	row[colRecAmount] = r.Amount.String()
	row[colRecCredit] = r.CreditAccountID.String()
	row[colRecDebit] = r.DebitAccountID.String()
	row[colRecDate] = r.Date.Format(dateFormat)
	row[colRecTag] = string(r.Tag)
	return row
}

func marshalAccount(a model.Account) []string {
	row := make([]string, accountFields)
	row[colAcctID] = a.ID.String()
	row[colAcctName] = a.Name
	row[colAcctKind] = string(a.Kind)
	row[colAcctInitial] = a.InitialValue.String()
	return row
}
