package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook-dev/tallybook/internal/model"
)

// SimpleParser reads the generic tallybook import format:
//
//	date,name,amount,credit_account,debit_account,tag
//
// with dates as YYYY-MM-DD or RFC 3339 and accounts by name.
type SimpleParser struct{}

const (
	simpleFields = 6

	colDate   = 0
	colName   = 1
	colAmount = 2
	colCredit = 3
	colDebit  = 4
	colTag    = 5
)

// Format implements Parser.
func (SimpleParser) Format() string { return "simple" }

// Parse implements Parser.
func (SimpleParser) Parse(r io.Reader) ([]ParsedRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = simpleFields

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading import CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	// Skip header row.
	var parsed []ParsedRecord
	for i, row := range rows[1:] {
		p, err := unmarshalSimple(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		parsed = append(parsed, p)
	}
	return parsed, nil
}

func unmarshalSimple(row []string) (ParsedRecord, error) {
	date, err := parseDate(row[colDate])
	if err != nil {
		return ParsedRecord{}, err
	}

	amount, err := decimal.NewFromString(row[colAmount])
	if err != nil {
		return ParsedRecord{}, fmt.Errorf("parsing amount %q: %w", row[colAmount], err)
	}
	if amount.IsNegative() {
		return ParsedRecord{}, fmt.Errorf("negative amount %s", amount)
	}

	tag := model.Tag(row[colTag])
	if !tag.Valid() {
		return ParsedRecord{}, fmt.Errorf("unknown tag %q", row[colTag])
	}

	return ParsedRecord{
		Name:          row[colName],
		Amount:        amount,
		CreditAccount: row[colCredit],
		DebitAccount:  row[colDebit],
		Date:          date,
		Tag:           tag,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}
