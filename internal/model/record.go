package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Record is a single double-entry transaction: Amount is booked as a
// credit to one account and a debit to the other. A record never splits
// into more than two legs.
//
// Records capture account identifiers, not account values, so a record
// outlives the account objects it was created from. Deleting an account
// must cascade-delete its records to keep the ids resolvable.
//
// Records are immutable once created; an edit is a delete plus re-add.
type Record struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Amount          decimal.Decimal `json:"amount"`
	CreditAccountID uuid.UUID       `json:"creditAccountId"`
	DebitAccountID  uuid.UUID       `json:"debitAccountId"`
	Date            time.Time       `json:"date"`
	Tag             Tag             `json:"tag"`
}

// NewRecord creates a Record with a fresh ID, capturing only the two
// accounts' identifiers. Amount is expected non-negative; callers
// validate before construction.
func NewRecord(name string, amount decimal.Decimal, creditAccount, debitAccount Account, date time.Time, tag Tag) Record {
	return Record{
		ID:              uuid.New(),
		Name:            name,
		Amount:          amount,
		CreditAccountID: creditAccount.ID,
		DebitAccountID:  debitAccount.ID,
		Date:            date,
		Tag:             tag,
	}
}

// Equal reports identity equality: records are equal iff their IDs match.
func (r Record) Equal(o Record) bool {
	return r.ID == o.ID
}

// Touches reports whether the record references the account on either side.
func (r Record) Touches(accountID uuid.UUID) bool {
	return r.CreditAccountID == accountID || r.DebitAccountID == accountID
}
