package store

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tallybook-dev/tallybook/internal/model"
)

// Violation describes a single referential-integrity failure: a record
// whose credit or debit side points at an account id that does not
// exist.
type Violation struct {
	RecordID  uuid.UUID
	Side      model.BalanceType
	AccountID uuid.UUID
}

func (v Violation) Error() string {
	return fmt.Sprintf("record %s: %s side references unknown account %s", v.RecordID, v.Side, v.AccountID)
}

// IntegrityError aggregates all violations found in one dataset.
type IntegrityError struct {
	Violations []Violation
}

func (e IntegrityError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Error()
	}
	return fmt.Sprintf("ledger integrity: %s", strings.Join(msgs, "; "))
}

// CheckIntegrity verifies that every record's two account ids resolve to
// live accounts. The engine assumes this invariant; the store enforces
// it on load and maintains it through cascade deletes.
func CheckIntegrity(accounts []model.Account, records []model.Record) []Violation {
	known := make(map[uuid.UUID]bool, len(accounts))
	for _, a := range accounts {
		known[a.ID] = true
	}

	var violations []Violation
	for _, r := range records {
		if !known[r.CreditAccountID] {
			violations = append(violations, Violation{RecordID: r.ID, Side: model.Credit, AccountID: r.CreditAccountID})
		}
		if !known[r.DebitAccountID] {
			violations = append(violations, Violation{RecordID: r.ID, Side: model.Debit, AccountID: r.DebitAccountID})
		}
	}
	return violations
}
