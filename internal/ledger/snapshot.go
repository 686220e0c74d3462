package ledger

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tallybook-dev/tallybook/internal/model"
)

// Snapshot is an immutable point-in-time copy of the account and record
// collections. All queries are pure functions of the snapshot, safe to
// invoke concurrently from multiple readers.
//
// NewSnapshot builds a per-account date-sorted signed-delta index with
// prefix sums once, so balance queries cost O(log n) per call instead of
// re-scanning the full record set.
type Snapshot struct {
	accounts []model.Account
	records  []model.Record // sorted by date ascending

	byID  map[uuid.UUID]model.Account
	index map[uuid.UUID]*accountIndex

	now func() time.Time
}

// accountIndex holds the signed balance deltas of one account, sorted by
// record date ascending. prefix[i] is the sum of deltas[0:i], so
// prefix[len(deltas)] is the account's total activity.
type accountIndex struct {
	dates  []time.Time
	prefix []decimal.Decimal
}

// NewSnapshot builds a Snapshot over the given collections. The slices
// are copied; later mutation of the caller's slices does not affect the
// snapshot.
func NewSnapshot(accounts []model.Account, records []model.Record) *Snapshot {
	s := &Snapshot{
		accounts: append([]model.Account(nil), accounts...),
		records:  append([]model.Record(nil), records...),
		byID:     make(map[uuid.UUID]model.Account, len(accounts)),
		index:    make(map[uuid.UUID]*accountIndex, len(accounts)),
		now:      time.Now,
	}

	sort.SliceStable(s.records, func(i, j int) bool {
		return s.records[i].Date.Before(s.records[j].Date)
	})

	for _, a := range s.accounts {
		s.byID[a.ID] = a
	}
	s.buildIndex()
	return s
}

// buildIndex walks the date-sorted records once and appends each
// record's signed effect to the indexes of the account(s) it touches. A
// self-referencing record contributes one increase and one decrease to
// the same account, netting to zero.
func (s *Snapshot) buildIndex() {
	deltas := make(map[uuid.UUID][]decimal.Decimal, len(s.accounts))

	add := func(id uuid.UUID, date time.Time, delta decimal.Decimal) {
		idx, ok := s.index[id]
		if !ok {
			idx = &accountIndex{}
			s.index[id] = idx
		}
		idx.dates = append(idx.dates, date)
		deltas[id] = append(deltas[id], delta)
	}

	for _, r := range s.records {
		if credit, ok := s.byID[r.CreditAccountID]; ok {
			add(credit.ID, r.Date, sidedDelta(credit.Kind, model.Credit, r.Amount))
		}
		if debit, ok := s.byID[r.DebitAccountID]; ok {
			add(debit.ID, r.Date, sidedDelta(debit.Kind, model.Debit, r.Amount))
		}
	}

	for id, idx := range s.index {
		idx.prefix = make([]decimal.Decimal, len(idx.dates)+1)
		idx.prefix[0] = decimal.Zero
		for i, d := range deltas[id] {
			idx.prefix[i+1] = idx.prefix[i].Add(d)
		}
	}
}

// sidedDelta returns the signed effect of booking amount on the given
// side of an account of the given kind: positive when the side matches
// the kind's normal balance, negative otherwise.
func sidedDelta(kind model.Kind, side model.BalanceType, amount decimal.Decimal) decimal.Decimal {
	if kind.NormalBalance() == side {
		return amount
	}
	return amount.Neg()
}

// Accounts returns the snapshot's accounts in their original order.
func (s *Snapshot) Accounts() []model.Account {
	return s.accounts
}

// Records returns all records sorted by date ascending.
func (s *Snapshot) Records() []model.Record {
	return s.records
}

// Account returns the account with the given id, if present.
func (s *Snapshot) Account(id uuid.UUID) (model.Account, bool) {
	a, ok := s.byID[id]
	return a, ok
}

// AccountsOfKind returns all accounts of the given kind.
func (s *Snapshot) AccountsOfKind(kind model.Kind) []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if a.Kind == kind {
			result = append(result, a)
		}
	}
	return result
}

// CreditAccount resolves the credit-side account of a record. It fails
// with UnknownAccountError when the id is absent from the snapshot,
// which only happens if the store's referential integrity was violated.
func (s *Snapshot) CreditAccount(r model.Record) (model.Account, error) {
	a, ok := s.byID[r.CreditAccountID]
	if !ok {
		return model.Account{}, UnknownAccountError{ID: r.CreditAccountID}
	}
	return a, nil
}

// DebitAccount resolves the debit-side account of a record.
func (s *Snapshot) DebitAccount(r model.Record) (model.Account, error) {
	a, ok := s.byID[r.DebitAccountID]
	if !ok {
		return model.Account{}, UnknownAccountError{ID: r.DebitAccountID}
	}
	return a, nil
}

// CreditRecords returns all records where the account is the credit side,
// in date-ascending order.
func (s *Snapshot) CreditRecords(a model.Account) []model.Record {
	var result []model.Record
	for _, r := range s.records {
		if r.CreditAccountID == a.ID {
			result = append(result, r)
		}
	}
	return result
}

// DebitRecords returns all records where the account is the debit side,
// in date-ascending order.
func (s *Snapshot) DebitRecords(a model.Account) []model.Record {
	var result []model.Record
	for _, r := range s.records {
		if r.DebitAccountID == a.ID {
			result = append(result, r)
		}
	}
	return result
}

// RecordsOf returns the account's credit-side records sorted by date
// descending. The lookup is deliberately credit-side only, reproducing
// the listing the asset account pages show (the money-out view); use
// CreditRecords/DebitRecords for an explicit side, and RecordCount for
// a both-sides count.
func (s *Snapshot) RecordsOf(a model.Account) []model.Record {
	result := s.CreditRecords(a)
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return result
}

// RecordsOfIn returns RecordsOf filtered to dates within [from, to],
// inclusive of both bounds.
func (s *Snapshot) RecordsOfIn(a model.Account, from, to time.Time) []model.Record {
	var result []model.Record
	for _, r := range s.RecordsOf(a) {
		if !r.Date.Before(from) && !r.Date.After(to) {
			result = append(result, r)
		}
	}
	return result
}

// RecordCount counts records referencing the account on either side.
func (s *Snapshot) RecordCount(a model.Account) int {
	n := 0
	for _, r := range s.records {
		if r.Touches(a.ID) {
			n++
		}
	}
	return n
}

// AvailableDateRange returns [earliest record date, now], or the
// degenerate [now, now] when the snapshot holds no records.
func (s *Snapshot) AvailableDateRange() (from, to time.Time) {
	now := s.now()
	if len(s.records) == 0 {
		return now, now
	}
	return s.records[0].Date, now
}

// FirstDate returns the earliest record date, or now when there are no
// records.
func (s *Snapshot) FirstDate() time.Time {
	from, _ := s.AvailableDateRange()
	return from
}
