package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook-dev/tallybook/internal/model"
)

// CurrentAmount returns the account's balance over the entire record
// set: initial value plus all increases minus all decreases. An account
// with no records returns its initial value.
func (s *Snapshot) CurrentAmount(a model.Account) decimal.Decimal {
	idx, ok := s.index[a.ID]
	if !ok {
		return a.InitialValue
	}
	return a.InitialValue.Add(idx.prefix[len(idx.dates)])
}

// AmountBefore returns the account's balance as of date d, counting
// records dated at or before d. Records strictly after d are excluded
// entirely.
func (s *Snapshot) AmountBefore(a model.Account, d time.Time) decimal.Decimal {
	idx, ok := s.index[a.ID]
	if !ok {
		return a.InitialValue
	}
	return a.InitialValue.Add(idx.prefix[idx.countThrough(d)])
}

// AmountIn returns the account's pure activity within [from, to],
// inclusive of both bounds and independent of the initial value. An
// inverted range (to before from) yields zero.
func (s *Snapshot) AmountIn(a model.Account, from, to time.Time) decimal.Decimal {
	idx, ok := s.index[a.ID]
	if !ok || to.Before(from) {
		return decimal.Zero
	}
	lo := idx.countBefore(from)
	hi := idx.countThrough(to)
	return idx.prefix[hi].Sub(idx.prefix[lo])
}

// countThrough returns the number of deltas dated at or before d.
func (idx *accountIndex) countThrough(d time.Time) int {
	return sort.Search(len(idx.dates), func(i int) bool {
		return idx.dates[i].After(d)
	})
}

// countBefore returns the number of deltas dated strictly before d.
func (idx *accountIndex) countBefore(d time.Time) int {
	return sort.Search(len(idx.dates), func(i int) bool {
		return !idx.dates[i].Before(d)
	})
}

// IncreaseRecords returns the records that increase the account's
// balance: those where the account sits on its normal-balance side of
// the credit/debit split. Together with DecreaseRecords this is a
// strict partition of the records touching the account (a
// self-referencing record appears in both, once per side).
func (s *Snapshot) IncreaseRecords(a model.Account) []model.Record {
	if a.Kind.NormalBalance() == model.Debit {
		return s.DebitRecords(a)
	}
	return s.CreditRecords(a)
}

// DecreaseRecords returns the records that decrease the account's
// balance, the complement of IncreaseRecords.
func (s *Snapshot) DecreaseRecords(a model.Account) []model.Record {
	if a.Kind.NormalBalance() == model.Debit {
		return s.CreditRecords(a)
	}
	return s.DebitRecords(a)
}

// KindTotalBefore sums AmountBefore over every account of the given
// kind. Zero accounts of the kind yields zero.
func (s *Snapshot) KindTotalBefore(kind model.Kind, d time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, a := range s.accounts {
		if a.Kind == kind {
			total = total.Add(s.AmountBefore(a, d))
		}
	}
	return total
}
