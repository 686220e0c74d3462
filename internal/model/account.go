package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind classifies an account into one of the five fundamental
// accounting categories. Fixed at creation; reclassification is
// unsupported.
type Kind string

const (
	KindAsset     Kind = "asset"
	KindLiability Kind = "liability"
	KindRevenue   Kind = "revenue"
	KindExpense   Kind = "expense"
	KindEquity    Kind = "equity"
)

// Kinds lists all account kinds in display order.
var Kinds = []Kind{KindAsset, KindLiability, KindEquity, KindRevenue, KindExpense}

// BalanceType says which side of a double entry an account's balance
// conventionally grows on.
type BalanceType string

const (
	Debit  BalanceType = "debit"
	Credit BalanceType = "credit"
)

// Statement groups kinds by the financial statement they appear on.
type Statement string

const (
	BalanceSheet    Statement = "balance-sheet"
	IncomeStatement Statement = "income-statement"
)

// KindAttributes is the canonical per-kind attribute table. Polarity and
// display hints live here and nowhere else; call sites must consult this
// table instead of switching on Kind themselves.
type KindAttributes struct {
	Normal    BalanceType
	Statement Statement
	// ChartSign is the multiplier applied when charting kind totals
	// alongside other kinds (liabilities plot negated).
	ChartSign int
}

var kindAttributes = map[Kind]KindAttributes{
	KindAsset:     {Normal: Debit, Statement: BalanceSheet, ChartSign: +1},
	KindLiability: {Normal: Credit, Statement: BalanceSheet, ChartSign: -1},
	KindEquity:    {Normal: Credit, Statement: BalanceSheet, ChartSign: -1},
	KindRevenue:   {Normal: Credit, Statement: IncomeStatement, ChartSign: +1},
	KindExpense:   {Normal: Debit, Statement: IncomeStatement, ChartSign: +1},
}

// Attributes returns the attribute row for k. The zero KindAttributes is
// returned for an unknown kind.
func (k Kind) Attributes() KindAttributes {
	return kindAttributes[k]
}

// NormalBalance returns debit for asset and expense accounts, credit for
// liability, equity and revenue accounts.
func (k Kind) NormalBalance() BalanceType {
	return kindAttributes[k].Normal
}

// Valid reports whether k is one of the five account kinds.
func (k Kind) Valid() bool {
	_, ok := kindAttributes[k]
	return ok
}

// Account is one account in the ledger. InitialValue is the balance at
// the dawn of time, before any record referencing the account.
type Account struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Kind         Kind            `json:"kind"`
	InitialValue decimal.Decimal `json:"initialValue"`
}

// NewAccount creates an Account with a fresh ID.
func NewAccount(name string, kind Kind, initialValue decimal.Decimal) Account {
	return Account{
		ID:           uuid.New(),
		Name:         name,
		Kind:         kind,
		InitialValue: initialValue,
	}
}

// Equal reports identity equality: accounts are equal iff their IDs match.
func (a Account) Equal(b Account) bool {
	return a.ID == b.ID
}
