package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybook-dev/tallybook/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func account(name string, kind model.Kind, initial string) model.Account {
	return model.NewAccount(name, kind, dec(initial))
}

func record(name string, amount string, credit, debit model.Account, date time.Time) model.Record {
	return model.NewRecord(name, dec(amount), credit, debit, date, model.TagShopping)
}

func TestCurrentAmountNoRecords(t *testing.T) {
	checking := account("Checking", model.KindAsset, "200")
	snap := NewSnapshot([]model.Account{checking}, nil)

	assert.True(t, snap.CurrentAmount(checking).Equal(dec("200")),
		"an account with no records keeps its initial value")
}

func TestCurrentAmountAssetAndExpense(t *testing.T) {
	// 50 credited from Checking, debited to Food: the asset shrinks and
	// the expense grows.
	checking := account("Checking", model.KindAsset, "200")
	food := account("Food", model.KindExpense, "0")
	r := record("Groceries", "50", checking, food, day(2025, time.March, 10))

	snap := NewSnapshot([]model.Account{checking, food}, []model.Record{r})

	assert.True(t, snap.CurrentAmount(checking).Equal(dec("150")))
	assert.True(t, snap.CurrentAmount(food).Equal(dec("50")))
}

func TestCurrentAmountLiability(t *testing.T) {
	// A debit to a credit-normal account decreases it; repaying a loan
	// from checking shrinks both sides.
	checking := account("Checking", model.KindAsset, "500")
	loan := account("Loan", model.KindLiability, "0")
	r := record("Repayment", "100", checking, loan, day(2025, time.March, 10))

	snap := NewSnapshot([]model.Account{checking, loan}, []model.Record{r})

	assert.True(t, snap.CurrentAmount(loan).Equal(dec("-100")))
	assert.True(t, snap.CurrentAmount(checking).Equal(dec("400")))
}

func TestCurrentAmountRevenueIncreasesWhenCredited(t *testing.T) {
	checking := account("Checking", model.KindAsset, "0")
	salary := account("Salary", model.KindRevenue, "0")
	r := record("Paycheck", "5000", salary, checking, day(2025, time.January, 15))

	snap := NewSnapshot([]model.Account{checking, salary}, []model.Record{r})

	assert.True(t, snap.CurrentAmount(salary).Equal(dec("5000")))
	assert.True(t, snap.CurrentAmount(checking).Equal(dec("5000")))
}

func TestAmountBefore(t *testing.T) {
	checking := account("Checking", model.KindAsset, "200")
	food := account("Food", model.KindExpense, "0")
	r1 := record("Groceries", "50", checking, food, day(2025, time.March, 10))
	r2 := record("Dinner", "30", checking, food, day(2025, time.March, 20))

	snap := NewSnapshot([]model.Account{checking, food}, []model.Record{r1, r2})

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"before any record", day(2025, time.March, 1), "200"},
		{"boundary is inclusive", day(2025, time.March, 10), "150"},
		{"between records", day(2025, time.March, 15), "150"},
		{"after all records", day(2025, time.March, 31), "120"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := snap.AmountBefore(checking, tt.at)
			assert.True(t, got.Equal(dec(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestAmountInExcludesInitialValue(t *testing.T) {
	checking := account("Checking", model.KindAsset, "200")
	food := account("Food", model.KindExpense, "0")
	r := record("Groceries", "50", checking, food, day(2025, time.March, 10))

	snap := NewSnapshot([]model.Account{checking, food}, []model.Record{r})

	got := snap.AmountIn(checking, day(2025, time.March, 1), day(2025, time.March, 31))
	assert.True(t, got.Equal(dec("-50")), "activity is independent of the opening balance, got %s", got)
}

func TestAmountInInclusiveBounds(t *testing.T) {
	checking := account("Checking", model.KindAsset, "0")
	food := account("Food", model.KindExpense, "0")
	r1 := record("A", "10", checking, food, day(2025, time.March, 10))
	r2 := record("B", "20", checking, food, day(2025, time.March, 20))

	snap := NewSnapshot([]model.Account{checking, food}, []model.Record{r1, r2})

	got := snap.AmountIn(food, day(2025, time.March, 10), day(2025, time.March, 20))
	assert.True(t, got.Equal(dec("30")), "both boundary records count, got %s", got)
}

func TestAmountInInvertedRange(t *testing.T) {
	checking := account("Checking", model.KindAsset, "0")
	food := account("Food", model.KindExpense, "0")
	r := record("A", "10", checking, food, day(2025, time.March, 10))

	snap := NewSnapshot([]model.Account{checking, food}, []model.Record{r})

	got := snap.AmountIn(food, day(2025, time.March, 20), day(2025, time.March, 1))
	assert.True(t, got.IsZero(), "inverted range yields zero, got %s", got)
}

func TestActivityPartition(t *testing.T) {
	// currentAmount == amountBefore(d) + activity after d.
	checking := account("Checking", model.KindAsset, "200")
	food := account("Food", model.KindExpense, "0")
	salary := account("Salary", model.KindRevenue, "0")

	records := []model.Record{
		record("Groceries", "50", checking, food, day(2025, time.January, 5)),
		record("Paycheck", "5000", salary, checking, day(2025, time.January, 15)),
		record("Dinner", "30", checking, food, day(2025, time.February, 2)),
		record("Paycheck", "5000", salary, checking, day(2025, time.February, 15)),
	}
	snap := NewSnapshot([]model.Account{checking, food, salary}, records)

	cut := day(2025, time.January, 31)
	horizon := day(2025, time.December, 31)
	for _, a := range snap.Accounts() {
		before := snap.AmountBefore(a, cut)
		after := snap.AmountIn(a, cut.Add(time.Nanosecond), horizon)
		total := snap.CurrentAmount(a)
		assert.True(t, total.Equal(before.Add(after)),
			"%s: %s != %s + %s", a.Name, total, before, after)
	}
}

func TestRangeAdditivity(t *testing.T) {
	checking := account("Checking", model.KindAsset, "0")
	food := account("Food", model.KindExpense, "0")

	records := []model.Record{
		record("A", "10", checking, food, day(2025, time.March, 5)),
		record("B", "20", checking, food, day(2025, time.March, 15)),
		record("C", "40", checking, food, day(2025, time.March, 25)),
	}
	snap := NewSnapshot([]model.Account{checking, food}, records)

	d0 := day(2025, time.March, 1)
	d1 := day(2025, time.March, 15)
	d2 := day(2025, time.March, 31)

	whole := snap.AmountIn(food, d0, d2)
	first := snap.AmountIn(food, d0, d1)
	second := snap.AmountIn(food, d1.Add(time.Nanosecond), d2)
	assert.True(t, whole.Equal(first.Add(second)),
		"adjacent non-overlapping ranges add up: %s != %s + %s", whole, first, second)
}

func TestIncreaseDecreaseStrictPartition(t *testing.T) {
	checking := account("Checking", model.KindAsset, "0")
	food := account("Food", model.KindExpense, "0")
	loan := account("Loan", model.KindLiability, "0")

	records := []model.Record{
		record("A", "10", checking, food, day(2025, time.March, 5)),
		record("B", "20", loan, checking, day(2025, time.March, 6)),
	}
	snap := NewSnapshot([]model.Account{checking, food, loan}, records)

	for _, a := range snap.Accounts() {
		inc := snap.IncreaseRecords(a)
		dcr := snap.DecreaseRecords(a)
		seen := make(map[string]int)
		for _, r := range inc {
			seen[r.ID.String()]++
		}
		for _, r := range dcr {
			seen[r.ID.String()]++
		}
		for id, n := range seen {
			assert.Equal(t, 1, n, "account %s: record %s classified %d times", a.Name, id, n)
		}
		assert.Equal(t, snap.RecordCount(a), len(inc)+len(dcr), "account %s", a.Name)
	}
}

func TestSelfReferencingRecordNetsToZero(t *testing.T) {
	checking := account("Checking", model.KindAsset, "200")
	r := model.NewRecord("Self", dec("75"), checking, checking, day(2025, time.March, 10), model.TagShopping)

	snap := NewSnapshot([]model.Account{checking}, []model.Record{r})

	assert.True(t, snap.CurrentAmount(checking).Equal(dec("200")),
		"increase and decrease cancel for a self-referencing record")
	assert.Equal(t, 1, snap.RecordCount(checking))
}

func TestLookupAccountsOfRecord(t *testing.T) {
	checking := account("Checking", model.KindAsset, "0")
	food := account("Food", model.KindExpense, "0")
	r := record("Groceries", "50", checking, food, day(2025, time.March, 10))

	snap := NewSnapshot([]model.Account{checking, food}, []model.Record{r})

	credit, err := snap.CreditAccount(r)
	require.NoError(t, err)
	assert.True(t, credit.Equal(checking))

	debit, err := snap.DebitAccount(r)
	require.NoError(t, err)
	assert.True(t, debit.Equal(food))
}

func TestLookupUnknownAccountFails(t *testing.T) {
	checking := account("Checking", model.KindAsset, "0")
	food := account("Food", model.KindExpense, "0")
	r := record("Groceries", "50", checking, food, day(2025, time.March, 10))

	// Snapshot is missing the debit-side account.
	snap := NewSnapshot([]model.Account{checking}, []model.Record{r})

	_, err := snap.DebitAccount(r)
	var unknownErr UnknownAccountError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, food.ID, unknownErr.ID)
}

func TestRecordsOfIsCreditSideDescending(t *testing.T) {
	checking := account("Checking", model.KindAsset, "0")
	food := account("Food", model.KindExpense, "0")
	salary := account("Salary", model.KindRevenue, "0")

	out1 := record("Out early", "10", checking, food, day(2025, time.March, 5))
	out2 := record("Out late", "20", checking, food, day(2025, time.March, 15))
	in := record("In", "30", salary, checking, day(2025, time.March, 10))

	snap := NewSnapshot([]model.Account{checking, food, salary}, []model.Record{out1, in, out2})

	got := snap.RecordsOf(checking)
	require.Len(t, got, 2, "credit side only; the debit-side record is not listed")
	assert.Equal(t, "Out late", got[0].Name, "newest first")
	assert.Equal(t, "Out early", got[1].Name)

	assert.Equal(t, 3, snap.RecordCount(checking), "count spans both sides")
}

func TestRecordsOfIn(t *testing.T) {
	checking := account("Checking", model.KindAsset, "0")
	food := account("Food", model.KindExpense, "0")

	r1 := record("A", "10", checking, food, day(2025, time.March, 5))
	r2 := record("B", "20", checking, food, day(2025, time.March, 15))
	r3 := record("C", "30", checking, food, day(2025, time.March, 25))

	snap := NewSnapshot([]model.Account{checking, food}, []model.Record{r1, r2, r3})

	got := snap.RecordsOfIn(checking, day(2025, time.March, 10), day(2025, time.March, 20))
	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].Name)
}

func TestAvailableDateRange(t *testing.T) {
	now := day(2025, time.June, 1)
	checking := account("Checking", model.KindAsset, "0")
	food := account("Food", model.KindExpense, "0")

	t.Run("empty", func(t *testing.T) {
		snap := NewSnapshot([]model.Account{checking}, nil)
		snap.now = func() time.Time { return now }
		from, to := snap.AvailableDateRange()
		assert.Equal(t, now, from, "degenerate single-instant range")
		assert.Equal(t, now, to)
	})

	t.Run("with records", func(t *testing.T) {
		r1 := record("A", "10", checking, food, day(2025, time.March, 5))
		r2 := record("B", "20", checking, food, day(2025, time.January, 15))
		snap := NewSnapshot([]model.Account{checking, food}, []model.Record{r1, r2})
		snap.now = func() time.Time { return now }
		from, to := snap.AvailableDateRange()
		assert.Equal(t, day(2025, time.January, 15), from)
		assert.Equal(t, now, to)
		assert.Equal(t, from, snap.FirstDate())
	})
}

func TestKindTotalBefore(t *testing.T) {
	checking := account("Checking", model.KindAsset, "200")
	cash := account("Cash", model.KindAsset, "50")
	food := account("Food", model.KindExpense, "0")
	r := record("Groceries", "30", cash, food, day(2025, time.March, 10))

	snap := NewSnapshot([]model.Account{checking, cash, food}, []model.Record{r})

	got := snap.KindTotalBefore(model.KindAsset, day(2025, time.March, 31))
	assert.True(t, got.Equal(dec("220")), "200 + (50-30), got %s", got)

	assert.True(t, snap.KindTotalBefore(model.KindEquity, day(2025, time.March, 31)).IsZero(),
		"no accounts of the kind yields zero")
}

func TestSnapshotIgnoresCallerSliceMutation(t *testing.T) {
	checking := account("Checking", model.KindAsset, "200")
	food := account("Food", model.KindExpense, "0")
	records := []model.Record{record("Groceries", "50", checking, food, day(2025, time.March, 10))}

	snap := NewSnapshot([]model.Account{checking, food}, records)
	records[0].Amount = dec("9999")

	assert.True(t, snap.CurrentAmount(checking).Equal(dec("150")),
		"the snapshot copies its inputs; later caller mutation never shows through")
}
