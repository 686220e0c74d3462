// Package demo generates a year of plausible personal-ledger data for
// trying tallybook out before entering real accounts.
package demo

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook-dev/tallybook/internal/model"
)

// Dataset is a complete demo ledger.
type Dataset struct {
	Accounts []model.Account
	Records  []model.Record
}

// Generate builds the demo dataset covering the year ending at now.
func Generate(now time.Time) Dataset {
	start := now.AddDate(-1, 0, 0)

	checking := model.NewAccount("Checking", model.KindAsset, dec(200))
	cash := model.NewAccount("Cash", model.KindAsset, dec(20))
	studentCard := model.NewAccount("Student Card", model.KindAsset, dec(50))
	savings := model.NewAccount("Savings", model.KindAsset, dec(5000))
	investment := model.NewAccount("Investment", model.KindAsset, dec(20000))

	creditCard := model.NewAccount("Credit Card", model.KindLiability, dec(0))
	loan := model.NewAccount("Loan", model.KindLiability, dec(0))
	mortgage := model.NewAccount("Mortgage", model.KindLiability, dec(50000))

	food := model.NewAccount("Food", model.KindExpense, dec(0))
	transportation := model.NewAccount("Transportation", model.KindExpense, dec(0))
	shopping := model.NewAccount("Shopping", model.KindExpense, dec(0))
	groceries := model.NewAccount("Groceries", model.KindExpense, dec(0))
	houseRent := model.NewAccount("House Rent", model.KindExpense, dec(0))
	health := model.NewAccount("Health", model.KindExpense, dec(0))

	salary := model.NewAccount("Salary", model.KindRevenue, dec(0))
	investmentIncome := model.NewAccount("Investment Income", model.KindRevenue, dec(0))
	appSales := model.NewAccount("App Sales", model.KindRevenue, dec(0))

	d := Dataset{
		Accounts: []model.Account{
			checking, cash, studentCard, savings, investment,
			creditCard, loan, mortgage,
			food, transportation, shopping, groceries, houseRent, health,
			salary, investmentIncome, appSales,
		},
	}

	daily := []struct {
		name   string
		tag    model.Tag
		debit  model.Account
		credit model.Account
		amount decimal.Decimal
		hour   int
	}{
		{"Breakfast", model.TagFood, food, cash, dec(3), 8},
		{"Lunch", model.TagFood, food, studentCard, dec(6), 12},
		{"Dinner", model.TagFood, food, creditCard, dec(9), 18},
		{"Transportation", model.TagTransportation, transportation, cash, dec(5), 8},
		{"Coffee", model.TagFood, food, cash, dec(4), 9},
	}
	for _, g := range daily {
		d.Records = append(d.Records, dailyRecords(g.name, g.tag, g.debit, g.credit, g.amount, start, now, g.hour)...)
	}

	monthly := []struct {
		name   string
		tag    model.Tag
		debit  model.Account
		credit model.Account
		amount decimal.Decimal
		day    int
	}{
		{"House Rent", model.TagHousing, houseRent, checking, dec(1000), 1},
		{"Salary", model.TagIncome, checking, salary, dec(5000), 15},
		{"Groceries", model.TagUtilities, groceries, checking, dec(300), 10},
		{"Investment", model.TagInvestment, investment, checking, dec(1000), 20},
		{"Cash Withdrawal", model.TagIncome, cash, checking, dec(400), 5},
		{"Student Card Recharge", model.TagEducation, studentCard, checking, dec(200), 10},
		{"Monthly Shopping", model.TagShopping, shopping, creditCard, dec(50), 10},
		{"App Sales Revenue", model.TagIncome, checking, appSales, dec(500), 25},
		{"Credit Card Repayment", model.TagInvestment, creditCard, checking, dec(50), 15},
		{"Mortgage Repayment", model.TagInvestment, mortgage, checking, dec(2000), 15},
	}
	for _, g := range monthly {
		d.Records = append(d.Records, monthlyRecords(g.name, g.tag, g.debit, g.credit, g.amount, start, now, g.day)...)
	}

	// One-offs.
	d.Records = append(d.Records,
		model.NewRecord("Buy iPhone", dec(799), creditCard, shopping, now, model.TagShopping),
		model.NewRecord("Investment Income", dec(30000), investmentIncome, investment, now.AddDate(0, 0, -7), model.TagIncome),
		model.NewRecord("Health Insurance Premium", dec(200), checking, health, now.AddDate(0, 0, -24), model.TagHealth),
	)

	return d
}

func dailyRecords(name string, tag model.Tag, debit, credit model.Account, amount decimal.Decimal, start, end time.Time, hour int) []model.Record {
	var records []model.Record
	for day := startOfDay(start); !day.After(end); day = day.AddDate(0, 0, 1) {
		at := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
		if at.Before(start) || at.After(end) {
			continue
		}
		records = append(records, model.NewRecord(name, amount, credit, debit, at, tag))
	}
	return records
}

func monthlyRecords(name string, tag model.Tag, debit, credit model.Account, amount decimal.Decimal, start, end time.Time, dayOfMonth int) []model.Record {
	var records []model.Record
	cur := time.Date(start.Year(), start.Month(), dayOfMonth, 12, 0, 0, 0, start.Location())
	for ; !cur.After(end); cur = cur.AddDate(0, 1, 0) {
		if cur.Before(start) {
			continue
		}
		records = append(records, model.NewRecord(name, amount, credit, debit, cur, tag))
	}
	return records
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}
