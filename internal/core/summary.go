package core

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// FinancialSummary aggregates a transaction snapshot.
type FinancialSummary struct {
	TotalIncome  float64
	TotalExpense float64
	Balance      float64
}

// Summarize totals a snapshot. Sums are accumulated as decimals so a long
// run of small amounts does not drift.
func Summarize(txs []Transaction) FinancialSummary {
	income := decimal.Zero
	expense := decimal.Zero
	for _, t := range txs {
		amount := decimal.NewFromFloat(t.Amount)
		switch t.Type {
		case Inflow:
			income = income.Add(amount)
		case Outflow:
			expense = expense.Add(amount)
		}
	}
	in, _ := income.Float64()
	out, _ := expense.Float64()
	balance, _ := income.Sub(expense).Float64()
	return FinancialSummary{TotalIncome: in, TotalExpense: out, Balance: balance}
}

// SpentByCategory sums outflow amounts per category, for budget progress.
func SpentByCategory(txs []Transaction) map[string]float64 {
	sums := make(map[string]decimal.Decimal)
	for _, t := range txs {
		if t.Type != Outflow {
			continue
		}
		sums[t.Category] = sums[t.Category].Add(decimal.NewFromFloat(t.Amount))
	}
	out := make(map[string]float64, len(sums))
	for category, sum := range sums {
		out[category], _ = sum.Float64()
	}
	return out
}

// FilterByDateRange keeps transactions within [start, end]. A zero start or
// end leaves that side unbounded. End is inclusive through the whole day.
func FilterByDateRange(txs []Transaction, start, end time.Time) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if !start.IsZero() && t.Date.Before(start) {
			continue
		}
		if !end.IsZero() && t.Date.After(end.Add(24*time.Hour-time.Nanosecond)) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// SortNewestFirst orders transactions by date descending, in place.
func SortNewestFirst(txs []Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.After(txs[j].Date)
	})
}
