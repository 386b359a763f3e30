// Package aggregate derives the per-month, per-day and per-category views
// the dashboard renders. Every function is pure: the same batch always yields
// the same output and nothing is carried between calls.
package aggregate

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/gigdash/internal/transaction"
)

// MonthlyIncomeExpense holds the income and expense totals of one calendar month.
// Both totals are non-negative.
type MonthlyIncomeExpense struct {
	Month   time.Time
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Net returns income minus expense.
func (m MonthlyIncomeExpense) Net() decimal.Decimal {
	return m.Income.Sub(m.Expense)
}

// Monthly groups transactions by calendar month, sorted ascending.
// A month only appears when it holds at least one classified transaction.
func Monthly(txs []transaction.Transaction) []MonthlyIncomeExpense {
	buckets := make(map[time.Time]*MonthlyIncomeExpense)

	for _, tx := range txs {
		flow := tx.Flow()
		if flow != transaction.FlowIncome && flow != transaction.FlowExpense {
			continue
		}

		key := tx.MonthStart()

		b, ok := buckets[key]
		if !ok {
			b = &MonthlyIncomeExpense{Month: key, Income: decimal.Zero, Expense: decimal.Zero}
			buckets[key] = b
		}

		if flow == transaction.FlowIncome {
			b.Income = b.Income.Add(tx.Magnitude())
		} else {
			b.Expense = b.Expense.Add(tx.Magnitude())
		}
	}

	out := make([]MonthlyIncomeExpense, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Month.Before(out[j].Month)
	})

	return out
}
