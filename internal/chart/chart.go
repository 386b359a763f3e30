// Package chart reshapes aggregate output into the series each view consumes.
// It never changes a number; formatting for display lives in format.go.
package chart

import (
	"maps"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/gigdash/internal/aggregate"
)

const monthKeyLayout = "2006-01"

// MonthlyPoint is one group of the income vs. expense bar chart.
type MonthlyPoint struct {
	Key     string          `json:"key"`
	Label   string          `json:"label"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

func MonthlySeries(months []aggregate.MonthlyIncomeExpense) []MonthlyPoint {
	out := make([]MonthlyPoint, len(months))
	for i, m := range months {
		out[i] = MonthlyPoint{
			Key:     m.Month.Format(monthKeyLayout),
			Label:   m.Month.Format("Jan 06"),
			Income:  m.Income,
			Expense: m.Expense,
			Net:     m.Net(),
		}
	}

	return out
}

// CategorySlice is one arc of the category donut.
type CategorySlice struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Share    decimal.Decimal `json:"share"` // fraction of the breakdown, 0..1
}

func CategorySlices(totals []aggregate.CategoryTotal) []CategorySlice {
	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t.Total)
	}

	out := make([]CategorySlice, len(totals))
	for i, t := range totals {
		share := decimal.Zero
		if sum.IsPositive() {
			share = t.Total.Div(sum)
		}

		out[i] = CategorySlice{Category: t.Category, Total: t.Total, Share: share}
	}

	return out
}

// DailyLookup copies the daily mapping so the caller can hold it independently
// of the aggregation result.
func DailyLookup(daily map[string]aggregate.DailyActivity) map[string]aggregate.DailyActivity {
	out := maps.Clone(daily)
	if out == nil {
		out = map[string]aggregate.DailyActivity{}
	}

	return out
}
