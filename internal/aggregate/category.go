package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/gigdash/internal/transaction"
)

// CategoryTotal is the summed absolute amount of one primary category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// CategoryTotals sums transactions of the given flow by primary category,
// sorted by descending total and then by name. Only FlowIncome and
// FlowExpense select anything.
func CategoryTotals(txs []transaction.Transaction, flow transaction.Flow) []CategoryTotal {
	if flow != transaction.FlowIncome && flow != transaction.FlowExpense {
		return []CategoryTotal{}
	}

	totals := make(map[string]decimal.Decimal)

	for _, tx := range txs {
		if tx.Flow() != flow {
			continue
		}

		category := tx.PrimaryCategory()
		totals[category] = totals[category].Add(tx.Magnitude())
	}

	out := make([]CategoryTotal, 0, len(totals))
	for category, total := range totals {
		out = append(out, CategoryTotal{Category: category, Total: total})
	}

	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}

		return out[i].Category < out[j].Category
	})

	return out
}

// Spending maps each category of an expense breakdown to its total.
func Spending(totals []CategoryTotal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(totals))
	for _, t := range totals {
		out[t.Category] = t.Total
	}

	return out
}
