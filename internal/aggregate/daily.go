package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/gigdash/internal/transaction"
)

// DailyActivity holds one day's totals. NetAmount is Income - Expense and
// may be negative.
type DailyActivity struct {
	Income    decimal.Decimal
	Expense   decimal.Decimal
	NetAmount decimal.Decimal
}

// Daily groups transactions by calendar day, keyed YYYY-MM-DD.
// Days without classified activity are absent, not zero.
func Daily(txs []transaction.Transaction) map[string]DailyActivity {
	out := make(map[string]DailyActivity)

	for _, tx := range txs {
		flow := tx.Flow()
		if flow != transaction.FlowIncome && flow != transaction.FlowExpense {
			continue
		}

		key := tx.DayKey()

		day, ok := out[key]
		if !ok {
			day = DailyActivity{Income: decimal.Zero, Expense: decimal.Zero}
		}

		if flow == transaction.FlowIncome {
			day.Income = day.Income.Add(tx.Magnitude())
		} else {
			day.Expense = day.Expense.Add(tx.Magnitude())
		}

		day.NetAmount = day.Income.Sub(day.Expense)
		out[key] = day
	}

	return out
}
