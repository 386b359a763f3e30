// Package dashboard turns a batch of transactions into every view the
// dashboard renders. Nothing is cached between batches.
package dashboard

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/gigdash/internal/aggregate"
	"github.com/MrJamesThe3rd/gigdash/internal/budget"
)

type Dashboard struct {
	BatchID           uuid.UUID
	GeneratedAt       time.Time
	Transactions      int
	Monthly           []aggregate.MonthlyIncomeExpense
	IncomeCategories  []aggregate.CategoryTotal
	ExpenseCategories []aggregate.CategoryTotal
	Daily             map[string]aggregate.DailyActivity
	Budgets           []budget.Status
}

// OverBudget returns the statuses whose spend exceeds a positive limit.
func (d Dashboard) OverBudget() []budget.Status {
	var out []budget.Status

	for _, s := range d.Budgets {
		if s.OverBudget {
			out = append(out, s)
		}
	}

	return out
}
