package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/gigdash/internal/aggregate"
	"github.com/MrJamesThe3rd/gigdash/internal/budget"
	"github.com/MrJamesThe3rd/gigdash/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=notifier_mock.go -package=dashboard
type Notifier interface {
	BudgetExceeded(ctx context.Context, batchID uuid.UUID, status budget.Status) error
}

type Service struct {
	transactions *transaction.Service
	budgets      *budget.Service
	notifier     Notifier
	now          func() time.Time
}

// NewService wires the pipeline. notifier may be nil.
func NewService(transactions *transaction.Service, budgets *budget.Service, notifier Notifier) *Service {
	return &Service{
		transactions: transactions,
		budgets:      budgets,
		notifier:     notifier,
		now:          time.Now,
	}
}

// Build recomputes the dashboard for one batch. A failed alert is logged and
// does not fail the build.
func (s *Service) Build(ctx context.Context, txs []transaction.Transaction) Dashboard {
	expense := aggregate.CategoryTotals(txs, transaction.FlowExpense)

	d := Dashboard{
		BatchID:           uuid.New(),
		GeneratedAt:       s.now().UTC(),
		Transactions:      len(txs),
		Monthly:           aggregate.Monthly(txs),
		IncomeCategories:  aggregate.CategoryTotals(txs, transaction.FlowIncome),
		ExpenseCategories: expense,
		Daily:             aggregate.Daily(txs),
		Budgets:           s.budgets.Evaluate(expense),
	}

	if s.notifier == nil {
		return d
	}

	for _, status := range d.OverBudget() {
		if err := s.notifier.BudgetExceeded(ctx, d.BatchID, status); err != nil {
			slog.ErrorContext(ctx, "failed to send budget alert", "category", status.Category, "error", err)
		}
	}

	return d
}

// Load fetches a batch from the source and builds its dashboard.
func (s *Service) Load(ctx context.Context, params transaction.FetchParams) (Dashboard, error) {
	txs, err := s.transactions.Load(ctx, params)
	if err != nil {
		return Dashboard{}, fmt.Errorf("load transactions: %w", err)
	}

	return s.Build(ctx, txs), nil
}
