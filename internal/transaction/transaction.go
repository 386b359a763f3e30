package transaction

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Flow is the direction a transaction is counted in by the aggregators.
type Flow string

const (
	FlowNone     Flow = "none"
	FlowIncome   Flow = "income"
	FlowExpense  Flow = "expense"
	FlowTransfer Flow = "transfer"
)

// Uncategorized labels transactions that carry no category.
const Uncategorized = "Uncategorized"

// Labels that together mark a credit-card payment, which moves money between
// the user's own accounts and is neither income nor expense.
const (
	labelPayment    = "Payment"
	labelCreditCard = "Credit Card"
)

// Transaction is a normalized record from the aggregator.
// Positive amounts leave the account, negative amounts enter it.
type Transaction struct {
	ID        string
	Date      time.Time // UTC midnight
	Amount    decimal.Decimal
	Category  []string // most general first
	Pending   bool
	Name      string
	AccountID string
}

// PrimaryCategory returns the first category label, or Uncategorized.
func (t Transaction) PrimaryCategory() string {
	if len(t.Category) == 0 {
		return Uncategorized
	}

	primary := strings.TrimSpace(t.Category[0])
	if primary == "" {
		return Uncategorized
	}

	return primary
}

// IsTransfer reports whether the transaction is a credit-card payment.
func (t Transaction) IsTransfer() bool {
	return slices.Contains(t.Category, labelPayment) && slices.Contains(t.Category, labelCreditCard)
}

// Flow classifies the transaction. Every aggregator goes through here.
func (t Transaction) Flow() Flow {
	if t.IsTransfer() {
		return FlowTransfer
	}

	switch t.Amount.Sign() {
	case -1:
		return FlowIncome
	case 1:
		return FlowExpense
	}

	return FlowNone
}

// Magnitude returns the absolute amount.
func (t Transaction) Magnitude() decimal.Decimal {
	return t.Amount.Abs()
}

// DayKey returns the calendar day as YYYY-MM-DD.
func (t Transaction) DayKey() string {
	return t.Date.Format(time.DateOnly)
}

// MonthStart returns the first day of the transaction's month.
func (t Transaction) MonthStart() time.Time {
	return time.Date(t.Date.Year(), t.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
}
