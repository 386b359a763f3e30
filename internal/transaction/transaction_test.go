package transaction_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/gigdash/internal/transaction"
)

func TestTransaction_Flow(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		category []string
		want     transaction.Flow
	}{
		{name: "PositiveIsExpense", amount: "50", category: []string{"Food and Drink"}, want: transaction.FlowExpense},
		{name: "NegativeIsIncome", amount: "-2000", category: []string{"Payroll"}, want: transaction.FlowIncome},
		{name: "ZeroIsNone", amount: "0", category: []string{"Shops"}, want: transaction.FlowNone},
		{name: "CardPaymentPositive", amount: "100", category: []string{"Payment", "Credit Card"}, want: transaction.FlowTransfer},
		{name: "CardPaymentNegative", amount: "-100", category: []string{"Credit Card", "Payment"}, want: transaction.FlowTransfer},
		{name: "PaymentAlone", amount: "100", category: []string{"Payment"}, want: transaction.FlowExpense},
		{name: "CreditCardAlone", amount: "-100", category: []string{"Transfer", "Credit Card"}, want: transaction.FlowIncome},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := transaction.Transaction{
				Amount:   decimal.RequireFromString(tt.amount),
				Category: tt.category,
			}

			assert.Equal(t, tt.want, tx.Flow())
		})
	}
}

func TestTransaction_PrimaryCategory(t *testing.T) {
	assert.Equal(t, "Food and Drink", transaction.Transaction{Category: []string{"Food and Drink", "Restaurants"}}.PrimaryCategory())
	assert.Equal(t, transaction.Uncategorized, transaction.Transaction{}.PrimaryCategory())
	assert.Equal(t, transaction.Uncategorized, transaction.Transaction{Category: []string{"  "}}.PrimaryCategory())
}
