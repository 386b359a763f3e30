package amqp_test

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/gigdash/internal/amqp"
	"github.com/MrJamesThe3rd/gigdash/internal/budget"
)

func TestBudgetExceededMessage(t *testing.T) {
	batchID := uuid.New()
	status := budget.Status{
		Category:   "Food and Drink",
		Spent:      decimal.RequireFromString("50"),
		Limit:      decimal.NewNullDecimal(decimal.RequireFromString("40")),
		OverBudget: true,
	}

	msg := amqp.NewBudgetExceededMessage(batchID, status)
	assert.NotEqual(t, uuid.Nil, msg.ID)
	assert.Equal(t, batchID, msg.BatchID)

	body, err := msg.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(body), `"category":"Food and Drink"`)
	assert.Contains(t, string(body), `"spent":"50"`)

	var got amqp.BudgetExceededMessage
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, msg.ID, got.ID)
	assert.Equal(t, "Food and Drink", got.Category)
	assert.True(t, msg.Limit.Equal(got.Limit))
	assert.True(t, msg.Timestamp.Equal(got.Timestamp))
}
