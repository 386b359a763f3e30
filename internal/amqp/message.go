package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/gigdash/internal/budget"
)

// BudgetExceededMessage is published once per over-budget category per batch.
type BudgetExceededMessage struct {
	ID        uuid.UUID       `json:"id"`
	BatchID   uuid.UUID       `json:"batch_id"`
	Category  string          `json:"category"`
	Spent     decimal.Decimal `json:"spent"`
	Limit     decimal.Decimal `json:"limit"`
	Timestamp time.Time       `json:"timestamp"`
}

func NewBudgetExceededMessage(batchID uuid.UUID, status budget.Status) *BudgetExceededMessage {
	return &BudgetExceededMessage{
		ID:        uuid.New(),
		BatchID:   batchID,
		Category:  status.Category,
		Spent:     status.Spent,
		Limit:     status.Limit.Decimal,
		Timestamp: time.Now().UTC(),
	}
}

func (m *BudgetExceededMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}
