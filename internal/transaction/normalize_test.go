package transaction_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/gigdash/internal/transaction"
)

func TestNormalize_Fields(t *testing.T) {
	records := []transaction.Record{
		{
			"transaction_id": "tx-1",
			"account_id":     "acc-9",
			"date":           "2024-03-01",
			"name":           "Uber Eats",
			"amount":         json.Number("50.25"),
			"category":       []any{"Food and Drink", "Restaurants"},
			"pending":        true,
		},
	}

	got := transaction.Normalize(records)
	require.Len(t, got, 1)

	tx := got[0]
	assert.Equal(t, "tx-1", tx.ID)
	assert.Equal(t, "acc-9", tx.AccountID)
	assert.Equal(t, "Uber Eats", tx.Name)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), tx.Date)
	assert.True(t, decimal.RequireFromString("50.25").Equal(tx.Amount))
	assert.Equal(t, []string{"Food and Drink", "Restaurants"}, tx.Category)
	assert.True(t, tx.Pending)
}

func TestNormalize_Defaults(t *testing.T) {
	got := transaction.Normalize([]transaction.Record{
		{"id": "x", "date": "2024-03-01", "amount": 10},
	})
	require.Len(t, got, 1)

	assert.Empty(t, got[0].Category)
	assert.NotNil(t, got[0].Category)
	assert.False(t, got[0].Pending)
	assert.Equal(t, transaction.Uncategorized, got[0].PrimaryCategory())
}

func TestNormalize_DateFormats(t *testing.T) {
	want := time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date any
	}{
		{name: "DateOnly", date: "2024-05-17"},
		{name: "RFC3339", date: "2024-05-17T22:10:00-04:00"},
		{name: "Time", date: time.Date(2024, 5, 17, 8, 30, 0, 0, time.FixedZone("X", 3600))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := transaction.Normalize([]transaction.Record{
				{"id": "x", "date": tt.date, "amount": "1"},
			})
			require.Len(t, got, 1)
			assert.Equal(t, want, got[0].Date)
		})
	}
}

func TestNormalize_DropsInvalidKeepsOrder(t *testing.T) {
	records := []transaction.Record{
		{"id": "1", "date": "2024-01-01", "amount": 1.0},
		{"id": "", "date": "2024-01-01", "amount": 1.0},
		{"id": "3", "date": "01/02/2024", "amount": 1.0},
		{"id": "4", "date": "2024-01-04", "amount": "abc"},
		{"id": "5", "date": "2024-01-05", "amount": nil},
		{"id": "6", "amount": 1.0},
		{"id": "7", "date": "2024-01-07", "amount": "-2.50"},
		{"id": "8", "date": "2024-01-08", "amount": 3},
	}

	got, dropped := transaction.NormalizeReport(records)

	ids := make([]string, len(got))
	for i, tx := range got {
		ids[i] = tx.ID
	}

	assert.Equal(t, []string{"1", "7", "8"}, ids)
	assert.Equal(t, 5, dropped)
}

func TestNormalize_NumericIDs(t *testing.T) {
	records := []transaction.Record{
		{"id": float64(17), "date": "2024-03-01", "amount": 5.0},
		{"id": 42, "date": "2024-03-01", "amount": 5.0},
		{"id": uint32(7), "date": "2024-03-01", "amount": 5.0},
		{"id": 1.5, "date": "2024-03-01", "amount": 5.0},
	}

	got, dropped := transaction.NormalizeReport(records)
	require.Len(t, got, 4)
	assert.Zero(t, dropped)

	ids := make([]string, len(got))
	for i, tx := range got {
		ids[i] = tx.ID
	}

	assert.Equal(t, []string{"17", "42", "7", "1.5"}, ids)
}

func TestNormalize_IntegerKindAmounts(t *testing.T) {
	tests := []struct {
		name   string
		amount any
		want   string
	}{
		{name: "int32", amount: int32(5), want: "5"},
		{name: "int16", amount: int16(-12), want: "-12"},
		{name: "int8", amount: int8(3), want: "3"},
		{name: "uint", amount: uint(40), want: "40"},
		{name: "uint64", amount: uint64(18446744073709551615), want: "18446744073709551615"},
		{name: "uint8", amount: uint8(9), want: "9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, dropped := transaction.NormalizeReport([]transaction.Record{
				{"id": "a", "date": "2024-03-01", "amount": tt.amount},
			})
			require.Len(t, got, 1)
			assert.Zero(t, dropped)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got[0].Amount), "got %s", got[0].Amount)
		})
	}
}

func TestNormalize_MixedLooseTypes(t *testing.T) {
	got, dropped := transaction.NormalizeReport([]transaction.Record{
		{"id": float64(17), "date": "2024-03-01", "amount": 5.0},
		{"id": "a", "date": "2024-03-01", "amount": "5"},
		{"id": "b", "date": "2024-03-01", "amount": int32(5)},
	})

	assert.Len(t, got, 3)
	assert.Zero(t, dropped)
}

func TestNormalize_Empty(t *testing.T) {
	assert.Empty(t, transaction.Normalize(nil))
	assert.Empty(t, transaction.Normalize([]transaction.Record{}))
}
