package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/gigdash/internal/budget"
	"github.com/MrJamesThe3rd/gigdash/internal/budget/store"
	"github.com/MrJamesThe3rd/gigdash/internal/database"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestStore_SQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()

	db, err := database.New(database.SQLite, filepath.Join(t.TempDir(), "gigdash.db"))
	require.NoError(t, err)
	defer db.Close()

	s := store.New(db, database.SQLite)

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, s.Save(ctx, budget.Limits{"Shops": d("120.50"), "Service": d("0")}))
	require.NoError(t, s.Save(ctx, budget.Limits{"Shops": d("80"), "Food and Drink": d("40")}))

	got, err = s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, d("80").Equal(got["Shops"]))
	assert.True(t, d("40").Equal(got["Food and Drink"]))

	_, ok := got["Service"]
	assert.False(t, ok, "save replaces the whole mapping")
}

func TestFile_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "limits.json")

	f := store.NewFile(path)

	got, err := f.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, f.Save(ctx, budget.Limits{"Shops": d("12.5"), "Service": d("0")}))

	got, err = f.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, d("12.5").Equal(got["Shops"]))
	assert.True(t, got["Service"].IsZero())
}

func TestFile_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "limits.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Shops": "lots"`), 0o600))

	_, err := store.NewFile(path).Load(context.Background())
	assert.Error(t, err)
}

func TestFile_AcceptsNumbers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "limits.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Food and Drink": 40, "Shops": "15.75"}`), 0o600))

	got, err := store.NewFile(path).Load(context.Background())
	require.NoError(t, err)
	assert.True(t, d("40").Equal(got["Food and Drink"]))
	assert.True(t, d("15.75").Equal(got["Shops"]))
}

func TestFile_NegativeLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "limits.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Shops": -40, "Food and Drink": 25}`), 0o600))

	svc := budget.NewService(store.NewFile(path), []string{"Food and Drink", "Shops"})
	svc.Init(context.Background())

	got := svc.Limits()
	require.Len(t, got, 1)
	assert.NotContains(t, got, "Shops")
	assert.True(t, d("25").Equal(got["Food and Drink"]))

	statuses := svc.Evaluate(nil)
	for _, s := range statuses {
		if s.Category == "Shops" {
			assert.False(t, s.Limit.Valid)
		}
	}
}
