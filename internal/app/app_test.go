package app_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/gigdash/internal/app"
	"github.com/MrJamesThe3rd/gigdash/internal/config"
)

func loadConfig(t *testing.T, env map[string]string) *config.Config {
	t.Helper()

	for k, v := range env {
		t.Setenv(k, v)
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	return cfg
}

func TestNew_PersistsAcrossRestarts(t *testing.T) {
	dir := t.TempDir()

	for _, driver := range []string{config.StoreFile, config.StoreSQLite} {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			cfg := loadConfig(t, map[string]string{
				"STORE_DRIVER": driver,
				"SQLITE_PATH":  filepath.Join(dir, "gigdash.db"),
				"BUDGET_FILE":  filepath.Join(dir, "limits.json"),
				"AMQP_URL":     "amqp://unreachable",
			})

			first, err := app.New(ctx, cfg, false)
			require.NoError(t, err)

			_, err = first.Budgets.SetLimit(ctx, "Shops", "25")
			require.NoError(t, err)
			require.NoError(t, first.Close())

			second, err := app.New(ctx, cfg, false)
			require.NoError(t, err)
			defer second.Close()

			assert.Equal(t, "25", second.Budgets.Limits()["Shops"].String())
			assert.Nil(t, second.Verifier)
			assert.Equal(t, "6000", second.IncomeGoal.String())
		})
	}
}

func TestNew_Verifier(t *testing.T) {
	cfg := loadConfig(t, map[string]string{
		"STORE_DRIVER": config.StoreFile,
		"BUDGET_FILE":  filepath.Join(t.TempDir(), "limits.json"),
		"JWT_SECRET":   "s3cret",
	})

	s, err := app.New(context.Background(), cfg, false)
	require.NoError(t, err)
	defer s.Close()

	require.NotNil(t, s.Verifier)

	token, err := s.Verifier.Issue("user-1", "")
	require.NoError(t, err)

	_, err = s.Verifier.Verify(token)
	assert.NoError(t, err)
}

func TestNew_BadGoal(t *testing.T) {
	cfg := loadConfig(t, map[string]string{
		"STORE_DRIVER": config.StoreFile,
		"BUDGET_FILE":  filepath.Join(t.TempDir(), "limits.json"),
		"INCOME_GOAL":  "a lot",
	})

	_, err := app.New(context.Background(), cfg, false)
	assert.Error(t, err)
}
