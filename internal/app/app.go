// Package app wires configuration into the services every binary shares.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/gigdash/internal/aggregator"
	"github.com/MrJamesThe3rd/gigdash/internal/amqp"
	"github.com/MrJamesThe3rd/gigdash/internal/auth"
	"github.com/MrJamesThe3rd/gigdash/internal/budget"
	budgetStore "github.com/MrJamesThe3rd/gigdash/internal/budget/store"
	"github.com/MrJamesThe3rd/gigdash/internal/config"
	"github.com/MrJamesThe3rd/gigdash/internal/dashboard"
	"github.com/MrJamesThe3rd/gigdash/internal/database"
	"github.com/MrJamesThe3rd/gigdash/internal/importer"
	"github.com/MrJamesThe3rd/gigdash/internal/transaction"
)

type Services struct {
	Budgets      *budget.Service
	Transactions *transaction.Service
	Dashboards   *dashboard.Service
	Importer     *importer.Service
	// Verifier is nil when no JWT secret is configured.
	Verifier   *auth.Verifier
	IncomeGoal decimal.Decimal

	closers []func() error
}

// New opens the configured budget store and builds the services. Budget
// alerts are only published when alerts is true and an AMQP URL is set.
func New(ctx context.Context, cfg *config.Config, alerts bool) (*Services, error) {
	s := &Services{Importer: importer.NewService()}

	repo, err := s.openRepository(cfg)
	if err != nil {
		return nil, err
	}

	goal, err := decimal.NewFromString(cfg.Budget.IncomeGoal)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("parse income goal: %w", err)
	}

	s.IncomeGoal = goal

	s.Budgets = budget.NewService(repo, cfg.Budget.Tracked)
	s.Budgets.Init(ctx)

	s.Transactions = transaction.NewService(aggregator.New(aggregator.Config{
		BaseURL:         cfg.Aggregator.URL,
		Token:           cfg.Aggregator.Token,
		MinTransactions: cfg.Aggregator.MinTransactions,
		MaxTransactions: cfg.Aggregator.MaxTransactions,
		Timeout:         cfg.Aggregator.Timeout,
	}))

	var notifier dashboard.Notifier

	if alerts && cfg.AMQP.URL != "" {
		publisher, err := amqp.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.Queue)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("connect to broker: %w", err)
		}

		s.closers = append(s.closers, publisher.Close)
		notifier = publisher
	}

	s.Dashboards = dashboard.NewService(s.Transactions, s.Budgets, notifier)

	if cfg.Auth.JWTSecret != "" {
		s.Verifier = auth.NewVerifier(auth.Config{
			Secret:   cfg.Auth.JWTSecret,
			Issuer:   cfg.Auth.Issuer,
			Audience: cfg.Auth.Audience,
			TTL:      cfg.Auth.TokenTTL,
		})
	}

	return s, nil
}

func (s *Services) openRepository(cfg *config.Config) (budget.Repository, error) {
	var (
		db  *sql.DB
		err error
	)

	switch cfg.Store.Driver {
	case config.StoreFile:
		slog.Debug("using file budget store", "path", cfg.Store.FilePath)
		return budgetStore.NewFile(cfg.Store.FilePath), nil
	case config.StoreSQLite:
		db, err = database.New(database.SQLite, cfg.Store.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}

		s.closers = append(s.closers, db.Close)

		return budgetStore.New(db, database.SQLite), nil
	case config.StorePostgres:
		db, err = database.New(database.Postgres, cfg.ConnectionString())
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}

		s.closers = append(s.closers, db.Close)

		return budgetStore.New(db, database.Postgres), nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

// Close releases the store and broker connections in reverse order.
func (s *Services) Close() error {
	var errs []error

	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}

	s.closers = nil

	return errors.Join(errs...)
}
