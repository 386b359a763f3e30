package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/gigdash/internal/budget"
	"github.com/MrJamesThe3rd/gigdash/internal/database"
)

// Store keeps budget limits in the budget_limits table.
type Store struct {
	db      *sql.DB
	dialect database.Dialect
}

func New(db *sql.DB, dialect database.Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

func (s *Store) Load(ctx context.Context) (budget.Limits, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT category, amount FROM budget_limits`)
	if err != nil {
		return nil, fmt.Errorf("loading limits: %w", err)
	}
	defer rows.Close()

	limits := budget.Limits{}

	for rows.Next() {
		var category, amount string
		if err := rows.Scan(&category, &amount); err != nil {
			return nil, fmt.Errorf("scanning limit: %w", err)
		}

		limit, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parsing limit for %q: %w", category, err)
		}

		limits[category] = limit
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating limit rows: %w", err)
	}

	return limits, nil
}

// Save replaces the stored mapping with limits in a single transaction.
func (s *Store) Save(ctx context.Context, limits budget.Limits) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM budget_limits`); err != nil {
		return fmt.Errorf("clearing limits: %w", err)
	}

	query := fmt.Sprintf(
		`INSERT INTO budget_limits (category, amount, updated_at) VALUES (%s, %s, CURRENT_TIMESTAMP)`,
		s.dialect.Placeholder(1), s.dialect.Placeholder(2),
	)

	for category, limit := range limits {
		if _, err := dbTx.ExecContext(ctx, query, category, limit.String()); err != nil {
			return fmt.Errorf("inserting limit for %q: %w", category, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}
