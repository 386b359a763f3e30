package budget

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/gigdash/internal/aggregate"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=budget
type Repository interface {
	Load(ctx context.Context) (Limits, error)
	Save(ctx context.Context, limits Limits) error
}

// Service owns the in-memory limit mapping and writes it through to the
// repository on every change.
type Service struct {
	repo    Repository
	tracked []string

	mu     sync.RWMutex
	limits Limits
}

func NewService(repo Repository, tracked []string) *Service {
	return &Service{
		repo:    repo,
		tracked: tracked,
		limits:  Limits{},
	}
}

// Init reads the stored limits once. A missing or unreadable store leaves
// the service with no limits set; negative entries are skipped.
func (s *Service) Init(ctx context.Context) {
	limits, err := s.repo.Load(ctx)
	if err != nil {
		slog.WarnContext(ctx, "failed to load budget limits, starting empty", "error", err)

		limits = Limits{}
	}

	if limits == nil {
		limits = Limits{}
	}

	for category, limit := range limits {
		if limit.IsNegative() {
			slog.WarnContext(ctx, "ignoring negative budget limit", "category", category, "limit", limit.String())
			delete(limits, category)
		}
	}

	s.mu.Lock()
	s.limits = limits
	s.mu.Unlock()
}

// Tracked returns the categories the budget tracker evaluates.
func (s *Service) Tracked() []string {
	return append([]string(nil), s.tracked...)
}

// Limits returns a copy of the current mapping.
func (s *Service) Limits() Limits {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return maps.Clone(s.limits)
}

// SetLimit validates raw, persists the updated mapping and only then makes it
// current. On any error the previous limit is kept.
func (s *Service) SetLimit(ctx context.Context, category, raw string) (decimal.Decimal, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return decimal.Zero, ErrInvalidCategory
	}

	limit, err := ParseLimit(raw)
	if err != nil {
		return decimal.Zero, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.limits.With(category, limit)
	if err := s.repo.Save(ctx, next); err != nil {
		return decimal.Zero, fmt.Errorf("save limits: %w", err)
	}

	s.limits = next

	slog.InfoContext(ctx, "budget limit set", "category", category, "limit", limit.String())

	return limit, nil
}

// ClearLimit unsets the limit of category.
func (s *Service) ClearLimit(ctx context.Context, category string) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return ErrInvalidCategory
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.limits[category]; !ok {
		return nil
	}

	next := s.limits.Without(category)
	if err := s.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("save limits: %w", err)
	}

	s.limits = next

	return nil
}

// Evaluate runs the evaluator against the current limits.
func (s *Service) Evaluate(expense []aggregate.CategoryTotal) []Status {
	return Evaluate(expense, s.Limits(), s.tracked)
}
