package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

//go:generate mockgen -source=service.go -destination=source_mock.go -package=transaction
type Source interface {
	Fetch(ctx context.Context, params FetchParams) ([]Record, error)
}

// FetchParams selects the linked items and date window to retrieve.
type FetchParams struct {
	ItemIDs   []string
	StartDate time.Time
	EndDate   time.Time
}

type Service struct {
	source Source
}

func NewService(source Source) *Service {
	return &Service{source: source}
}

// Load fetches one batch from the source and normalizes it. A failed fetch
// yields no transactions at all.
func (s *Service) Load(ctx context.Context, params FetchParams) ([]Transaction, error) {
	records, err := s.source.Fetch(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("fetch transactions: %w", err)
	}

	txs, dropped := NormalizeReport(records)
	if dropped > 0 {
		slog.WarnContext(ctx, "dropped malformed transactions", "dropped", dropped, "kept", len(txs))
	}

	return txs, nil
}
