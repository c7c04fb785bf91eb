package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/olbb/expense-console-backend/internal/adapters/cardfeed"
	"github.com/olbb/expense-console-backend/internal/infrastructure/store"
)

// SyncService refreshes the transaction ledger from a card feed.
type SyncService struct {
	repo     store.TransactionRepository
	provider cardfeed.Provider
	logger   *slog.Logger
}

// NewSyncService creates a sync service over the given feed.
func NewSyncService(repo store.TransactionRepository, provider cardfeed.Provider, logger *slog.Logger) *SyncService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SyncService{
		repo:     repo,
		provider: provider,
		logger:   logger,
	}
}

// Refresh pulls the feed and upserts every transaction. Entries already
// reconciled keep their match state. Returns the number of transactions
// seen.
func (s *SyncService) Refresh(ctx context.Context) (int, error) {
	txs, err := s.provider.Fetch(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch card feed %s: %w", s.provider.Name(), err)
	}

	for _, tx := range txs {
		s.repo.UpsertTransaction(tx)
	}

	s.logger.Info("card feed refreshed", "provider", s.provider.Name(), "transactions", len(txs))
	return len(txs), nil
}
