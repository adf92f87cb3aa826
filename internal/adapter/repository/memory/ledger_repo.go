package memory

import (
	"context"
	"sync"

	"github.com/iho/goatm/internal/domain"
)

// LedgerRepository is an in-memory append-only per-account transaction
// history. Records are never mutated or removed once appended.
type LedgerRepository struct {
	mu      sync.RWMutex
	records map[string][]*domain.Transaction
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{records: make(map[string][]*domain.Transaction)}
}

// Append adds a record to the account's history, preserving insertion order.
func (r *LedgerRepository) Append(_ context.Context, accountID string, record *domain.Transaction) error {
	id := domain.NormalizeAccountID(accountID)

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *record
	r.records[id] = append(r.records[id], &stored)
	return nil
}

// ListByAccount returns the account's records in creation order. An account
// with no activity yields an empty slice.
func (r *LedgerRepository) ListByAccount(_ context.Context, accountID string) ([]*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := r.records[domain.NormalizeAccountID(accountID)]

	out := make([]*domain.Transaction, len(records))
	for i, record := range records {
		copied := *record
		out[i] = &copied
	}
	return out, nil
}
