package memory

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/iho/goatm/internal/domain"
)

type limitKey struct {
	accountID string
	kind      domain.Kind
	day       string
}

// LimitRepository tracks per-account, per-kind daily running totals. Absence
// of a key means zero, which makes day rollover implicit. Prior days' entries
// are retained; correctness does not require pruning.
type LimitRepository struct {
	mu     sync.RWMutex
	totals map[limitKey]decimal.Decimal
}

// NewLimitRepository creates a new LimitRepository.
func NewLimitRepository() *LimitRepository {
	return &LimitRepository{totals: make(map[limitKey]decimal.Decimal)}
}

// Add increments the running total for the given day.
func (r *LimitRepository) Add(_ context.Context, accountID string, kind domain.Kind, day string, amount decimal.Decimal) error {
	key := limitKey{accountID: domain.NormalizeAccountID(accountID), kind: kind, day: day}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.totals[key] = r.totals[key].Add(amount)
	return nil
}

// Total returns the accumulated amount for the given day, zero if none.
func (r *LimitRepository) Total(_ context.Context, accountID string, kind domain.Kind, day string) (decimal.Decimal, error) {
	key := limitKey{accountID: domain.NormalizeAccountID(accountID), kind: kind, day: day}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.totals[key], nil
}
