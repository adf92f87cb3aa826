package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/goatm/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	UpdateBalance(ctx context.Context, id string, balance decimal.Decimal, updatedAt time.Time) error
	UpdatePINHash(ctx context.Context, id string, pinHash string, updatedAt time.Time) error
	List(ctx context.Context) ([]*domain.Account, error)
}

// LedgerRepository defines the append-only per-account transaction history.
type LedgerRepository interface {
	Append(ctx context.Context, accountID string, record *domain.Transaction) error
	ListByAccount(ctx context.Context, accountID string) ([]*domain.Transaction, error)
}

// LimitRepository tracks per-account, per-kind running totals for a calendar
// day. An absent (account, kind, day) entry means zero.
type LimitRepository interface {
	Add(ctx context.Context, accountID string, kind domain.Kind, day string, amount decimal.Decimal) error
	Total(ctx context.Context, accountID string, kind domain.Kind, day string) (decimal.Decimal, error)
}

// SessionResolver resolves session tokens to active sessions.
type SessionResolver interface {
	Resolve(token string) (*domain.Session, error)
	End(token string)
}

// TokenCodec issues and verifies session tokens.
type TokenCodec interface {
	Issue(accountID string, issuedAt, expiresAt time.Time) (string, error)
	Verify(token string) (accountID string, err error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// AuditSink receives audit events. Record is fire-and-forget: it must never
// block the caller or return an error into the engine.
type AuditSink interface {
	Record(event domain.AuditEvent)
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
