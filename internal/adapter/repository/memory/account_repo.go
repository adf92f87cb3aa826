package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/goatm/internal/domain"
)

// AccountRepository is an in-memory account store. Accounts are provisioned
// at startup and never deleted during a run.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{accounts: make(map[string]*domain.Account)}
}

// Create adds an account. The ID is normalized before storage.
func (r *AccountRepository) Create(_ context.Context, account *domain.Account) error {
	id := domain.NormalizeAccountID(account.ID)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[id]; ok {
		return domain.ErrAccountExists
	}

	stored := *account
	stored.ID = id
	r.accounts[id] = &stored
	return nil
}

// GetByID returns a copy of the account so callers cannot mutate the store.
func (r *AccountRepository) GetByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[domain.NormalizeAccountID(id)]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	copied := *account
	return &copied, nil
}

// UpdateBalance sets the account's balance.
func (r *AccountRepository) UpdateBalance(_ context.Context, id string, balance decimal.Decimal, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[domain.NormalizeAccountID(id)]
	if !ok {
		return domain.ErrAccountNotFound
	}

	account.Balance = balance
	account.UpdatedAt = updatedAt
	return nil
}

// UpdatePINHash replaces the stored credential hash.
func (r *AccountRepository) UpdatePINHash(_ context.Context, id string, pinHash string, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[domain.NormalizeAccountID(id)]
	if !ok {
		return domain.ErrAccountNotFound
	}

	account.PINHash = pinHash
	account.UpdatedAt = updatedAt
	return nil
}

// List returns copies of all accounts ordered by ID.
func (r *AccountRepository) List(_ context.Context) ([]*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	accounts := make([]*domain.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		copied := *account
		accounts = append(accounts, &copied)
	}

	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}
