package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/goatm/internal/domain"
	"github.com/iho/goatm/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc        func(ctx context.Context, account *domain.Account) error
	GetByIDFunc       func(ctx context.Context, id string) (*domain.Account, error)
	UpdateBalanceFunc func(ctx context.Context, id string, balance decimal.Decimal, updatedAt time.Time) error
	UpdatePINHashFunc func(ctx context.Context, id string, pinHash string, updatedAt time.Time) error
	ListFunc          func(ctx context.Context) ([]*domain.Account, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	id := domain.NormalizeAccountID(account.ID)
	if _, ok := m.accounts[id]; ok {
		return domain.ErrAccountExists
	}
	stored := *account
	stored.ID = id
	m.accounts[id] = &stored
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[domain.NormalizeAccountID(id)]; ok {
		copied := *acc
		return &copied, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[domain.NormalizeAccountID(id)]
	if !ok {
		return domain.ErrAccountNotFound
	}
	acc.Balance = balance
	acc.UpdatedAt = updatedAt
	return nil
}

func (m *MockAccountRepository) UpdatePINHash(ctx context.Context, id string, pinHash string, updatedAt time.Time) error {
	if m.UpdatePINHashFunc != nil {
		return m.UpdatePINHashFunc(ctx, id, pinHash, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[domain.NormalizeAccountID(id)]
	if !ok {
		return domain.ErrAccountNotFound
	}
	acc.PINHash = pinHash
	acc.UpdatedAt = updatedAt
	return nil
}

func (m *MockAccountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		copied := *acc
		accounts = append(accounts, &copied)
	}
	return accounts, nil
}

// MockLedgerRepository is a mock implementation of LedgerRepository.
type MockLedgerRepository struct {
	mu      sync.RWMutex
	records map[string][]*domain.Transaction

	AppendFunc        func(ctx context.Context, accountID string, record *domain.Transaction) error
	ListByAccountFunc func(ctx context.Context, accountID string) ([]*domain.Transaction, error)
}

func NewMockLedgerRepository() *MockLedgerRepository {
	return &MockLedgerRepository{records: make(map[string][]*domain.Transaction)}
}

func (m *MockLedgerRepository) Append(ctx context.Context, accountID string, record *domain.Transaction) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, accountID, record)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	id := domain.NormalizeAccountID(accountID)
	stored := *record
	m.records[id] = append(m.records[id], &stored)
	return nil
}

func (m *MockLedgerRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.Transaction, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	records := m.records[domain.NormalizeAccountID(accountID)]
	out := make([]*domain.Transaction, len(records))
	copy(out, records)
	return out, nil
}

// MockLimitRepository is a mock implementation of LimitRepository.
type MockLimitRepository struct {
	mu     sync.RWMutex
	totals map[string]decimal.Decimal

	AddFunc   func(ctx context.Context, accountID string, kind domain.Kind, day string, amount decimal.Decimal) error
	TotalFunc func(ctx context.Context, accountID string, kind domain.Kind, day string) (decimal.Decimal, error)
}

func NewMockLimitRepository() *MockLimitRepository {
	return &MockLimitRepository{totals: make(map[string]decimal.Decimal)}
}

func limitKey(accountID string, kind domain.Kind, day string) string {
	return fmt.Sprintf("%s|%s|%s", domain.NormalizeAccountID(accountID), kind, day)
}

func (m *MockLimitRepository) Add(ctx context.Context, accountID string, kind domain.Kind, day string, amount decimal.Decimal) error {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, accountID, kind, day, amount)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := limitKey(accountID, kind, day)
	m.totals[key] = m.totals[key].Add(amount)
	return nil
}

func (m *MockLimitRepository) Total(ctx context.Context, accountID string, kind domain.Kind, day string) (decimal.Decimal, error) {
	if m.TotalFunc != nil {
		return m.TotalFunc(ctx, accountID, kind, day)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totals[limitKey(accountID, kind, day)], nil
}

// MockSessionResolver is a mock implementation of SessionResolver.
type MockSessionResolver struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session

	ResolveFunc func(token string) (*domain.Session, error)
	EndFunc     func(token string)
}

func NewMockSessionResolver() *MockSessionResolver {
	return &MockSessionResolver{sessions: make(map[string]*domain.Session)}
}

// Add registers a session under its token.
func (m *MockSessionResolver) Add(session *domain.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.Token] = session
}

func (m *MockSessionResolver) Resolve(token string) (*domain.Session, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(token)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[token]; ok {
		return s, nil
	}
	return nil, domain.ErrNoActiveSession
}

func (m *MockSessionResolver) End(token string) {
	if m.EndFunc != nil {
		m.EndFunc(token)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}

// MockTokenCodec is a mock implementation of TokenCodec.
type MockTokenCodec struct {
	counter int
	mu      sync.Mutex

	IssueFunc  func(accountID string, issuedAt, expiresAt time.Time) (string, error)
	VerifyFunc func(token string) (string, error)
}

func NewMockTokenCodec() *MockTokenCodec {
	return &MockTokenCodec{}
}

func (m *MockTokenCodec) Issue(accountID string, issuedAt, expiresAt time.Time) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(accountID, issuedAt, expiresAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("token-%s-%d", accountID, m.counter), nil
}

func (m *MockTokenCodec) Verify(token string) (string, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(token)
	}
	return "", nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("txn-%06d", m.counter)
}

// MockAuditSink records audit events in memory.
type MockAuditSink struct {
	mu     sync.Mutex
	events []domain.AuditEvent

	RecordFunc func(event domain.AuditEvent)
}

func NewMockAuditSink() *MockAuditSink {
	return &MockAuditSink{}
}

func (m *MockAuditSink) Record(event domain.AuditEvent) {
	if m.RecordFunc != nil {
		m.RecordFunc(event)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

// Events returns a snapshot of recorded events.
func (m *MockAuditSink) Events() []domain.AuditEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.AuditEvent, len(m.events))
	copy(out, m.events)
	return out
}

var _ usecase.AccountRepository = (*MockAccountRepository)(nil)
var _ usecase.LedgerRepository = (*MockLedgerRepository)(nil)
var _ usecase.LimitRepository = (*MockLimitRepository)(nil)
var _ usecase.SessionResolver = (*MockSessionResolver)(nil)
var _ usecase.TokenCodec = (*MockTokenCodec)(nil)
var _ usecase.IDGenerator = (*MockIDGenerator)(nil)
var _ usecase.AuditSink = (*MockAuditSink)(nil)
