package usecase

import (
	"sync"
	"time"

	"github.com/iho/goatm/internal/domain"
)

// SessionConfig holds session manager configuration.
type SessionConfig struct {
	// TTL is how long an issued session stays valid.
	TTL time.Duration
	// Now returns the current time; defaults to time.Now().UTC.
	Now func() time.Time
}

// SessionManager issues and tracks active sessions. A token is only valid
// while it is present in the in-memory registry, so logout takes effect
// immediately and a restart clears all sessions.
type SessionManager struct {
	codec TokenCodec
	cfg   SessionConfig

	mu     sync.RWMutex
	active map[string]*domain.Session
}

// NewSessionManager creates a new SessionManager.
func NewSessionManager(codec TokenCodec, cfg SessionConfig) *SessionManager {
	if cfg.TTL == 0 {
		cfg.TTL = 15 * time.Minute
	}
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return time.Now().UTC() }
	}

	return &SessionManager{
		codec:  codec,
		cfg:    cfg,
		active: make(map[string]*domain.Session),
	}
}

// Start issues a new session for the given account.
func (m *SessionManager) Start(accountID string) (*domain.Session, error) {
	now := m.cfg.Now()
	expiresAt := now.Add(m.cfg.TTL)

	token, err := m.codec.Issue(accountID, now, expiresAt)
	if err != nil {
		return nil, err
	}

	session := &domain.Session{
		Token:     token,
		AccountID: accountID,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}

	m.mu.Lock()
	m.active[token] = session
	m.mu.Unlock()

	return session, nil
}

// Resolve returns the active session for a token, or ErrNoActiveSession if
// the token is unknown, expired, logged out, or fails verification.
func (m *SessionManager) Resolve(token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrNoActiveSession
	}

	if _, err := m.codec.Verify(token); err != nil {
		return nil, domain.ErrNoActiveSession
	}

	m.mu.RLock()
	session, ok := m.active[token]
	m.mu.RUnlock()

	if !ok {
		return nil, domain.ErrNoActiveSession
	}

	if session.Expired(m.cfg.Now()) {
		m.End(token)
		return nil, domain.ErrNoActiveSession
	}

	return session, nil
}

// End removes a session from the registry. Idempotent.
func (m *SessionManager) End(token string) {
	m.mu.Lock()
	delete(m.active, token)
	m.mu.Unlock()
}

// ActiveCount returns the number of sessions currently registered.
func (m *SessionManager) ActiveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.active)
}
