package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iho/goatm/internal/domain"
)

// AuthenticatorConfig holds lockout policy. The attempt and cooldown
// constants are configuration, not hard-coded policy.
type AuthenticatorConfig struct {
	// MaxAttempts is the number of consecutive failures before lockout.
	MaxAttempts int
	// LockoutWindow is the cooldown after MaxAttempts failures.
	LockoutWindow time.Duration
	// Now returns the current time; defaults to time.Now().UTC.
	Now func() time.Time
}

type attemptState struct {
	count       int
	lastFailure time.Time
}

// Authenticator verifies credentials and enforces failed-attempt lockout.
type Authenticator struct {
	cfg      AuthenticatorConfig
	accounts AccountRepository
	sessions *SessionManager
	audit    AuditSink

	mu       sync.Mutex
	attempts map[string]*attemptState
}

// NewAuthenticator creates a new Authenticator.
func NewAuthenticator(cfg AuthenticatorConfig, accounts AccountRepository, sessions *SessionManager, audit AuditSink) *Authenticator {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.LockoutWindow == 0 {
		cfg.LockoutWindow = 5 * time.Minute
	}
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return time.Now().UTC() }
	}

	return &Authenticator{
		cfg:      cfg,
		accounts: accounts,
		sessions: sessions,
		audit:    audit,
		attempts: make(map[string]*attemptState),
	}
}

// Authenticate verifies the account's PIN and issues a session on success.
// While an account is locked out, attempts are rejected immediately with the
// remaining cooldown and the credential is not consulted.
func (a *Authenticator) Authenticate(ctx context.Context, accountID, pin string) (*domain.Session, error) {
	accountID = domain.NormalizeAccountID(accountID)
	now := a.cfg.Now()

	if remaining, locked := a.checkLockout(accountID, now); locked {
		a.audit.Record(domain.AuditEvent{
			Time:      now,
			AccountID: accountID,
			Action:    domain.AuditActionLockout,
			Detail:    fmt.Sprintf("rejected during cooldown, %s remaining", remaining.Round(time.Second)),
		})
		return nil, &domain.LockedError{Remaining: remaining}
	}

	account, err := a.accounts.GetByID(ctx, accountID)
	if err != nil {
		// Unknown identifiers do not accrue lockout state, but the attempt
		// is still recorded for the audit trail.
		a.audit.Record(domain.AuditEvent{
			Time:      now,
			AccountID: accountID,
			Action:    domain.AuditActionLoginFailed,
			Detail:    "unknown account",
		})
		return nil, err
	}

	if err := verifyPIN(account.PINHash, pin); err != nil {
		remaining := a.recordFailure(accountID, now)
		a.audit.Record(domain.AuditEvent{
			Time:      now,
			AccountID: accountID,
			Action:    domain.AuditActionLoginFailed,
			Detail:    fmt.Sprintf("%d attempt(s) remaining", remaining),
		})
		return nil, fmt.Errorf("%w: %d attempt(s) remaining before lockout", domain.ErrIncorrectPIN, remaining)
	}

	a.reset(accountID)

	session, err := a.sessions.Start(accountID)
	if err != nil {
		return nil, err
	}

	a.audit.Record(domain.AuditEvent{
		Time:      now,
		AccountID: accountID,
		Action:    domain.AuditActionLogin,
	})

	return session, nil
}

// checkLockout reports whether the account is inside the cooldown window.
// An elapsed window resets the counter so the attempt proceeds normally.
func (a *Authenticator) checkLockout(accountID string, now time.Time) (time.Duration, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	st, ok := a.attempts[accountID]
	if !ok || st.count < a.cfg.MaxAttempts {
		return 0, false
	}

	elapsed := now.Sub(st.lastFailure)
	if elapsed < a.cfg.LockoutWindow {
		return a.cfg.LockoutWindow - elapsed, true
	}

	st.count = 0
	st.lastFailure = now
	return 0, false
}

// recordFailure bumps the failure counter and returns attempts remaining
// before lockout.
func (a *Authenticator) recordFailure(accountID string, now time.Time) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	st, ok := a.attempts[accountID]
	if !ok {
		st = &attemptState{}
		a.attempts[accountID] = st
	}

	st.count++
	st.lastFailure = now

	remaining := a.cfg.MaxAttempts - st.count
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

func (a *Authenticator) reset(accountID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.attempts, accountID)
}
