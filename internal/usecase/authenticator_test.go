package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/goatm/internal/domain"
	"github.com/iho/goatm/internal/usecase"
	"github.com/iho/goatm/internal/usecase/mocks"
)

type authFixture struct {
	auth     *usecase.Authenticator
	accounts *mocks.MockAccountRepository
	audit    *mocks.MockAuditSink
	now      *time.Time
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	accounts := mocks.NewMockAccountRepository()
	audit := mocks.NewMockAuditSink()

	pinHash, err := usecase.HashPIN("8830")
	require.NoError(t, err)

	require.NoError(t, accounts.Create(context.Background(), &domain.Account{
		ID:      "ATA",
		PINHash: pinHash,
		Balance: decimal.NewFromInt(100000),
	}))

	fx := &authFixture{accounts: accounts, audit: audit, now: &now}

	sessions := usecase.NewSessionManager(mocks.NewMockTokenCodec(), usecase.SessionConfig{
		TTL: time.Hour,
		Now: func() time.Time { return *fx.now },
	})

	fx.auth = usecase.NewAuthenticator(usecase.AuthenticatorConfig{
		MaxAttempts:   3,
		LockoutWindow: 5 * time.Minute,
		Now:           func() time.Time { return *fx.now },
	}, accounts, sessions, audit)

	return fx
}

func (fx *authFixture) advance(d time.Duration) {
	*fx.now = fx.now.Add(d)
}

func TestAuthenticator_Success(t *testing.T) {
	fx := newAuthFixture(t)

	session, err := fx.auth.Authenticate(context.Background(), "ata", "8830")
	require.NoError(t, err)
	assert.Equal(t, "ATA", session.AccountID)
	assert.NotEmpty(t, session.Token)
}

func TestAuthenticator_WrongPIN(t *testing.T) {
	fx := newAuthFixture(t)

	_, err := fx.auth.Authenticate(context.Background(), "ATA", "0000")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIncorrectPIN)
}

func TestAuthenticator_UnknownAccount(t *testing.T) {
	fx := newAuthFixture(t)

	_, err := fx.auth.Authenticate(context.Background(), "NOBODY", "1234")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	// Unknown identifiers never accrue lockout state: later attempts for a
	// real account are unaffected.
	_, err = fx.auth.Authenticate(context.Background(), "ATA", "8830")
	assert.NoError(t, err)
}

func TestAuthenticator_LockoutAfterThreeFailures(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := fx.auth.Authenticate(ctx, "ATA", "0000")
		assert.ErrorIs(t, err, domain.ErrIncorrectPIN)
	}

	// Fourth attempt rejected immediately, even with the correct PIN.
	_, err := fx.auth.Authenticate(ctx, "ATA", "8830")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAccountLocked)

	var locked *domain.LockedError
	require.True(t, errors.As(err, &locked))
	assert.Equal(t, 5*time.Minute, locked.Remaining)
}

func TestAuthenticator_LockoutExpires(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _ = fx.auth.Authenticate(ctx, "ATA", "0000")
	}

	fx.advance(4 * time.Minute)
	_, err := fx.auth.Authenticate(ctx, "ATA", "8830")
	assert.ErrorIs(t, err, domain.ErrAccountLocked)

	// After the full window the attempt proceeds and the correct PIN
	// succeeds, resetting the counter.
	fx.advance(2 * time.Minute)
	session, err := fx.auth.Authenticate(ctx, "ATA", "8830")
	require.NoError(t, err)
	assert.Equal(t, "ATA", session.AccountID)

	// Counter was reset: a single failure does not lock again.
	_, err = fx.auth.Authenticate(ctx, "ATA", "0000")
	assert.ErrorIs(t, err, domain.ErrIncorrectPIN)
	_, err = fx.auth.Authenticate(ctx, "ATA", "8830")
	assert.NoError(t, err)
}

func TestAuthenticator_SuccessResetsFailCount(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	_, _ = fx.auth.Authenticate(ctx, "ATA", "0000")
	_, _ = fx.auth.Authenticate(ctx, "ATA", "0000")

	_, err := fx.auth.Authenticate(ctx, "ATA", "8830")
	require.NoError(t, err)

	// Two more failures stay below the threshold after the reset.
	_, _ = fx.auth.Authenticate(ctx, "ATA", "0000")
	_, _ = fx.auth.Authenticate(ctx, "ATA", "0000")

	_, err = fx.auth.Authenticate(ctx, "ATA", "8830")
	assert.NoError(t, err)
}

func TestAuthenticator_AuditTrail(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	_, _ = fx.auth.Authenticate(ctx, "ATA", "0000")
	_, _ = fx.auth.Authenticate(ctx, "ATA", "8830")

	events := fx.audit.Events()
	require.Len(t, events, 2)
	assert.Equal(t, domain.AuditActionLoginFailed, events[0].Action)
	assert.Equal(t, domain.AuditActionLogin, events[1].Action)
}
