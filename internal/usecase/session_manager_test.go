package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/goatm/internal/domain"
	"github.com/iho/goatm/internal/usecase"
	"github.com/iho/goatm/internal/usecase/mocks"
)

func newSessionManager(t *testing.T, now *time.Time, ttl time.Duration) *usecase.SessionManager {
	t.Helper()
	return usecase.NewSessionManager(mocks.NewMockTokenCodec(), usecase.SessionConfig{
		TTL: ttl,
		Now: func() time.Time { return *now },
	})
}

func TestSessionManager_StartAndResolve(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	manager := newSessionManager(t, &now, 15*time.Minute)

	session, err := manager.Start("ATA")
	require.NoError(t, err)
	assert.Equal(t, "ATA", session.AccountID)
	assert.Equal(t, now, session.IssuedAt)
	assert.Equal(t, now.Add(15*time.Minute), session.ExpiresAt)
	assert.Equal(t, 1, manager.ActiveCount())

	resolved, err := manager.Resolve(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.AccountID, resolved.AccountID)
}

func TestSessionManager_ResolveRejects(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	manager := newSessionManager(t, &now, 15*time.Minute)

	_, err := manager.Resolve("")
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)

	_, err = manager.Resolve("never-issued")
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)
}

func TestSessionManager_Expiry(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	manager := newSessionManager(t, &now, 15*time.Minute)

	session, err := manager.Start("ATA")
	require.NoError(t, err)

	now = now.Add(14 * time.Minute)
	_, err = manager.Resolve(session.Token)
	assert.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = manager.Resolve(session.Token)
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)

	// Expired sessions are evicted from the registry on resolve.
	assert.Equal(t, 0, manager.ActiveCount())
}

func TestSessionManager_End(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	manager := newSessionManager(t, &now, 15*time.Minute)

	session, err := manager.Start("ATA")
	require.NoError(t, err)

	manager.End(session.Token)
	_, err = manager.Resolve(session.Token)
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)

	// Idempotent.
	manager.End(session.Token)
	assert.Equal(t, 0, manager.ActiveCount())
}

func TestSessionManager_IndependentSessions(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	manager := newSessionManager(t, &now, 15*time.Minute)

	first, err := manager.Start("ATA")
	require.NoError(t, err)
	second, err := manager.Start("AISYAH")
	require.NoError(t, err)
	require.NotEqual(t, first.Token, second.Token)

	manager.End(first.Token)

	_, err = manager.Resolve(first.Token)
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)
	_, err = manager.Resolve(second.Token)
	assert.NoError(t, err)
}
