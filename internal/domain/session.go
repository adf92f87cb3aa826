package domain

import "time"

// Session binds one authenticated account to subsequent operation calls.
// Sessions are issued by the authenticator, passed explicitly to every
// engine operation, and do not survive a restart.
type Session struct {
	Token     string
	AccountID string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session has passed its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
