package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// Validation errors
	ErrInvalidAmount  = errors.New("amount must be a positive decimal")
	ErrNotDenominated = errors.New("amount must be a multiple of the withdrawal unit")
	ErrInvalidRate    = errors.New("interest rate must be a positive decimal")

	// Business rule errors
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrDailyLimitExceeded = errors.New("daily limit exceeded")
	ErrAccountNotFound    = errors.New("account not found")
	ErrSelfTransfer       = errors.New("cannot transfer to your own account")
	ErrAccountExists      = errors.New("account already exists")

	// Authentication errors
	ErrIncorrectPIN  = errors.New("incorrect PIN")
	ErrAccountLocked = errors.New("account locked")

	// ErrNoActiveSession indicates an operation was attempted without a valid
	// session. This is a broken session-management invariant in the caller,
	// not a recoverable business outcome.
	ErrNoActiveSession = errors.New("no active session")
)

// LockedError reports an authentication attempt during the lockout cooldown,
// carrying the remaining wait time.
type LockedError struct {
	Remaining time.Duration
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("account locked, try again in %s", e.Remaining.Round(time.Second))
}

// Unwrap makes errors.Is(err, ErrAccountLocked) work.
func (e *LockedError) Unwrap() error {
	return ErrAccountLocked
}
