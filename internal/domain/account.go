package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a teller account holding a balance and a PIN credential.
// PINHash is a one-way bcrypt hash; the raw PIN is never stored or logged.
type Account struct {
	ID        string
	PINHash   string
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeAccountID canonicalizes an account identifier. Identifiers are
// case-insensitive and surrounding whitespace is ignored.
func NormalizeAccountID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// ValidateDebit checks if the account can be debited by amount. Balances are
// never allowed to go negative.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if amount.GreaterThan(a.Balance) {
		return ErrInsufficientFunds
	}
	return nil
}

// ApplyDebit returns the balance after a debit.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}

// ApplyCredit returns the balance after a credit.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}
