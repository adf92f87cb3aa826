package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a caller-supplied amount string as an exact decimal.
// Arithmetic on the result never goes through binary floating point.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if d.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// ValidateDenomination checks that amount is a positive multiple of unit.
func ValidateDenomination(amount, unit decimal.Decimal) error {
	if !amount.Mod(unit).IsZero() {
		return fmt.Errorf("%w: %s", ErrNotDenominated, unit.String())
	}
	return nil
}

// ParseRate parses an interest rate string, e.g. "0.01" for 1%.
func ParseRate(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidRate, s)
	}
	if d.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrInvalidRate
	}
	return d, nil
}
