package usecase

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPIN hashes a PIN using bcrypt. Surrounding whitespace is ignored so
// that a PIN typed with a stray space still matches.
func HashPIN(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(pin)), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// verifyPIN compares a stored hash against a raw PIN.
func verifyPIN(pinHash, pin string) error {
	return bcrypt.CompareHashAndPassword([]byte(pinHash), []byte(strings.TrimSpace(pin)))
}
