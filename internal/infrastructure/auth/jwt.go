package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iho/goatm/internal/domain"
)

// Claims represents the session token claims.
type Claims struct {
	AccountID string `json:"account_id"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies session tokens. Tokens are only honored
// while the session registry also knows them, so a restart or logout
// invalidates a token before its expiry.
type TokenManager struct {
	secretKey []byte
}

// NewTokenManager creates a new TokenManager.
func NewTokenManager(secretKey string) *TokenManager {
	return &TokenManager{secretKey: []byte(secretKey)}
}

// Issue signs a token bound to the account.
func (m *TokenManager) Issue(accountID string, issuedAt, expiresAt time.Time) (string, error) {
	claims := Claims{
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// Verify checks the token signature and expiry and returns the account ID.
func (m *TokenManager) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secretKey, nil
		},
	)

	if err != nil {
		return "", domain.ErrNoActiveSession
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", domain.ErrNoActiveSession
	}

	return claims.AccountID, nil
}
