package middleware

import (
	"context"
	"net/http"
	"strings"
)

// ContextKey is the type for context keys
type ContextKey string

// TokenContextKey is the context key for the raw session token.
const TokenContextKey ContextKey = "session_token"

// SessionToken extracts the Bearer token and stores it in the request
// context. Requests without one are rejected here; the engine still
// re-validates the token on every operation, so a forged or stale token
// fails with the security-class error downstream.
func SessionToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "missing authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "invalid authorization header format", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), TokenContextKey, parts[1])
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TokenFromContext extracts the session token from context.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(TokenContextKey).(string)
	return token
}
