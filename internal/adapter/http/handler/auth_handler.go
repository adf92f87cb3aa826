package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/iho/goatm/internal/adapter/http/dto"
	"github.com/iho/goatm/internal/domain"
	"github.com/iho/goatm/internal/infrastructure/metrics"
)

// AuthService defines the behavior needed by AuthHandler.
type AuthService interface {
	Authenticate(ctx context.Context, accountID, pin string) (*domain.Session, error)
}

// AuthHandler handles authentication requests.
type AuthHandler struct {
	auth   AuthService
	logger zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// Login authenticates an account and returns a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.AccountID == "" || req.PIN == "" {
		writeError(w, http.StatusBadRequest, "missing credentials", "account_id and pin are required")
		return
	}

	session, err := h.auth.Authenticate(r.Context(), req.AccountID, req.PIN)
	if err != nil {
		metrics.RecordAuthAttempt(authOutcome(err))
		h.logger.Warn().
			Str("account_id", domain.NormalizeAccountID(req.AccountID)).
			Err(err).
			Msg("authentication failed")
		writeError(w, mapDomainError(err), "authentication failed", err.Error())

		return
	}

	metrics.RecordAuthAttempt(metrics.OutcomeSuccess)
	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Token:     session.Token,
		AccountID: session.AccountID,
		ExpiresAt: session.ExpiresAt,
	})
}

func authOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrAccountLocked):
		return metrics.OutcomeLocked
	case errors.Is(err, domain.ErrIncorrectPIN):
		return metrics.OutcomeIncorrectPIN
	case errors.Is(err, domain.ErrAccountNotFound):
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeError
	}
}
