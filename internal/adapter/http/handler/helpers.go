package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/iho/goatm/internal/adapter/http/dto"
	"github.com/iho/goatm/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAccountLocked):
		return http.StatusLocked
	case errors.Is(err, domain.ErrIncorrectPIN):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNoActiveSession):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidRate),
		errors.Is(err, domain.ErrNotDenominated),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrDailyLimitExceeded),
		errors.Is(err, domain.ErrSelfTransfer):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
