package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/goatm/internal/adapter/http/dto"
	"github.com/iho/goatm/internal/adapter/http/middleware"
	"github.com/iho/goatm/internal/domain"
	"github.com/iho/goatm/internal/infrastructure/metrics"
)

// TellerService defines the behavior needed by TellerHandler.
type TellerService interface {
	CheckBalance(ctx context.Context, token string) (decimal.Decimal, error)
	Withdraw(ctx context.Context, token, amount string) (*domain.Transaction, error)
	Deposit(ctx context.Context, token, amount string) (*domain.Transaction, error)
	Transfer(ctx context.Context, token, recipientID, amount string) (*domain.Transaction, error)
	ChangePIN(ctx context.Context, token, oldPIN, newPIN string) error
	SimulateInterest(ctx context.Context, token, rate string) (*domain.Transaction, error)
	History(ctx context.Context, token string) ([]*domain.Transaction, error)
	Logout(token string)
}

// TellerHandler handles the session-bound teller operations.
type TellerHandler struct {
	engine TellerService
	logger zerolog.Logger
}

// NewTellerHandler creates a new TellerHandler.
func NewTellerHandler(engine TellerService, logger zerolog.Logger) *TellerHandler {
	return &TellerHandler{engine: engine, logger: logger}
}

// Balance returns the session account's current balance.
func (h *TellerHandler) Balance(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFromContext(r.Context())

	balance, err := h.engine.CheckBalance(r.Context(), token)
	if err != nil {
		h.writeEngineError(w, r, "failed to check balance", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{Balance: balance.String()})
}

// Withdraw debits the session account.
func (h *TellerHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req dto.AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	token := middleware.TokenFromContext(r.Context())

	record, err := h.engine.Withdraw(r.Context(), token, req.Amount)
	if err != nil {
		metrics.RecordOperation(string(domain.KindWithdrawal), metrics.OutcomeError)
		h.writeEngineError(w, r, "withdrawal failed", err)
		return
	}

	metrics.RecordOperation(string(domain.KindWithdrawal), metrics.OutcomeSuccess)
	writeJSON(w, http.StatusOK, dto.OperationResponse{
		Message:     fmt.Sprintf("successfully withdrawn %s", record.Amount.String()),
		Transaction: dto.TransactionFromDomain(record),
	})
}

// Deposit credits the session account.
func (h *TellerHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req dto.AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	token := middleware.TokenFromContext(r.Context())

	record, err := h.engine.Deposit(r.Context(), token, req.Amount)
	if err != nil {
		metrics.RecordOperation(string(domain.KindDeposit), metrics.OutcomeError)
		h.writeEngineError(w, r, "deposit failed", err)
		return
	}

	metrics.RecordOperation(string(domain.KindDeposit), metrics.OutcomeSuccess)
	writeJSON(w, http.StatusOK, dto.OperationResponse{
		Message:     fmt.Sprintf("successfully deposited %s", record.Amount.String()),
		Transaction: dto.TransactionFromDomain(record),
	})
}

// Transfer moves funds to another account.
func (h *TellerHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	token := middleware.TokenFromContext(r.Context())

	record, err := h.engine.Transfer(r.Context(), token, req.Recipient, req.Amount)
	if err != nil {
		metrics.RecordOperation(string(domain.KindTransfer), metrics.OutcomeError)
		h.writeEngineError(w, r, "transfer failed", err)
		return
	}

	metrics.RecordOperation(string(domain.KindTransfer), metrics.OutcomeSuccess)
	writeJSON(w, http.StatusOK, dto.OperationResponse{
		Message:     fmt.Sprintf("successfully transferred %s to %s", record.Amount.String(), record.Recipient),
		Transaction: dto.TransactionFromDomain(record),
	})
}

// ChangePIN replaces the account's PIN.
func (h *TellerHandler) ChangePIN(w http.ResponseWriter, r *http.Request) {
	var req dto.ChangePINRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.OldPIN == "" || req.NewPIN == "" {
		writeError(w, http.StatusBadRequest, "missing PIN", "old_pin and new_pin are required")
		return
	}

	token := middleware.TokenFromContext(r.Context())

	if err := h.engine.ChangePIN(r.Context(), token, req.OldPIN, req.NewPIN); err != nil {
		metrics.RecordOperation("pin_change", metrics.OutcomeError)
		h.writeEngineError(w, r, "PIN change failed", err)
		return
	}

	metrics.RecordOperation("pin_change", metrics.OutcomeSuccess)
	writeJSON(w, http.StatusOK, dto.OperationResponse{Message: "PIN successfully changed"})
}

// Interest accrues interest on the session account.
func (h *TellerHandler) Interest(w http.ResponseWriter, r *http.Request) {
	var req dto.InterestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	token := middleware.TokenFromContext(r.Context())

	record, err := h.engine.SimulateInterest(r.Context(), token, req.Rate)
	if err != nil {
		metrics.RecordOperation(string(domain.KindInterest), metrics.OutcomeError)
		h.writeEngineError(w, r, "interest accrual failed", err)
		return
	}

	metrics.RecordOperation(string(domain.KindInterest), metrics.OutcomeSuccess)
	writeJSON(w, http.StatusOK, dto.OperationResponse{
		Message:     fmt.Sprintf("interest of %s applied", record.Amount.String()),
		Transaction: dto.TransactionFromDomain(record),
	})
}

// History returns the session account's full record sequence.
func (h *TellerHandler) History(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFromContext(r.Context())

	records, err := h.engine.History(r.Context(), token)
	if err != nil {
		h.writeEngineError(w, r, "failed to get history", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(records))
}

// Logout ends the session. Always succeeds.
func (h *TellerHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.engine.Logout(middleware.TokenFromContext(r.Context()))
	writeJSON(w, http.StatusOK, dto.OperationResponse{Message: "logged out"})
}

// writeEngineError maps an engine error to HTTP. A security-class session
// failure means broken session management upstream, so it is logged loud.
func (h *TellerHandler) writeEngineError(w http.ResponseWriter, r *http.Request, message string, err error) {
	if errors.Is(err, domain.ErrNoActiveSession) {
		h.logger.Error().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("operation attempted without active session")
	}

	writeError(w, mapDomainError(err), message, err.Error())
}
