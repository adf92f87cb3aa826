package dto

import (
	"time"

	"github.com/iho/goatm/internal/domain"
)

// LoginResponse carries a freshly issued session.
type LoginResponse struct {
	Token     string    `json:"token"`
	AccountID string    `json:"account_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// BalanceResponse carries the current balance as an exact decimal string.
type BalanceResponse struct {
	Balance string `json:"balance"`
}

// TransactionResponse represents one ledger record. Amounts are exact
// decimal strings, never binary-float-rounded.
type TransactionResponse struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Kind         string    `json:"kind"`
	Amount       string    `json:"amount"`
	BalanceAfter string    `json:"balance_after"`
	Recipient    string    `json:"recipient,omitempty"`
}

// TransactionFromDomain converts a domain record to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:           t.ID,
		Timestamp:    t.Timestamp,
		Kind:         string(t.Kind),
		Amount:       t.Amount.String(),
		BalanceAfter: t.BalanceAfter.String(),
		Recipient:    t.Recipient,
	}
}

// TransactionsFromDomain converts domain records to responses.
func TransactionsFromDomain(records []*domain.Transaction) []*TransactionResponse {
	out := make([]*TransactionResponse, len(records))
	for i, t := range records {
		out[i] = TransactionFromDomain(t)
	}
	return out
}

// OperationResponse wraps a successful money-moving operation.
type OperationResponse struct {
	Message     string               `json:"message"`
	Transaction *TransactionResponse `json:"transaction,omitempty"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
