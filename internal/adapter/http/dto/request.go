package dto

// LoginRequest represents an authentication request.
type LoginRequest struct {
	AccountID string `json:"account_id"`
	PIN       string `json:"pin"`
}

// AmountRequest carries an amount for withdraw and deposit. The amount is a
// decimal string so no precision is lost in transit.
type AmountRequest struct {
	Amount string `json:"amount"`
}

// TransferRequest represents a transfer to another account.
type TransferRequest struct {
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
}

// ChangePINRequest represents a PIN change.
type ChangePINRequest struct {
	OldPIN string `json:"old_pin"`
	NewPIN string `json:"new_pin"`
}

// InterestRequest represents an interest accrual. Rate is optional; the
// server default applies when empty.
type InterestRequest struct {
	Rate string `json:"rate,omitempty"`
}
