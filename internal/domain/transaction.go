package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind identifies the type of a ledger transaction.
type Kind string

const (
	KindWithdrawal Kind = "withdrawal"
	KindDeposit    Kind = "deposit"
	KindTransfer   Kind = "transfer"
	KindInterest   Kind = "interest"
)

var validKinds = map[Kind]bool{
	KindWithdrawal: true,
	KindDeposit:    true,
	KindTransfer:   true,
	KindInterest:   true,
}

// IsValid checks if the kind is a known transaction kind.
func (k Kind) IsValid() bool {
	return validKinds[k]
}

// Transaction is a single ledger record. Records are immutable once created
// and are appended to the owning account's ledger in creation order.
type Transaction struct {
	ID           string
	Timestamp    time.Time
	Kind         Kind
	Amount       decimal.Decimal
	BalanceAfter decimal.Decimal
	// Recipient is set on transfer records only.
	Recipient string
}
