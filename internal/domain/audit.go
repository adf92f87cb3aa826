package domain

import "time"

// AuditAction identifies an auditable event.
type AuditAction string

const (
	AuditActionLogin       AuditAction = "auth.login"
	AuditActionLoginFailed AuditAction = "auth.login_failed"
	AuditActionLockout     AuditAction = "auth.lockout"
	AuditActionLogout      AuditAction = "auth.logout"
	AuditActionWithdrawal  AuditAction = "teller.withdrawal"
	AuditActionDeposit     AuditAction = "teller.deposit"
	AuditActionTransfer    AuditAction = "teller.transfer"
	AuditActionInterest    AuditAction = "teller.interest"
	AuditActionPINChange   AuditAction = "teller.pin_change"
)

// AuditEvent describes a completed operation for the audit sink. Amounts are
// carried as exact decimal strings. Events never contain raw PINs.
type AuditEvent struct {
	Time         time.Time   `json:"time"`
	AccountID    string      `json:"account_id"`
	Action       AuditAction `json:"action"`
	Amount       string      `json:"amount,omitempty"`
	BalanceAfter string      `json:"balance_after,omitempty"`
	Recipient    string      `json:"recipient,omitempty"`
	Detail       string      `json:"detail,omitempty"`
}
