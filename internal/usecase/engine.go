package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/goatm/internal/domain"
)

const dayFormat = "2006-01-02"

// EngineConfig holds the teller policy constants.
type EngineConfig struct {
	// WithdrawalUnit is the minimum withdrawal denomination.
	WithdrawalUnit decimal.Decimal
	// DailyWithdrawalLimit caps the sum of withdrawals and transfers per
	// account per calendar day.
	DailyWithdrawalLimit decimal.Decimal
	// DefaultInterestRate is applied when SimulateInterest gets no rate.
	DefaultInterestRate decimal.Decimal
	// Now returns the current time; defaults to time.Now().UTC.
	Now func() time.Time
}

// Engine orchestrates the balance-mutating operations. Every operation takes
// a session token and fails with domain.ErrNoActiveSession when the token
// does not resolve to an active session. Validation failures never leave
// account, ledger, or limit state partially mutated.
type Engine struct {
	cfg      EngineConfig
	accounts AccountRepository
	ledger   LedgerRepository
	limits   LimitRepository
	sessions SessionResolver
	idGen    IDGenerator
	audit    AuditSink
	locks    *accountLocks
}

// NewEngine creates a new Engine.
func NewEngine(
	cfg EngineConfig,
	accounts AccountRepository,
	ledger LedgerRepository,
	limits LimitRepository,
	sessions SessionResolver,
	idGen IDGenerator,
	audit AuditSink,
) *Engine {
	if cfg.WithdrawalUnit.IsZero() {
		cfg.WithdrawalUnit = decimal.NewFromInt(50000)
	}
	if cfg.DailyWithdrawalLimit.IsZero() {
		cfg.DailyWithdrawalLimit = decimal.NewFromInt(5000000)
	}
	if cfg.DefaultInterestRate.IsZero() {
		cfg.DefaultInterestRate = decimal.NewFromFloat(0.01)
	}
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return time.Now().UTC() }
	}

	return &Engine{
		cfg:      cfg,
		accounts: accounts,
		ledger:   ledger,
		limits:   limits,
		sessions: sessions,
		idGen:    idGen,
		audit:    audit,
		locks:    newAccountLocks(),
	}
}

func (e *Engine) session(token string) (*domain.Session, error) {
	session, err := e.sessions.Resolve(token)
	if err != nil {
		return nil, domain.ErrNoActiveSession
	}
	return session, nil
}

func (e *Engine) day(now time.Time) string {
	return now.Format(dayFormat)
}

// CheckBalance returns the session account's current balance. No side effects.
func (e *Engine) CheckBalance(ctx context.Context, token string) (decimal.Decimal, error) {
	session, err := e.session(token)
	if err != nil {
		return decimal.Zero, err
	}

	release := e.locks.acquire(session.AccountID)
	defer release()

	account, err := e.accounts.GetByID(ctx, session.AccountID)
	if err != nil {
		return decimal.Zero, err
	}

	return account.Balance, nil
}

// Withdraw debits the session account. The amount must be a parseable
// positive decimal, a multiple of the withdrawal unit, covered by the
// balance, and within the daily withdrawal limit, checked in that order.
func (e *Engine) Withdraw(ctx context.Context, token, amount string) (*domain.Transaction, error) {
	session, err := e.session(token)
	if err != nil {
		return nil, err
	}

	release := e.locks.acquire(session.AccountID)
	defer release()

	record, err := e.withdrawLocked(ctx, session.AccountID, amount, domain.KindWithdrawal, "")
	if err != nil {
		return nil, err
	}

	e.audit.Record(domain.AuditEvent{
		Time:         record.Timestamp,
		AccountID:    session.AccountID,
		Action:       domain.AuditActionWithdrawal,
		Amount:       record.Amount.String(),
		BalanceAfter: record.BalanceAfter.String(),
	})

	return record, nil
}

// withdrawLocked runs the withdraw validation sequence and debit. The caller
// must hold the account lock. Transfers reuse it with kind=transfer, which
// also counts the amount against the transfer daily total and stamps the
// recipient on the record.
func (e *Engine) withdrawLocked(ctx context.Context, accountID, rawAmount string, kind domain.Kind, recipient string) (*domain.Transaction, error) {
	amount, err := domain.ParseAmount(rawAmount)
	if err != nil {
		return nil, err
	}

	if err := domain.ValidateDenomination(amount, e.cfg.WithdrawalUnit); err != nil {
		return nil, err
	}

	account, err := e.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if err := account.ValidateDebit(amount); err != nil {
		return nil, err
	}

	now := e.cfg.Now()
	day := e.day(now)

	withdrawnToday, err := e.limits.Total(ctx, accountID, domain.KindWithdrawal, day)
	if err != nil {
		return nil, err
	}
	if withdrawnToday.Add(amount).GreaterThan(e.cfg.DailyWithdrawalLimit) {
		return nil, fmt.Errorf("%w: daily withdrawal limit is %s", domain.ErrDailyLimitExceeded, e.cfg.DailyWithdrawalLimit.String())
	}

	newBalance := account.ApplyDebit(amount)
	if err := e.accounts.UpdateBalance(ctx, accountID, newBalance, now); err != nil {
		return nil, err
	}

	if err := e.limits.Add(ctx, accountID, domain.KindWithdrawal, day, amount); err != nil {
		return nil, err
	}
	if kind == domain.KindTransfer {
		if err := e.limits.Add(ctx, accountID, domain.KindTransfer, day, amount); err != nil {
			return nil, err
		}
	}

	record := &domain.Transaction{
		ID:           e.idGen.Generate(),
		Timestamp:    now,
		Kind:         kind,
		Amount:       amount,
		BalanceAfter: newBalance,
		Recipient:    recipient,
	}

	if err := e.ledger.Append(ctx, accountID, record); err != nil {
		return nil, err
	}

	return record, nil
}

// Deposit credits the session account. Deposits have no upper bound and no
// denomination constraint. The daily deposit total is tracked but uncapped.
func (e *Engine) Deposit(ctx context.Context, token, rawAmount string) (*domain.Transaction, error) {
	session, err := e.session(token)
	if err != nil {
		return nil, err
	}

	amount, err := domain.ParseAmount(rawAmount)
	if err != nil {
		return nil, err
	}

	release := e.locks.acquire(session.AccountID)
	defer release()

	account, err := e.accounts.GetByID(ctx, session.AccountID)
	if err != nil {
		return nil, err
	}

	now := e.cfg.Now()
	newBalance := account.ApplyCredit(amount)

	if err := e.accounts.UpdateBalance(ctx, session.AccountID, newBalance, now); err != nil {
		return nil, err
	}
	if err := e.limits.Add(ctx, session.AccountID, domain.KindDeposit, e.day(now), amount); err != nil {
		return nil, err
	}

	record := &domain.Transaction{
		ID:           e.idGen.Generate(),
		Timestamp:    now,
		Kind:         domain.KindDeposit,
		Amount:       amount,
		BalanceAfter: newBalance,
	}

	if err := e.ledger.Append(ctx, session.AccountID, record); err != nil {
		return nil, err
	}

	e.audit.Record(domain.AuditEvent{
		Time:         now,
		AccountID:    session.AccountID,
		Action:       domain.AuditActionDeposit,
		Amount:       amount.String(),
		BalanceAfter: newBalance.String(),
	})

	return record, nil
}

// Transfer moves funds from the session account to the recipient. The sender
// side runs the full withdraw sequence and its failures propagate unchanged.
// Exactly one transfer record is appended, on the sender's ledger.
func (e *Engine) Transfer(ctx context.Context, token, recipientID, rawAmount string) (*domain.Transaction, error) {
	session, err := e.session(token)
	if err != nil {
		return nil, err
	}

	recipientID = domain.NormalizeAccountID(recipientID)
	if recipientID == session.AccountID {
		return nil, domain.ErrSelfTransfer
	}

	// Both locks in lexical order; acquire handles the ordering.
	release := e.locks.acquire(session.AccountID, recipientID)
	defer release()

	recipient, err := e.accounts.GetByID(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	record, err := e.withdrawLocked(ctx, session.AccountID, rawAmount, domain.KindTransfer, recipientID)
	if err != nil {
		return nil, err
	}

	now := record.Timestamp
	if err := e.accounts.UpdateBalance(ctx, recipientID, recipient.ApplyCredit(record.Amount), now); err != nil {
		return nil, err
	}

	e.audit.Record(domain.AuditEvent{
		Time:         now,
		AccountID:    session.AccountID,
		Action:       domain.AuditActionTransfer,
		Amount:       record.Amount.String(),
		BalanceAfter: record.BalanceAfter.String(),
		Recipient:    recipientID,
	})

	return record, nil
}

// ChangePIN replaces the stored credential hash after verifying the old PIN.
// A wrong old PIN never changes the stored credential.
func (e *Engine) ChangePIN(ctx context.Context, token, oldPIN, newPIN string) error {
	session, err := e.session(token)
	if err != nil {
		return err
	}

	release := e.locks.acquire(session.AccountID)
	defer release()

	account, err := e.accounts.GetByID(ctx, session.AccountID)
	if err != nil {
		return err
	}

	if err := verifyPIN(account.PINHash, oldPIN); err != nil {
		return domain.ErrIncorrectPIN
	}

	hash, err := HashPIN(newPIN)
	if err != nil {
		return err
	}

	now := e.cfg.Now()
	if err := e.accounts.UpdatePINHash(ctx, session.AccountID, hash, now); err != nil {
		return err
	}

	e.audit.Record(domain.AuditEvent{
		Time:      now,
		AccountID: session.AccountID,
		Action:    domain.AuditActionPINChange,
	})

	return nil
}

// SimulateInterest accrues interest on the current balance. rawRate may be
// empty, in which case the configured default rate applies. Interest is not
// subject to daily limits.
func (e *Engine) SimulateInterest(ctx context.Context, token, rawRate string) (*domain.Transaction, error) {
	session, err := e.session(token)
	if err != nil {
		return nil, err
	}

	rate := e.cfg.DefaultInterestRate
	if rawRate != "" {
		rate, err = domain.ParseRate(rawRate)
		if err != nil {
			return nil, err
		}
	}

	release := e.locks.acquire(session.AccountID)
	defer release()

	account, err := e.accounts.GetByID(ctx, session.AccountID)
	if err != nil {
		return nil, err
	}

	now := e.cfg.Now()
	interest := account.Balance.Mul(rate)
	newBalance := account.ApplyCredit(interest)

	if err := e.accounts.UpdateBalance(ctx, session.AccountID, newBalance, now); err != nil {
		return nil, err
	}

	record := &domain.Transaction{
		ID:           e.idGen.Generate(),
		Timestamp:    now,
		Kind:         domain.KindInterest,
		Amount:       interest,
		BalanceAfter: newBalance,
	}

	if err := e.ledger.Append(ctx, session.AccountID, record); err != nil {
		return nil, err
	}

	e.audit.Record(domain.AuditEvent{
		Time:         now,
		AccountID:    session.AccountID,
		Action:       domain.AuditActionInterest,
		Amount:       interest.String(),
		BalanceAfter: newBalance.String(),
	})

	return record, nil
}

// History returns the session account's records in creation order. Only the
// session's own account can be read.
func (e *Engine) History(ctx context.Context, token string) ([]*domain.Transaction, error) {
	session, err := e.session(token)
	if err != nil {
		return nil, err
	}

	release := e.locks.acquire(session.AccountID)
	defer release()

	return e.ledger.ListByAccount(ctx, session.AccountID)
}

// Logout ends the session. Idempotent: a stale or unknown token is a no-op.
func (e *Engine) Logout(token string) {
	session, err := e.sessions.Resolve(token)
	if err != nil {
		return
	}

	e.sessions.End(token)

	e.audit.Record(domain.AuditEvent{
		Time:      e.cfg.Now(),
		AccountID: session.AccountID,
		Action:    domain.AuditActionLogout,
	})
}
