// Package ledger keeps balances, deposits and vote locks of accounts.
package ledger

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spacemeshos/go-democracy/common/types"
	"github.com/spacemeshos/go-democracy/sql"
	"github.com/spacemeshos/go-democracy/sql/accounts"
	"github.com/spacemeshos/go-democracy/sql/kvstore"
)

var (
	// ErrInsufficientBalance is returned if free balance can't cover the amount.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrLocked is returned when transferring from an account with locked funds.
	ErrLocked = errors.New("balance is locked")
)

const issuanceKey = "ledger/issuance"

// Opt for configuring Ledger.
type Opt func(*Ledger)

// WithLogger sets logger for Ledger.
func WithLogger(logger *zap.Logger) Opt {
	return func(l *Ledger) {
		l.logger = logger
	}
}

// New ledger. Ledger doesn't hold state, every method works on the provided executor,
// so that changes become part of the caller's transaction.
func New(opts ...Opt) *Ledger {
	l := &Ledger{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Ledger of account balances.
type Ledger struct {
	logger *zap.Logger
}

// Account returns an empty account if address was never credited.
func (l *Ledger) Account(db sql.Executor, address types.Address) (accounts.Account, error) {
	account, err := accounts.Get(db, address)
	if errors.Is(err, sql.ErrNotFound) {
		return accounts.Account{Address: address}, nil
	}
	return account, err
}

// Stake is the free and reserved balance together.
func (l *Ledger) Stake(db sql.Executor, address types.Address) (types.Amount, error) {
	account, err := l.Account(db, address)
	if err != nil {
		return 0, err
	}
	return account.Balance.Add(account.Reserved)
}

// TotalIssuance is the sum of everything ever credited.
func (l *Ledger) TotalIssuance(db sql.Executor) (types.Amount, error) {
	issuance, err := kvstore.GetUint64(db, issuanceKey)
	if err != nil {
		return 0, err
	}
	return types.Amount(issuance), nil
}

// Credit mints amount to the address.
func (l *Ledger) Credit(db sql.Executor, address types.Address, amount types.Amount) error {
	issuance, err := l.TotalIssuance(db)
	if err != nil {
		return err
	}
	issuance, err = issuance.Add(amount)
	if err != nil {
		return fmt.Errorf("credit %s: %w", address, err)
	}
	account, err := l.Account(db, address)
	if err != nil {
		return err
	}
	if account.Balance, err = account.Balance.Add(amount); err != nil {
		return fmt.Errorf("credit %s: %w", address, err)
	}
	if err := accounts.Update(db, &account); err != nil {
		return err
	}
	if err := kvstore.SetUint64(db, issuanceKey, uint64(issuance)); err != nil {
		return err
	}
	issuanceGauge.Set(float64(issuance))
	return nil
}

// Reserve moves amount from free to reserved balance.
func (l *Ledger) Reserve(db sql.Executor, address types.Address, amount types.Amount) error {
	account, err := l.Account(db, address)
	if err != nil {
		return err
	}
	if account.Balance < amount {
		return fmt.Errorf("%w: reserve %d from %s with %d", ErrInsufficientBalance, amount, address, account.Balance)
	}
	account.Balance -= amount
	if account.Reserved, err = account.Reserved.Add(amount); err != nil {
		return err
	}
	return accounts.Update(db, &account)
}

// Unreserve moves up to amount from reserved to free balance and returns what was moved.
func (l *Ledger) Unreserve(db sql.Executor, address types.Address, amount types.Amount) (types.Amount, error) {
	account, err := l.Account(db, address)
	if err != nil {
		return 0, err
	}
	moved := min(amount, account.Reserved)
	if moved < amount {
		l.logger.Warn("unreserve more than reserved",
			zap.Stringer("address", address),
			zap.Uint64("requested", uint64(amount)),
			zap.Uint64("reserved", uint64(account.Reserved)),
		)
	}
	account.Reserved -= moved
	if account.Balance, err = account.Balance.Add(moved); err != nil {
		return 0, err
	}
	if err := accounts.Update(db, &account); err != nil {
		return 0, err
	}
	return moved, nil
}

// ExtendLock locks the balance until the height, unless it is already locked for longer.
func (l *Ledger) ExtendLock(db sql.Executor, address types.Address, until types.Height) error {
	account, err := l.Account(db, address)
	if err != nil {
		return err
	}
	if account.LockUntil >= until {
		return nil
	}
	account.LockUntil = until
	return accounts.Update(db, &account)
}

// SetLock overwrites the lock.
func (l *Ledger) SetLock(db sql.Executor, address types.Address, until types.Height) error {
	account, err := l.Account(db, address)
	if err != nil {
		return err
	}
	account.LockUntil = until
	return accounts.Update(db, &account)
}

// Transfer moves free balance. Locked accounts can't send funds until the
// lock height has passed.
func (l *Ledger) Transfer(db sql.Executor, now types.Height, from, to types.Address, amount types.Amount) error {
	sender, err := l.Account(db, from)
	if err != nil {
		return err
	}
	if sender.LockUntil > now {
		return fmt.Errorf("%w: %s until %d", ErrLocked, from, sender.LockUntil)
	}
	if sender.Balance < amount {
		return fmt.Errorf("%w: transfer %d from %s with %d", ErrInsufficientBalance, amount, from, sender.Balance)
	}
	sender.Balance -= amount
	if err := accounts.Update(db, &sender); err != nil {
		return err
	}
	receiver, err := l.Account(db, to)
	if err != nil {
		return err
	}
	if receiver.Balance, err = receiver.Balance.Add(amount); err != nil {
		return fmt.Errorf("transfer to %s: %w", to, err)
	}
	return accounts.Update(db, &receiver)
}
