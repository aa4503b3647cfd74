package domain

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrOwnerAccountMismatch indicates that the account belongs to another owner.
	ErrOwnerAccountMismatch = errors.New("account owner mismatch")
	// ErrAccountAlreadyClosed indicates that the account is already unregistered.
	ErrAccountAlreadyClosed = errors.New("account already closed")
	// ErrBalanceNotEmpty indicates that the account still holds a non-zero balance.
	ErrBalanceNotEmpty = errors.New("account balance is not empty")
	// ErrAccountLimitExceeded indicates that the owner reached the account cap.
	ErrAccountLimitExceeded = errors.New("owner account limit exceeded")
	// ErrAccountNumberSpaceExhausted indicates that no 10-digit account number is left.
	ErrAccountNumberSpaceExhausted = errors.New("account number space exhausted")
	// ErrAccountNumberTaken indicates that a concurrent creation grabbed the same
	// account number; the unique constraint on the number column is the backstop
	// for the max-derived numbering scheme.
	ErrAccountNumberTaken = errors.New("account number already taken")
)

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

// Account lifecycle states. The transition goes one way only,
// AccountInUse to AccountUnregistered.
const (
	AccountInUse        AccountStatus = "IN_USE"
	AccountUnregistered AccountStatus = "UNREGISTERED"
)

const (
	// FirstAccountNumber is assigned when no account exists yet.
	FirstAccountNumber = "1000000000"
	// MaxAccountsPerOwner caps concurrently open accounts per owner.
	MaxAccountsPerOwner = 10

	maxAccountNumber = 9_999_999_999
)

// Account holds owner balance data.
type Account struct {
	ID             int64         `json:"id"`
	OwnerID        int64         `json:"owner_id"`
	Number         string        `json:"account_number"`
	Status         AccountStatus `json:"status"`
	Balance        int64         `json:"balance"`
	RegisteredAt   time.Time     `json:"registered_at"`
	UnregisteredAt time.Time     `json:"unregistered_at,omitempty"`
}

// CreateAccountParams is the input data to open an account.
type CreateAccountParams struct {
	OwnerID int64  `json:"owner_id"`
	Number  string `json:"account_number"`
	Balance int64  `json:"balance"`
}

// NextAccountNumber derives the number following the given one,
// zero-padded to 10 digits.
func NextAccountNumber(latest string) (string, error) {
	n, err := strconv.ParseInt(latest, 10, 64)
	if err != nil {
		return "", fmt.Errorf("parse account number %q: %w", latest, err)
	}

	if n+1 > maxAccountNumber {
		return "", ErrAccountNumberSpaceExhausted
	}

	return fmt.Sprintf("%010d", n+1), nil
}

// Withdraw debits the account in memory. The balance never goes negative.
func (a *Account) Withdraw(amount int64) error {
	if amount > a.Balance {
		return ErrAmountExceedsBalance
	}

	a.Balance -= amount

	return nil
}

// Deposit credits the account in memory.
func (a *Account) Deposit(amount int64) {
	a.Balance += amount
}

// Unregister closes the account in memory.
func (a *Account) Unregister(now time.Time) {
	a.Status = AccountUnregistered
	a.UnregisteredAt = now
}
