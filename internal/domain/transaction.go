package domain

import (
	"errors"
	"time"
)

var (
	// ErrTransactionNotFound indicates that the transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrTransactionAccountMismatch indicates that the transaction was recorded
	// against a different account.
	ErrTransactionAccountMismatch = errors.New("transaction account mismatch")
	// ErrAmountExceedsBalance indicates that the requested amount is larger than
	// the account balance.
	ErrAmountExceedsBalance = errors.New("amount exceeds account balance")
	// ErrCancelMustBeFull indicates a partial cancellation attempt.
	ErrCancelMustBeFull = errors.New("cancel amount must equal the original amount")
	// ErrOrderTooOldToCancel indicates that the transaction is past the cancellation window.
	ErrOrderTooOldToCancel = errors.New("transaction is too old to cancel")
)

// TransactionType tells whether a transaction debits or credits the account.
type TransactionType string

// Transaction types.
const (
	TransactionUse    TransactionType = "USE"
	TransactionCancel TransactionType = "CANCEL"
)

// TransactionResult tells whether the attempted transaction passed validation.
type TransactionResult string

// Transaction results.
const (
	TransactionSuccess TransactionResult = "SUCCESS"
	TransactionFail    TransactionResult = "FAIL"
)

// Transaction holds one recorded balance operation. Once recorded it is never
// updated; corrections are compensating transactions.
type Transaction struct {
	ID              int64             `json:"-"`
	TransactionID   string            `json:"transaction_id"`
	AccountID       int64             `json:"-"`
	AccountNumber   string            `json:"account_number,omitempty"`
	Type            TransactionType   `json:"transaction_type"`
	Result          TransactionResult `json:"transaction_result"`
	Amount          int64             `json:"amount"`
	BalanceSnapshot int64             `json:"balance_snapshot"`
	TransactedAt    time.Time         `json:"transacted_at"`
}

// CreateTransactionParams is the input data to record a transaction.
type CreateTransactionParams struct {
	TransactionID   string            `json:"transaction_id"`
	AccountID       int64             `json:"account_id"`
	Type            TransactionType   `json:"transaction_type"`
	Result          TransactionResult `json:"transaction_result"`
	Amount          int64             `json:"amount"`
	BalanceSnapshot int64             `json:"balance_snapshot"`
	TransactedAt    time.Time         `json:"transacted_at"`
}
