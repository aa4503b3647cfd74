// Package transactionservice manages business logic layer of transactions.
package transactionservice

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dvasilkov/ledgerbank/internal/domain"
)

// Repo provides data access layer interface needed by transaction service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transactionservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateTransactionParams) (domain.Transaction, error)
	Get(ctx context.Context, transactionID string) (domain.Transaction, error)
	Record(ctx context.Context, account domain.Account, arg domain.CreateTransactionParams) (domain.Transaction, error)
}

// AccountRepo provides the account store interface needed by transaction service layer.
type AccountRepo interface {
	GetByNumber(ctx context.Context, number string) (domain.Account, error)
}

// OwnerRepo provides the owner directory interface needed by transaction service layer.
type OwnerRepo interface {
	Get(ctx context.Context, id int64) (domain.Owner, error)
}

// Service facilitates transaction service layer logic.
type Service struct {
	repo        Repo
	accountRepo AccountRepo
	ownerRepo   OwnerRepo

	// recordCancelFailures extends the use-side audit trail to rejected
	// cancellations. Off by default.
	recordCancelFailures bool
}

// New returns transaction service struct to manage transaction business logic.
func New(tr Repo, ar AccountRepo, or OwnerRepo, recordCancelFailures bool) *Service {
	return &Service{
		repo:                 tr,
		accountRepo:          ar,
		ownerRepo:            or,
		recordCancelFailures: recordCancelFailures,
	}
}

func newTransactionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func newParams(account domain.Account, transactionType domain.TransactionType,
	result domain.TransactionResult, amount int64) domain.CreateTransactionParams {
	return domain.CreateTransactionParams{
		TransactionID:   newTransactionID(),
		AccountID:       account.ID,
		Type:            transactionType,
		Result:          result,
		Amount:          amount,
		BalanceSnapshot: account.Balance,
		TransactedAt:    time.Now(),
	}
}

// recordFailure keeps an audit record of a rejected balance operation.
// The snapshot is the account balance the operation left untouched.
func (s *Service) recordFailure(ctx context.Context, transactionType domain.TransactionType,
	account domain.Account, amount int64) error {
	_, err := s.repo.Create(ctx, newParams(account, transactionType, domain.TransactionFail, amount))

	return err
}

// UseBalance debits the account and records a USE transaction.
//
// Validation runs in fixed order: owner, account, ownership, balance. A
// balance rejection is recorded as a FAIL transaction before the error is
// returned; earlier rejections happen before any account context exists and
// leave no record.
func (s *Service) UseBalance(ctx context.Context, ownerID int64, accountNumber string, amount int64) (domain.Transaction, error) {
	owner, err := s.ownerRepo.Get(ctx, ownerID)
	if err != nil {
		return domain.Transaction{}, err
	}

	account, err := s.accountRepo.GetByNumber(ctx, accountNumber)
	if err != nil {
		return domain.Transaction{}, err
	}

	if account.OwnerID != owner.ID {
		return domain.Transaction{}, domain.ErrOwnerAccountMismatch
	}

	if account.Status != domain.AccountInUse {
		return domain.Transaction{}, domain.ErrAccountAlreadyClosed
	}

	if err := account.Withdraw(amount); err != nil {
		if recErr := s.recordFailure(ctx, domain.TransactionUse, account, amount); recErr != nil {
			return domain.Transaction{}, recErr
		}

		return domain.Transaction{}, err
	}

	transaction, err := s.repo.Record(ctx, account, newParams(account, domain.TransactionUse, domain.TransactionSuccess, amount))
	if err != nil {
		return transaction, err
	}

	return transaction, nil
}

// CancelBalance reverses a recorded USE transaction in full and records a
// CANCEL transaction.
//
// Validation runs in fixed order: transaction, account, account identity,
// full amount, age. Transactions older than one year cannot be cancelled.
// The account's status is not part of the chain: a cancellation may credit
// an unregistered account, which then holds a balance again.
func (s *Service) CancelBalance(ctx context.Context, transactionID, accountNumber string, amount int64) (domain.Transaction, error) {
	original, err := s.repo.Get(ctx, transactionID)
	if err != nil {
		return domain.Transaction{}, err
	}

	account, err := s.accountRepo.GetByNumber(ctx, accountNumber)
	if err != nil {
		return domain.Transaction{}, err
	}

	fail := func(err error) (domain.Transaction, error) {
		if s.recordCancelFailures {
			if recErr := s.recordFailure(ctx, domain.TransactionCancel, account, amount); recErr != nil {
				return domain.Transaction{}, recErr
			}
		}

		return domain.Transaction{}, err
	}

	if original.AccountID != account.ID {
		return fail(domain.ErrTransactionAccountMismatch)
	}

	if original.Amount != amount {
		return fail(domain.ErrCancelMustBeFull)
	}

	if original.TransactedAt.Before(time.Now().AddDate(-1, 0, 0)) {
		return fail(domain.ErrOrderTooOldToCancel)
	}

	account.Deposit(amount)

	transaction, err := s.repo.Record(ctx, account, newParams(account, domain.TransactionCancel, domain.TransactionSuccess, amount))
	if err != nil {
		return transaction, err
	}

	return transaction, nil
}

// Get returns the recorded transaction with the given transaction id.
func (s *Service) Get(ctx context.Context, transactionID string) (domain.Transaction, error) {
	transaction, err := s.repo.Get(ctx, transactionID)
	if err != nil {
		return transaction, err
	}

	return transaction, nil
}
