// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvasilkov/ledgerbank/internal/domain"
	"github.com/dvasilkov/ledgerbank/pkg/errorspkg"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	GetByNumber(ctx context.Context, number string) (domain.Account, error)
	GetNewest(ctx context.Context) (domain.Account, error)
	Count(ctx context.Context, ownerID int64) (int32, error)
	ListInUse(ctx context.Context, ownerID int64) ([]domain.Account, error)
	Update(ctx context.Context, account domain.Account) (domain.Account, error)
}

// OwnerRepo provides the owner directory interface needed by account service layer.
type OwnerRepo interface {
	Get(ctx context.Context, id int64) (domain.Owner, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo      Repo
	ownerRepo OwnerRepo
}

// New returns account service struct to manage account business logic.
func New(ar Repo, or OwnerRepo) *Service {
	return &Service{
		repo:      ar,
		ownerRepo: or,
	}
}

// nextNumber derives the next free account number from the newest account.
//
// The number is read from the current store max, so two concurrent creations
// can derive the same value; the unique constraint on the number column
// rejects the loser.
func (s *Service) nextNumber(ctx context.Context) (string, error) {
	l := zerolog.Ctx(ctx)

	newest, err := s.repo.GetNewest(ctx)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			return domain.FirstAccountNumber, nil
		}

		return "", err
	}

	number, err := domain.NextAccountNumber(newest.Number)
	if err != nil {
		if err == domain.ErrAccountNumberSpaceExhausted {
			return "", err
		}

		l.Error().Err(err).Send()

		return "", errorspkg.ErrInternal
	}

	return number, nil
}

// Create opens an account for the given owner with the given initial balance.
func (s *Service) Create(ctx context.Context, ownerID, initialBalance int64) (domain.Account, error) {
	owner, err := s.ownerRepo.Get(ctx, ownerID)
	if err != nil {
		return domain.Account{}, err
	}

	// The cap covers every account ever recorded for the owner; closing an
	// account does not free a slot.
	count, err := s.repo.Count(ctx, owner.ID)
	if err != nil {
		return domain.Account{}, err
	}

	if count >= domain.MaxAccountsPerOwner {
		return domain.Account{}, domain.ErrAccountLimitExceeded
	}

	number, err := s.nextNumber(ctx)
	if err != nil {
		return domain.Account{}, err
	}

	arg := domain.CreateAccountParams{
		OwnerID: owner.ID,
		Number:  number,
		Balance: initialBalance,
	}

	account, err := s.repo.Create(ctx, arg)
	if err != nil {
		return account, err
	}

	return account, nil
}

// Close unregisters the account with the given number.
//
// Only the owner of an open account with zero balance may close it.
func (s *Service) Close(ctx context.Context, ownerID int64, accountNumber string) (domain.Account, error) {
	owner, err := s.ownerRepo.Get(ctx, ownerID)
	if err != nil {
		return domain.Account{}, err
	}

	account, err := s.repo.GetByNumber(ctx, accountNumber)
	if err != nil {
		return domain.Account{}, err
	}

	if account.OwnerID != owner.ID {
		return domain.Account{}, domain.ErrOwnerAccountMismatch
	}

	if account.Status != domain.AccountInUse {
		return domain.Account{}, domain.ErrAccountAlreadyClosed
	}

	if account.Balance != 0 {
		return domain.Account{}, domain.ErrBalanceNotEmpty
	}

	account.Unregister(time.Now())

	closed, err := s.repo.Update(ctx, account)
	if err != nil {
		return closed, err
	}

	return closed, nil
}

// List returns the open accounts of the given owner.
func (s *Service) List(ctx context.Context, ownerID int64) ([]domain.Account, error) {
	owner, err := s.ownerRepo.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	accounts, err := s.repo.ListInUse(ctx, owner.ID)
	if err != nil {
		return nil, err
	}

	return accounts, nil
}
