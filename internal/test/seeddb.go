// Package test provides shared test helpers.
package test

import (
	"context"
	"testing"
	"time"

	"github.com/dvasilkov/ledgerbank/internal/accountrepo"
	"github.com/dvasilkov/ledgerbank/internal/domain"
	"github.com/dvasilkov/ledgerbank/internal/ownerrepo"
	"github.com/dvasilkov/ledgerbank/internal/transactionrepo"
	"github.com/dvasilkov/ledgerbank/pkg/dbpkg"
	"github.com/dvasilkov/ledgerbank/pkg/passpkg"
	"github.com/dvasilkov/ledgerbank/pkg/randompkg"
)

// SeedOwner creates a random Owner inside a test transaction.
func SeedOwner(t *testing.T, tx dbpkg.SQLInterface) domain.Owner {
	t.Helper()

	hashedPassword, err := passpkg.Hash(randompkg.String(10))
	if err != nil {
		t.Fatalf("passpkg.Hash(randompkg.String(10)) returned error: %v", err)
	}

	arg := domain.CreateOwnerParams{
		Username:       randompkg.Owner(),
		HashedPassword: hashedPassword,
		Name:           randompkg.String(10),
	}

	ownerRepo := ownerrepo.NewRepoPGS(tx)

	owner, err := ownerRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("ownerRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return owner
}

// SeedAccount creates an Account with the given number and balance inside a test transaction.
func SeedAccount(t *testing.T, tx dbpkg.SQLInterface, ownerID int64, number string, balance int64) domain.Account {
	t.Helper()

	arg := domain.CreateAccountParams{
		OwnerID: ownerID,
		Number:  number,
		Balance: balance,
	}

	accountRepo := accountrepo.NewRepoPGS(tx)

	account, err := accountRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("accountRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return account
}

// SeedClosedAccount creates an already unregistered Account with the given number.
func SeedClosedAccount(t *testing.T, tx dbpkg.SQLInterface, ownerID int64, number string) domain.Account {
	t.Helper()

	account := SeedAccount(t, tx, ownerID, number, 0)
	account.Unregister(time.Now())

	accountRepo := accountrepo.NewRepoPGS(tx)

	closed, err := accountRepo.Update(context.Background(), account)
	if err != nil {
		t.Fatalf("accountRepo.Update(context.Background(), %+v) returned error: %v", account, err)
	}

	return closed
}

// SeedUseTransaction records a successful USE transaction inside a test transaction.
func SeedUseTransaction(t *testing.T, tx dbpkg.SQLInterface, account domain.Account, amount int64) domain.Transaction {
	t.Helper()

	arg := domain.CreateTransactionParams{
		TransactionID:   randompkg.TransactionID(),
		AccountID:       account.ID,
		Type:            domain.TransactionUse,
		Result:          domain.TransactionSuccess,
		Amount:          amount,
		BalanceSnapshot: account.Balance - amount,
		TransactedAt:    time.Now(),
	}

	transactionRepo := transactionrepo.NewTxRepoPGS(tx)

	transaction, err := transactionRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("transactionRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return transaction
}
