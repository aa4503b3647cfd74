// Package transactionrepo manages repository layer of transactions.
package transactionrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/dvasilkov/ledgerbank/internal/accountrepo"
	"github.com/dvasilkov/ledgerbank/internal/domain"
	"github.com/dvasilkov/ledgerbank/pkg/dbpkg"
	"github.com/dvasilkov/ledgerbank/pkg/errorspkg"
)

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns transaction RepoPGS bound to an open db transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// NewRepoPGS returns transaction RepoPGS with a connection to start db transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

const createQuery = `
INSERT INTO transactions (
	transaction_id,
	account_id,
	type,
	result,
	amount,
	balance_snapshot,
	transacted_at
) VALUES (
	$1, $2, $3, $4, $5, $6, $7
) RETURNING id
`

// Create records the transaction and then returns it.
// The recorded row is immutable; there is no update counterpart.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateTransactionParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	var accountID sql.NullInt64
	if arg.AccountID != 0 {
		accountID = sql.NullInt64{Int64: arg.AccountID, Valid: true}
	}

	t := domain.Transaction{
		TransactionID:   arg.TransactionID,
		AccountID:       arg.AccountID,
		Type:            arg.Type,
		Result:          arg.Result,
		Amount:          arg.Amount,
		BalanceSnapshot: arg.BalanceSnapshot,
		TransactedAt:    arg.TransactedAt,
	}

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.TransactionID,
		accountID,
		arg.Type,
		arg.Result,
		arg.Amount,
		arg.BalanceSnapshot,
		arg.TransactedAt,
	)

	if err := row.Scan(&t.ID); err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "transactions_account_id_fkey":
				return t, domain.ErrAccountNotFound
			case "transactions_transaction_id_key":
				return t, errorspkg.ErrInternal
			}
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const getQuery = `
SELECT
	t.id,
	t.transaction_id,
	t.account_id,
	a.number,
	t.type,
	t.result,
	t.amount,
	t.balance_snapshot,
	t.transacted_at
FROM transactions t
LEFT JOIN accounts a ON a.id = t.account_id
WHERE t.transaction_id = $1
`

// Get returns the transaction with the given transaction id.
func (r *RepoPGS) Get(ctx context.Context, transactionID string) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, transactionID)

	var (
		t             domain.Transaction
		accountID     sql.NullInt64
		accountNumber sql.NullString
	)

	err := row.Scan(
		&t.ID,
		&t.TransactionID,
		&accountID,
		&accountNumber,
		&t.Type,
		&t.Result,
		&t.Amount,
		&t.BalanceSnapshot,
		&t.TransactedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return t, domain.ErrTransactionNotFound
		}

		return t, errorspkg.ErrInternal
	}

	t.AccountID = accountID.Int64
	t.AccountNumber = accountNumber.String

	return t, nil
}

// Record applies the account balance change and records the transaction
// within a single db transaction. Either both effects commit or neither does.
//
// The balance change is applied as a relative delta so concurrent debits
// never overwrite each other; the accounts balance check rejects the one
// that would overdraw. The recorded snapshot is the balance the update
// returns, not the caller's view of it.
func (r *RepoPGS) Record(ctx context.Context, account domain.Account, arg domain.CreateTransactionParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	var result domain.Transaction

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	accountRepo := accountrepo.NewRepoPGS(tx)
	transactionRepo := NewTxRepoPGS(tx)

	delta := arg.Amount
	if arg.Type == domain.TransactionUse {
		delta = -arg.Amount
	}

	updated, err := accountRepo.AddBalance(ctx, delta, account.ID)
	if err != nil {
		l.Error().Err(err).Send()
		return result, err
	}

	arg.BalanceSnapshot = updated.Balance

	result, err = transactionRepo.Create(ctx, arg)
	if err != nil {
		l.Error().Err(err).Send()
		return result, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	result.AccountNumber = account.Number

	return result, nil
}
