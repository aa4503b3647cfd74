// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/dvasilkov/ledgerbank/internal/domain"
	"github.com/dvasilkov/ledgerbank/pkg/dbpkg"
	"github.com/dvasilkov/ledgerbank/pkg/errorspkg"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

func scanAccount(row *sql.Row) (domain.Account, error) {
	var (
		a              domain.Account
		unregisteredAt sql.NullTime
	)

	err := row.Scan(
		&a.ID,
		&a.OwnerID,
		&a.Number,
		&a.Status,
		&a.Balance,
		&a.RegisteredAt,
		&unregisteredAt,
	)

	if unregisteredAt.Valid {
		a.UnregisteredAt = unregisteredAt.Time
	}

	return a, err
}

const createQuery = `
INSERT INTO
	accounts (owner_id, number, status, balance)
VALUES
	($1, $2, $3, $4)
RETURNING id, owner_id, number, status, balance, registered_at, unregistered_at
`

// Create creates the account and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, arg.OwnerID, arg.Number, domain.AccountInUse, arg.Balance)

	a, err := scanAccount(row)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "accounts_owner_id_fkey":
				return a, domain.ErrOwnerNotFound
			case "accounts_number_key":
				return a, domain.ErrAccountNumberTaken
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT
	id, owner_id, number, status, balance, registered_at, unregistered_at
FROM accounts
WHERE id = $1
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getByNumberQuery = `
SELECT
	id, owner_id, number, status, balance, registered_at, unregistered_at
FROM accounts
WHERE number = $1
`

// GetByNumber returns the account with the given account number.
func (r *RepoPGS) GetByNumber(ctx context.Context, number string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, getByNumberQuery, number))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getNewestQuery = `
SELECT
	id, owner_id, number, status, balance, registered_at, unregistered_at
FROM accounts
ORDER BY id DESC
LIMIT 1
`

// GetNewest returns the most recently created account.
func (r *RepoPGS) GetNewest(ctx context.Context) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, getNewestQuery))
	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const countQuery = `
SELECT count(*)
FROM accounts
WHERE owner_id = $1
`

// Count returns the number of accounts ever recorded for the given owner,
// closed accounts included.
func (r *RepoPGS) Count(ctx context.Context, ownerID int64) (int32, error) {
	l := zerolog.Ctx(ctx)

	var count int32

	err := r.db.QueryRowContext(ctx, countQuery, ownerID).Scan(&count)
	if err != nil {
		l.Error().Err(err).Send()
		return 0, errorspkg.ErrInternal
	}

	return count, nil
}

const listInUseQuery = `
SELECT
	id, owner_id, number, status, balance, registered_at, unregistered_at
FROM accounts
WHERE owner_id = $1 AND status = $2
ORDER BY id
`

// ListInUse returns the open accounts held by the given owner.
func (r *RepoPGS) ListInUse(ctx context.Context, ownerID int64) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listInUseQuery, ownerID, domain.AccountInUse)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		var (
			a              domain.Account
			unregisteredAt sql.NullTime
		)

		err := rows.Scan(&a.ID, &a.OwnerID, &a.Number, &a.Status, &a.Balance, &a.RegisteredAt, &unregisteredAt)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		if unregisteredAt.Valid {
			a.UnregisteredAt = unregisteredAt.Time
		}

		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const addBalanceQuery = `
UPDATE accounts
SET balance = balance + $1
WHERE id = $2
RETURNING id, owner_id, number, status, balance, registered_at, unregistered_at
`

// AddBalance changes the account's balance by the given signed amount and
// returns the changed account. The balance check constraint rejects a debit
// past zero, so a concurrent debit cannot overdraw the account.
func (r *RepoPGS) AddBalance(ctx context.Context, amount int64, id int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, addBalanceQuery, amount, id)

	a, err := scanAccount(row)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_balance_check" {
				return a, domain.ErrAmountExceedsBalance
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const updateQuery = `
UPDATE accounts
SET status = $2, balance = $3, unregistered_at = $4
WHERE id = $1
RETURNING id, owner_id, number, status, balance, registered_at, unregistered_at
`

// Update persists the mutable account fields and returns the saved account.
func (r *RepoPGS) Update(ctx context.Context, account domain.Account) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	var unregisteredAt sql.NullTime
	if !account.UnregisteredAt.IsZero() {
		unregisteredAt = sql.NullTime{Time: account.UnregisteredAt, Valid: true}
	}

	row := r.db.QueryRowContext(ctx, updateQuery, account.ID, account.Status, account.Balance, unregisteredAt)

	a, err := scanAccount(row)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_balance_check" {
				return a, domain.ErrAmountExceedsBalance
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}
