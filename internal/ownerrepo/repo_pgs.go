// Package ownerrepo manages repository layer of account owners.
package ownerrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/dvasilkov/ledgerbank/internal/domain"
	"github.com/dvasilkov/ledgerbank/pkg/dbpkg"
	"github.com/dvasilkov/ledgerbank/pkg/errorspkg"
)

// RepoPGS facilitates owner repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns owner RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO owners (
	username,
	hashed_password,
	name
) VALUES (
	$1, $2, $3
) RETURNING id, username, hashed_password, name, created_at
`

// Create creates the owner and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateOwnerParams) (domain.Owner, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.Username,
		arg.HashedPassword,
		arg.Name,
	)

	var o domain.Owner

	err := row.Scan(
		&o.ID,
		&o.Username,
		&o.HashedPassword,
		&o.Name,
		&o.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "owners_username_key" {
				return o, domain.ErrUsernameAlreadyExists
			}
		}

		return o, errorspkg.ErrInternal
	}

	return o, nil
}

const getQuery = `
SELECT
	id, username, hashed_password, name, created_at
FROM owners
WHERE id = $1
`

// Get returns the owner with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Owner, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var o domain.Owner

	err := row.Scan(
		&o.ID,
		&o.Username,
		&o.HashedPassword,
		&o.Name,
		&o.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return o, domain.ErrOwnerNotFound
		}

		return o, errorspkg.ErrInternal
	}

	return o, nil
}

const getByUsernameQuery = `
SELECT
	id, username, hashed_password, name, created_at
FROM owners
WHERE username = $1
`

// GetByUsername returns the owner with the given username.
func (r *RepoPGS) GetByUsername(ctx context.Context, username string) (domain.Owner, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getByUsernameQuery, username)

	var o domain.Owner

	err := row.Scan(
		&o.ID,
		&o.Username,
		&o.HashedPassword,
		&o.Name,
		&o.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return o, domain.ErrOwnerNotFound
		}

		return o, errorspkg.ErrInternal
	}

	return o, nil
}
