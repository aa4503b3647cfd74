// Package ownerservice manages business logic layer of account owners.
package ownerservice

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dvasilkov/ledgerbank/internal/domain"
	"github.com/dvasilkov/ledgerbank/pkg/errorspkg"
	"github.com/dvasilkov/ledgerbank/pkg/passpkg"
)

// Repo provides data access layer interface needed by owner service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package ownerservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateOwnerParams) (domain.Owner, error)
	GetByUsername(ctx context.Context, username string) (domain.Owner, error)
}

// Service facilitates owner service layer logic.
type Service struct {
	repo Repo
}

// New returns owner service struct to manage owner business logic.
func New(or Repo) *Service {
	return &Service{
		repo: or,
	}
}

// NewOwnerWithoutPassword returns owner data with credentials removed.
func NewOwnerWithoutPassword(o domain.Owner) domain.OwnerWithoutPassword {
	return domain.OwnerWithoutPassword{
		ID:        o.ID,
		Username:  o.Username,
		Name:      o.Name,
		CreatedAt: o.CreatedAt,
	}
}

// Create registers an owner with a hashed password.
func (s *Service) Create(ctx context.Context, username, password, name string) (domain.OwnerWithoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var result domain.OwnerWithoutPassword

	hashedPassword, err := passpkg.Hash(password)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	arg := domain.CreateOwnerParams{
		Username:       username,
		HashedPassword: hashedPassword,
		Name:           name,
	}

	owner, err := s.repo.Create(ctx, arg)
	if err != nil {
		return result, err
	}

	result = NewOwnerWithoutPassword(owner)

	return result, nil
}

// Get returns the owner profile for the given username.
func (s *Service) Get(ctx context.Context, username string) (domain.OwnerWithoutPassword, error) {
	owner, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return domain.OwnerWithoutPassword{}, err
	}

	return NewOwnerWithoutPassword(owner), nil
}

// CheckPassword checks if the password is valid for the given username.
func (s *Service) CheckPassword(ctx context.Context, username, password string) (domain.OwnerWithoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var result domain.OwnerWithoutPassword

	owner, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return result, err
	}

	if err := passpkg.Check(password, owner.HashedPassword); err != nil {
		l.Warn().Err(err).Send()
		return result, domain.ErrWrongPassword
	}

	result = NewOwnerWithoutPassword(owner)

	return result, nil
}
