//go:build integration

package sessionrepo_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dvasilkov/ledgerbank/internal/domain"
	"github.com/dvasilkov/ledgerbank/internal/sessionrepo"
	"github.com/dvasilkov/ledgerbank/internal/test"
	"github.com/dvasilkov/ledgerbank/pkg/configpkg"
	"github.com/dvasilkov/ledgerbank/pkg/dbpkg"
	"github.com/dvasilkov/ledgerbank/pkg/randompkg"

	_ "github.com/lib/pq"
)

var (
	dbDriver string
	dbSource string
)

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	dbDriver = config.DBDriver
	dbSource = config.DBSource

	os.Exit(m.Run())
}

func TestCreate(t *testing.T) {
	t.Parallel()

	tx := dbpkg.SetupTX(t, dbDriver, dbSource)
	repo := sessionrepo.NewRepoPGS(tx)

	owner := test.SeedOwner(t, tx)

	arg := domain.CreateSessionParams{
		ID:           uuid.New(),
		Username:     owner.Username,
		RefreshToken: randompkg.String(32),
		UserAgent:    "test-agent",
		ClientIP:     "127.0.0.1",
		ExpiresAt:    time.Now().Add(time.Hour),
	}

	session, err := repo.Create(context.Background(), arg)
	require.NoError(t, err)

	require.Equal(t, arg.ID, session.ID)
	require.Equal(t, arg.Username, session.Username)
	require.Equal(t, arg.RefreshToken, session.RefreshToken)
	require.Equal(t, arg.UserAgent, session.UserAgent)
	require.Equal(t, arg.ClientIP, session.ClientIP)
	require.False(t, session.IsBlocked)
	require.WithinDuration(t, arg.ExpiresAt, session.ExpiresAt, time.Second)
	require.NotZero(t, session.CreatedAt)
}

func TestCreateUnknownOwner(t *testing.T) {
	t.Parallel()

	tx := dbpkg.SetupTX(t, dbDriver, dbSource)
	repo := sessionrepo.NewRepoPGS(tx)

	arg := domain.CreateSessionParams{
		ID:           uuid.New(),
		Username:     "nonexistent",
		RefreshToken: randompkg.String(32),
		ExpiresAt:    time.Now().Add(time.Hour),
	}

	_, err := repo.Create(context.Background(), arg)
	require.EqualError(t, err, domain.ErrOwnerNotFound.Error())
}

func TestGet(t *testing.T) {
	t.Parallel()

	tx := dbpkg.SetupTX(t, dbDriver, dbSource)
	repo := sessionrepo.NewRepoPGS(tx)

	owner := test.SeedOwner(t, tx)

	arg := domain.CreateSessionParams{
		ID:           uuid.New(),
		Username:     owner.Username,
		RefreshToken: randompkg.String(32),
		ExpiresAt:    time.Now().Add(time.Hour),
	}

	session1, err := repo.Create(context.Background(), arg)
	require.NoError(t, err)

	session2, err := repo.Get(context.Background(), session1.ID)
	require.NoError(t, err)

	require.Equal(t, session1.ID, session2.ID)
	require.Equal(t, session1.Username, session2.Username)
	require.Equal(t, session1.RefreshToken, session2.RefreshToken)
	require.WithinDuration(t, session1.ExpiresAt, session2.ExpiresAt, time.Second)

	_, err = repo.Get(context.Background(), uuid.New())
	require.EqualError(t, err, domain.ErrSessionNotFound.Error())
}
