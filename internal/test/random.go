package test

import (
	"time"

	"github.com/dvasilkov/ledgerbank/internal/domain"
	"github.com/dvasilkov/ledgerbank/pkg/randompkg"
)

// RandomAccount returns a random open account held by the given owner.
func RandomAccount(ownerID int64) domain.Account {
	return domain.Account{
		ID:           randompkg.Int64Between(1, 100),
		OwnerID:      ownerID,
		Number:       randompkg.AccountNumber(),
		Status:       domain.AccountInUse,
		Balance:      randompkg.Balance(),
		RegisteredAt: time.Now().Truncate(time.Second).UTC(),
	}
}
