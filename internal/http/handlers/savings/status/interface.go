package status

import (
	"context"

	"github.com/ledgerly/finance-ledger/internal/models"
)

type Service interface {
	Profile(ctx context.Context, email string) (*models.SavingsProfile, error)
}
