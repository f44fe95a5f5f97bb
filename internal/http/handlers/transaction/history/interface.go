package history

import (
	"context"

	"github.com/ledgerly/finance-ledger/internal/models"
)

type Service interface {
	ListHistory(ctx context.Context, email string, req models.DummyFilter) ([]*models.Transaction, error)
}
