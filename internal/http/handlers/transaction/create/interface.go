package create

import (
	"context"

	"github.com/ledgerly/finance-ledger/internal/models"
)

type Service interface {
	RecordTransaction(ctx context.Context, email string, req models.DummyTransaction) (int, error)
}
