package activate

import (
	"context"

	"github.com/ledgerly/finance-ledger/internal/models"
)

type Service interface {
	Activate(ctx context.Context, email string, req models.DummySavings) (int, error)
}
