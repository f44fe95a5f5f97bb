package apply

import (
	"context"

	"github.com/ledgerly/finance-ledger/internal/models"
)

type Service interface {
	Apply(ctx context.Context, email string, req models.DummyLoan) (*models.Loan, error)
}
