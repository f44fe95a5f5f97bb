package repay

import (
	"context"

	"github.com/ledgerly/finance-ledger/internal/models"
)

type Service interface {
	Repay(ctx context.Context, email string) (*models.RepaymentResult, error)
}
