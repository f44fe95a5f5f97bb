package summary

import (
	"context"

	"github.com/ledgerly/finance-ledger/internal/models"
)

type Service interface {
	Summary(ctx context.Context, email string) (*models.Summary, error)
}
