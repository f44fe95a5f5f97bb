package export

import (
	"context"
	"io"

	"github.com/ledgerly/finance-ledger/internal/models"
)

type Service interface {
	ExportCSV(ctx context.Context, email string, req models.DummyFilter, w io.Writer) error
}
