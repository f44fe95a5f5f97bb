package reminders

import (
	"context"
	"time"

	"github.com/ledgerly/finance-ledger/internal/models"
)

type Service interface {
	RemindersForUser(ctx context.Context, email string, now time.Time) ([]*models.LoanReminder, error)
}
