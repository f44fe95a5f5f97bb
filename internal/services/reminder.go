package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/ledgerly/finance-ledger/internal/lib/sl"
	"github.com/ledgerly/finance-ledger/internal/models"
	"github.com/ledgerly/finance-ledger/internal/rabbitmq"
)

type ReminderSource interface {
	UpcomingReminders(ctx context.Context, now time.Time) ([]*models.LoanReminder, error)
}

// ReminderService раз в сутки публикует напоминания о сроках погашения
// займов в брокер уведомлений.
type ReminderService struct {
	loans ReminderSource
	log   *slog.Logger
	now   func() time.Time
}

func NewReminderService(loans ReminderSource, log *slog.Logger) *ReminderService {
	return &ReminderService{
		loans: loans,
		log:   log,
		now:   time.Now,
	}
}

// PublishLoanReminders публикует напоминания сразу и затем раз в сутки,
// пока не отменён контекст.
func (s *ReminderService) PublishLoanReminders(ctx context.Context, channel *amqp.Channel) {
	s.runPublishLoanReminders(ctx, channel)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runPublishLoanReminders(ctx, channel)
		}
	}
}

func (s *ReminderService) runPublishLoanReminders(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting service to find upcoming loan repayments")
	reminders, err := s.loans.UpcomingReminders(ctx, s.now())
	if err != nil {
		s.log.Error("failed to find loans", sl.Err(err))
		return
	}
	if len(reminders) == 0 {
		s.log.Info("no upcoming loan repayments found")
		return
	}
	s.log.Info("found upcoming loan repayments", "count", len(reminders))
	for _, reminder := range reminders {
		err = rabbitmq.PublishMessage(channel, rabbitmq.ExchangeName, rabbitmq.LoanReminderKey, reminder)
		if err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}
