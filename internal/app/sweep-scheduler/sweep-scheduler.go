// Package sweepscheduler собирает фоновое приложение: ежемесячный перевод
// накоплений, публикацию напоминаний о займах и их отправку по почте.
package sweepscheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/streadway/amqp"

	"github.com/ledgerly/finance-ledger/internal/config"
	"github.com/ledgerly/finance-ledger/internal/lib/smtp"
	"github.com/ledgerly/finance-ledger/internal/rabbitmq"
	"github.com/ledgerly/finance-ledger/internal/services"
	"github.com/ledgerly/finance-ledger/internal/storage/repository"
)

// App — приложение планировщика со всеми его зависимостями.
type App struct {
	sweepService    *services.SweepService
	reminderService *services.ReminderService
	senderService   *services.SenderService
	conn            *amqp.Connection
	ch              *amqp.Channel
	db              *repository.Storage
	logger          *slog.Logger
}

func waitForDB(db *repository.Storage) error {
	for range 10 {
		err := repository.CheckDatabaseReady(db)
		if err == nil {
			return nil
		}
		time.Sleep(3 * time.Second)
	}
	return fmt.Errorf("database not ready after retries")
}

// New создает новый экземпляр приложения планировщика.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.MaxRetries, cfg.RetryDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
	}

	ch, err := rabbitmq.SetupChannel(conn)
	if err != nil {
		closeResources(nil, conn, logger)
		return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
	}

	db, err := repository.New(cfg.StoragePath)
	if err != nil {
		closeResources(ch, conn, logger)
		return nil, fmt.Errorf("failed to connect storage: %w", err)
	}

	if err := waitForDB(db); err != nil {
		closeResources(ch, conn, logger)
		return nil, err
	}

	savingsService := services.NewSavingsService(db, logger)
	loanService := services.NewLoanService(db, logger)
	transport := smtp.NewTransport(cfg.SMTP, logger)

	return &App{
		sweepService:    services.NewSweepService(savingsService, logger, cfg.GracePeriod),
		reminderService: services.NewReminderService(loanService, logger),
		senderService:   services.NewSenderService(transport, logger),
		conn:            conn,
		ch:              ch,
		db:              db,
		logger:          logger,
	}, nil
}

func closeResources(ch *amqp.Channel, conn *amqp.Connection, logger *slog.Logger) {
	if ch != nil {
		if err := ch.Close(); err != nil {
			logger.Error("failed to close channel", "error", err)
		}
	}
	if conn != nil {
		if err := conn.Close(); err != nil {
			logger.Error("failed to close connection", "error", err)
		}
	}
}

// Run запускает планировщик переводов, публикацию напоминаний
// и потребителя очереди напоминаний. Ресурсы закрываются только после
// остановки фоновых циклов: начатый перевод дорабатывает в пределах
// grace-периода до закрытия пула соединений.
func (a *App) Run(ctx context.Context) error {
	if err := rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.LoanReminderQueue, a.senderService.SendLoanReminder); err != nil {
		a.logger.Error("failed to start loan reminder consumer", slog.Any("err", err))
		return err
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		a.sweepService.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		a.reminderService.PublishLoanReminders(ctx, a.ch)
	}()

	<-ctx.Done()

	a.logger.Info("shutting down sweep scheduler")
	wg.Wait()

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	a.db.DB.Close()

	return nil
}
