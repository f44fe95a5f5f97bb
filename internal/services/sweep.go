package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/ledgerly/finance-ledger/internal/lib/monthend"
	"github.com/ledgerly/finance-ledger/internal/lib/sl"
)

type Sweeper interface {
	SweepAll(ctx context.Context) (int, error)
}

// SweepService запускает ежемесячный перевод накоплений: ежедневный тик,
// перевод выполняется только в последний день месяца.
type SweepService struct {
	savings Sweeper
	log     *slog.Logger
	grace   time.Duration
	now     func() time.Time
}

func NewSweepService(savings Sweeper, log *slog.Logger, grace time.Duration) *SweepService {
	return &SweepService{
		savings: savings,
		log:     log,
		grace:   grace,
		now:     time.Now,
	}
}

// Run блокируется до отмены контекста. Первый тик приходится на последний
// день текущего месяца, дальше тики идут раз в сутки. Уже начатый перевод
// при остановке дорабатывает в пределах grace-периода.
func (s *SweepService) Run(ctx context.Context) {
	delay := monthend.UntilMonthEnd(s.now())
	s.log.Info("sweep scheduler started", slog.Duration("first_tick_in", delay))

	timer := time.NewTimer(delay)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("sweep scheduler stopped")
			return
		case <-timer.C:
		}

		if monthend.IsLastDayOfMonth(s.now()) {
			s.runSweep(ctx)
		}
		timer.Reset(24 * time.Hour)
	}
}

func (s *SweepService) runSweep(ctx context.Context) {
	s.log.Info("starting monthly savings sweep")

	runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.grace)
	defer cancel()

	count, err := s.savings.SweepAll(runCtx)
	if err != nil {
		s.log.Error("monthly savings sweep failed", sl.Err(err))
		return
	}
	s.log.Info("monthly savings sweep finished", slog.Int("users_swept", count))
}
