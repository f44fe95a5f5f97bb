package services

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/ledgerly/finance-ledger/internal/lib/errs"
	"github.com/ledgerly/finance-ledger/internal/lib/sl"
	"github.com/ledgerly/finance-ledger/internal/models"
)

type SavingsRepository interface {
	UpsertSavingsProfile(ctx context.Context, email string, percentage int) (int, error)
	GetSavingsProfile(ctx context.Context, email string) (*models.SavingsProfile, error)
	ListAccruedSavings(ctx context.Context) ([]*models.AccruedSavings, error)
	SweepUser(ctx context.Context, email string) (decimal.Decimal, error)
}

// SavingsService реализует автонакопления: активацию профиля
// и ежемесячный перевод накопленного в журнал.
type SavingsService struct {
	repo SavingsRepository
	log  *slog.Logger
}

func NewSavingsService(repo SavingsRepository, log *slog.Logger) *SavingsService {
	return &SavingsService{
		repo: repo,
		log:  log,
	}
}

// Activate включает автонакопления или меняет процент отчисления.
// Уже накопленная сумма при смене процента сохраняется.
func (s *SavingsService) Activate(ctx context.Context, email string, req models.DummySavings) (int, error) {
	if req.Percentage < 1 || req.Percentage > 100 {
		return 0, errs.Validationf("percentage must be between 1 and 100")
	}
	id, err := s.repo.UpsertSavingsProfile(ctx, email, req.Percentage)
	if err != nil {
		return 0, err
	}
	s.log.Info("savings activated", slog.String("email", email), slog.Int("percentage", req.Percentage))
	return id, nil
}

// Profile возвращает профиль накоплений пользователя.
func (s *SavingsService) Profile(ctx context.Context, email string) (*models.SavingsProfile, error) {
	return s.repo.GetSavingsProfile(ctx, email)
}

// SweepAll переводит накопления всех пользователей с ненулевой суммой.
// Перевод каждого пользователя атомарен сам по себе; сбой одного
// не останавливает остальных. Возвращает число успешных переводов.
func (s *SavingsService) SweepAll(ctx context.Context) (int, error) {
	accrued, err := s.repo.ListAccruedSavings(ctx)
	if err != nil {
		return 0, err
	}
	if len(accrued) == 0 {
		s.log.Info("no accrued savings to sweep")
		return 0, nil
	}

	var swept int
	for _, item := range accrued {
		amount, err := s.repo.SweepUser(ctx, item.UserEmail)
		if err != nil {
			s.log.Error("failed to sweep user", slog.String("email", item.UserEmail), sl.Err(err))
			continue
		}
		if amount.IsPositive() {
			swept++
			s.log.Info("swept savings", slog.String("email", item.UserEmail),
				slog.String("amount", amount.String()))
		}
	}
	return swept, nil
}
