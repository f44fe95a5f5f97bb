package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerly/finance-ledger/internal/lib/errs"
	"github.com/ledgerly/finance-ledger/internal/lib/money"
	"github.com/ledgerly/finance-ledger/internal/models"
)

type LoanRepository interface {
	CreateLoan(ctx context.Context, loan models.Loan) (int, error)
	RepayLatestLoan(ctx context.Context, email string) (*models.RepaymentResult, error)
	SumOutstanding(ctx context.Context, email string) (decimal.Decimal, error)
	ListActiveLoans(ctx context.Context, email string) ([]*models.Loan, error)
	ListAllActiveLoans(ctx context.Context) ([]*models.Loan, error)
}

// LoanService реализует выдачу и погашение займов и напоминания о сроках.
type LoanService struct {
	repo LoanRepository
	log  *slog.Logger
}

func NewLoanService(repo LoanRepository, log *slog.Logger) *LoanService {
	return &LoanService{
		repo: repo,
		log:  log,
	}
}

// Apply выдаёт займ: фиксирует сумму к возврату principal × (1 + ставка),
// равный ежемесячный платёж и зачисляет тело займа на баланс.
func (s *LoanService) Apply(ctx context.Context, email string, req models.DummyLoan) (*models.Loan, error) {
	principal, err := decimal.NewFromString(req.Principal)
	if err != nil {
		return nil, errs.Validationf("invalid principal: %s", req.Principal)
	}
	if !principal.IsPositive() {
		return nil, errs.Validationf("principal must be positive")
	}
	ratePercent, err := decimal.NewFromString(req.RatePercent)
	if err != nil {
		return nil, errs.Validationf("invalid rate: %s", req.RatePercent)
	}
	if ratePercent.IsNegative() {
		return nil, errs.Validationf("rate must not be negative")
	}
	if req.PeriodMonths <= 0 {
		return nil, errs.Validationf("period must be positive")
	}

	rate := ratePercent.Div(decimal.NewFromInt(100))
	total := money.TotalRepayment(principal, rate)
	monthly := money.MonthlyRepayment(total, req.PeriodMonths)

	loan := models.Loan{
		UserEmail:             email,
		Principal:             principal,
		InterestRate:          rate,
		RepaymentPeriodMonths: req.PeriodMonths,
		OutstandingBalance:    total,
		MonthlyRepayment:      monthly,
		Status:                models.LoanActive,
	}

	id, err := s.repo.CreateLoan(ctx, loan)
	if err != nil {
		return nil, err
	}
	loan.ID = id
	loan.CreatedAt = time.Now()

	s.log.Info("loan disbursed", slog.Int("id", id), slog.String("email", email),
		slog.String("principal", principal.String()), slog.String("total", total.String()))
	return &loan, nil
}

// Repay проводит один платёж по последнему активному займу пользователя.
func (s *LoanService) Repay(ctx context.Context, email string) (*models.RepaymentResult, error) {
	result, err := s.repo.RepayLatestLoan(ctx, email)
	if err != nil {
		return nil, err
	}
	s.log.Info("loan repayment", slog.Int("loan_id", result.LoanID),
		slog.String("paid", result.Paid.String()),
		slog.String("outstanding", result.Outstanding.String()),
		slog.String("status", string(result.Status)))
	return result, nil
}

// OutstandingTotal возвращает суммарный остаток по активным займам.
func (s *LoanService) OutstandingTotal(ctx context.Context, email string) (decimal.Decimal, error) {
	return s.repo.SumOutstanding(ctx, email)
}

// RemindersForUser возвращает напоминания о займах пользователя,
// срок которых ещё не прошёл.
func (s *LoanService) RemindersForUser(ctx context.Context, email string, now time.Time) ([]*models.LoanReminder, error) {
	loans, err := s.repo.ListActiveLoans(ctx, email)
	if err != nil {
		return nil, err
	}
	return buildReminders(loans, now), nil
}

// UpcomingReminders возвращает напоминания по всем активным займам системы —
// источник ежедневной рассылки.
func (s *LoanService) UpcomingReminders(ctx context.Context, now time.Time) ([]*models.LoanReminder, error) {
	loans, err := s.repo.ListAllActiveLoans(ctx)
	if err != nil {
		return nil, err
	}
	return buildReminders(loans, now), nil
}

// buildReminders отбирает займы, у которых срок погашения
// (дата выдачи плюс период) наступает сегодня или позже.
func buildReminders(loans []*models.Loan, now time.Time) []*models.LoanReminder {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var result []*models.LoanReminder
	for _, loan := range loans {
		dueDate := loan.CreatedAt.AddDate(0, loan.RepaymentPeriodMonths, 0)
		dueDay := time.Date(dueDate.Year(), dueDate.Month(), dueDate.Day(), 0, 0, 0, 0, dueDate.Location())
		if dueDay.Before(today) {
			continue
		}
		result = append(result, &models.LoanReminder{
			Email:       loan.UserEmail,
			LoanID:      loan.ID,
			DueDate:     dueDay,
			Outstanding: loan.OutstandingBalance,
		})
	}
	return result
}
