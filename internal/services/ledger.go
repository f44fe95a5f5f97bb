// Package services содержит бизнес-логику леджера: журнал транзакций,
// автонакопления, займы, авторизацию и фоновые процессы.
package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerly/finance-ledger/internal/lib/errs"
	"github.com/ledgerly/finance-ledger/internal/lib/money"
	"github.com/ledgerly/finance-ledger/internal/models"
)

// Списания крупнее этого лимита отклоняются. Поступления лимитом не ограничены.
var maxCreditAmount = decimal.NewFromInt(1_000_000)

const maxDescriptionLen = 100

type LedgerRepository interface {
	SaveTransaction(ctx context.Context, txn models.Transaction) (int, error)
	SaveCreditWithSkim(ctx context.Context, txn models.Transaction, skim decimal.Decimal) (int, error)
	SumBalance(ctx context.Context, email string) (decimal.Decimal, error)
	ListTransactions(ctx context.Context, email string, filter models.TxnFilter) ([]*models.Transaction, error)
	GetSavingsProfile(ctx context.Context, email string) (*models.SavingsProfile, error)
	CountOverdueLoans(ctx context.Context, email string, now time.Time) (int, error)
	SumOutstanding(ctx context.Context, email string) (decimal.Decimal, error)
}

// LedgerService реализует операции над журналом транзакций пользователя.
type LedgerService struct {
	repo LedgerRepository
	log  *slog.Logger
}

func NewLedgerService(repo LedgerRepository, log *slog.Logger) *LedgerService {
	return &LedgerService{
		repo: repo,
		log:  log,
	}
}

// RecordTransaction валидирует и записывает транзакцию в журнал.
// Просроченный займ блокирует любые новые записи. Поступления принимаются
// после базовых проверок; списания дополнительно ограничены лимитом суммы
// и достаточностью баланса, и именно на них срабатывает отчисление
// в накопления.
func (s *LedgerService) RecordTransaction(ctx context.Context, email string, req models.DummyTransaction) (int, error) {
	overdue, err := s.repo.CountOverdueLoans(ctx, email, time.Now())
	if err != nil {
		return 0, err
	}
	if overdue > 0 {
		return 0, errs.ErrLoanOverdue
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return 0, errs.Validationf("invalid amount: %s", req.Amount)
	}
	if !amount.IsPositive() {
		return 0, errs.Validationf("amount must be positive")
	}
	if len([]rune(req.Description)) > maxDescriptionLen {
		return 0, errs.Validationf("description exceeds %d characters", maxDescriptionLen)
	}

	txn := models.Transaction{
		Kind:        models.TxnKind(req.Kind),
		Amount:      amount,
		Description: req.Description,
		UserEmail:   email,
	}

	if txn.Kind == models.KindDebit {
		id, err := s.repo.SaveTransaction(ctx, txn)
		if err != nil {
			return 0, err
		}
		s.log.Info("recorded debit", slog.Int("id", id), slog.String("amount", amount.String()))
		return id, nil
	}

	if amount.GreaterThan(maxCreditAmount) {
		return 0, errs.Validationf("amount exceeds limit of %s", maxCreditAmount)
	}
	balance, err := s.repo.SumBalance(ctx, email)
	if err != nil {
		return 0, err
	}
	if amount.GreaterThan(balance) {
		return 0, errs.Validationf("insufficient balance")
	}

	skim := decimal.Zero
	profile, err := s.repo.GetSavingsProfile(ctx, email)
	switch {
	case errors.Is(err, errs.ErrNotFound):
		// Накопления не активированы, отчисления нет.
	case err != nil:
		return 0, err
	default:
		skim = money.Skim(amount, profile.Percentage)
	}

	id, err := s.repo.SaveCreditWithSkim(ctx, txn, skim)
	if err != nil {
		return 0, err
	}
	s.log.Info("recorded credit", slog.Int("id", id),
		slog.String("amount", amount.String()), slog.String("skim", skim.String()))
	return id, nil
}

// GetBalance возвращает текущий баланс — знаковую сумму журнала.
func (s *LedgerService) GetBalance(ctx context.Context, email string) (decimal.Decimal, error) {
	return s.repo.SumBalance(ctx, email)
}

// ListHistory возвращает историю транзакций с учётом фильтра.
func (s *LedgerService) ListHistory(ctx context.Context, email string, req models.DummyFilter) ([]*models.Transaction, error) {
	filter, err := parseFilter(req)
	if err != nil {
		return nil, err
	}
	return s.repo.ListTransactions(ctx, email, *filter)
}

// Summary возвращает сводку: баланс, накопления и остаток по займам.
func (s *LedgerService) Summary(ctx context.Context, email string) (*models.Summary, error) {
	balance, err := s.repo.SumBalance(ctx, email)
	if err != nil {
		return nil, err
	}

	saved := decimal.Zero
	profile, err := s.repo.GetSavingsProfile(ctx, email)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}
	if profile != nil {
		saved = profile.SavedAmount
	}

	outstanding, err := s.repo.SumOutstanding(ctx, email)
	if err != nil {
		return nil, err
	}

	return &models.Summary{
		Balance:         balance,
		SavedAmount:     saved,
		LoanOutstanding: outstanding,
	}, nil
}

// ExportCSV выгружает историю транзакций в CSV.
func (s *LedgerService) ExportCSV(ctx context.Context, email string, req models.DummyFilter, w io.Writer) error {
	txns, err := s.ListHistory(ctx, email, req)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "type", "amount", "description", "timestamp"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, txn := range txns {
		record := []string{
			fmt.Sprintf("%d", txn.ID),
			string(txn.Kind),
			txn.Amount.StringFixed(2),
			txn.Description,
			txn.Timestamp.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func parseFilter(req models.DummyFilter) (*models.TxnFilter, error) {
	var filter models.TxnFilter

	if req.DateFrom != "" {
		from, err := time.Parse("2006-01-02", req.DateFrom)
		if err != nil {
			return nil, errs.Validationf("invalid date_from: %s", req.DateFrom)
		}
		filter.DateFrom = &from
	}
	if req.DateTo != "" {
		to, err := time.Parse("2006-01-02", req.DateTo)
		if err != nil {
			return nil, errs.Validationf("invalid date_to: %s", req.DateTo)
		}
		// Верхняя граница включает весь день.
		to = to.Add(24*time.Hour - time.Nanosecond)
		filter.DateTo = &to
	}
	if req.Kind != "" {
		kind := models.TxnKind(req.Kind)
		if kind != models.KindDebit && kind != models.KindCredit {
			return nil, errs.Validationf("invalid kind: %s", req.Kind)
		}
		filter.Kind = &kind
	}
	if req.AmountMin != "" {
		min, err := decimal.NewFromString(req.AmountMin)
		if err != nil {
			return nil, errs.Validationf("invalid amount_min: %s", req.AmountMin)
		}
		filter.AmountMin = &min
	}
	if req.AmountMax != "" {
		max, err := decimal.NewFromString(req.AmountMax)
		if err != nil {
			return nil, errs.Validationf("invalid amount_max: %s", req.AmountMax)
		}
		filter.AmountMax = &max
	}
	filter.SortField = req.SortField
	filter.SortOrder = req.SortOrder

	return &filter, nil
}
