package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerly/finance-ledger/internal/lib/errs"
	"github.com/ledgerly/finance-ledger/internal/lib/money"
	"github.com/ledgerly/finance-ledger/internal/models"
)

// CreateLoan вставляет займ и в той же транзакции базы записывает в журнал
// поступление "Loan disbursement" на тело займа. Возвращает ID займа.
func (s *Storage) CreateLoan(ctx context.Context, loan models.Loan) (int, error) {
	const op = "storage.CreateLoan"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `INSERT INTO loans (user_email, principal_amount, interest_rate, repayment_period_months,
				  outstanding_balance, monthly_repayment, status, next_payment_date)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	var newID int
	err = tx.QueryRowContext(ctx, query,
		loan.UserEmail, loan.Principal, loan.InterestRate, loan.RepaymentPeriodMonths,
		loan.OutstandingBalance, loan.MonthlyRepayment, loan.Status, loan.NextPaymentDate).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query = `INSERT INTO transactions (type, amount, description, user_email)
			 VALUES ($1, $2, $3, $4)`
	_, err = tx.ExecContext(ctx, query,
		models.KindDebit, loan.Principal, "Loan disbursement", loan.UserEmail)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// RepayLatestLoan проводит один платёж по последнему активному займу
// пользователя: блокирует строку займа, списывает min(остаток, ежемесячный
// платёж) записью "Loan repayment" и уменьшает остаток в одной транзакции
// базы. Когда остаток опускается до порога округления, займ помечается
// погашенным. Без активного займа возвращает ErrNoActiveLoan.
func (s *Storage) RepayLatestLoan(ctx context.Context, email string) (*models.RepaymentResult, error) {
	const op = "storage.RepayLatestLoan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `SELECT id, outstanding_balance, monthly_repayment
			  FROM loans
			  WHERE user_email = $1
			    AND status = 'active'
			    AND outstanding_balance > 0
			  ORDER BY created_at DESC
			  LIMIT 1
			  FOR UPDATE`
	var loanID int
	var outstanding, monthly decimal.Decimal
	err = tx.QueryRowContext(ctx, query, email).Scan(&loanID, &outstanding, &monthly)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, errs.ErrNoActiveLoan)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	payment, remaining, repaid := money.NextRepayment(outstanding, monthly)
	status := models.LoanActive
	if repaid {
		status = models.LoanRepaid
	}

	query = `INSERT INTO transactions (type, amount, description, user_email)
			 VALUES ($1, $2, $3, $4)`
	_, err = tx.ExecContext(ctx, query,
		models.KindCredit, payment, "Loan repayment", email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query = `UPDATE loans
			 SET outstanding_balance = $1, status = $2
			 WHERE id = $3`
	if _, err = tx.ExecContext(ctx, query, remaining, status, loanID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.RepaymentResult{
		LoanID:      loanID,
		Paid:        payment,
		Outstanding: remaining,
		Status:      status,
	}, nil
}

// SumOutstanding возвращает суммарный остаток по активным займам пользователя.
func (s *Storage) SumOutstanding(ctx context.Context, email string) (decimal.Decimal, error) {
	const op = "storage.SumOutstanding"
	select {
	case <-ctx.Done():
		return decimal.Zero, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COALESCE(SUM(outstanding_balance), 0)
			  FROM loans
			  WHERE user_email = $1
			    AND status = 'active'
			    AND outstanding_balance > 0`
	var total decimal.Decimal
	if err := s.DB.QueryRowContext(ctx, query, email).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}

// CountOverdueLoans подсчитывает активные займы пользователя с ненулевым
// остатком, у которых срок погашения (created_at + период) уже наступил.
// Ненулевой результат блокирует новые транзакции пользователя.
func (s *Storage) CountOverdueLoans(ctx context.Context, email string, now time.Time) (int, error) {
	const op = "storage.CountOverdueLoans"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*)
			  FROM loans
			  WHERE user_email = $1
			    AND status = 'active'
			    AND outstanding_balance > 0
			    AND created_at + (repayment_period_months || ' months')::interval <= $2`
	var count int
	if err := s.DB.QueryRowContext(ctx, query, email, now).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// ListActiveLoans возвращает активные займы пользователя, новые первыми.
func (s *Storage) ListActiveLoans(ctx context.Context, email string) ([]*models.Loan, error) {
	const op = "storage.ListActiveLoans"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_email, principal_amount, interest_rate, repayment_period_months,
				  outstanding_balance, monthly_repayment, status, created_at, next_payment_date
			  FROM loans
			  WHERE user_email = $1
			    AND status = 'active'
			  ORDER BY created_at DESC`
	return s.scanLoans(ctx, op, query, email)
}

// ListAllActiveLoans возвращает все активные займы системы —
// источник ежедневных напоминаний о сроках погашения.
func (s *Storage) ListAllActiveLoans(ctx context.Context) ([]*models.Loan, error) {
	const op = "storage.ListAllActiveLoans"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_email, principal_amount, interest_rate, repayment_period_months,
				  outstanding_balance, monthly_repayment, status, created_at, next_payment_date
			  FROM loans
			  WHERE status = 'active'
			  ORDER BY created_at`
	return s.scanLoans(ctx, op, query)
}

func (s *Storage) scanLoans(ctx context.Context, op, query string, args ...any) ([]*models.Loan, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Loan
	for rows.Next() {
		var item models.Loan
		if err := rows.Scan(&item.ID, &item.UserEmail, &item.Principal, &item.InterestRate,
			&item.RepaymentPeriodMonths, &item.OutstandingBalance, &item.MonthlyRepayment,
			&item.Status, &item.CreatedAt, &item.NextPaymentDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
