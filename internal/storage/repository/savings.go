package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ledgerly/finance-ledger/internal/lib/errs"
	"github.com/ledgerly/finance-ledger/internal/models"
)

// UpsertSavingsProfile создаёт профиль накоплений или обновляет процент
// существующего. Накопленная сумма при повторной активации не трогается.
func (s *Storage) UpsertSavingsProfile(ctx context.Context, email string, percentage int) (int, error) {
	const op = "storage.UpsertSavingsProfile"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO savings (user_email, percentage, saved_amount)
			  VALUES ($1, $2, 0)
			  ON CONFLICT (user_email) DO UPDATE SET percentage = EXCLUDED.percentage
			  RETURNING id`
	var id int
	if err := s.DB.QueryRowContext(ctx, query, email, percentage).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// GetSavingsProfile возвращает профиль накоплений пользователя.
func (s *Storage) GetSavingsProfile(ctx context.Context, email string) (*models.SavingsProfile, error) {
	const op = "storage.GetSavingsProfile"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_email, percentage, saved_amount
			  FROM savings
			  WHERE user_email = $1`
	var profile models.SavingsProfile
	err := s.DB.QueryRowContext(ctx, query, email).Scan(
		&profile.ID, &profile.UserEmail, &profile.Percentage, &profile.SavedAmount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, errs.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &profile, nil
}

// ListAccruedSavings возвращает пользователей с ненулевыми накоплениями —
// кандидатов на ежемесячный перевод.
func (s *Storage) ListAccruedSavings(ctx context.Context) ([]*models.AccruedSavings, error) {
	const op = "storage.ListAccruedSavings"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT user_email, saved_amount
			  FROM savings
			  WHERE saved_amount > 0
			  ORDER BY user_email`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.AccruedSavings
	for rows.Next() {
		var item models.AccruedSavings
		if err := rows.Scan(&item.UserEmail, &item.SavedAmount); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// SweepUser переводит накопления пользователя в журнал: вставляет запись
// списания "Monthly savings transfer" и обнуляет накопленную сумму в одной
// транзакции базы. Строка профиля блокируется на время перевода, поэтому
// параллельное отчисление не может потеряться. Возвращает переведённую
// сумму; при пустых накоплениях перевод не выполняется и возвращается ноль.
func (s *Storage) SweepUser(ctx context.Context, email string) (decimal.Decimal, error) {
	const op = "storage.SweepUser"
	select {
	case <-ctx.Done():
		return decimal.Zero, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `SELECT saved_amount
			  FROM savings
			  WHERE user_email = $1
			  FOR UPDATE`
	var savedAmount decimal.Decimal
	err = tx.QueryRowContext(ctx, query, email).Scan(&savedAmount)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, fmt.Errorf("%s: %w", op, errs.ErrNotFound)
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", op, err)
	}

	if !savedAmount.IsPositive() {
		return decimal.Zero, nil
	}

	query = `INSERT INTO transactions (type, amount, description, user_email)
			 VALUES ($1, $2, $3, $4)`
	_, err = tx.ExecContext(ctx, query,
		models.KindCredit, savedAmount, "Monthly savings transfer", email)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", op, err)
	}

	query = `UPDATE savings
			 SET saved_amount = 0
			 WHERE user_email = $1`
	if _, err = tx.ExecContext(ctx, query, email); err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", op, err)
	}
	return savedAmount, nil
}
