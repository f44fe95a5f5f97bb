package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ledgerly/finance-ledger/internal/models"
)

// SaveTransaction вставляет запись журнала и возвращает её ID.
// Журнал append-only, методов обновления и удаления записей нет.
func (s *Storage) SaveTransaction(ctx context.Context, txn models.Transaction) (int, error) {
	const op = "storage.SaveTransaction"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO transactions (type, amount, description, user_email)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		txn.Kind, txn.Amount, txn.Description, txn.UserEmail).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// SaveCreditWithSkim вставляет запись списания и в той же транзакции базы
// прибавляет отчисление к накоплениям пользователя. Либо фиксируются обе
// записи, либо ни одна. Отсутствие профиля накоплений ошибкой не считается:
// отчисление просто некуда прибавить.
func (s *Storage) SaveCreditWithSkim(ctx context.Context, txn models.Transaction, skim decimal.Decimal) (int, error) {
	const op = "storage.SaveCreditWithSkim"
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

	query := `INSERT INTO transactions (type, amount, description, user_email)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID int
	err = tx.QueryRowContext(ctx, query,
		txn.Kind, txn.Amount, txn.Description, txn.UserEmail).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if skim.IsPositive() {
		query = `UPDATE savings
				 SET saved_amount = saved_amount + $1
				 WHERE user_email = $2`
		if _, err = tx.ExecContext(ctx, query, skim, txn.UserEmail); err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// SumBalance вычисляет баланс пользователя как знаковую сумму журнала:
// поступления с плюсом, списания с минусом. Пустой журнал даёт ноль.
func (s *Storage) SumBalance(ctx context.Context, email string) (decimal.Decimal, error) {
	const op = "storage.SumBalance"
	select {
	case <-ctx.Done():
		return decimal.Zero, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COALESCE(SUM(CASE WHEN type = 'Debit' THEN amount ELSE -amount END), 0)
			  FROM transactions
			  WHERE user_email = $1`
	var balance decimal.Decimal
	if err := s.DB.QueryRowContext(ctx, query, email).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", op, err)
	}
	return balance, nil
}

// ListTransactions возвращает историю пользователя с учётом фильтра.
// Заполненные поля фильтра добавляются конъюнктивными предикатами,
// значения передаются только плейсхолдерами. Сортировка по умолчанию —
// по дате, новые записи первыми.
func (s *Storage) ListTransactions(ctx context.Context, email string, filter models.TxnFilter) ([]*models.Transaction, error) {
	const op = "storage.ListTransactions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	conditions := []string{"user_email = $1"}
	args := []any{email}

	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		conditions = append(conditions, fmt.Sprintf("timestamp >= $%d", len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		conditions = append(conditions, fmt.Sprintf("timestamp <= $%d", len(args)))
	}
	if filter.Kind != nil {
		args = append(args, *filter.Kind)
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)))
	}
	if filter.AmountMin != nil {
		args = append(args, *filter.AmountMin)
		conditions = append(conditions, fmt.Sprintf("amount >= $%d", len(args)))
	}
	if filter.AmountMax != nil {
		args = append(args, *filter.AmountMax)
		conditions = append(conditions, fmt.Sprintf("amount <= $%d", len(args)))
	}

	orderColumn := "timestamp"
	if filter.SortField == models.SortByAmount {
		orderColumn = "amount"
	}
	orderDirection := "DESC"
	if filter.SortOrder == "asc" {
		orderDirection = "ASC"
	}

	query := fmt.Sprintf(`SELECT id, type, amount, description, user_email, timestamp
			  FROM transactions
			  WHERE %s
			  ORDER BY %s %s`,
		strings.Join(conditions, " AND "), orderColumn, orderDirection)

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Transaction
	for rows.Next() {
		var item models.Transaction
		if err := rows.Scan(&item.ID, &item.Kind, &item.Amount, &item.Description,
			&item.UserEmail, &item.Timestamp); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
