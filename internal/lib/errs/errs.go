// Package errs определяет доменные ошибки движка леджера.
//
// Сервисы возвращают одну из ошибок-сентинелов (обёрнутую через %w),
// а HTTP-слой сопоставляет их с кодами ответа. Любая другая ошибка,
// пришедшая из хранилища, трактуется как ошибка персистентности.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation — входное значение нарушает документированное ограничение.
	// Операция не выполняется, вызывающая сторона может повторить с исправленным вводом.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound — пользователь, займ или профиль накоплений не существует по данному ключу.
	ErrNotFound = errors.New("not found")

	// ErrLoanOverdue — новые транзакции запрещены: активный займ просрочен.
	ErrLoanOverdue = errors.New("transactions blocked: overdue loan")

	// ErrNoActiveLoan — погашение запрошено, а гасить нечего.
	ErrNoActiveLoan = errors.New("no active loan to repay")
)

// Validationf оборачивает ErrValidation с пояснением, какое ограничение нарушено.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
