package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TxnKind — вид записи в журнале транзакций.
type TxnKind string

const (
	// KindDebit — поступление: увеличивает баланс.
	KindDebit TxnKind = "Debit"
	// KindCredit — списание: уменьшает баланс. Именно на списаниях
	// срабатывает отчисление в накопления.
	KindCredit TxnKind = "Credit"
)

// Transaction представляет запись журнала транзакций.
// Журнал append-only: записи никогда не изменяются и не удаляются,
// баланс пользователя — всегда знаковая сумма его журнала.
type Transaction struct {
	ID          int             // Идентификатор записи
	Kind        TxnKind         // Debit или Credit
	Amount      decimal.Decimal // Сумма (строго положительная)
	Description string          // Описание, до 100 символов
	UserEmail   string          // Email владельца
	Timestamp   time.Time       // Серверное время вставки
}

// DummyTransaction используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Transaction. Сумма приходит строкой,
// чтобы парсить её в decimal вручную.
type DummyTransaction struct {
	Kind        string `json:"kind" validate:"required,oneof=Debit Credit"` // Вид записи
	Amount      string `json:"amount" validate:"required"`                  // Сумма (>0)
	Description string `json:"description"`                                 // Описание
}
