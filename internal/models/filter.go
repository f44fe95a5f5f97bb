package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Поля сортировки выборки истории.
const (
	SortByDate   = "date"
	SortByAmount = "amount"
)

// TxnFilter — структурированный фильтр выборки истории транзакций.
// Каждое заполненное поле сужает результат конъюнктивным предикатом,
// nil-поля ограничений не накладывают. Хранилище транслирует фильтр
// в параметризованный запрос; текст фильтра в SQL не интерполируется.
type TxnFilter struct {
	DateFrom  *time.Time       // Нижняя граница даты (включительно)
	DateTo    *time.Time       // Верхняя граница даты (включительно)
	Kind      *TxnKind         // Debit или Credit
	AmountMin *decimal.Decimal // Нижняя граница суммы
	AmountMax *decimal.Decimal // Верхняя граница суммы
	SortField string           // "date" или "amount"; пусто — сортировка по умолчанию
	SortOrder string           // "asc" или "desc"
}

// DummyFilter используется для приёма фильтра из JSON-запроса.
// Даты приходят строками формата 2006-01-02, суммы — строками decimal.
type DummyFilter struct {
	DateFrom  string `json:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo    string `json:"date_to" validate:"omitempty,datetime=2006-01-02"`
	Kind      string `json:"kind" validate:"omitempty,oneof=Debit Credit"`
	AmountMin string `json:"amount_min"`
	AmountMax string `json:"amount_max"`
	SortField string `json:"sort_field" validate:"omitempty,oneof=date amount"`
	SortOrder string `json:"sort_order" validate:"omitempty,oneof=asc desc"`
}
