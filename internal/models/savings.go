package models

import "github.com/shopspring/decimal"

// SavingsProfile — профиль автонакоплений пользователя, один на пользователя.
// SavedAmount пополняется отчислениями со списаний и атомарно обнуляется
// ежемесячным переводом.
type SavingsProfile struct {
	ID          int             // Идентификатор профиля
	UserEmail   string          // Email владельца (уникальный)
	Percentage  int             // Процент отчисления, 1..100
	SavedAmount decimal.Decimal // Накоплено и ещё не переведено (>=0)
}

// DummySavings используется для приёма настроек накоплений из JSON-запроса.
type DummySavings struct {
	Percentage int `json:"percentage" validate:"required,gte=1,lte=100"` // Процент отчисления
}

// AccruedSavings — пользователь с ненулевым накоплением, кандидат на перевод.
type AccruedSavings struct {
	UserEmail   string
	SavedAmount decimal.Decimal
}
