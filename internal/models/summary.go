package models

import "github.com/shopspring/decimal"

// Summary — сводка финансового состояния пользователя: текущий баланс,
// накоплено к переводу и суммарный остаток по активным займам.
type Summary struct {
	Balance         decimal.Decimal `json:"balance"`
	SavedAmount     decimal.Decimal `json:"saved_amount"`
	LoanOutstanding decimal.Decimal `json:"loan_outstanding"`
}
