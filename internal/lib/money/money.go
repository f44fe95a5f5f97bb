// Package money содержит денежную арифметику леджера: расчёт аннуитетного
// погашения займа и процентного отчисления в накопления.
//
// Все суммы считаются в decimal с точностью до цента, чтобы исключить
// накопление ошибок двоичной плавающей точки при многократных списаниях.
package money

import "github.com/shopspring/decimal"

// RepaidEpsilon — порог округления, при котором остаток займа считается погашенным.
var RepaidEpsilon = decimal.RequireFromString("0.01")

var hundred = decimal.NewFromInt(100)

// TotalRepayment возвращает полную сумму обязательства: principal × (1 + rate),
// где rate — доля (0.05 для 5%).
func TotalRepayment(principal, rate decimal.Decimal) decimal.Decimal {
	return principal.Mul(decimal.NewFromInt(1).Add(rate)).Round(2)
}

// MonthlyRepayment делит полную сумму обязательства поровну на период в месяцах.
func MonthlyRepayment(total decimal.Decimal, periodMonths int) decimal.Decimal {
	return total.DivRound(decimal.NewFromInt(int64(periodMonths)), 2)
}

// Skim возвращает отчисление в накопления: amount × percentage/100.
func Skim(amount decimal.Decimal, percentage int) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(int64(percentage))).DivRound(hundred, 2)
}

// NextRepayment вычисляет очередной платёж по займу: min(outstanding, monthly).
// Возвращает сумму платежа, новый остаток и признак полного погашения
// (остаток не превышает RepaidEpsilon).
func NextRepayment(outstanding, monthly decimal.Decimal) (payment, remaining decimal.Decimal, repaid bool) {
	payment = decimal.Min(outstanding, monthly)
	remaining = outstanding.Sub(payment)
	return payment, remaining, remaining.LessThanOrEqual(RepaidEpsilon)
}
