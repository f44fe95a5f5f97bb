package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanStatus — состояние займа. Единственный допустимый переход:
// active → repaid, обратного пути нет.
type LoanStatus string

const (
	// LoanActive — займ выдан и ещё не погашен.
	LoanActive LoanStatus = "active"
	// LoanRepaid — остаток достиг порога округления; терминальное состояние.
	LoanRepaid LoanStatus = "repaid"
)

// Loan представляет займ пользователя.
// OutstandingBalance монотонно не возрастает, пока займ активен.
type Loan struct {
	ID                    int             // Идентификатор займа
	UserEmail             string          // Email владельца
	Principal             decimal.Decimal // Тело займа (>0)
	InterestRate          decimal.Decimal // Ставка долей: 0.05 для 5%
	RepaymentPeriodMonths int             // Период погашения в месяцах (>0)
	OutstandingBalance    decimal.Decimal // Остаток: стартует с principal×(1+rate)
	MonthlyRepayment      decimal.Decimal // Ежемесячный платёж: остаток на момент выдачи / период
	Status                LoanStatus      // active или repaid
	CreatedAt             time.Time       // Дата выдачи
	NextPaymentDate       *time.Time      // Зарезервировано, пока не используется
}

// DummyLoan используется для приёма заявки на займ из JSON-запроса.
// Ставка приходит в процентах (5 для 5%), как её вводит пользователь.
type DummyLoan struct {
	Principal    string `json:"principal" validate:"required"`       // Тело займа (>0)
	RatePercent  string `json:"rate_percent" validate:"required"`    // Ставка в процентах
	PeriodMonths int    `json:"period_months" validate:"required"`   // Период в месяцах (>0)
}

// RepaymentResult — итог одного платежа по займу.
type RepaymentResult struct {
	LoanID      int             // Какой займ гасился
	Paid        decimal.Decimal // Сумма платежа: min(остаток, ежемесячный платёж)
	Outstanding decimal.Decimal // Новый остаток
	Status      LoanStatus      // Статус после платежа
}

// LoanReminder — напоминание о предстоящем сроке погашения займа.
type LoanReminder struct {
	Email       string          `json:"email"`       // Кому напоминаем
	LoanID      int             `json:"loan_id"`     // Займ
	DueDate     time.Time       `json:"due_date"`    // Дата полного срока: created_at + период
	Outstanding decimal.Decimal `json:"outstanding"` // Текущий остаток
}
