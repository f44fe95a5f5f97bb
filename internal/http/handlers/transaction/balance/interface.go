package balance

import (
	"context"

	"github.com/shopspring/decimal"
)

type Service interface {
	GetBalance(ctx context.Context, email string) (decimal.Decimal, error)
}
