package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestTotalAndMonthlyRepayment(t *testing.T) {
	total := TotalRepayment(dec("1200"), dec("0.05"))
	assert.True(t, total.Equal(dec("1260")), "got %s", total)

	monthly := MonthlyRepayment(total, 12)
	assert.True(t, monthly.Equal(dec("105")), "got %s", monthly)
}

func TestSkim(t *testing.T) {
	tests := []struct {
		name       string
		amount     string
		percentage int
		want       string
	}{
		{name: "ten percent", amount: "50", percentage: 10, want: "5"},
		{name: "full amount", amount: "33.33", percentage: 100, want: "33.33"},
		{name: "one percent", amount: "200", percentage: 1, want: "2"},
		{name: "rounds to cents", amount: "0.33", percentage: 5, want: "0.02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Skim(dec(tt.amount), tt.percentage)
			assert.True(t, got.Equal(dec(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

// Погашение займа с балансом B и платежом M должно завершиться
// ровно за ceil(B/M) платежей, последний — частичный.
func TestNextRepayment_ConvergesInCeilSteps(t *testing.T) {
	outstanding := dec("1260")
	monthly := dec("105")

	var steps int
	for {
		payment, remaining, repaid := NextRepayment(outstanding, monthly)
		steps++
		assert.True(t, payment.LessThanOrEqual(monthly))
		outstanding = remaining
		if repaid {
			break
		}
	}
	assert.Equal(t, 12, steps)
	assert.True(t, outstanding.LessThanOrEqual(RepaidEpsilon))
}

func TestNextRepayment_LastPaymentIsRemainder(t *testing.T) {
	payment, remaining, repaid := NextRepayment(dec("40"), dec("105"))

	assert.True(t, payment.Equal(dec("40")))
	assert.True(t, remaining.IsZero())
	assert.True(t, repaid)
}

func TestNextRepayment_EpsilonBoundary(t *testing.T) {
	// остаток 0.01 после платежа считается погашенным
	_, remaining, repaid := NextRepayment(dec("105.01"), dec("105"))
	assert.True(t, remaining.Equal(dec("0.01")))
	assert.True(t, repaid)

	// остаток 0.02 — ещё нет
	_, remaining, repaid = NextRepayment(dec("105.02"), dec("105"))
	assert.True(t, remaining.Equal(dec("0.02")))
	assert.False(t, repaid)
}
