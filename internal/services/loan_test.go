package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ledgerly/finance-ledger/internal/lib/errs"
	"github.com/ledgerly/finance-ledger/internal/models"
)

type LoanRepoMock struct{ mock.Mock }

func (m *LoanRepoMock) CreateLoan(ctx context.Context, loan models.Loan) (int, error) {
	args := m.Called(ctx, loan)
	return args.Int(0), args.Error(1)
}

func (m *LoanRepoMock) RepayLatestLoan(ctx context.Context, email string) (*models.RepaymentResult, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RepaymentResult), args.Error(1)
}

func (m *LoanRepoMock) SumOutstanding(ctx context.Context, email string) (decimal.Decimal, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *LoanRepoMock) ListActiveLoans(ctx context.Context, email string) ([]*models.Loan, error) {
	args := m.Called(ctx, email)
	return args.Get(0).([]*models.Loan), args.Error(1)
}

func (m *LoanRepoMock) ListAllActiveLoans(ctx context.Context) ([]*models.Loan, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Loan), args.Error(1)
}

func TestLoan_Apply(t *testing.T) {
	email := "test@example.com"

	tests := []struct {
		name        string
		req         models.DummyLoan
		setupMocks  func(repo *LoanRepoMock)
		wantErr     error
		checkResult func(t *testing.T, loan *models.Loan)
	}{
		{
			name: "loan terms are fixed at disbursement",
			req:  models.DummyLoan{Principal: "1200.00", RatePercent: "5", PeriodMonths: 12},
			setupMocks: func(repo *LoanRepoMock) {
				repo.On("CreateLoan", mock.Anything, mock.MatchedBy(func(loan models.Loan) bool {
					return loan.OutstandingBalance.Equal(decimal.RequireFromString("1260.00")) &&
						loan.MonthlyRepayment.Equal(decimal.RequireFromString("105.00")) &&
						loan.InterestRate.Equal(decimal.RequireFromString("0.05")) &&
						loan.Status == models.LoanActive
				})).Return(7, nil)
			},
			checkResult: func(t *testing.T, loan *models.Loan) {
				assert.Equal(t, 7, loan.ID)
				assert.True(t, loan.OutstandingBalance.Equal(decimal.RequireFromString("1260.00")))
			},
		},
		{
			name:       "zero principal is rejected",
			req:        models.DummyLoan{Principal: "0", RatePercent: "5", PeriodMonths: 12},
			setupMocks: func(_ *LoanRepoMock) {},
			wantErr:    errs.ErrValidation,
		},
		{
			name:       "negative rate is rejected",
			req:        models.DummyLoan{Principal: "1200", RatePercent: "-1", PeriodMonths: 12},
			setupMocks: func(_ *LoanRepoMock) {},
			wantErr:    errs.ErrValidation,
		},
		{
			name:       "zero period is rejected",
			req:        models.DummyLoan{Principal: "1200", RatePercent: "5", PeriodMonths: 0},
			setupMocks: func(_ *LoanRepoMock) {},
			wantErr:    errs.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(LoanRepoMock)
			tt.setupMocks(repo)

			svc := NewLoanService(repo, NewNoopLogger())
			loan, err := svc.Apply(context.Background(), email, tt.req)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				tt.checkResult(t, loan)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestLoan_Repay(t *testing.T) {
	email := "test@example.com"

	t.Run("repayment result is passed through", func(t *testing.T) {
		repo := new(LoanRepoMock)
		repo.On("RepayLatestLoan", mock.Anything, email).Return(&models.RepaymentResult{
			LoanID:      7,
			Paid:        decimal.RequireFromString("105.00"),
			Outstanding: decimal.RequireFromString("1155.00"),
			Status:      models.LoanActive,
		}, nil)

		svc := NewLoanService(repo, NewNoopLogger())
		result, err := svc.Repay(context.Background(), email)
		require.NoError(t, err)
		assert.Equal(t, 7, result.LoanID)
		assert.Equal(t, models.LoanActive, result.Status)
	})

	t.Run("no active loan", func(t *testing.T) {
		repo := new(LoanRepoMock)
		repo.On("RepayLatestLoan", mock.Anything, email).Return(nil, errs.ErrNoActiveLoan)

		svc := NewLoanService(repo, NewNoopLogger())
		_, err := svc.Repay(context.Background(), email)
		require.ErrorIs(t, err, errs.ErrNoActiveLoan)
	})
}

func TestLoan_UpcomingReminders(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	loans := []*models.Loan{
		{
			// Срок сегодня — напоминание нужно.
			ID: 1, UserEmail: "a@example.com", RepaymentPeriodMonths: 12,
			CreatedAt:          time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC),
			OutstandingBalance: decimal.RequireFromString("105.00"),
		},
		{
			// Срок в будущем — напоминание нужно.
			ID: 2, UserEmail: "b@example.com", RepaymentPeriodMonths: 6,
			CreatedAt:          time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			OutstandingBalance: decimal.RequireFromString("660.00"),
		},
		{
			// Срок уже прошёл — напоминание не шлётся.
			ID: 3, UserEmail: "c@example.com", RepaymentPeriodMonths: 3,
			CreatedAt:          time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			OutstandingBalance: decimal.RequireFromString("50.00"),
		},
	}

	repo := new(LoanRepoMock)
	repo.On("ListAllActiveLoans", mock.Anything).Return(loans, nil)

	svc := NewLoanService(repo, NewNoopLogger())
	reminders, err := svc.UpcomingReminders(context.Background(), now)
	require.NoError(t, err)

	require.Len(t, reminders, 2)
	assert.Equal(t, 1, reminders[0].LoanID)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), reminders[0].DueDate)
	assert.Equal(t, 2, reminders[1].LoanID)
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), reminders[1].DueDate)
}
