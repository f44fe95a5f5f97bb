package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ledgerly/finance-ledger/internal/lib/errs"
	"github.com/ledgerly/finance-ledger/internal/models"
)

type SavingsRepoMock struct{ mock.Mock }

func (m *SavingsRepoMock) UpsertSavingsProfile(ctx context.Context, email string, percentage int) (int, error) {
	args := m.Called(ctx, email, percentage)
	return args.Int(0), args.Error(1)
}

func (m *SavingsRepoMock) GetSavingsProfile(ctx context.Context, email string) (*models.SavingsProfile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SavingsProfile), args.Error(1)
}

func (m *SavingsRepoMock) ListAccruedSavings(ctx context.Context) ([]*models.AccruedSavings, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.AccruedSavings), args.Error(1)
}

func (m *SavingsRepoMock) SweepUser(ctx context.Context, email string) (decimal.Decimal, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func TestSavings_Activate(t *testing.T) {
	email := "test@example.com"

	t.Run("valid percentage is stored", func(t *testing.T) {
		repo := new(SavingsRepoMock)
		repo.On("UpsertSavingsProfile", mock.Anything, email, 10).Return(1, nil)

		svc := NewSavingsService(repo, NewNoopLogger())
		id, err := svc.Activate(context.Background(), email, models.DummySavings{Percentage: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, id)
		repo.AssertExpectations(t)
	})

	t.Run("boundary percentages 1 and 100 are accepted", func(t *testing.T) {
		repo := new(SavingsRepoMock)
		repo.On("UpsertSavingsProfile", mock.Anything, email, 1).Return(2, nil)
		repo.On("UpsertSavingsProfile", mock.Anything, email, 100).Return(3, nil)

		svc := NewSavingsService(repo, NewNoopLogger())

		id, err := svc.Activate(context.Background(), email, models.DummySavings{Percentage: 1})
		require.NoError(t, err)
		assert.Equal(t, 2, id)

		id, err = svc.Activate(context.Background(), email, models.DummySavings{Percentage: 100})
		require.NoError(t, err)
		assert.Equal(t, 3, id)
		repo.AssertExpectations(t)
	})

	t.Run("percentage out of range is rejected", func(t *testing.T) {
		repo := new(SavingsRepoMock)
		svc := NewSavingsService(repo, NewNoopLogger())

		_, err := svc.Activate(context.Background(), email, models.DummySavings{Percentage: 0})
		require.ErrorIs(t, err, errs.ErrValidation)

		_, err = svc.Activate(context.Background(), email, models.DummySavings{Percentage: 101})
		require.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestSavings_SweepAll(t *testing.T) {
	t.Run("one failed user does not stop the rest", func(t *testing.T) {
		repo := new(SavingsRepoMock)
		repo.On("ListAccruedSavings", mock.Anything).Return([]*models.AccruedSavings{
			{UserEmail: "a@example.com", SavedAmount: decimal.RequireFromString("10.00")},
			{UserEmail: "b@example.com", SavedAmount: decimal.RequireFromString("20.00")},
			{UserEmail: "c@example.com", SavedAmount: decimal.RequireFromString("30.00")},
		}, nil)
		repo.On("SweepUser", mock.Anything, "a@example.com").Return(decimal.RequireFromString("10.00"), nil)
		repo.On("SweepUser", mock.Anything, "b@example.com").Return(decimal.Zero, errors.New("deadlock"))
		repo.On("SweepUser", mock.Anything, "c@example.com").Return(decimal.RequireFromString("30.00"), nil)

		svc := NewSavingsService(repo, NewNoopLogger())
		swept, err := svc.SweepAll(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, swept)
		repo.AssertExpectations(t)
	})

	t.Run("nothing accrued", func(t *testing.T) {
		repo := new(SavingsRepoMock)
		repo.On("ListAccruedSavings", mock.Anything).Return([]*models.AccruedSavings{}, nil)

		svc := NewSavingsService(repo, NewNoopLogger())
		swept, err := svc.SweepAll(context.Background())
		require.NoError(t, err)
		assert.Zero(t, swept)
	})
}
