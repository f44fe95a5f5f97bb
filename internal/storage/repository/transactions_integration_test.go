package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerly/finance-ledger/internal/models"
)

func TestStorage_SumBalance(t *testing.T) {
	baseDate := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		email string
		want  string
		setup func(t *testing.T, factory *TestDataFactory)
	}{
		{
			name:  "empty journal gives zero balance",
			email: "empty@example.com",
			want:  "0",
			setup: func(_ *testing.T, _ *TestDataFactory) {},
		},
		{
			name:  "debits add and credits subtract",
			email: "test@example.com",
			want:  "60.50",
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateTransaction(t, models.KindDebit, "100.00", "Salary", "test@example.com", baseDate)
				factory.CreateTransaction(t, models.KindCredit, "39.50", "Groceries", "test@example.com", baseDate.Add(time.Hour))
			},
		},
		{
			name:  "other users journals do not leak",
			email: "test@example.com",
			want:  "100.00",
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateTransaction(t, models.KindDebit, "100.00", "Salary", "test@example.com", baseDate)
				factory.CreateTransaction(t, models.KindCredit, "70.00", "Rent", "other@example.com", baseDate)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			tt.setup(t, factory)

			got, err := storage.SumBalance(context.Background(), tt.email)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"balance = %s, want %s", got, tt.want)
		})
	}
}

func TestStorage_ListTransactions(t *testing.T) {
	baseDate := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	kindCredit := models.KindCredit
	amountMin := decimal.RequireFromString("50")

	seed := func(t *testing.T, factory *TestDataFactory) {
		factory.CreateTransaction(t, models.KindDebit, "100.00", "Salary", "test@example.com", baseDate)
		factory.CreateTransaction(t, models.KindCredit, "40.00", "Groceries", "test@example.com", baseDate.AddDate(0, 0, 1))
		factory.CreateTransaction(t, models.KindCredit, "75.00", "Utilities", "test@example.com", baseDate.AddDate(0, 0, 2))
	}

	tests := []struct {
		name      string
		filter    models.TxnFilter
		wantDescs []string
	}{
		{
			name:      "default sort is newest first",
			filter:    models.TxnFilter{},
			wantDescs: []string{"Utilities", "Groceries", "Salary"},
		},
		{
			name:      "filter by kind",
			filter:    models.TxnFilter{Kind: &kindCredit},
			wantDescs: []string{"Utilities", "Groceries"},
		},
		{
			name:      "filter by minimum amount",
			filter:    models.TxnFilter{AmountMin: &amountMin},
			wantDescs: []string{"Utilities", "Salary"},
		},
		{
			name:      "sort by amount ascending",
			filter:    models.TxnFilter{SortField: models.SortByAmount, SortOrder: "asc"},
			wantDescs: []string{"Groceries", "Utilities", "Salary"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			seed(t, factory)

			got, err := storage.ListTransactions(context.Background(), "test@example.com", tt.filter)
			require.NoError(t, err)

			descs := make([]string, 0, len(got))
			for _, txn := range got {
				descs = append(descs, txn.Description)
			}
			assert.Equal(t, tt.wantDescs, descs)
		})
	}
}

func TestStorage_SaveCreditWithSkim(t *testing.T) {
	txn := models.Transaction{
		Kind:        models.KindCredit,
		Amount:      decimal.RequireFromString("200.00"),
		Description: "Shopping",
		UserEmail:   "test@example.com",
	}

	t.Run("credit and skim are committed together", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		factory.CreateSavingsProfile(t, "test@example.com", 10, "5.00")

		id, err := storage.SaveCreditWithSkim(context.Background(), txn, decimal.RequireFromString("20.00"))
		require.NoError(t, err)
		assert.Positive(t, id)

		factory.VerifyJournalCount(t, "test@example.com", "Shopping", 1)
		factory.VerifySavedAmount(t, "test@example.com", "25.00")
	})

	t.Run("credit without savings profile still succeeds", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)

		_, err := storage.SaveCreditWithSkim(context.Background(), txn, decimal.RequireFromString("20.00"))
		require.NoError(t, err)

		factory.VerifyJournalCount(t, "test@example.com", "Shopping", 1)
	})
}
