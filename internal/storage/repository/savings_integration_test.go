package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerly/finance-ledger/internal/lib/errs"
)

func TestStorage_UpsertSavingsProfile(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)

	_, err := storage.UpsertSavingsProfile(context.Background(), "test@example.com", 10)
	require.NoError(t, err)

	// Имитируем накопления между активациями.
	_, err = storage.DB.Exec(`UPDATE savings SET saved_amount = 42.00 WHERE user_email = $1`,
		"test@example.com")
	require.NoError(t, err)

	// Повторная активация меняет процент, но не трогает накопленное.
	_, err = storage.UpsertSavingsProfile(context.Background(), "test@example.com", 25)
	require.NoError(t, err)

	profile, err := storage.GetSavingsProfile(context.Background(), "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, 25, profile.Percentage)
	factory.VerifySavedAmount(t, "test@example.com", "42.00")
}

func TestStorage_GetSavingsProfile_NotFound(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	_, err := storage.GetSavingsProfile(context.Background(), "missing@example.com")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestStorage_SweepUser(t *testing.T) {
	t.Run("accrued savings move to journal and reset", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		factory.CreateSavingsProfile(t, "test@example.com", 10, "75.00")

		swept, err := storage.SweepUser(context.Background(), "test@example.com")
		require.NoError(t, err)
		assert.True(t, swept.Equal(decimal.RequireFromString("75.00")), "swept = %s", swept)

		factory.VerifyJournalCount(t, "test@example.com", "Monthly savings transfer", 1)
		factory.VerifySavedAmount(t, "test@example.com", "0.00")
	})

	t.Run("empty savings produce no journal entry", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		factory.CreateSavingsProfile(t, "test@example.com", 10, "0.00")

		swept, err := storage.SweepUser(context.Background(), "test@example.com")
		require.NoError(t, err)
		assert.True(t, swept.IsZero())

		factory.VerifyJournalCount(t, "test@example.com", "Monthly savings transfer", 0)
	})

	t.Run("missing profile returns not found", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		_, err := storage.SweepUser(context.Background(), "missing@example.com")
		require.ErrorIs(t, err, errs.ErrNotFound)
	})
}

func TestStorage_ListAccruedSavings(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreateSavingsProfile(t, "a@example.com", 10, "12.00")
	factory.CreateSavingsProfile(t, "b@example.com", 20, "0.00")
	factory.CreateSavingsProfile(t, "c@example.com", 30, "7.50")

	got, err := storage.ListAccruedSavings(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a@example.com", got[0].UserEmail)
	assert.Equal(t, "c@example.com", got[1].UserEmail)
}
