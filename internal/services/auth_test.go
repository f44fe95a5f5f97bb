package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ledgerly/finance-ledger/internal/lib/errs"
	"github.com/ledgerly/finance-ledger/internal/lib/jwt"
	"github.com/ledgerly/finance-ledger/internal/lib/password"
	"github.com/ledgerly/finance-ledger/internal/models"
)

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *UserRepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) UserExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}

func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func newAuthService(users *UserRepoMock, cache *CacheMock) *AuthService {
	maker := jwt.NewJWTMaker("test-secret", time.Hour)
	return NewAuthService(users, cache, maker, time.Minute, NewNoopLogger())
}

func TestAuth_Register(t *testing.T) {
	t.Run("new user is registered", func(t *testing.T) {
		users := new(UserRepoMock)
		users.On("UserExists", mock.Anything, "test@example.com").Return(false, nil)
		users.On("RegisterUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
			return user.Email == "test@example.com" && user.Name == "Test" &&
				password.CompareHash(user.PasswordHash, "Str0ngPass!") == nil
		})).Return("uid-1", nil)

		svc := newAuthService(users, new(CacheMock))
		uid, err := svc.Register(context.Background(), "Test", "test@example.com", "Str0ngPass!")
		require.NoError(t, err)
		assert.Equal(t, "uid-1", uid)
		users.AssertExpectations(t)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		users := new(UserRepoMock)
		users.On("UserExists", mock.Anything, "test@example.com").Return(true, nil)

		svc := newAuthService(users, new(CacheMock))
		_, err := svc.Register(context.Background(), "Test", "test@example.com", "Str0ngPass!")
		require.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestAuth_Login(t *testing.T) {
	hashed, err := password.GetHash("Str0ngPass!")
	require.NoError(t, err)
	user := &models.User{UID: "uid-1", Email: "test@example.com", PasswordHash: hashed}

	t.Run("valid credentials produce a token", func(t *testing.T) {
		users := new(UserRepoMock)
		users.On("GetUserByEmail", mock.Anything, "test@example.com").Return(user, nil)
		cache := new(CacheMock)
		cache.On("Get", "user:test@example.com", mock.Anything).Return(false, nil)
		cache.On("Set", "user:test@example.com", user, time.Minute).Return(nil)

		svc := newAuthService(users, cache)
		token, err := svc.Login(context.Background(), "test@example.com", "Str0ngPass!")
		require.NoError(t, err)

		parsed, ok, err := svc.ValidateToken(context.Background(), token)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "test@example.com", parsed.Email)
		assert.Equal(t, "uid-1", parsed.UID)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		users := new(UserRepoMock)
		users.On("GetUserByEmail", mock.Anything, "test@example.com").Return(user, nil)
		cache := new(CacheMock)
		cache.On("Get", "user:test@example.com", mock.Anything).Return(false, nil)
		cache.On("Set", "user:test@example.com", user, time.Minute).Return(nil)

		svc := newAuthService(users, cache)
		_, err := svc.Login(context.Background(), "test@example.com", "wrong")
		require.EqualError(t, err, "invalid credentials")
	})

	t.Run("unknown email", func(t *testing.T) {
		users := new(UserRepoMock)
		users.On("GetUserByEmail", mock.Anything, "missing@example.com").Return(nil, errs.ErrNotFound)
		cache := new(CacheMock)
		cache.On("Get", "user:missing@example.com", mock.Anything).Return(false, nil)

		svc := newAuthService(users, cache)
		_, err := svc.Login(context.Background(), "missing@example.com", "whatever")
		require.ErrorIs(t, err, errs.ErrNotFound)
	})
}
