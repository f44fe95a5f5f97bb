package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ledgerly/finance-ledger/internal/lib/errs"
	"github.com/ledgerly/finance-ledger/internal/lib/jwt"
	"github.com/ledgerly/finance-ledger/internal/lib/password"
	"github.com/ledgerly/finance-ledger/internal/models"
)

// Интерфейс репозитория пользователей
type UserRepository interface {
	RegisterUser(ctx context.Context, user models.User) (string, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UserExists(ctx context.Context, email string) (bool, error)
}

type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// AuthService реализует бизнес-логику авторизации и аутентификации.
// Записи пользователей кэшируются: они неизменяемы после регистрации.
type AuthService struct {
	users    UserRepository
	cache    Cache
	jwtMaker jwt.Maker
	cacheTTL time.Duration
	log      *slog.Logger
}

func NewAuthService(users UserRepository, cache Cache, jwtMaker jwt.Maker, cacheTTL time.Duration, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		cache:    cache,
		jwtMaker: jwtMaker,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// Register — создание нового пользователя с хэшированием пароля.
// Повторная регистрация email отклоняется.
func (s *AuthService) Register(ctx context.Context, name, email, rawPassword string) (string, error) {
	exists, err := s.users.UserExists(ctx, email)
	if err != nil {
		return "", err
	}
	if exists {
		return "", errs.Validationf("email already registered")
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		return "", err
	}
	s.log.Info("registered new user", slog.String("email", email))
	return uid, nil
}

// Login — проверка пароля и генерация JWT с email и uid.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, error) {
	user, err := s.getUser(ctx, email)
	if err != nil {
		return "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", errors.New("invalid credentials")
	}
	token, err := s.jwtMaker.GenerateToken(user.Email, user.UID)
	if err != nil {
		return "", err
	}
	return token, nil
}

// ValidateToken — проверка JWT и возврат пользователя и статуса валидности.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*models.User, bool, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, false, err
	}
	user := &models.User{
		Email: claims.Email,
		UID:   claims.UserUID,
	}
	return user, true, nil
}

func (s *AuthService) getUser(ctx context.Context, email string) (*models.User, error) {
	var user *models.User
	cacheKey := fmt.Sprintf("user:%s", email)
	found, err := s.cache.Get(cacheKey, &user)
	if err != nil {
		s.log.Warn("cache lookup failed", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found && user != nil {
		return user, nil
	}

	user, err = s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, user, s.cacheTTL); err != nil {
		s.log.Warn("failed to cache user", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return user, nil
}
