// Package financeledger собирает HTTP-приложение учёта личных финансов:
// хранилище, кэш, сервисы и маршруты.
package financeledger

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/ledgerly/finance-ledger/internal/cache"
	"github.com/ledgerly/finance-ledger/internal/config"
	"github.com/ledgerly/finance-ledger/internal/lib/jwt"
	"github.com/ledgerly/finance-ledger/internal/migrations"
	"github.com/ledgerly/finance-ledger/internal/services"
	"github.com/ledgerly/finance-ledger/internal/storage/repository"
)

// App — HTTP-приложение API со всеми его зависимостями.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New инициализирует хранилище, применяет миграции, подключает кэш
// и собирает HTTP-сервер с зарегистрированными маршрутами.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StoragePath)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.SecretKey, cfg.TokenTTL)

	authService := services.NewAuthService(db, cacheRedis, jwtMaker, cfg.CacheTTL, logger)
	ledgerService := services.NewLedgerService(db, logger)
	savingsService := services.NewSavingsService(db, logger)
	loanService := services.NewLoanService(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, db, authService, ledgerService, savingsService, loanService)

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его мягко по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
