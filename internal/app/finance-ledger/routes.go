package financeledger

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	"github.com/ledgerly/finance-ledger/internal/config"
	"github.com/ledgerly/finance-ledger/internal/http/handlers/auth/login"
	"github.com/ledgerly/finance-ledger/internal/http/handlers/auth/register"
	"github.com/ledgerly/finance-ledger/internal/http/handlers/health"
	"github.com/ledgerly/finance-ledger/internal/http/handlers/loan/apply"
	"github.com/ledgerly/finance-ledger/internal/http/handlers/loan/reminders"
	"github.com/ledgerly/finance-ledger/internal/http/handlers/loan/repay"
	"github.com/ledgerly/finance-ledger/internal/http/handlers/savings/activate"
	"github.com/ledgerly/finance-ledger/internal/http/handlers/savings/status"
	"github.com/ledgerly/finance-ledger/internal/http/handlers/transaction/balance"
	"github.com/ledgerly/finance-ledger/internal/http/handlers/transaction/create"
	"github.com/ledgerly/finance-ledger/internal/http/handlers/transaction/export"
	"github.com/ledgerly/finance-ledger/internal/http/handlers/transaction/history"
	"github.com/ledgerly/finance-ledger/internal/http/handlers/transaction/summary"
	"github.com/ledgerly/finance-ledger/internal/http/middlewarectx"
	"github.com/ledgerly/finance-ledger/internal/services"
	"github.com/ledgerly/finance-ledger/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, db *repository.Storage,
	authService *services.AuthService, ledgerService *services.LedgerService,
	savingsService *services.SavingsService, loanService *services.LoanService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService).ServeHTTP)
		r.Get("/health", health.New(logger, db).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger, rate.Limit(cfg.RateLimit), cfg.RateBurst))
			r.Post("/transactions", create.New(logger, ledgerService).ServeHTTP)
			r.Get("/transactions", history.New(logger, ledgerService).ServeHTTP)
			r.Get("/transactions/balance", balance.New(logger, ledgerService).ServeHTTP)
			r.Get("/transactions/summary", summary.New(logger, ledgerService).ServeHTTP)
			r.Get("/transactions/export", export.New(logger, ledgerService).ServeHTTP)
			r.Post("/savings/activate", activate.New(logger, savingsService).ServeHTTP)
			r.Get("/savings", status.New(logger, savingsService).ServeHTTP)
			r.Post("/loans", apply.New(logger, loanService).ServeHTTP)
			r.Post("/loans/repay", repay.New(logger, loanService).ServeHTTP)
			r.Get("/loans/reminders", reminders.New(logger, loanService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
