package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	sweepscheduler "github.com/ledgerly/finance-ledger/internal/app/sweep-scheduler"
	"github.com/ledgerly/finance-ledger/internal/config"
)

func main() {
	cfg := config.MustLoadConfig()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Info("starting sweep-scheduler", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := sweepscheduler.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize app", slog.Any("err", err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("app stopped with error", slog.Any("err", err))
		os.Exit(1)
	}

	logger.Info("sweep-scheduler stopped gracefully")
}
