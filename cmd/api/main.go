package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/riskibarqy/nfl-projections/internal/app"
	"github.com/riskibarqy/nfl-projections/internal/config"
	"github.com/riskibarqy/nfl-projections/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	defer logger.Sync()
	logging.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	if application.Scheduler != nil {
		if err := application.Scheduler.Start(); err != nil {
			logger.Error("start scheduler", "error", err)
			os.Exit(1)
		}
	}

	go func() {
		logger.Info("http server starting",
			"addr", cfg.HTTPAddr,
			"service", cfg.ServiceName,
			"version", cfg.ServiceVersion,
			"env", cfg.AppEnv,
		)
		if err := application.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if application.Scheduler != nil {
		if err := application.Scheduler.Shutdown(shutdownCtx); err != nil {
			logger.Error("scheduler shutdown failed", "error", err)
		}
	}
	if err := application.Server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	logger.Info("http server stopped")
}
