package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/Amaral-Gabriel/daily-loan-pay/internal/app"
	"github.com/Amaral-Gabriel/daily-loan-pay/internal/config"
	"github.com/Amaral-Gabriel/daily-loan-pay/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("starting charge scheduler")

	a, err := app.New(context.Background(), cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer a.Close()

	// Initialize cron scheduler
	c := cron.New(
		cron.WithParser(config.CronParser),
		cron.WithLogger(cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	if err := setupCronJobs(c, cfg, a, logger); err != nil {
		log.Fatalf("Failed to schedule jobs: %v", err)
	}

	// Start the scheduler
	c.Start()
	logger.Info("scheduler started", "expiry_spec", cfg.Scheduler.ExpirySpec)

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down scheduler")
	<-c.Stop().Done()
	logger.Info("scheduler stopped")
}

func setupCronJobs(c *cron.Cron, cfg *config.Config, a *app.App, logger *slog.Logger) error {
	// Pending charges past their expiry are marked expired
	_, err := c.AddFunc(cfg.Scheduler.ExpirySpec, func() {
		expireStaleCharges(a, logger)
	})
	return err
}

func expireStaleCharges(a *app.App, logger *slog.Logger) {
	n, err := a.Reconciler.ExpireStaleCharges(context.Background())
	if err != nil {
		logger.Error("charge expiry sweep failed", "error", err)
		return
	}
	logger.Debug("charge expiry sweep finished", "expired", n)
}
