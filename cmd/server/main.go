package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/Amaral-Gabriel/daily-loan-pay/internal/app"
	"github.com/Amaral-Gabriel/daily-loan-pay/internal/config"
	"github.com/Amaral-Gabriel/daily-loan-pay/internal/handler"
	"github.com/Amaral-Gabriel/daily-loan-pay/internal/middleware"
	"github.com/Amaral-Gabriel/daily-loan-pay/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	authenticator, err := middleware.NewAuthenticator(cfg.Auth.JWTSecret, logger)
	if err != nil {
		log.Fatalf("AUTH_JWT_SECRET is required to serve the API: %v", err)
	}

	a, err := app.New(context.Background(), cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer a.Close()

	router := handler.NewRouter(handler.Handlers{
		Loans:   handler.NewLoanHandler(a.Charges, logger),
		Webhook: handler.NewWebhookHandler(a.Reconciler, logger),
		Health:  handler.NewHealthHandler(a.DB, a.Redis, cfg.Health.Timeout),
	}, authenticator.Middleware, logger)

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server starting", "addr", server.Addr, "env", cfg.Server.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return
	}

	logger.Info("server exited")
}
