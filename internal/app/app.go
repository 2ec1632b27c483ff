// Package app assembles the services shared by the server, scheduler and CLI.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/Amaral-Gabriel/daily-loan-pay/internal/config"
	"github.com/Amaral-Gabriel/daily-loan-pay/internal/lock"
	"github.com/Amaral-Gabriel/daily-loan-pay/internal/paycode"
	"github.com/Amaral-Gabriel/daily-loan-pay/internal/repository"
	"github.com/Amaral-Gabriel/daily-loan-pay/internal/service"
)

type App struct {
	Config     *config.Config
	Logger     *slog.Logger
	DB         *sqlx.DB
	Redis      redis.UniversalClient // nil when REDIS_ADDR is unset
	Store      *repository.Store
	Charges    *service.ChargeService
	Reconciler *service.ReconciliationService
}

// New connects to the database and Redis and builds the services
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := repository.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		logger.InfoContext(ctx, "database schema applied")
	}

	a := &App{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Store:  repository.NewStore(db),
	}

	var locker lock.Locker
	if cfg.UseRedis() {
		a.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := a.Redis.Ping(ctx).Err(); err != nil {
			a.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		locker = lock.NewRedisLocker(a.Redis, cfg.Redis.LockTTL, logger)
	} else {
		logger.WarnContext(ctx, "REDIS_ADDR not set, loan locks are local to this process")
		locker = lock.NewLocalLocker()
	}

	ids, err := paycode.NewSnowflakeIDs(cfg.Business.NodeID)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("transaction id generator: %w", err)
	}

	a.Charges = service.NewChargeService(a.Store.Repositories, a.Store, locker, paycode.NewQRGenerator(), ids, cfg, logger)
	a.Reconciler = service.NewReconciliationService(a.Store.Repositories, a.Store, locker, cfg, logger)

	return a, nil
}

// Close releases the database and Redis connections
func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Logger.Error("failed to close redis", "error", err)
		}
	}
	if err := a.DB.Close(); err != nil {
		a.Logger.Error("failed to close database", "error", err)
	}
}
