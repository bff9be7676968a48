// Package persistence selects the entity store named by storage.driver.
package persistence

import (
	"context"
	"log/slog"

	"identity/config"
	"identity/internal/domain/entity"
	"identity/internal/domain/repository"
	"identity/internal/infra/metrics"
	"identity/internal/infra/persistence/memory"
	"identity/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// HealthChecker reports whether the store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Params holds dependencies for the store, injected by Fx
type Params struct {
	fx.In

	Lc      fx.Lifecycle
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics `optional:"true"`
}

// Result exposes the selected store to the rest of the graph.
type Result struct {
	fx.Out

	TxManager repository.TransactionManager
	Health    HealthChecker
}

// New creates the TransactionManager for the configured driver.
func New(params Params) (Result, error) {
	logger := params.Logger

	switch params.Config.Storage.Driver {
	case config.StorageDriverMemory:
		logger.Warn("Using in-memory store, data is lost on restart")

		store := memory.NewStore()
		seed := []string{entity.AdminRoleName, params.Config.Auth.DefaultRole}
		if err := store.SeedRoles(context.Background(), seed...); err != nil {
			return Result{}, errors.Wrap(err, "failed to seed in-memory roles")
		}

		return Result{
			TxManager: memory.NewTransactionManager(store),
			Health:    pingFunc(func(context.Context) error { return nil }),
		}, nil

	case config.StorageDriverPostgres:
		logger.Info("Using PostgreSQL store")

		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lc,
			Config:    params.Config,
			Logger:    logger,
			Metrics:   params.Metrics,
		})
		if err != nil {
			return Result{}, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return Result{}, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
		}

		return Result{
			TxManager: postgres.NewTransactionManager(db),
			Health:    pingFunc(sqlDB.PingContext),
		}, nil

	default:
		return Result{}, errors.Errorf("unsupported storage driver: %s", params.Config.Storage.Driver)
	}
}
