package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"identity/config"
	"identity/internal/domain/lifecycle"
	"identity/internal/errors"
	"identity/internal/infra/metrics"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const (
	dbPoolMonitorInterval       = 5 * time.Second
	dbPoolWarnDurationThreshold = 50 * time.Millisecond
	dbStatsName                 = "identity"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics `optional:"true"`
}

// New opens the primary (and any replicas) through pgLib and registers the pool
// lifecycle with fx.
func New(params Params) (*gorm.DB, error) {
	if params.Config.Postgres == nil {
		return nil, errors.New("postgres configuration is missing")
	}

	db, err := pgLib.New(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}
	// Surface driver constraint errors as gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated.
	db.Config.TranslateError = true
	db = db.Session(&gorm.Session{
		// Explicit transactions come from TransactionManager.Execute; single
		// statements do not need GORM's implicit one.
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(params.Logger, params.Config),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}
	if params.Metrics != nil {
		params.Metrics.RegisterDBStats(sqlDB, dbStatsName)
	}

	monitorCtx, cancelMonitor := context.WithCancel(context.Background())
	monitor := newPoolMonitor(params.Logger, sqlDB.Stats)

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping PostgreSQL")
			}

			go monitor.run(monitorCtx, dbPoolMonitorInterval)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancelMonitor()

			return sqlDB.Close()
		},
	})

	return db, nil
}

// poolMonitor logs connection pool waits between two samples. Login and
// refresh each hold a connection for a whole transaction, so waits here are
// the first sign of credential traffic outgrowing the pool.
type poolMonitor struct {
	logger *slog.Logger
	stats  func() sql.DBStats
	prev   sql.DBStats
}

func newPoolMonitor(logger *slog.Logger, stats func() sql.DBStats) *poolMonitor {
	return &poolMonitor{logger: logger, stats: stats, prev: stats()}
}

func (p *poolMonitor) run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.sample(ctx)
		}
	}
}

func (p *poolMonitor) sample(ctx context.Context) {
	cur := p.stats()
	defer func() { p.prev = cur }()

	waitDelta := cur.WaitCount - p.prev.WaitCount
	if waitDelta <= 0 {
		return
	}
	waitDurationDelta := cur.WaitDuration - p.prev.WaitDuration

	level := slog.LevelDebug
	msg := "Postgres pool wait observed"
	if waitDurationDelta >= dbPoolWarnDurationThreshold {
		level = slog.LevelWarn
		msg = "Postgres pool wait detected"
	}

	p.logger.LogAttrs(ctx, level, msg,
		slog.Int64("waitCountDelta", waitDelta),
		slog.Duration("waitDurationDelta", waitDurationDelta),
		slog.Duration("avgWait", waitDurationDelta/time.Duration(waitDelta)),
		slog.Int("maxOpenConns", cur.MaxOpenConnections),
		slog.Int("inUseConns", cur.InUse),
		slog.Int("idleConns", cur.Idle),
	)
}
