package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"identity/config"
	logs "identity/internal/infra/log"
	"identity/internal/infra/persistence/postgres"
	"identity/migrations"

	"github.com/pkg/errors"
	pgLib "github.com/slighter12/go-lib/database/postgres"
	"github.com/spf13/pflag"
)

func main() {
	down := pflag.Bool("down", false, "roll back the most recently applied migration")
	timeout := pflag.Duration("timeout", time.Minute, "overall migration timeout")
	pflag.Parse()

	if err := run(*down, *timeout); err != nil {
		slog.Error("Migration failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(down bool, timeout time.Duration) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}
	logger, err := logs.New(logs.Params{Config: cfg})
	if err != nil {
		return err
	}
	if cfg.Postgres == nil {
		return errors.New("postgres configuration is missing")
	}

	db, err := pgLib.New(cfg.Postgres)
	if err != nil {
		return errors.Wrap(err, "failed to create PostgreSQL client")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}
	defer sqlDB.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	migrator := postgres.NewMigrator(db, migrations.FS, logger)
	if down {
		return migrator.Down(ctx)
	}

	applied, err := migrator.Up(ctx)
	if err != nil {
		return err
	}
	logger.Info("Migrations complete", slog.Int("applied", applied))

	return nil
}
