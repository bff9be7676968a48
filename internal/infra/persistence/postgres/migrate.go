package postgres

import (
	"context"
	"io/fs"
	"log/slog"
	"slices"
	"strings"

	"identity/internal/errors"

	"gorm.io/gorm"
)

const (
	migrationsTable = "schema_migrations"
	upSuffix        = ".up.sql"
	downSuffix      = ".down.sql"
)

// Migrator applies the embedded SQL migrations, recording each applied file
// in schema_migrations. Every file runs in its own transaction.
type Migrator struct {
	db     *gorm.DB
	fsys   fs.FS
	logger *slog.Logger
}

// NewMigrator creates a Migrator reading NNNNNN_name.up.sql / .down.sql pairs from fsys.
func NewMigrator(db *gorm.DB, fsys fs.FS, logger *slog.Logger) *Migrator {
	return &Migrator{db: db, fsys: fsys, logger: logger}
}

// Up applies every pending migration in name order and returns how many ran.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	if err := m.ensureTable(ctx); err != nil {
		return 0, err
	}
	applied, err := m.Applied(ctx)
	if err != nil {
		return 0, err
	}

	names, err := fs.Glob(m.fsys, "*"+upSuffix)
	if err != nil {
		return 0, errors.Wrap(err, "list migrations")
	}
	slices.Sort(names)

	count := 0
	for _, name := range names {
		if slices.Contains(applied, name) {
			continue
		}

		err := m.run(ctx, name, func(tx *gorm.DB) error {
			return tx.Exec("INSERT INTO "+migrationsTable+" (name) VALUES (?)", name).Error
		})
		if err != nil {
			return count, err
		}
		m.logger.Info("Applied migration", slog.String("name", name))
		count++
	}

	return count, nil
}

// Down rolls back the most recently applied migration.
func (m *Migrator) Down(ctx context.Context) error {
	if err := m.ensureTable(ctx); err != nil {
		return err
	}
	applied, err := m.Applied(ctx)
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		return errors.New("no migrations applied")
	}

	last := applied[len(applied)-1]
	down := strings.TrimSuffix(last, upSuffix) + downSuffix

	err = m.run(ctx, down, func(tx *gorm.DB) error {
		return tx.Exec("DELETE FROM "+migrationsTable+" WHERE name = ?", last).Error
	})
	if err != nil {
		return err
	}
	m.logger.Info("Rolled back migration", slog.String("name", last))

	return nil
}

// Applied lists applied migrations in name order.
func (m *Migrator) Applied(ctx context.Context) ([]string, error) {
	var names []string
	err := m.db.WithContext(ctx).
		Table(migrationsTable).
		Order("name").
		Pluck("name", &names).Error
	if err != nil {
		return nil, errors.Wrap(err, "list applied migrations")
	}

	return names, nil
}

func (m *Migrator) ensureTable(ctx context.Context) error {
	err := m.db.WithContext(ctx).Exec(`CREATE TABLE IF NOT EXISTS ` + migrationsTable + ` (
		name       TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`).Error

	return errors.Wrap(err, "create migrations table")
}

// run executes file statement by statement and then record, all in one transaction.
func (m *Migrator) run(ctx context.Context, file string, record func(tx *gorm.DB) error) error {
	raw, err := fs.ReadFile(m.fsys, file)
	if err != nil {
		return errors.Wrapf(err, "read migration %s", file)
	}

	err = m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, stmt := range splitStatements(string(raw)) {
			if err := tx.Exec(stmt).Error; err != nil {
				return err
			}
		}

		return record(tx)
	})

	return errors.Wrapf(err, "apply migration %s", file)
}

// splitStatements splits on semicolons outside single-quoted literals and drops
// comment-only fragments. Dollar-quoted bodies are not supported.
func splitStatements(sql string) []string {
	var (
		stmts    []string
		current  strings.Builder
		inString bool
	)

	flush := func() {
		if stmt := strings.TrimSpace(stripComments(current.String())); stmt != "" {
			stmts = append(stmts, stmt)
		}
		current.Reset()
	}

	for _, r := range sql {
		switch {
		case r == '\'':
			inString = !inString
			current.WriteRune(r)
		case r == ';' && !inString:
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return stmts
}

func stripComments(stmt string) string {
	lines := strings.Split(stmt, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		kept = append(kept, line)
	}

	return strings.Join(kept, "\n")
}
