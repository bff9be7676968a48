package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"identity/config"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestGormLogger(debug bool) (*gormSlogLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cfg := config.Default()
	cfg.Env.Debug = debug

	return newGormSlogLogger(base, cfg).(*gormSlogLogger), &buf
}

func sqlFn(sql string) func() (string, int64) {
	return func() (string, int64) { return sql, 1 }
}

func TestGormSlogLogger_ParamsFilterDropsValues(t *testing.T) {
	l, _ := newTestGormLogger(false)

	sql, vars := l.ParamsFilter(context.Background(), `SELECT * FROM "refresh_tokens" WHERE token_hash = $1`, "secret-hash")

	assert.Equal(t, `SELECT * FROM "refresh_tokens" WHERE token_hash = $1`, sql)
	assert.Nil(t, vars)
}

func TestGormSlogLogger_Trace(t *testing.T) {
	tests := []struct {
		name    string
		debug   bool
		err     error
		begin   time.Time
		want    string
		silence bool
	}{
		{name: "record not found is silent", debug: true, err: gorm.ErrRecordNotFound, begin: time.Now(), silence: true},
		{name: "failure logged", err: errQueryFailed, begin: time.Now(), want: "GORM query failed"},
		{name: "constraint hidden outside debug", err: &pgconn.PgError{Code: pgUniqueViolation}, begin: time.Now(), silence: true},
		{name: "constraint in debug", debug: true, err: gorm.ErrDuplicatedKey, begin: time.Now(), want: "GORM constraint rejected statement"},
		{name: "slow query", begin: time.Now().Add(-time.Second), want: "GORM slow query"},
		{name: "fast query hidden outside debug", begin: time.Now(), silence: true},
		{name: "fast query in debug", debug: true, begin: time.Now(), want: "GORM query"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, buf := newTestGormLogger(tt.debug)

			l.Trace(context.Background(), tt.begin, sqlFn(`SELECT 1`), tt.err)

			if tt.silence {
				assert.Empty(t, buf.String())

				return
			}
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestGormSlogLogger_LogModeSilent(t *testing.T) {
	l, buf := newTestGormLogger(true)

	silent := l.LogMode(logger.Silent)
	silent.Trace(context.Background(), time.Now(), sqlFn(`SELECT 1`), errQueryFailed)
	silent.Error(context.Background(), "boom %d", 1)

	assert.Empty(t, buf.String())
}

var errQueryFailed = gorm.ErrInvalidTransaction
