package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"testing"
	"time"

	"identity/config"

	"github.com/stretchr/testify/assert"
)

func TestPoolMonitor_Sample(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	samples := []sql.DBStats{
		{},
		{WaitCount: 0},
		{WaitCount: 2, WaitDuration: 10 * time.Millisecond},
		{WaitCount: 4, WaitDuration: 210 * time.Millisecond, MaxOpenConnections: 10, InUse: 10},
	}
	i := 0
	monitor := newPoolMonitor(logger, func() sql.DBStats {
		s := samples[i]
		i++

		return s
	})

	monitor.sample(context.Background())
	assert.Empty(t, buf.String(), "no waits")

	monitor.sample(context.Background())
	assert.Empty(t, buf.String(), "short waits stay at debug")

	monitor.sample(context.Background())
	assert.Contains(t, buf.String(), "Postgres pool wait detected")
	assert.Contains(t, buf.String(), "avgWait=100ms")
}

func TestNew_MissingConfig(t *testing.T) {
	_, err := New(Params{Config: config.Default()})

	assert.Error(t, err)
}
