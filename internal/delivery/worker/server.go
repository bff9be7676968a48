// Package worker runs background maintenance that is not tied to a request.
package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"identity/config"
	"identity/internal/delivery"
	"identity/internal/domain/lifecycle"
	"identity/internal/usecase"

	"go.uber.org/fx"
)

// reaper periodically deletes expired refresh tokens.
type reaper struct {
	sessions usecase.SessionUsecase
	interval time.Duration
	logger   *slog.Logger

	mu       sync.Mutex
	started  bool
	stopped  bool
	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// ServerParams holds dependencies for the reaper, injected by Fx.
type ServerParams struct {
	fx.In

	Lc       fx.Lifecycle
	Cfg      *config.Config
	Logger   *slog.Logger
	Sessions usecase.SessionUsecase
}

// NewServer creates the expired-session reaper. A zero auth.reaperInterval
// yields a delivery whose Serve returns immediately.
func NewServer(params ServerParams) (delivery.Delivery, error) {
	r := newReaper(params.Sessions, params.Cfg.Auth.ReaperInterval, params.Logger)

	params.Lc.Append(fx.Hook{
		OnStop: r.stop,
	})

	return r, nil
}

func newReaper(sessions usecase.SessionUsecase, interval time.Duration, logger *slog.Logger) *reaper {
	return &reaper{
		sessions: sessions,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Serve sweeps once at start and then every interval until stopped or ctx ends.
func (r *reaper) Serve(ctx context.Context) error {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()

		return nil
	}
	r.started = true
	r.mu.Unlock()

	defer close(r.doneCh)

	if r.interval <= 0 {
		r.logger.Info("Expired session reaper disabled")

		return nil
	}

	r.logger.Info("Starting expired session reaper", slog.Duration("interval", r.interval))

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		r.sweep(ctx)

		select {
		case <-ctx.Done():
			return nil
		case <-r.stopCh:
			return nil
		case <-ticker.C:
		}
	}
}

func (r *reaper) sweep(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	// CleanupExpiredSessions logs its own failures; the next tick retries.
	_, _ = r.sessions.CleanupExpiredSessions(sweepCtx)
}

// stop only waits for a Serve that actually began. fx may stop the app before
// the delivery goroutine runs, and a later Serve then returns at once.
func (r *reaper) stop(ctx context.Context) error {
	r.mu.Lock()
	r.stopped = true
	started := r.started
	r.mu.Unlock()

	r.stopOnce.Do(func() { close(r.stopCh) })
	r.logger.Info("Stopping expired session reaper")
	if !started {
		return nil
	}

	select {
	case <-r.doneCh:
	case <-ctx.Done():
	}

	return nil
}
