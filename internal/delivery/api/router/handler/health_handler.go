package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"identity/internal/infra/persistence"

	"github.com/labstack/echo/v4"
)

const healthTimeout = 2 * time.Second

// HealthHandler reports liveness together with store reachability.
type HealthHandler struct {
	store  persistence.HealthChecker
	logger *slog.Logger
}

// NewHealthHandler is the constructor for HealthHandler, injected by Fx.
func NewHealthHandler(store persistence.HealthChecker, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{store: store, logger: logger}
}

// Check handles GET /health.
func (h *HealthHandler) Check(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Warn("Health check failed", slog.Any("error", err))

		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
