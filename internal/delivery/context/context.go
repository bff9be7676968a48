// Package context carries request-scoped values (request id, authenticated
// subject, child logger) between echo handlers and the usecase layer.
package context

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ContextKey string

const (
	KeyRequestID ContextKey = "request_id"
	KeyUsername  ContextKey = "username"
	KeyLogger    ContextKey = "logger"

	HeaderXRequestID = "X-Request-Id"
)

// GetRequestID returns the id assigned by the request id middleware, or a
// fresh one for requests that never passed through it.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(string(KeyRequestID)).(string); ok && id != "" {
		return id
	}

	return uuid.New().String()
}

func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(KeyRequestID).(string)

	return id
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// SetUsername records the authenticated subject on both the echo context and
// the request context, and tags the request logger with it so usecase logs
// name the caller.
func SetUsername(c echo.Context, username string) {
	c.Set(string(KeyUsername), username)

	req := c.Request()
	ctx := context.WithValue(req.Context(), KeyUsername, username)
	if logger := GetLogger(ctx); logger != nil {
		ctx = WithLogger(ctx, logger.With(slog.String("username", username)))
	}
	c.SetRequest(req.WithContext(ctx))
}

// GetUsername returns the subject set by SetUsername.
func GetUsername(c echo.Context) (string, bool) {
	username, ok := c.Get(string(KeyUsername)).(string)

	return username, ok && username != ""
}

// UsernameFromContext is GetUsername for code that only sees context.Context.
func UsernameFromContext(ctx context.Context) string {
	username, _ := ctx.Value(KeyUsername).(string)

	return username
}

func GetLogger(ctx context.Context) *slog.Logger {
	logger, _ := ctx.Value(KeyLogger).(*slog.Logger)

	return logger
}

// GetLoggerOrDefault returns the request logger, falling back when ctx did not
// come from an HTTP request (reaper sweeps, tests).
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}
