package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_AuthCounters(t *testing.T) {
	m := New()

	m.ObserveLogin(service.OutcomeSuccess)
	m.ObserveLogin(service.OutcomeFailure)
	m.ObserveLogin(service.OutcomeFailure)
	m.ObserveIntrospection(false)
	m.ObserveTokenIssued(service.PurposeRefresh)

	assert.InDelta(t, 1, testutil.ToFloat64(m.logins.WithLabelValues(service.OutcomeSuccess)), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.logins.WithLabelValues(service.OutcomeFailure)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.introspections.WithLabelValues("false")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.tokensIssued.WithLabelValues("refresh")), 0)
}

func TestMetrics_MiddlewareUsesRouteTemplate(t *testing.T) {
	m := New()
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/admin/users/:id", func(c echo.Context) error {
		return domainerrors.ErrUserNotFound
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/users/42", nil))

	assert.InDelta(t, 1, testutil.ToFloat64(m.httpRequests.WithLabelValues(http.MethodGet, "/admin/users/:id", "404")), 0)
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveRefresh(service.OutcomeSuccess)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `identity_token_refreshes_total{outcome="success"} 1`))
}

func TestMetrics_RegisterDBStatsTwice(t *testing.T) {
	m := New()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	m.RegisterDBStats(db, "identity")
	assert.NotPanics(t, func() { m.RegisterDBStats(db, "identity") })

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `go_sql_max_open_connections{db_name="identity"}`)
}
