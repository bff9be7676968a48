package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"identity/config"
	apimiddleware "identity/internal/delivery/api/middleware"
	"identity/internal/delivery/api/router"
	"identity/internal/delivery/api/router/handler"
	"identity/internal/domain/entity"
	"identity/internal/infra/auth"
	"identity/internal/infra/metrics"
	"identity/internal/infra/persistence/memory"
	"identity/internal/usecase"
	"identity/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type pingOK struct{}

func (pingOK) Ping(context.Context) error { return nil }

type testAPI struct {
	echo  *echo.Echo
	users usecase.UserUsecase
	roles usecase.RoleUsecase
}

func newTestConfig() *config.Config {
	cfg := config.Default()
	cfg.Storage.Driver = config.StorageDriverMemory
	cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
	cfg.JWT.AccessTTL = 15 * time.Minute
	cfg.JWT.RefreshTTL = time.Hour
	cfg.Auth.BcryptCost = bcrypt.MinCost
	cfg.HTTP.RateLimit.LoginRequests = 0

	return cfg
}

func newTestAPI(t *testing.T, cfg *config.Config) *testAPI {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore()
	require.NoError(t, store.SeedRoles(context.Background(), entity.AdminRoleName, cfg.Auth.DefaultRole))
	tx := memory.NewTransactionManager(store)

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	hasher := auth.NewBcryptHasher(cfg)
	m := metrics.New()
	authMetrics := metrics.NewAuthMetrics(m)

	authSrv := impl.NewAuthService(impl.AuthServiceParams{
		TxManager: tx, Hasher: hasher, TokenService: tokens, Metrics: authMetrics, Config: cfg, Logger: logger,
	})
	authz := impl.NewAuthorizationService(impl.AuthorizationServiceParams{
		TxManager: tx, TokenService: tokens, Metrics: authMetrics, Config: cfg, Logger: logger,
	})
	users := impl.NewUserService(impl.UserServiceParams{TxManager: tx, Hasher: hasher, Config: cfg, Logger: logger})
	roles := impl.NewRoleService(tx, logger)
	perms := impl.NewPermissionService(tx, logger)
	sessions := impl.NewSessionService(tx, logger)

	e := NewEcho(cfg, logger, m, router.RouterParams{
		AuthHandler:       handler.NewAuthHandler(authSrv, sessions, logger),
		OAuthHandler:      handler.NewOAuthHandler(authz),
		UserHandler:       handler.NewUserHandler(users, logger),
		RoleHandler:       handler.NewRoleHandler(roles),
		PermissionHandler: handler.NewPermissionHandler(perms),
		HealthHandler:     handler.NewHealthHandler(pingOK{}, logger),
		AuthMiddleware:    apimiddleware.NewAuthMiddleware(tokens, authz),
		Metrics:           m,
		Config:            cfg,
	})

	return &testAPI{echo: e, users: users, roles: roles}
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details any    `json:"details"`
	} `json:"error"`
	Meta struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)

	return rec
}

func (a *testAPI) form(t *testing.T, path, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(url.Values{"token": {token}}.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) (T, envelope) {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())

	var out T
	if len(env.Data) > 0 && string(env.Data) != "null" {
		require.NoError(t, json.Unmarshal(env.Data, &out))
	}

	return out, env
}

func (a *testAPI) register(t *testing.T, username string) usecase.UserOutput {
	t.Helper()

	rec := a.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password-" + username,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	user, _ := decode[usecase.UserOutput](t, rec)

	return user
}

func (a *testAPI) login(t *testing.T, username string) usecase.TokenPairOutput {
	t.Helper()

	rec := a.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"username": username,
		"password": "password-" + username,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	pair, _ := decode[usecase.TokenPairOutput](t, rec)

	return pair
}

func TestAPI_TokenLifecycle(t *testing.T) {
	api := newTestAPI(t, newTestConfig())

	user := api.register(t, "alice")
	assert.Equal(t, []string{"USER"}, user.Roles)

	pair := api.login(t, "alice")
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, (15 * time.Minute).Milliseconds(), pair.ExpiresIn)

	rec := api.do(t, http.MethodGet, "/users/me", pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me, env := decode[usecase.UserOutput](t, rec)
	assert.Equal(t, "alice", me.Username)
	assert.NotEmpty(t, env.Meta.RequestID)

	rec = api.do(t, http.MethodGet, "/users/me", pair.RefreshToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(t, http.MethodPost, "/auth/refresh", "", map[string]string{"refreshToken": pair.RefreshToken})
	require.Equal(t, http.StatusOK, rec.Code)
	next, _ := decode[usecase.TokenPairOutput](t, rec)

	rec = api.do(t, http.MethodPost, "/auth/refresh", "", map[string]string{"refreshToken": pair.RefreshToken})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	_, env = decode[any](t, rec)
	assert.Equal(t, "TOKEN_REVOKED", env.Error.Code)

	rec = api.do(t, http.MethodGet, "/auth/sessions", next.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sessions, _ := decode[[]usecase.SessionOutput](t, rec)
	require.Len(t, sessions, 1)

	rec = api.do(t, http.MethodPost, "/auth/logout", next.AccessToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(t, http.MethodPost, "/auth/refresh", "", map[string]string{"refreshToken": next.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPI_LoginFailuresLookAlike(t *testing.T) {
	api := newTestAPI(t, newTestConfig())
	api.register(t, "alice")

	wrongPassword := api.do(t, http.MethodPost, "/auth/login", "", map[string]string{"username": "alice", "password": "nope"})
	unknownUser := api.do(t, http.MethodPost, "/auth/login", "", map[string]string{"username": "ghost", "password": "nope"})

	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, http.StatusUnauthorized, unknownUser.Code)

	_, a := decode[any](t, wrongPassword)
	_, b := decode[any](t, unknownUser)
	assert.Equal(t, a.Error, b.Error)
}

func TestAPI_RegisterValidation(t *testing.T) {
	api := newTestAPI(t, newTestConfig())

	rec := api.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"username": "alice",
		"email":    "not-an-email",
		"password": "short",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	_, env := decode[any](t, rec)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	assert.NotNil(t, env.Error.Details)

	api.register(t, "alice")
	rec = api.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"username": "alice",
		"email":    "other@example.com",
		"password": "password-alice",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAPI_IntrospectAndValidate(t *testing.T) {
	api := newTestAPI(t, newTestConfig())
	api.register(t, "alice")
	pair := api.login(t, "alice")

	rec := api.form(t, "/oauth/introspect", pair.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var out usecase.IntrospectionOutput
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.Active)
	assert.Equal(t, "alice", out.Subject)
	assert.Equal(t, "identity-service", out.ClientID)

	rec = api.form(t, "/oauth/introspect", "garbage")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"active":false}`, rec.Body.String())

	rec = api.do(t, http.MethodPost, "/oauth/validate?token="+url.QueryEscape(pair.AccessToken), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"valid":true}`, rec.Body.String())

	rec = api.form(t, "/oauth/validate", pair.RefreshToken)
	assert.JSONEq(t, `{"valid":false}`, rec.Body.String())
}

// Admin routes authorize against live roles, and introspection sees grants made after issuance.
func TestAPI_AdminGrantsAreLive(t *testing.T) {
	ctx := context.Background()
	api := newTestAPI(t, newTestConfig())

	root := api.register(t, "root")
	alice := api.register(t, "alice")
	alicePair := api.login(t, "alice")

	rec := api.do(t, http.MethodPost, "/admin/roles", alicePair.AccessToken, map[string]string{"name": "EDITOR"})
	require.Equal(t, http.StatusForbidden, rec.Code)

	admin, err := api.roles.GetRoleByName(ctx, entity.AdminRoleName)
	require.NoError(t, err)
	_, err = api.users.AssignRoles(ctx, root.ID, []uuid.UUID{admin.ID})
	require.NoError(t, err)
	rootPair := api.login(t, "root")

	rec = api.do(t, http.MethodPost, "/admin/roles", rootPair.AccessToken, map[string]string{"name": "EDITOR"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	editor, _ := decode[usecase.RoleOutput](t, rec)

	rec = api.do(t, http.MethodPost, "/admin/permissions", rootPair.AccessToken, map[string]string{"name": "Doc Write"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPost, "/admin/permissions", rootPair.AccessToken, map[string]string{"name": "doc:write"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	perm, _ := decode[usecase.PermissionOutput](t, rec)

	rec = api.do(t, http.MethodPost, "/admin/roles/"+editor.ID.String()+"/permissions", rootPair.AccessToken,
		map[string]any{"permissionIds": []string{perm.ID.String()}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = api.do(t, http.MethodPost, "/admin/users/"+alice.ID.String()+"/roles", rootPair.AccessToken,
		map[string]any{"roleIds": []string{editor.ID.String()}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = api.form(t, "/oauth/introspect", alicePair.AccessToken)
	var out usecase.IntrospectionOutput
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Contains(t, out.Permissions, "doc:write")

	rec = api.do(t, http.MethodDelete, "/admin/roles/"+admin.ID.String(), rootPair.AccessToken, nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	_, env := decode[any](t, rec)
	assert.Equal(t, "PROTECTED_ROLE", env.Error.Code)

	rec = api.do(t, http.MethodDelete, "/admin/users/"+root.ID.String()+"/roles/"+admin.ID.String(), rootPair.AccessToken, nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	_, env = decode[any](t, rec)
	assert.Equal(t, "SELF_ADMIN_REMOVAL", env.Error.Code)

	rec = api.do(t, http.MethodPatch, "/admin/users/"+alice.ID.String()+"/status", rootPair.AccessToken, map[string]bool{"enabled": false})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"valid":false}`, api.form(t, "/oauth/validate", alicePair.AccessToken).Body.String())

	rec = api.do(t, http.MethodGet, "/admin/users/not-a-uuid", rootPair.AccessToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_CredentialThrottle(t *testing.T) {
	cfg := newTestConfig()
	cfg.HTTP.RateLimit.LoginRequests = 2
	cfg.HTTP.RateLimit.Window = time.Minute
	api := newTestAPI(t, cfg)

	body := map[string]string{"username": "ghost", "password": "nope"}
	for range 2 {
		assert.Equal(t, http.StatusUnauthorized, api.do(t, http.MethodPost, "/auth/login", "", body).Code)
	}

	rec := api.do(t, http.MethodPost, "/auth/login", "", body)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	_, env := decode[any](t, rec)
	assert.Equal(t, "RATE_LIMITED", env.Error.Code)
}

func TestAPI_HealthMetricsAndHeaders(t *testing.T) {
	api := newTestAPI(t, newTestConfig())

	rec := api.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	api.do(t, http.MethodPost, "/auth/login", "", map[string]string{"username": "ghost", "password": "nope"})

	rec = api.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `identity_logins_total{outcome="failure"} 1`)
	assert.Contains(t, rec.Body.String(), `identity_http_requests_total{method="POST",route="/auth/login",status="401"} 1`)
}
