package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"identity/config"
	"identity/internal/domain/entity"
	"identity/internal/domain/repository"
	"identity/internal/domain/service"
	"identity/internal/infra/auth"
	"identity/internal/infra/persistence/memory"
	"identity/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := config.Default()
	cfg.Storage.Driver = config.StorageDriverMemory
	cfg.JWT.Secret = testSecret
	cfg.JWT.AccessTTL = 15 * time.Minute
	cfg.JWT.RefreshTTL = 24 * time.Hour
	cfg.Auth.BcryptCost = bcrypt.MinCost

	return cfg
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Now().Truncate(time.Second)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// testEnv wires every service against one seeded memory store.
type testEnv struct {
	cfg      *config.Config
	clock    *testClock
	tx       repository.TransactionManager
	tokens   service.TokenService
	hasher   service.PasswordHasher
	auth     usecase.AuthUsecase
	authz    usecase.AuthorizationUsecase
	roles    usecase.RoleUsecase
	perms    usecase.PermissionUsecase
	users    usecase.UserUsecase
	sessions usecase.SessionUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := newTestConfig()
	return newTestEnvWithConfig(t, cfg, entity.AdminRoleName, cfg.Auth.DefaultRole)
}

func newTestEnvWithConfig(t *testing.T, cfg *config.Config, seedRoles ...string) *testEnv {
	t.Helper()

	store := memory.NewStore()
	require.NoError(t, store.SeedRoles(context.Background(), seedRoles...))

	clock := newTestClock()
	tokens, err := auth.NewTokenCodec(cfg.JWT, auth.WithClock(clock.Now))
	require.NoError(t, err)

	logger := newDiscardLogger()
	tx := memory.NewTransactionManager(store)
	hasher := auth.NewBcryptHasherWithCost(cfg.Auth.BcryptCost)

	authSrv := NewAuthService(AuthServiceParams{
		TxManager:    tx,
		Hasher:       hasher,
		TokenService: tokens,
		Config:       cfg,
		Logger:       logger,
	})
	authSrv.(*authService).now = clock.Now

	sessions := NewSessionService(tx, logger)
	sessions.(*sessionService).now = clock.Now

	return &testEnv{
		cfg:    cfg,
		clock:  clock,
		tx:     tx,
		tokens: tokens,
		hasher: hasher,
		auth:   authSrv,
		authz: NewAuthorizationService(AuthorizationServiceParams{
			TxManager:    tx,
			TokenService: tokens,
			Config:       cfg,
			Logger:       logger,
		}),
		roles: NewRoleService(tx, logger),
		perms: NewPermissionService(tx, logger),
		users: NewUserService(UserServiceParams{
			TxManager: tx,
			Hasher:    hasher,
			Config:    cfg,
			Logger:    logger,
		}),
		sessions: sessions,
	}
}

func (env *testEnv) register(t *testing.T, username string) *usecase.UserOutput {
	t.Helper()

	out, err := env.auth.Register(context.Background(), usecase.RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "password-" + username,
	})
	require.NoError(t, err)

	return out
}

func (env *testEnv) login(t *testing.T, username string) *usecase.TokenPairOutput {
	t.Helper()

	pair, err := env.auth.Login(context.Background(), usecase.LoginInput{
		Username: username,
		Password: "password-" + username,
	})
	require.NoError(t, err)

	return pair
}

func (env *testEnv) roleID(t *testing.T, name string) uuid.UUID {
	t.Helper()

	role, err := env.roles.GetRoleByName(context.Background(), name)
	require.NoError(t, err)

	return role.ID
}
