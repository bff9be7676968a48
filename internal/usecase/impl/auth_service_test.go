package impl

import (
	"context"
	"sync"
	"testing"
	"time"

	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"
	"identity/internal/domain/service"
	"identity/internal/errors"
	mockSvc "identity/internal/mocks/service"
	"identity/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Register_AssignsDefaultRole(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.auth.Register(context.Background(), usecase.RegisterInput{
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "s3cret",
		FirstName: "Alice",
	})

	require.NoError(t, err)
	assert.Equal(t, "alice", out.Username)
	assert.Equal(t, "Alice", out.FirstName)
	assert.True(t, out.Enabled)
	assert.Equal(t, []string{"USER"}, out.Roles)
	assert.Empty(t, out.Permissions)
	assert.Nil(t, out.LastLogin)
}

func TestAuthService_Register_Duplicates(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice")

	tests := []struct {
		name  string
		input usecase.RegisterInput
	}{
		{name: "same username", input: usecase.RegisterInput{Username: "alice", Email: "other@example.com", Password: "x"}},
		{name: "same email", input: usecase.RegisterInput{Username: "other", Email: "alice@example.com", Password: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.auth.Register(context.Background(), tt.input)

			assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
			assert.Equal(t, domainerrors.KindAlreadyExists, domainerrors.KindOf(err))
		})
	}
}

func TestAuthService_Register_ConcurrentDuplicates(t *testing.T) {
	env := newTestEnv(t)
	input := usecase.RegisterInput{Username: "racer", Email: "racer@example.com", Password: "x"}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = env.auth.Register(context.Background(), input)
		}()
	}
	wg.Wait()

	var succeeded int
	for _, err := range errs {
		if err == nil {
			succeeded++

			continue
		}
		assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
	}
	assert.Equal(t, 1, succeeded)
}

func TestAuthService_Register_MissingDefaultRole(t *testing.T) {
	cfg := newTestConfig()
	env := newTestEnvWithConfig(t, cfg, "ADMIN")

	_, err := env.auth.Register(context.Background(), usecase.RegisterInput{Username: "alice", Email: "a@example.com", Password: "x"})

	assert.ErrorIs(t, err, domainerrors.ErrDefaultRoleMissing)
	assert.Equal(t, domainerrors.KindConfiguration, domainerrors.KindOf(err))
}

func TestAuthService_Login(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice")

	pair := env.login(t, "alice")

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, (15 * time.Minute).Milliseconds(), pair.ExpiresIn)

	claims, err := env.tokens.Parse(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, []string{"USER"}, claims.Roles)
	assert.Equal(t, []string{"ROLE_USER"}, claims.Authorities)

	me, err := env.users.GetCurrentUser(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, me.LastLogin)
	assert.True(t, me.LastLogin.Equal(env.clock.Now()))
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "alice")
	env.register(t, "bob")
	_, err := env.users.SetUserStatus(context.Background(), user.ID, false)
	require.NoError(t, err)

	attempts := []usecase.LoginInput{
		{Username: "nobody", Password: "whatever"},
		{Username: "bob", Password: "wrong"},
		{Username: "alice", Password: "password-alice"},
	}

	var messages []string
	for _, attempt := range attempts {
		_, err := env.auth.Login(context.Background(), attempt)
		require.Error(t, err)
		assert.ErrorIs(t, err, domainerrors.ErrAuthenticationFailed)
		messages = append(messages, err.Error())
	}
	assert.Equal(t, messages[0], messages[1])
	assert.Equal(t, messages[1], messages[2])
}

func TestAuthService_Refresh_RotatesExactlyOnce(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice")
	pair := env.login(t, "alice")

	next, err := env.auth.Refresh(context.Background(), usecase.RefreshInput{RefreshToken: pair.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, next.AccessToken)

	_, err = env.auth.Refresh(context.Background(), usecase.RefreshInput{RefreshToken: pair.RefreshToken})
	assert.ErrorIs(t, err, domainerrors.ErrTokenRevoked)

	_, err = env.auth.Refresh(context.Background(), usecase.RefreshInput{RefreshToken: next.RefreshToken})
	assert.NoError(t, err)
}

func TestAuthService_Refresh_ConcurrentRotationSucceedsOnce(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice")
	pair := env.login(t, "alice")

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = env.auth.Refresh(context.Background(), usecase.RefreshInput{RefreshToken: pair.RefreshToken})
		}()
	}
	wg.Wait()

	var succeeded int
	for _, err := range errs {
		if err == nil {
			succeeded++

			continue
		}
		assert.ErrorIs(t, err, domainerrors.ErrTokenRevoked)
	}
	assert.Equal(t, 1, succeeded)
}

func TestAuthService_Refresh_StoredExpiryFollowsRefreshTTL(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice")
	pair := env.login(t, "alice")

	// Past the access lifetime but well within the refresh lifetime.
	env.clock.Advance(2 * time.Hour)

	_, err := env.auth.Refresh(context.Background(), usecase.RefreshInput{RefreshToken: pair.RefreshToken})
	assert.NoError(t, err)
}

func TestAuthService_Refresh_Rejections(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice")
	pair := env.login(t, "alice")

	t.Run("malformed", func(t *testing.T) {
		_, err := env.auth.Refresh(context.Background(), usecase.RefreshInput{RefreshToken: "not-a-token"})
		assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
	})

	t.Run("access token presented", func(t *testing.T) {
		_, err := env.auth.Refresh(context.Background(), usecase.RefreshInput{RefreshToken: pair.AccessToken})
		assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
	})

	t.Run("unknown refresh token", func(t *testing.T) {
		stray, err := env.tokens.Issue("alice", nil, time.Hour, "refresh")
		require.NoError(t, err)

		_, err = env.auth.Refresh(context.Background(), usecase.RefreshInput{RefreshToken: stray})
		assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
	})

	t.Run("expired", func(t *testing.T) {
		env.clock.Advance(25 * time.Hour)

		_, err := env.auth.Refresh(context.Background(), usecase.RefreshInput{RefreshToken: pair.RefreshToken})
		assert.ErrorIs(t, err, domainerrors.ErrTokenExpired)
	})
}

func TestAuthService_Refresh_DisabledUser(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "alice")
	pair := env.login(t, "alice")

	_, err := env.users.SetUserStatus(context.Background(), user.ID, false)
	require.NoError(t, err)

	_, err = env.auth.Refresh(context.Background(), usecase.RefreshInput{RefreshToken: pair.RefreshToken})
	assert.ErrorIs(t, err, domainerrors.ErrAuthenticationFailed)

	// The failed rotation rolled back, so the token was not consumed.
	_, err = env.users.SetUserStatus(context.Background(), user.ID, true)
	require.NoError(t, err)
	_, err = env.auth.Refresh(context.Background(), usecase.RefreshInput{RefreshToken: pair.RefreshToken})
	assert.NoError(t, err)
}

func TestAuthService_Logout(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice")
	pair := env.login(t, "alice")

	require.NoError(t, env.auth.Logout(context.Background(), "alice"))
	require.NoError(t, env.auth.Logout(context.Background(), "alice"))

	_, err := env.auth.Refresh(context.Background(), usecase.RefreshInput{RefreshToken: pair.RefreshToken})
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)

	err = env.auth.Logout(context.Background(), "ghost")
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestAuthService_Login_StoreFailure(t *testing.T) {
	env := newTestEnv(t)
	boom := errors.New("connection reset")
	srv := env.auth.(*authService)
	srv.txManager = failingTxManager{err: boom}

	_, err := env.auth.Login(context.Background(), usecase.LoginInput{Username: "alice", Password: "x"})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, domainerrors.KindInternal, domainerrors.KindOf(err))
}

type failingTxManager struct {
	err error
}

func (f failingTxManager) Execute(context.Context, func(repository.RepositoryFactory) error) error {
	return f.err
}

func TestAuthService_Refresh_RollsBackWhenIssueFails(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.register(t, "alice")
	pair := env.login(t, "alice")

	tokens := mockSvc.NewMockTokenService(t)
	tokens.EXPECT().IsExpired(pair.RefreshToken).RunAndReturn(env.tokens.IsExpired)
	tokens.EXPECT().Parse(pair.RefreshToken).RunAndReturn(env.tokens.Parse)
	tokens.EXPECT().HashToken(pair.RefreshToken).RunAndReturn(env.tokens.HashToken)
	tokens.EXPECT().AccessTTL().RunAndReturn(env.tokens.AccessTTL)
	tokens.EXPECT().
		Issue("alice", mock.Anything, env.cfg.JWT.AccessTTL, service.PurposeAccess).
		Return("", errors.New("signer unavailable"))

	failing := NewAuthService(AuthServiceParams{
		TxManager:    env.tx,
		Hasher:       env.hasher,
		TokenService: tokens,
		Config:       env.cfg,
		Logger:       newDiscardLogger(),
	})
	failing.(*authService).now = env.clock.Now

	_, err := failing.Refresh(ctx, usecase.RefreshInput{RefreshToken: pair.RefreshToken})
	require.Error(t, err)

	// The revoke ran before the failure and must not survive it.
	require.NoError(t, env.tx.Execute(ctx, func(f repository.RepositoryFactory) error {
		stored, err := f.RefreshTokenRepo().FindRefreshTokenByHash(ctx, env.tokens.HashToken(pair.RefreshToken))
		require.NoError(t, err)
		assert.False(t, stored.Revoked)

		return nil
	}))

	rotated, err := env.auth.Refresh(ctx, usecase.RefreshInput{RefreshToken: pair.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)
}
