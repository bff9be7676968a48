package impl

import (
	"context"
	"testing"
	"time"

	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/service"
	"identity/internal/errors"
	"identity/internal/infra/auth"
	mockRepo "identity/internal/mocks/repository"
	"identity/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthorizationService_Introspect_Active(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice")
	pair := env.login(t, "alice")

	out := env.authz.Introspect(context.Background(), pair.AccessToken)

	require.True(t, out.Active)
	assert.Equal(t, "alice", out.Username)
	assert.Equal(t, "alice", out.Subject)
	assert.Equal(t, "identity-service", out.ClientID)
	assert.Equal(t, env.clock.Now().Unix(), out.IssuedAt)
	assert.Equal(t, env.clock.Now().Add(15*time.Minute).Unix(), out.ExpiresAt)
	assert.Equal(t, []string{"USER"}, out.Roles)
	assert.True(t, env.authz.Validate(context.Background(), pair.AccessToken))
}

func TestAuthorizationService_Introspect_Inactive(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "alice")
	pair := env.login(t, "alice")

	t.Run("malformed", func(t *testing.T) {
		out := env.authz.Introspect(context.Background(), "garbage")
		assert.Equal(t, &usecase.IntrospectionOutput{Active: false}, out)
	})

	t.Run("refresh token", func(t *testing.T) {
		assert.False(t, env.authz.Validate(context.Background(), pair.RefreshToken))
	})

	t.Run("disabled principal", func(t *testing.T) {
		_, err := env.users.SetUserStatus(context.Background(), user.ID, false)
		require.NoError(t, err)
		t.Cleanup(func() {
			_, _ = env.users.SetUserStatus(context.Background(), user.ID, true)
		})

		assert.False(t, env.authz.Introspect(context.Background(), pair.AccessToken).Active)
	})

	t.Run("unknown principal", func(t *testing.T) {
		ghost, err := env.tokens.Issue("ghost", nil, time.Hour, "access")
		require.NoError(t, err)

		assert.False(t, env.authz.Validate(context.Background(), ghost))
	})

	t.Run("expired", func(t *testing.T) {
		env.clock.Advance(16 * time.Minute)

		assert.False(t, env.authz.Validate(context.Background(), pair.AccessToken))
		assert.False(t, env.authz.Introspect(context.Background(), pair.AccessToken).Active)
	})
}

// An access token issued before a grant still introspects with the new permission.
func TestAuthorizationService_Introspect_ReflectsLiveGrants(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	pair := env.login(t, "alice")

	editor, err := env.roles.CreateRole(ctx, usecase.RoleInput{Name: "EDITOR"})
	require.NoError(t, err)
	docWrite, err := env.perms.CreatePermission(ctx, usecase.PermissionInput{Name: "doc:write"})
	require.NoError(t, err)
	_, err = env.roles.AssignPermissions(ctx, editor.ID, []uuid.UUID{docWrite.ID})
	require.NoError(t, err)
	_, err = env.users.AssignRoles(ctx, alice.ID, []uuid.UUID{editor.ID})
	require.NoError(t, err)

	claims, err := env.tokens.Parse(pair.AccessToken)
	require.NoError(t, err)
	assert.NotContains(t, claims.Permissions, "doc:write")

	out := env.authz.Introspect(ctx, pair.AccessToken)
	require.True(t, out.Active)
	assert.Contains(t, out.Permissions, "doc:write")
	assert.ElementsMatch(t, []string{"EDITOR", "USER"}, out.Roles)

	principal, err := env.authz.Principal(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, principal.HasAuthority("ROLE_EDITOR"))
	assert.True(t, principal.HasPermission("doc:write"))
}

func TestAuthorizationService_Principal(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "alice")

	_, err := env.authz.Principal(context.Background(), "ghost")
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)

	_, err = env.users.SetUserStatus(context.Background(), user.ID, false)
	require.NoError(t, err)

	_, err = env.authz.Principal(context.Background(), "alice")
	assert.ErrorIs(t, err, domainerrors.ErrAuthenticationFailed)
}

func TestClaimsBuilder_RespectsIncludeSwitches(t *testing.T) {
	cfg := newTestConfig()
	cfg.JWT.IncludeUserDetails = false
	cfg.JWT.IncludePermissions = false
	builder := newClaimsBuilder(cfg.JWT)

	principal := entity.NewPrincipal(
		entity.NewUser("alice", "alice@example.com", "hash"),
		[]*entity.Role{{Name: "EDITOR"}},
		[]*entity.Permission{{Name: "doc:write"}},
	)

	claims := builder.Claims(principal)

	assert.Empty(t, claims.UserID)
	assert.Empty(t, claims.Email)
	assert.Empty(t, claims.Permissions)
	assert.Equal(t, []string{"EDITOR"}, claims.Roles)
	assert.Equal(t, []string{"ROLE_EDITOR", "doc:write"}, claims.Authorities)
}

func TestAuthorizationService_Introspect_InactiveWhenGrantsUnavailable(t *testing.T) {
	ctx := context.Background()
	cfg := newTestConfig()
	tokens, err := auth.NewTokenCodec(cfg.JWT)
	require.NoError(t, err)
	token, err := tokens.Issue("alice", nil, time.Minute, service.PurposeAccess)
	require.NoError(t, err)

	user := entity.NewUser("alice", "alice@example.com", "hash")
	user.ID = uuid.New()

	txManager := mockRepo.NewMockTransactionManager(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	users := mockRepo.NewMockUserRepository(t)
	grants := mockRepo.NewMockGrantRepository(t)

	expectTx(txManager, factory)
	factory.EXPECT().UserRepo().Return(users)
	factory.EXPECT().GrantRepo().Return(grants)
	users.EXPECT().FindByUsername(mock.Anything, "alice").Return(user, nil)
	grants.EXPECT().RolesOfUser(mock.Anything, user.ID).Return([]*entity.Role{{ID: uuid.New(), Name: "USER"}}, nil)
	grants.EXPECT().PermissionsOfUser(mock.Anything, user.ID).Return(nil, errors.New("connection reset"))

	authz := NewAuthorizationService(AuthorizationServiceParams{
		TxManager:    txManager,
		TokenService: tokens,
		Config:       cfg,
		Logger:       newDiscardLogger(),
	})

	out := authz.Introspect(ctx, token)
	assert.False(t, out.Active)
	assert.Empty(t, out.Username)
	assert.False(t, authz.Validate(ctx, token))

	_, err = authz.Principal(ctx, "alice")
	assert.Error(t, err)
}
