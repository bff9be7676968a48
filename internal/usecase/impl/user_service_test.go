package impl

import (
	"context"
	"testing"

	domainerrors "identity/internal/domain/errors"
	mockRepo "identity/internal/mocks/repository"
	mockSvc "identity/internal/mocks/service"
	"identity/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_CreateUser_WithExplicitRoles(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	adminID := env.roleID(t, "ADMIN")

	out, err := env.users.CreateUser(ctx, usecase.CreateUserInput{
		RegisterInput: usecase.RegisterInput{
			Username:  "root",
			Email:     "root@example.com",
			Password:  "password-root",
			FirstName: "Ro",
			LastName:  "Ot",
		},
		Enabled: true,
		RoleIDs: []uuid.UUID{adminID, adminID},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"ADMIN"}, out.Roles)
	assert.True(t, out.Enabled)
	assert.Equal(t, "Ro", out.FirstName)

	_, err = env.users.CreateUser(ctx, usecase.CreateUserInput{
		RegisterInput: usecase.RegisterInput{Username: "other", Email: "other@example.com", Password: "pw"},
		RoleIDs:       []uuid.UUID{uuid.New()},
	})
	assert.ErrorIs(t, err, domainerrors.ErrRoleNotFound)
}

func TestUserService_CreateUser_Disabled(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	out, err := env.users.CreateUser(ctx, usecase.CreateUserInput{
		RegisterInput: usecase.RegisterInput{Username: "dormant", Email: "dormant@example.com", Password: "password-dormant"},
	})
	require.NoError(t, err)
	assert.False(t, out.Enabled)
	assert.Equal(t, []string{"USER"}, out.Roles)

	_, err = env.auth.Login(ctx, usecase.LoginInput{Username: "dormant", Password: "password-dormant"})
	assert.ErrorIs(t, err, domainerrors.ErrAuthenticationFailed)
}

func TestUserService_CreateUser_HashFailure(t *testing.T) {
	hasher := mockSvc.NewMockPasswordHasher(t)
	txManager := mockRepo.NewMockTransactionManager(t)
	srv := NewUserService(UserServiceParams{
		TxManager: txManager,
		Hasher:    hasher,
		Config:    newTestConfig(),
		Logger:    newDiscardLogger(),
	})

	hasher.EXPECT().Hash("pw").Return("", domainerrors.ErrPasswordHashFailed.WrapMessage("bcrypt"))

	_, err := srv.CreateUser(context.Background(), usecase.CreateUserInput{
		RegisterInput: usecase.RegisterInput{Username: "x", Email: "x@example.com", Password: "pw"},
	})

	assert.ErrorIs(t, err, domainerrors.ErrPasswordHashFailed)
}

func TestUserService_RemoveRole_SelfAdminRemoval(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	adminID := env.roleID(t, "ADMIN")
	root := env.register(t, "root")
	other := env.register(t, "other")

	for _, id := range []uuid.UUID{root.ID, other.ID} {
		_, err := env.users.AssignRoles(ctx, id, []uuid.UUID{adminID})
		require.NoError(t, err)
	}

	_, err := env.users.RemoveRole(ctx, "root", root.ID, adminID)
	assert.ErrorIs(t, err, domainerrors.ErrSelfAdminRemoval)
	assert.Equal(t, domainerrors.KindPolicyViolation, domainerrors.KindOf(err))

	out, err := env.users.RemoveRole(ctx, "root", other.ID, adminID)
	require.NoError(t, err)
	assert.Equal(t, []string{"USER"}, out.Roles)

	_, err = env.users.RemoveRole(ctx, "root", other.ID, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrRoleNotFound)
}

func TestUserService_StatusAndLookup(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "alice")

	out, err := env.users.SetUserStatus(ctx, alice.ID, false)
	require.NoError(t, err)
	assert.False(t, out.Enabled)

	got, err := env.users.GetUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.False(t, got.Enabled)

	current, err := env.users.GetCurrentUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, current.ID)

	_, err = env.users.GetUser(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)

	_, err = env.users.SetUserStatus(ctx, uuid.New(), true)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_AssignRolesAndList(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "alice")

	_, err := env.users.AssignRoles(ctx, alice.ID, nil)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	editor, err := env.roles.CreateRole(ctx, usecase.RoleInput{Name: "EDITOR"})
	require.NoError(t, err)
	_, err = env.users.AssignRoles(ctx, alice.ID, []uuid.UUID{editor.ID})
	require.NoError(t, err)

	roles, err := env.users.ListRoles(ctx, alice.ID)
	require.NoError(t, err)
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, role.Name)
	}
	assert.Equal(t, []string{"EDITOR", "USER"}, names)
}

func TestUserService_DeleteUser(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	pair := env.login(t, "alice")

	require.NoError(t, env.users.DeleteUser(ctx, alice.ID))

	_, err := env.users.GetUser(ctx, alice.ID)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)

	_, err = env.auth.Refresh(ctx, usecase.RefreshInput{RefreshToken: pair.RefreshToken})
	require.Error(t, err)

	err = env.users.DeleteUser(ctx, alice.ID)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
	assert.False(t, errors.Is(err, domainerrors.ErrRoleNotFound))
}
