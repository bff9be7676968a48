package impl

import (
	"context"
	"testing"

	domainerrors "identity/internal/domain/errors"
	"identity/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionService_CreatePermission(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	perm, err := env.perms.CreatePermission(ctx, usecase.PermissionInput{Name: "doc:write", Description: "write docs"})
	require.NoError(t, err)
	assert.Equal(t, "doc", perm.Resource)
	assert.Equal(t, "write", perm.Action)

	_, err = env.perms.CreatePermission(ctx, usecase.PermissionInput{Name: "doc:write"})
	assert.ErrorIs(t, err, domainerrors.ErrPermissionAlreadyExists)

	for _, name := range []string{"DocWrite", "doc", "doc:write:all"} {
		_, err = env.perms.CreatePermission(ctx, usecase.PermissionInput{Name: name})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidPermissionName, name)
	}

	byName, err := env.perms.GetPermissionByName(ctx, "doc:write")
	require.NoError(t, err)
	assert.Equal(t, perm.ID, byName.ID)

	updated, err := env.perms.UpdatePermission(ctx, perm.ID, "write any doc")
	require.NoError(t, err)
	assert.Equal(t, "write any doc", updated.Description)
}

// A permission held by a role cannot be deleted until every role lets go of it.
func TestPermissionService_DeletePermissionInUse(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	perm, err := env.perms.CreatePermission(ctx, usecase.PermissionInput{Name: "doc:write"})
	require.NoError(t, err)
	editor, err := env.roles.CreateRole(ctx, usecase.RoleInput{Name: "EDITOR"})
	require.NoError(t, err)
	reviewer, err := env.roles.CreateRole(ctx, usecase.RoleInput{Name: "REVIEWER"})
	require.NoError(t, err)
	for _, roleID := range []uuid.UUID{editor.ID, reviewer.ID} {
		_, err = env.roles.AssignPermissions(ctx, roleID, []uuid.UUID{perm.ID})
		require.NoError(t, err)
	}

	err = env.perms.DeletePermission(ctx, perm.ID)
	assert.ErrorIs(t, err, domainerrors.ErrPermissionInUse)
	assert.Equal(t, domainerrors.KindPolicyViolation, domainerrors.KindOf(err))

	for _, roleID := range []uuid.UUID{editor.ID, reviewer.ID} {
		_, err = env.roles.RemovePermission(ctx, roleID, perm.ID)
		require.NoError(t, err)
	}

	require.NoError(t, env.perms.DeletePermission(ctx, perm.ID))

	_, err = env.perms.GetPermission(ctx, perm.ID)
	assert.ErrorIs(t, err, domainerrors.ErrPermissionNotFound)
}
