package repository

import (
	"context"

	"identity/internal/domain/entity"

	"github.com/google/uuid"
)

// GrantRepository owns the two relation tables: user_id -> role_id and
// role_id -> permission_id. Resolution is done with explicit joins, so neither
// side of a relation holds back-references.
type GrantRepository interface {
	// AssignRoles grants roles to a user. Already granted roles are ignored.
	AssignRoles(ctx context.Context, userID uuid.UUID, roleIDs []uuid.UUID) error

	// RevokeRole removes a single role grant. Removing a grant that does not exist is a no-op.
	RevokeRole(ctx context.Context, userID, roleID uuid.UUID) error

	// RolesOfUser lists the roles granted to a user.
	RolesOfUser(ctx context.Context, userID uuid.UUID) ([]*entity.Role, error)

	// CountUsersWithRole counts users holding the role.
	CountUsersWithRole(ctx context.Context, roleID uuid.UUID) (int64, error)

	// GrantPermissions attaches permissions to a role. Already attached permissions are ignored.
	GrantPermissions(ctx context.Context, roleID uuid.UUID, permissionIDs []uuid.UUID) error

	// RevokePermission detaches a permission from a role.
	RevokePermission(ctx context.Context, roleID, permissionID uuid.UUID) error

	// PermissionsOfRole lists the permissions attached to a role.
	PermissionsOfRole(ctx context.Context, roleID uuid.UUID) ([]*entity.Permission, error)

	// PermissionsOfUser lists every permission reachable through the user's roles, without duplicates.
	PermissionsOfUser(ctx context.Context, userID uuid.UUID) ([]*entity.Permission, error)

	// CountRolesWithPermission counts roles the permission is attached to.
	CountRolesWithPermission(ctx context.Context, permissionID uuid.UUID) (int64, error)
}
