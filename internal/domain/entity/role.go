package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	// AdminRoleName is the protected administrator role.
	AdminRoleName = "ADMIN"

	// AuthorityRolePrefix is prepended to role names in the authorities set.
	AuthorityRolePrefix = "ROLE_"
)

// Role groups permissions and is granted to users.
type Role struct {
	ID          uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsProtected reports whether the role is the ADMIN role, which cannot be updated or deleted.
func (r *Role) IsProtected() bool {
	return r.Name == AdminRoleName
}

// RoleAuthority returns the authority string for a role name.
func RoleAuthority(roleName string) string {
	return AuthorityRolePrefix + roleName
}
