package usecase

import (
	"context"
	"time"

	"identity/internal/domain/entity"

	"github.com/google/uuid"
)

// RoleInput is the writable part of a role.
type RoleInput struct {
	Name        string
	Description string
}

// RoleOutput is a role with the names of its permissions.
type RoleOutput struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewRoleOutput projects a role and its permissions.
func NewRoleOutput(role *entity.Role, permissions []*entity.Permission) *RoleOutput {
	names := make([]string, 0, len(permissions))
	for _, perm := range permissions {
		names = append(names, perm.Name)
	}

	return &RoleOutput{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		Permissions: names,
		CreatedAt:   role.CreatedAt,
		UpdatedAt:   role.UpdatedAt,
	}
}

// RoleUsecase administers roles and their permission grants.
type RoleUsecase interface {
	CreateRole(ctx context.Context, input RoleInput) (*RoleOutput, error)
	GetRole(ctx context.Context, id uuid.UUID) (*RoleOutput, error)
	GetRoleByName(ctx context.Context, name string) (*RoleOutput, error)
	// UpdateRole changes the description. The ADMIN role is immutable.
	UpdateRole(ctx context.Context, id uuid.UUID, description string) (*RoleOutput, error)
	// DeleteRole rejects ADMIN and roles still held by a user.
	DeleteRole(ctx context.Context, id uuid.UUID) error
	AssignPermissions(ctx context.Context, roleID uuid.UUID, permissionIDs []uuid.UUID) (*RoleOutput, error)
	RemovePermission(ctx context.Context, roleID, permissionID uuid.UUID) (*RoleOutput, error)
	ListPermissions(ctx context.Context, roleID uuid.UUID) ([]*PermissionOutput, error)
}
