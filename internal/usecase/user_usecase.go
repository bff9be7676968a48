package usecase

import (
	"context"

	"github.com/google/uuid"
)

// CreateUserInput is the admin variant of registration: explicit roles and status.
// An empty RoleIDs falls back to the default role.
type CreateUserInput struct {
	RegisterInput
	Enabled bool
	RoleIDs []uuid.UUID
}

// UserUsecase administers user accounts and their role grants.
type UserUsecase interface {
	GetUser(ctx context.Context, id uuid.UUID) (*UserOutput, error)
	GetCurrentUser(ctx context.Context, username string) (*UserOutput, error)
	CreateUser(ctx context.Context, input CreateUserInput) (*UserOutput, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	SetUserStatus(ctx context.Context, id uuid.UUID, enabled bool) (*UserOutput, error)
	AssignRoles(ctx context.Context, id uuid.UUID, roleIDs []uuid.UUID) (*UserOutput, error)
	// RemoveRole revokes a grant. actorUsername is the caller; an admin cannot drop their own ADMIN role.
	RemoveRole(ctx context.Context, actorUsername string, id, roleID uuid.UUID) (*UserOutput, error)
	ListRoles(ctx context.Context, id uuid.UUID) ([]*RoleOutput, error)
}
