package repository

import (
	"context"

	"identity/internal/domain/entity"

	"github.com/google/uuid"
)

// RoleRepository persists roles. Grants live in GrantRepository.
type RoleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Role, error)
	FindByName(ctx context.Context, name string) (*entity.Role, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Role, error)

	// Create returns domainerrors.ErrRoleAlreadyExists on a name collision.
	Create(ctx context.Context, role *entity.Role) error
	UpdateDescription(ctx context.Context, id uuid.UUID, description string) error
	Delete(ctx context.Context, id uuid.UUID) error
}
