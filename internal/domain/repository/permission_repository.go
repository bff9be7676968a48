package repository

import (
	"context"

	"identity/internal/domain/entity"

	"github.com/google/uuid"
)

// PermissionRepository persists permissions.
type PermissionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Permission, error)
	FindByName(ctx context.Context, name string) (*entity.Permission, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Permission, error)

	// Create returns domainerrors.ErrPermissionAlreadyExists on a name collision.
	Create(ctx context.Context, permission *entity.Permission) error
	UpdateDescription(ctx context.Context, id uuid.UUID, description string) error
	Delete(ctx context.Context, id uuid.UUID) error
}
