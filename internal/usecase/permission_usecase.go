package usecase

import (
	"context"
	"time"

	"identity/internal/domain/entity"

	"github.com/google/uuid"
)

// PermissionInput is the writable part of a permission. Resource and Action
// default to the halves of Name when empty.
type PermissionInput struct {
	Name        string
	Description string
	Resource    string
	Action      string
}

// PermissionOutput is the public projection of a permission.
type PermissionOutput struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Resource    string    `json:"resource"`
	Action      string    `json:"action"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewPermissionOutput projects a permission.
func NewPermissionOutput(p *entity.Permission) *PermissionOutput {
	return &PermissionOutput{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Resource:    p.Resource,
		Action:      p.Action,
		CreatedAt:   p.CreatedAt,
	}
}

// NewPermissionOutputs projects a slice of permissions.
func NewPermissionOutputs(perms []*entity.Permission) []*PermissionOutput {
	out := make([]*PermissionOutput, 0, len(perms))
	for _, perm := range perms {
		out = append(out, NewPermissionOutput(perm))
	}

	return out
}

// PermissionUsecase administers permissions.
type PermissionUsecase interface {
	CreatePermission(ctx context.Context, input PermissionInput) (*PermissionOutput, error)
	GetPermission(ctx context.Context, id uuid.UUID) (*PermissionOutput, error)
	GetPermissionByName(ctx context.Context, name string) (*PermissionOutput, error)
	UpdatePermission(ctx context.Context, id uuid.UUID, description string) (*PermissionOutput, error)
	// DeletePermission rejects permissions still attached to a role.
	DeletePermission(ctx context.Context, id uuid.UUID) error
}
