package repository

import (
	"context"
	"time"

	"identity/internal/domain/entity"

	"github.com/google/uuid"
)

// UserRepository defines the standard operations for user persistence.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByUsername retrieves a single user by username.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// ExistsByUsername reports whether a user with the username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail reports whether a user with the email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Create persists a new user. A username or email collision returns
	// domainerrors.ErrUserAlreadyExists, enforced by the store itself.
	Create(ctx context.Context, user *entity.User) error

	// UpdateStatus sets the enabled flag.
	UpdateStatus(ctx context.Context, id uuid.UUID, enabled bool) error

	// UpdateLastLogin records a successful login.
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error

	// Delete removes the user together with its role grants and refresh tokens.
	Delete(ctx context.Context, id uuid.UUID) error
}
