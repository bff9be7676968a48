package repository

import (
	"context"
	"time"

	"identity/internal/domain/entity"

	"github.com/google/uuid"
)

// RefreshTokenRepository defines the persistence operations for refresh token chains.
type RefreshTokenRepository interface {
	// CreateRefreshToken persists a new refresh token record.
	CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error

	// FindRefreshTokenByHash retrieves a refresh token record by its stored hash.
	FindRefreshTokenByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)

	// LockRefreshTokenByHash is FindRefreshTokenByHash holding a row lock until the
	// surrounding transaction ends, so concurrent rotations of one token serialize.
	LockRefreshTokenByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)

	// RevokeRefreshToken flips revoked to true only if it is still false.
	// It reports whether this call performed the flip.
	RevokeRefreshToken(ctx context.Context, id uuid.UUID) (bool, error)

	// FindActiveRefreshTokensByUserID lists non-revoked, non-expired records of a user.
	FindActiveRefreshTokensByUserID(ctx context.Context, userID uuid.UUID, now time.Time) ([]*entity.RefreshToken, error)

	// DeleteRefreshTokensByUserID removes every record of the user and returns how many were removed.
	DeleteRefreshTokensByUserID(ctx context.Context, userID uuid.UUID) (int64, error)

	// DeleteExpiredRefreshTokens removes records whose expiry is at or before now.
	DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error)
}
