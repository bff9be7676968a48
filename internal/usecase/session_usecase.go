package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionOutput describes one live refresh chain link. The token itself is never exposed.
type SessionOutput struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SessionUsecase defines the interface for session management operations.
type SessionUsecase interface {
	ListActiveSessions(ctx context.Context, username string) ([]*SessionOutput, error)
	// RevokeSession revokes one of the caller's sessions. Sessions of other users are reported as not found.
	RevokeSession(ctx context.Context, username string, sessionID uuid.UUID) error
	// CleanupExpiredSessions deletes refresh tokens past their expiry and returns how many were removed.
	CleanupExpiredSessions(ctx context.Context) (int64, error)
}
