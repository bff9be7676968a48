package entity

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is one link in a refresh chain. Rotation flips Revoked on the old
// record and creates a new one; logout deletes every record of the user.
type RefreshToken struct {
	ID        uuid.UUID // The unique ID for this specific refresh token record.
	UserID    uuid.UUID // Links this session to the User it belongs to.
	TokenHash string    // SHA-256 hash of the raw refresh token.
	ExpiresAt time.Time // The exact time when this refresh token will expire and become invalid.
	Revoked   bool      // Set once the token has been rotated.
	CreatedAt time.Time // Timestamp of when this session was created.
}

// IsExpired reports whether the record's expiry has passed at now.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// IsActive reports whether the record is neither revoked nor expired at now.
func (t *RefreshToken) IsActive(now time.Time) bool {
	return !t.Revoked && !t.IsExpired(now)
}
