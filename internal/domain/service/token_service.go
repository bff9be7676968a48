package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenPurpose distinguishes access tokens from refresh tokens.
type TokenPurpose string

const (
	PurposeAccess  TokenPurpose = "access"
	PurposeRefresh TokenPurpose = "refresh"
)

// Claims is the payload carried by issued tokens. Refresh tokens carry only the
// registered claims plus Type.
type Claims struct {
	UserID      string   `json:"userId,omitempty"`
	Username    string   `json:"username,omitempty"`
	Email       string   `json:"email,omitempty"`
	Roles       []string `json:"roles,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
	Authorities []string `json:"authorities,omitempty"`
	Type        string   `json:"type,omitempty"`
	jwt.RegisteredClaims
}

// IsRefresh reports whether the claims were issued for a refresh token.
func (c *Claims) IsRefresh() bool {
	return c.Type == string(PurposeRefresh)
}

// TokenService signs claim sets into compact tokens and verifies them back.
type TokenService interface {
	// Issue signs claims for subject. It always sets sub, iss, iat, exp and jti;
	// refresh-purpose tokens get type=refresh and lose every authorization claim.
	Issue(subject string, claims *Claims, ttl time.Duration, purpose TokenPurpose) (string, error)

	// Parse verifies signature, issuer and expiry. Structural or signature
	// failures return domainerrors.ErrTokenInvalid, expiry returns domainerrors.ErrTokenExpired.
	Parse(token string) (*Claims, error)

	// IsExpired verifies the signature and reports whether exp has passed,
	// without treating expiry as a verification failure.
	IsExpired(token string) (bool, error)

	// ExtractSubject returns the sub claim of a fully valid token.
	ExtractSubject(token string) (string, error)

	// ExtractAllClaims returns every claim of a fully valid token.
	ExtractAllClaims(token string) (*Claims, error)

	// HashToken returns the digest under which refresh tokens are stored.
	HashToken(token string) string

	AccessTTL() time.Duration
	RefreshTTL() time.Duration
}
