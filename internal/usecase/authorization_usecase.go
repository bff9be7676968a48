package usecase

import (
	"context"

	"identity/internal/domain/entity"
)

// IntrospectionOutput mirrors an RFC 7662 response. Only Active is set for inactive tokens.
type IntrospectionOutput struct {
	Active      bool     `json:"active"`
	Username    string   `json:"username,omitempty"`
	Subject     string   `json:"sub,omitempty"`
	ClientID    string   `json:"clientId,omitempty"`
	ExpiresAt   int64    `json:"exp,omitempty"`
	IssuedAt    int64    `json:"iat,omitempty"`
	Roles       []string `json:"roles,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

// AuthorizationUsecase answers authorization questions from live persisted state.
type AuthorizationUsecase interface {
	// Introspect never fails: every problem degrades to an inactive result.
	Introspect(ctx context.Context, token string) *IntrospectionOutput
	// Validate reports whether Introspect would return an active result.
	Validate(ctx context.Context, token string) bool
	// Principal loads the current roles and permissions of an enabled user.
	Principal(ctx context.Context, username string) (*entity.Principal, error)
}
