// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"identity/internal/domain/entity"

	"github.com/google/uuid"
)

// TokenTypeBearer is the token type reported with every issued pair.
const TokenTypeBearer = "Bearer"

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Username string
	Password string
}

// RefreshInput carries the refresh token presented for rotation.
type RefreshInput struct {
	RefreshToken string
}

// --- Output DTOs ---

// TokenPairOutput is returned by Login and Refresh. ExpiresIn is the access token lifetime in milliseconds.
type TokenPairOutput struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// UserOutput is the public projection of a user with its live grants.
type UserOutput struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Enabled     bool       `json:"enabled"`
	Roles       []string   `json:"roles"`
	Permissions []string   `json:"permissions"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLogin   *time.Time `json:"lastLogin,omitempty"`
}

// NewUserOutput projects a principal.
func NewUserOutput(p *entity.Principal) *UserOutput {
	return &UserOutput{
		ID:          p.User.ID,
		Username:    p.User.Username,
		Email:       p.User.Email,
		FirstName:   p.User.FirstName,
		LastName:    p.User.LastName,
		Enabled:     p.User.Enabled,
		Roles:       p.Roles,
		Permissions: p.Permissions,
		CreatedAt:   p.User.CreatedAt,
		LastLogin:   p.User.LastLogin,
	}
}

// AuthUsecase is the session manager: registration and the token pair lifecycle.
type AuthUsecase interface {
	// Register creates an enabled user holding the default role. No token is issued.
	Register(ctx context.Context, input RegisterInput) (*UserOutput, error)
	// Login verifies credentials and issues an access/refresh pair.
	Login(ctx context.Context, input LoginInput) (*TokenPairOutput, error)
	// Refresh rotates a refresh token: the presented one is revoked and a new pair is issued.
	Refresh(ctx context.Context, input RefreshInput) (*TokenPairOutput, error)
	// Logout deletes every refresh token of the user. Calling it twice is not an error.
	Logout(ctx context.Context, username string) error
}
