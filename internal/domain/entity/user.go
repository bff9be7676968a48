// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that can authenticate and hold roles.
type User struct {
	ID                    uuid.UUID  // The Global Unique Identifier (GUID) for the user.
	Username              string     // Unique login name; also the token subject.
	Email                 string     // Unique contact email.
	PasswordHash          string     // bcrypt hash of the password.
	FirstName             string     // Optional given name.
	LastName              string     // Optional family name.
	Enabled               bool       // Disabled accounts cannot log in and their tokens stop validating.
	AccountNonExpired     bool       // False once the account has expired.
	AccountNonLocked      bool       // False while the account is locked.
	CredentialsNonExpired bool       // False once the password has expired.
	CreatedAt             time.Time  // Timestamp of when this user account was created.
	UpdatedAt             time.Time  // Timestamp of the last modification to this user's data.
	LastLogin             *time.Time // Nil until the first successful login.
}

// NewUser returns an enabled user with every account-state flag set.
func NewUser(username, email, passwordHash string) *User {
	return &User{
		Username:              username,
		Email:                 email,
		PasswordHash:          passwordHash,
		Enabled:               true,
		AccountNonExpired:     true,
		AccountNonLocked:      true,
		CredentialsNonExpired: true,
	}
}

// CanAuthenticate reports whether every account-state flag allows a login.
func (u *User) CanAuthenticate() bool {
	return u.Enabled && u.AccountNonExpired && u.AccountNonLocked && u.CredentialsNonExpired
}
