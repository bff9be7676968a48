// Package service declares the ports the usecases depend on for hashing,
// token signing and metrics. Implementations live under internal/infra.
package service

// PasswordHasher is the credential verifier used by registration, admin user
// creation and login.
type PasswordHasher interface {
	// Hash returns a salted one-way hash. Inputs the algorithm cannot accept
	// (bcrypt: over 72 bytes) fail with ErrPasswordHashFailed.
	Hash(password string) (string, error)

	// Check reports whether password matches hash. A malformed hash is a mismatch.
	Check(password, hash string) bool
}
