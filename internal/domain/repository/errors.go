// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import "github.com/pkg/errors"

// Domain-specific lookup errors returned by every store implementation.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrRoleNotFound         = errors.New("role not found")
	ErrPermissionNotFound   = errors.New("permission not found")
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
)
