package entity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var permissionNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*:[a-z][a-z0-9_-]*$`)

// Permission is a named resource:action capability granted through roles.
type Permission struct {
	ID          uuid.UUID
	Name        string // resource:action, e.g. "doc:write".
	Description string
	Resource    string
	Action      string
	CreatedAt   time.Time
}

// IsValidPermissionName reports whether name follows the resource:action pattern.
func IsValidPermissionName(name string) bool {
	return permissionNamePattern.MatchString(name)
}

// SplitPermissionName returns the resource and action halves of a permission name.
func SplitPermissionName(name string) (resource, action string) {
	resource, action, _ = strings.Cut(name, ":")

	return resource, action
}
