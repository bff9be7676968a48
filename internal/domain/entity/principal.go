package entity

import (
	"slices"
)

// Principal is the authorization snapshot of a user: the role names, the
// permission names reachable through those roles, and the combined authorities.
type Principal struct {
	User        *User
	Roles       []string
	Permissions []string
	Authorities []string
}

// NewPrincipal materializes a principal from a user's roles and the permissions
// reachable through them. Output slices are sorted and free of duplicates.
func NewPrincipal(user *User, roles []*Role, permissions []*Permission) *Principal {
	roleNames := make([]string, 0, len(roles))
	for _, role := range roles {
		roleNames = append(roleNames, role.Name)
	}
	roleNames = sortedUnique(roleNames)

	permissionNames := make([]string, 0, len(permissions))
	for _, perm := range permissions {
		permissionNames = append(permissionNames, perm.Name)
	}
	permissionNames = sortedUnique(permissionNames)

	authorities := make([]string, 0, len(roleNames)+len(permissionNames))
	for _, name := range roleNames {
		authorities = append(authorities, RoleAuthority(name))
	}
	authorities = append(authorities, permissionNames...)

	return &Principal{
		User:        user,
		Roles:       roleNames,
		Permissions: permissionNames,
		Authorities: sortedUnique(authorities),
	}
}

// HasRole reports whether the principal holds the named role.
func (p *Principal) HasRole(name string) bool {
	_, found := slices.BinarySearch(p.Roles, name)

	return found
}

// HasPermission reports whether the principal holds the named permission.
func (p *Principal) HasPermission(name string) bool {
	_, found := slices.BinarySearch(p.Permissions, name)

	return found
}

// HasAuthority reports whether the principal holds the authority.
func (p *Principal) HasAuthority(authority string) bool {
	_, found := slices.BinarySearch(p.Authorities, authority)

	return found
}

func sortedUnique(values []string) []string {
	out := slices.Clone(values)
	slices.Sort(out)

	return slices.Compact(out)
}
