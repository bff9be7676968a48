package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPrincipal_DeduplicatesAndPrefixesRoles(t *testing.T) {
	user := NewUser("alice", "alice@example.com", "hash")
	roles := []*Role{{Name: "EDITOR"}, {Name: "USER"}, {Name: "EDITOR"}}
	perms := []*Permission{{Name: "doc:write"}, {Name: "doc:read"}, {Name: "doc:write"}}

	p := NewPrincipal(user, roles, perms)

	assert.Equal(t, []string{"EDITOR", "USER"}, p.Roles)
	assert.Equal(t, []string{"doc:read", "doc:write"}, p.Permissions)
	assert.ElementsMatch(t, []string{"ROLE_EDITOR", "ROLE_USER", "doc:read", "doc:write"}, p.Authorities)
	assert.Len(t, p.Authorities, 4)

	assert.True(t, p.HasRole("EDITOR"))
	assert.False(t, p.HasRole("ROLE_EDITOR"))
	assert.True(t, p.HasPermission("doc:write"))
	assert.True(t, p.HasAuthority("ROLE_USER"))
	assert.False(t, p.HasAuthority("USER"))
}

func TestNewPrincipal_Empty(t *testing.T) {
	p := NewPrincipal(NewUser("bob", "bob@example.com", "hash"), nil, nil)

	assert.Empty(t, p.Roles)
	assert.Empty(t, p.Permissions)
	assert.Empty(t, p.Authorities)
	assert.False(t, p.HasRole(AdminRoleName))
}

func TestIsValidPermissionName(t *testing.T) {
	valid := []string{"doc:write", "user-admin:read", "a:b", "report_v2:export"}
	invalid := []string{"", "doc", "Doc:write", "doc:Write", "doc:write:all", "1doc:write", ":write", "doc:"}

	for _, name := range valid {
		assert.True(t, IsValidPermissionName(name), name)
	}
	for _, name := range invalid {
		assert.False(t, IsValidPermissionName(name), name)
	}

	resource, action := SplitPermissionName("doc:write")
	assert.Equal(t, "doc", resource)
	assert.Equal(t, "write", action)
}

func TestUser_CanAuthenticate(t *testing.T) {
	u := NewUser("carol", "carol@example.com", "hash")
	assert.True(t, u.CanAuthenticate())

	u.AccountNonLocked = false
	assert.False(t, u.CanAuthenticate())
}
