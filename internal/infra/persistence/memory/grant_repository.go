package memory

import (
	"context"

	"identity/internal/domain/entity"
	"identity/internal/domain/repository"

	"github.com/google/uuid"
)

type grantRepository struct {
	st *state
}

func (repo *grantRepository) AssignRoles(_ context.Context, userID uuid.UUID, roleIDs []uuid.UUID) error {
	if len(roleIDs) == 0 {
		return nil
	}
	if _, ok := repo.st.users[userID]; !ok {
		return repository.ErrUserNotFound
	}
	for _, roleID := range roleIDs {
		if _, ok := repo.st.roles[roleID]; !ok {
			return repository.ErrRoleNotFound
		}
	}

	set, ok := repo.st.userRoles[userID]
	if !ok {
		set = make(idSet, len(roleIDs))
		repo.st.userRoles[userID] = set
	}
	for _, roleID := range roleIDs {
		set[roleID] = struct{}{}
	}

	return nil
}

func (repo *grantRepository) RevokeRole(_ context.Context, userID, roleID uuid.UUID) error {
	delete(repo.st.userRoles[userID], roleID)

	return nil
}

func (repo *grantRepository) RolesOfUser(_ context.Context, userID uuid.UUID) ([]*entity.Role, error) {
	roles := make([]*entity.Role, 0, len(repo.st.userRoles[userID]))
	for roleID := range repo.st.userRoles[userID] {
		if role, ok := repo.st.roles[roleID]; ok {
			roles = append(roles, copyOf(role))
		}
	}
	sortRoles(roles)

	return roles, nil
}

func (repo *grantRepository) CountUsersWithRole(_ context.Context, roleID uuid.UUID) (int64, error) {
	var count int64
	for _, roles := range repo.st.userRoles {
		if _, held := roles[roleID]; held {
			count++
		}
	}

	return count, nil
}

func (repo *grantRepository) GrantPermissions(_ context.Context, roleID uuid.UUID, permissionIDs []uuid.UUID) error {
	if len(permissionIDs) == 0 {
		return nil
	}
	if _, ok := repo.st.roles[roleID]; !ok {
		return repository.ErrRoleNotFound
	}
	for _, permissionID := range permissionIDs {
		if _, ok := repo.st.permissions[permissionID]; !ok {
			return repository.ErrPermissionNotFound
		}
	}

	set, ok := repo.st.rolePermissions[roleID]
	if !ok {
		set = make(idSet, len(permissionIDs))
		repo.st.rolePermissions[roleID] = set
	}
	for _, permissionID := range permissionIDs {
		set[permissionID] = struct{}{}
	}

	return nil
}

func (repo *grantRepository) RevokePermission(_ context.Context, roleID, permissionID uuid.UUID) error {
	delete(repo.st.rolePermissions[roleID], permissionID)

	return nil
}

func (repo *grantRepository) PermissionsOfRole(_ context.Context, roleID uuid.UUID) ([]*entity.Permission, error) {
	perms := make([]*entity.Permission, 0, len(repo.st.rolePermissions[roleID]))
	for permissionID := range repo.st.rolePermissions[roleID] {
		if perm, ok := repo.st.permissions[permissionID]; ok {
			perms = append(perms, copyOf(perm))
		}
	}
	sortPermissions(perms)

	return perms, nil
}

func (repo *grantRepository) PermissionsOfUser(_ context.Context, userID uuid.UUID) ([]*entity.Permission, error) {
	seen := make(idSet)
	var perms []*entity.Permission
	for roleID := range repo.st.userRoles[userID] {
		for permissionID := range repo.st.rolePermissions[roleID] {
			if _, dup := seen[permissionID]; dup {
				continue
			}
			seen[permissionID] = struct{}{}
			if perm, ok := repo.st.permissions[permissionID]; ok {
				perms = append(perms, copyOf(perm))
			}
		}
	}
	sortPermissions(perms)

	return perms, nil
}

func (repo *grantRepository) CountRolesWithPermission(_ context.Context, permissionID uuid.UUID) (int64, error) {
	var count int64
	for _, perms := range repo.st.rolePermissions {
		if _, held := perms[permissionID]; held {
			count++
		}
	}

	return count, nil
}
