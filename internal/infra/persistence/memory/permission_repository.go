package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type permissionRepository struct {
	st  *state
	now func() time.Time
}

func (repo *permissionRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Permission, error) {
	perm, ok := repo.st.permissions[id]
	if !ok {
		return nil, repository.ErrPermissionNotFound
	}

	return copyOf(perm), nil
}

func (repo *permissionRepository) FindByName(_ context.Context, name string) (*entity.Permission, error) {
	for _, perm := range repo.st.permissions {
		if perm.Name == name {
			return copyOf(perm), nil
		}
	}

	return nil, repository.ErrPermissionNotFound
}

func (repo *permissionRepository) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.Permission, error) {
	perms := make([]*entity.Permission, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if perm, ok := repo.st.permissions[id]; ok {
			perms = append(perms, copyOf(perm))
		}
	}
	sortPermissions(perms)

	return perms, nil
}

func (repo *permissionRepository) Create(_ context.Context, permission *entity.Permission) error {
	for _, existing := range repo.st.permissions {
		if existing.Name == permission.Name {
			return domainerrors.ErrPermissionAlreadyExists.WithDetails(permission.Name)
		}
	}

	if permission.ID == uuid.Nil {
		id, err := newID()
		if err != nil {
			return errors.Wrap(err, "failed to generate permission id")
		}
		permission.ID = id
	}
	permission.CreatedAt = repo.now()

	repo.st.permissions[permission.ID] = copyOf(permission)

	return nil
}

func (repo *permissionRepository) UpdateDescription(_ context.Context, id uuid.UUID, description string) error {
	perm, ok := repo.st.permissions[id]
	if !ok {
		return repository.ErrPermissionNotFound
	}
	perm.Description = description

	return nil
}

func (repo *permissionRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := repo.st.permissions[id]; !ok {
		return repository.ErrPermissionNotFound
	}
	for _, perms := range repo.st.rolePermissions {
		if _, held := perms[id]; held {
			return domainerrors.ErrPermissionInUse
		}
	}

	delete(repo.st.permissions, id)

	return nil
}

func sortPermissions(perms []*entity.Permission) {
	slices.SortFunc(perms, func(a, b *entity.Permission) int { return strings.Compare(a.Name, b.Name) })
}
