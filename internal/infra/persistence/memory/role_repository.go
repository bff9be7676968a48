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

type roleRepository struct {
	st  *state
	now func() time.Time
}

func (repo *roleRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Role, error) {
	role, ok := repo.st.roles[id]
	if !ok {
		return nil, repository.ErrRoleNotFound
	}

	return copyOf(role), nil
}

func (repo *roleRepository) FindByName(_ context.Context, name string) (*entity.Role, error) {
	for _, role := range repo.st.roles {
		if role.Name == name {
			return copyOf(role), nil
		}
	}

	return nil, repository.ErrRoleNotFound
}

func (repo *roleRepository) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.Role, error) {
	roles := make([]*entity.Role, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if role, ok := repo.st.roles[id]; ok {
			roles = append(roles, copyOf(role))
		}
	}
	sortRoles(roles)

	return roles, nil
}

func (repo *roleRepository) Create(_ context.Context, role *entity.Role) error {
	for _, existing := range repo.st.roles {
		if existing.Name == role.Name {
			return domainerrors.ErrRoleAlreadyExists.WithDetails(role.Name)
		}
	}

	if role.ID == uuid.Nil {
		id, err := newID()
		if err != nil {
			return errors.Wrap(err, "failed to generate role id")
		}
		role.ID = id
	}
	now := repo.now()
	role.CreatedAt = now
	role.UpdatedAt = now

	repo.st.roles[role.ID] = copyOf(role)

	return nil
}

func (repo *roleRepository) UpdateDescription(_ context.Context, id uuid.UUID, description string) error {
	role, ok := repo.st.roles[id]
	if !ok {
		return repository.ErrRoleNotFound
	}
	role.Description = description
	role.UpdatedAt = repo.now()

	return nil
}

func (repo *roleRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := repo.st.roles[id]; !ok {
		return repository.ErrRoleNotFound
	}
	for _, roles := range repo.st.userRoles {
		if _, held := roles[id]; held {
			return domainerrors.ErrRoleInUse
		}
	}

	delete(repo.st.roles, id)
	delete(repo.st.rolePermissions, id)

	return nil
}

func sortRoles(roles []*entity.Role) {
	slices.SortFunc(roles, func(a, b *entity.Role) int { return strings.Compare(a.Name, b.Name) })
}
