package impl

import (
	"context"
	"slices"

	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"
	"identity/internal/errors"
	"identity/internal/usecase"

	"github.com/google/uuid"
)

type accountSpec struct {
	input        usecase.RegisterInput
	passwordHash string
	enabled      bool
	roleIDs      []uuid.UUID
	defaultRole  string
}

// createAccount inserts a user and its role grants. The exists checks give a
// precise message; the store's unique constraints still decide concurrent races.
func createAccount(ctx context.Context, repos repository.RepositoryFactory, spec accountSpec) (*entity.Principal, error) {
	users := repos.UserRepo()

	taken, err := users.ExistsByUsername(ctx, spec.input.Username)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check username")
	}
	if taken {
		return nil, domainerrors.ErrUserAlreadyExists.WithDetails("username already taken")
	}
	taken, err = users.ExistsByEmail(ctx, spec.input.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check email")
	}
	if taken {
		return nil, domainerrors.ErrUserAlreadyExists.WithDetails("email already registered")
	}

	roleIDs, err := resolveRoleIDs(ctx, repos, spec.roleIDs, spec.defaultRole)
	if err != nil {
		return nil, err
	}

	user := entity.NewUser(spec.input.Username, spec.input.Email, spec.passwordHash)
	user.FirstName = spec.input.FirstName
	user.LastName = spec.input.LastName
	user.Enabled = spec.enabled

	if err := users.Create(ctx, user); err != nil {
		return nil, wrapUnlessDomain(err, "failed to create user")
	}
	if err := repos.GrantRepo().AssignRoles(ctx, user.ID, roleIDs); err != nil {
		return nil, translateRepoError(wrapUnlessDomain(err, "failed to assign roles"))
	}

	return principalOf(ctx, repos, user)
}

// resolveRoleIDs validates explicit role ids or falls back to the default role.
func resolveRoleIDs(ctx context.Context, repos repository.RepositoryFactory, roleIDs []uuid.UUID, defaultRole string) ([]uuid.UUID, error) {
	if len(roleIDs) == 0 {
		role, err := repos.RoleRepo().FindByName(ctx, defaultRole)
		if errors.Is(err, repository.ErrRoleNotFound) {
			return nil, domainerrors.ErrDefaultRoleMissing.WithDetails(defaultRole)
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to load default role")
		}

		return []uuid.UUID{role.ID}, nil
	}

	unique := uniqueIDs(roleIDs)

	roles, err := repos.RoleRepo().FindByIDs(ctx, unique)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load roles")
	}
	if len(roles) != len(unique) {
		return nil, domainerrors.ErrRoleNotFound.WithDetails("one or more role ids do not exist")
	}

	return unique, nil
}

func compareUUID(a, b uuid.UUID) int {
	return slices.Compare(a[:], b[:])
}

// uniqueIDs returns ids sorted with duplicates removed, so a lookup result can
// be compared by length the way SQL IN matches each row once.
func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	unique := slices.Clone(ids)
	slices.SortFunc(unique, compareUUID)

	return slices.Compact(unique)
}
