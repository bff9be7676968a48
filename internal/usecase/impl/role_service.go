package impl

import (
	"context"
	"log/slog"

	deliverycontext "identity/internal/delivery/context"
	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"
	"identity/internal/errors"
	"identity/internal/usecase"

	"github.com/google/uuid"
)

// roleService implements the RoleUsecase interface.
type roleService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewRoleService is the constructor for roleService.
func NewRoleService(txManager repository.TransactionManager, logger *slog.Logger) usecase.RoleUsecase {
	return &roleService{txManager: txManager, logger: logger}
}

func (srv *roleService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *roleService) CreateRole(ctx context.Context, input usecase.RoleInput) (*usecase.RoleOutput, error) {
	role := &entity.Role{Name: input.Name, Description: input.Description}

	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		_, err := repos.RoleRepo().FindByName(ctx, input.Name)
		if err == nil {
			return domainerrors.ErrRoleAlreadyExists.WithDetails(input.Name)
		}
		if !errors.Is(err, repository.ErrRoleNotFound) {
			return errors.Wrap(err, "failed to check role name")
		}

		return wrapUnlessDomain(repos.RoleRepo().Create(ctx, role), "failed to create role")
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Role created", slog.String("role", role.Name))

	return usecase.NewRoleOutput(role, nil), nil
}

func (srv *roleService) GetRole(ctx context.Context, id uuid.UUID) (*usecase.RoleOutput, error) {
	return srv.readRole(ctx, func(repos repository.RepositoryFactory) (*entity.Role, error) {
		return repos.RoleRepo().FindByID(ctx, id)
	})
}

func (srv *roleService) GetRoleByName(ctx context.Context, name string) (*usecase.RoleOutput, error) {
	return srv.readRole(ctx, func(repos repository.RepositoryFactory) (*entity.Role, error) {
		return repos.RoleRepo().FindByName(ctx, name)
	})
}

func (srv *roleService) readRole(ctx context.Context, find func(repository.RepositoryFactory) (*entity.Role, error)) (*usecase.RoleOutput, error) {
	var out *usecase.RoleOutput
	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		role, err := find(repos)
		if err != nil {
			return translateRepoError(err)
		}
		out, err = roleOutput(ctx, repos, role)

		return err
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (srv *roleService) UpdateRole(ctx context.Context, id uuid.UUID, description string) (*usecase.RoleOutput, error) {
	var out *usecase.RoleOutput
	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		role, err := loadMutableRole(ctx, repos, id)
		if err != nil {
			return err
		}
		if err := repos.RoleRepo().UpdateDescription(ctx, id, description); err != nil {
			return translateRepoError(wrapUnlessDomain(err, "failed to update role"))
		}
		role.Description = description
		out, err = roleOutput(ctx, repos, role)

		return err
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (srv *roleService) DeleteRole(ctx context.Context, id uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if _, err := loadMutableRole(ctx, repos, id); err != nil {
			return err
		}

		holders, err := repos.GrantRepo().CountUsersWithRole(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to count role holders")
		}
		if holders > 0 {
			return domainerrors.ErrRoleInUse
		}

		return translateRepoError(wrapUnlessDomain(repos.RoleRepo().Delete(ctx, id), "failed to delete role"))
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Role deleted", slog.Any("roleID", id))

	return nil
}

func (srv *roleService) AssignPermissions(ctx context.Context, roleID uuid.UUID, permissionIDs []uuid.UUID) (*usecase.RoleOutput, error) {
	var out *usecase.RoleOutput
	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		role, err := repos.RoleRepo().FindByID(ctx, roleID)
		if err != nil {
			return translateRepoError(err)
		}

		unique := uniqueIDs(permissionIDs)
		perms, err := repos.PermissionRepo().FindByIDs(ctx, unique)
		if err != nil {
			return errors.Wrap(err, "failed to load permissions")
		}
		if len(perms) != len(unique) {
			return domainerrors.ErrPermissionNotFound.WithDetails("one or more permission ids do not exist")
		}

		if err := repos.GrantRepo().GrantPermissions(ctx, roleID, unique); err != nil {
			return translateRepoError(wrapUnlessDomain(err, "failed to grant permissions"))
		}
		out, err = roleOutput(ctx, repos, role)

		return err
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (srv *roleService) RemovePermission(ctx context.Context, roleID, permissionID uuid.UUID) (*usecase.RoleOutput, error) {
	var out *usecase.RoleOutput
	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		role, err := repos.RoleRepo().FindByID(ctx, roleID)
		if err != nil {
			return translateRepoError(err)
		}
		if _, err := repos.PermissionRepo().FindByID(ctx, permissionID); err != nil {
			return translateRepoError(err)
		}

		if err := repos.GrantRepo().RevokePermission(ctx, roleID, permissionID); err != nil {
			return wrapUnlessDomain(err, "failed to revoke permission")
		}
		out, err = roleOutput(ctx, repos, role)

		return err
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (srv *roleService) ListPermissions(ctx context.Context, roleID uuid.UUID) ([]*usecase.PermissionOutput, error) {
	var perms []*entity.Permission
	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if _, err := repos.RoleRepo().FindByID(ctx, roleID); err != nil {
			return translateRepoError(err)
		}

		var err error
		perms, err = repos.GrantRepo().PermissionsOfRole(ctx, roleID)

		return wrapUnlessDomain(err, "failed to load role permissions")
	})
	if err != nil {
		return nil, err
	}

	return usecase.NewPermissionOutputs(perms), nil
}

// loadMutableRole fetches a role that administration may change.
func loadMutableRole(ctx context.Context, repos repository.RepositoryFactory, id uuid.UUID) (*entity.Role, error) {
	role, err := repos.RoleRepo().FindByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err)
	}
	if role.IsProtected() {
		return nil, domainerrors.ErrProtectedRole.WithDetails(role.Name)
	}

	return role, nil
}

func roleOutput(ctx context.Context, repos repository.RepositoryFactory, role *entity.Role) (*usecase.RoleOutput, error) {
	perms, err := repos.GrantRepo().PermissionsOfRole(ctx, role.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load role permissions")
	}

	return usecase.NewRoleOutput(role, perms), nil
}
