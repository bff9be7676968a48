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

// permissionService implements the PermissionUsecase interface.
type permissionService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewPermissionService is the constructor for permissionService.
func NewPermissionService(txManager repository.TransactionManager, logger *slog.Logger) usecase.PermissionUsecase {
	return &permissionService{txManager: txManager, logger: logger}
}

func (srv *permissionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *permissionService) CreatePermission(ctx context.Context, input usecase.PermissionInput) (*usecase.PermissionOutput, error) {
	if !entity.IsValidPermissionName(input.Name) {
		return nil, domainerrors.ErrInvalidPermissionName.WithDetails(input.Name)
	}

	resource, action := entity.SplitPermissionName(input.Name)
	if input.Resource != "" {
		resource = input.Resource
	}
	if input.Action != "" {
		action = input.Action
	}
	perm := &entity.Permission{
		Name:        input.Name,
		Description: input.Description,
		Resource:    resource,
		Action:      action,
	}

	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		_, err := repos.PermissionRepo().FindByName(ctx, input.Name)
		if err == nil {
			return domainerrors.ErrPermissionAlreadyExists.WithDetails(input.Name)
		}
		if !errors.Is(err, repository.ErrPermissionNotFound) {
			return errors.Wrap(err, "failed to check permission name")
		}

		return wrapUnlessDomain(repos.PermissionRepo().Create(ctx, perm), "failed to create permission")
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Permission created", slog.String("permission", perm.Name))

	return usecase.NewPermissionOutput(perm), nil
}

func (srv *permissionService) GetPermission(ctx context.Context, id uuid.UUID) (*usecase.PermissionOutput, error) {
	return srv.readPermission(ctx, func(repos repository.RepositoryFactory) (*entity.Permission, error) {
		return repos.PermissionRepo().FindByID(ctx, id)
	})
}

func (srv *permissionService) GetPermissionByName(ctx context.Context, name string) (*usecase.PermissionOutput, error) {
	return srv.readPermission(ctx, func(repos repository.RepositoryFactory) (*entity.Permission, error) {
		return repos.PermissionRepo().FindByName(ctx, name)
	})
}

func (srv *permissionService) readPermission(ctx context.Context, find func(repository.RepositoryFactory) (*entity.Permission, error)) (*usecase.PermissionOutput, error) {
	var perm *entity.Permission
	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		var err error
		perm, err = find(repos)

		return translateRepoError(err)
	})
	if err != nil {
		return nil, err
	}

	return usecase.NewPermissionOutput(perm), nil
}

func (srv *permissionService) UpdatePermission(ctx context.Context, id uuid.UUID, description string) (*usecase.PermissionOutput, error) {
	var perm *entity.Permission
	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if err := repos.PermissionRepo().UpdateDescription(ctx, id, description); err != nil {
			return translateRepoError(wrapUnlessDomain(err, "failed to update permission"))
		}

		var err error
		perm, err = repos.PermissionRepo().FindByID(ctx, id)

		return translateRepoError(err)
	})
	if err != nil {
		return nil, err
	}

	return usecase.NewPermissionOutput(perm), nil
}

func (srv *permissionService) DeletePermission(ctx context.Context, id uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if _, err := repos.PermissionRepo().FindByID(ctx, id); err != nil {
			return translateRepoError(err)
		}

		holders, err := repos.GrantRepo().CountRolesWithPermission(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to count permission holders")
		}
		if holders > 0 {
			return domainerrors.ErrPermissionInUse
		}

		return translateRepoError(wrapUnlessDomain(repos.PermissionRepo().Delete(ctx, id), "failed to delete permission"))
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Permission deleted", slog.Any("permissionID", id))

	return nil
}
