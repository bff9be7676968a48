package impl

import (
	"context"
	"log/slog"

	"identity/config"
	deliverycontext "identity/internal/delivery/context"
	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"
	"identity/internal/domain/service"
	"identity/internal/errors"
	"identity/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager   repository.TransactionManager
	hasher      service.PasswordHasher
	claims      *claimsBuilder
	defaultRole string
	logger      *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Hasher    service.PasswordHasher
	Config    *config.Config
	Logger    *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:   params.TxManager,
		hasher:      params.Hasher,
		claims:      newClaimsBuilder(params.Config.JWT),
		defaultRole: params.Config.Auth.DefaultRole,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *userService) GetUser(ctx context.Context, id uuid.UUID) (*usecase.UserOutput, error) {
	return srv.readUser(ctx, func(repos repository.RepositoryFactory) (*entity.Principal, error) {
		return srv.claims.LoadPrincipalByID(ctx, repos, id)
	})
}

func (srv *userService) GetCurrentUser(ctx context.Context, username string) (*usecase.UserOutput, error) {
	return srv.readUser(ctx, func(repos repository.RepositoryFactory) (*entity.Principal, error) {
		return srv.claims.LoadPrincipal(ctx, repos, username)
	})
}

func (srv *userService) readUser(ctx context.Context, load func(repository.RepositoryFactory) (*entity.Principal, error)) (*usecase.UserOutput, error) {
	var principal *entity.Principal
	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		var err error
		principal, err = load(repos)

		return err
	})
	if err != nil {
		return nil, wrapUnlessDomain(err, "failed to load user")
	}

	return usecase.NewUserOutput(principal), nil
}

func (srv *userService) CreateUser(ctx context.Context, input usecase.CreateUserInput) (*usecase.UserOutput, error) {
	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	var principal *entity.Principal
	err = srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		var txErr error
		principal, txErr = createAccount(ctx, repos, accountSpec{
			input:        input.RegisterInput,
			passwordHash: passwordHash,
			enabled:      input.Enabled,
			roleIDs:      input.RoleIDs,
			defaultRole:  srv.defaultRole,
		})

		return txErr
	})
	if err != nil {
		return nil, wrapUnlessDomain(err, "failed to create user")
	}

	srv.log(ctx).Info("User created by administrator", slog.Any("userID", principal.User.ID))

	return usecase.NewUserOutput(principal), nil
}

func (srv *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		return translateRepoError(repos.UserRepo().Delete(ctx, id))
	})
	if err != nil {
		return wrapUnlessDomain(err, "failed to delete user")
	}

	srv.log(ctx).Info("User deleted", slog.Any("userID", id))

	return nil
}

func (srv *userService) SetUserStatus(ctx context.Context, id uuid.UUID, enabled bool) (*usecase.UserOutput, error) {
	return srv.mutateUser(ctx, id, func(repos repository.RepositoryFactory, _ *entity.Principal) error {
		return repos.UserRepo().UpdateStatus(ctx, id, enabled)
	})
}

func (srv *userService) AssignRoles(ctx context.Context, id uuid.UUID, roleIDs []uuid.UUID) (*usecase.UserOutput, error) {
	if len(roleIDs) == 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("at least one role id is required")
	}

	return srv.mutateUser(ctx, id, func(repos repository.RepositoryFactory, _ *entity.Principal) error {
		ids, err := resolveRoleIDs(ctx, repos, roleIDs, srv.defaultRole)
		if err != nil {
			return err
		}

		return repos.GrantRepo().AssignRoles(ctx, id, ids)
	})
}

func (srv *userService) RemoveRole(ctx context.Context, actorUsername string, id, roleID uuid.UUID) (*usecase.UserOutput, error) {
	return srv.mutateUser(ctx, id, func(repos repository.RepositoryFactory, target *entity.Principal) error {
		role, err := repos.RoleRepo().FindByID(ctx, roleID)
		if err != nil {
			return err
		}
		if role.IsProtected() && target.User.Username == actorUsername {
			return domainerrors.ErrSelfAdminRemoval
		}

		return repos.GrantRepo().RevokeRole(ctx, id, roleID)
	})
}

func (srv *userService) ListRoles(ctx context.Context, id uuid.UUID) ([]*usecase.RoleOutput, error) {
	var out []*usecase.RoleOutput
	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if _, err := repos.UserRepo().FindByID(ctx, id); err != nil {
			return translateRepoError(err)
		}

		roles, err := repos.GrantRepo().RolesOfUser(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to load user roles")
		}
		out = make([]*usecase.RoleOutput, 0, len(roles))
		for _, role := range roles {
			ro, err := roleOutput(ctx, repos, role)
			if err != nil {
				return err
			}
			out = append(out, ro)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// mutateUser loads the target, applies change and returns the refreshed projection, all in one transaction.
func (srv *userService) mutateUser(
	ctx context.Context,
	id uuid.UUID,
	change func(repos repository.RepositoryFactory, target *entity.Principal) error,
) (*usecase.UserOutput, error) {
	var principal *entity.Principal
	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		target, err := srv.claims.LoadPrincipalByID(ctx, repos, id)
		if err != nil {
			return err
		}
		if err := change(repos, target); err != nil {
			return translateRepoError(err)
		}

		principal, err = srv.claims.LoadPrincipalByID(ctx, repos, id)

		return err
	})
	if err != nil {
		return nil, wrapUnlessDomain(err, "failed to update user")
	}

	return usecase.NewUserOutput(principal), nil
}
