package impl

import (
	"context"

	"identity/config"
	"identity/internal/domain/entity"
	"identity/internal/domain/repository"
	"identity/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// claimsBuilder materializes principals from the store and turns them into
// token claims according to the include switches.
type claimsBuilder struct {
	cfg config.JWTConfig
}

func newClaimsBuilder(cfg config.JWTConfig) *claimsBuilder {
	return &claimsBuilder{cfg: cfg}
}

// LoadPrincipal reads the user, its roles and the permissions reachable through
// them within the caller's transaction. The enabled flag is not checked here.
func (b *claimsBuilder) LoadPrincipal(ctx context.Context, repos repository.RepositoryFactory, username string) (*entity.Principal, error) {
	user, err := repos.UserRepo().FindByUsername(ctx, username)
	if err != nil {
		return nil, translateRepoError(err)
	}

	return principalOf(ctx, repos, user)
}

// LoadPrincipalByID is LoadPrincipal keyed by user id.
func (b *claimsBuilder) LoadPrincipalByID(ctx context.Context, repos repository.RepositoryFactory, id uuid.UUID) (*entity.Principal, error) {
	user, err := repos.UserRepo().FindByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err)
	}

	return principalOf(ctx, repos, user)
}

func principalOf(ctx context.Context, repos repository.RepositoryFactory, user *entity.User) (*entity.Principal, error) {
	roles, err := repos.GrantRepo().RolesOfUser(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load roles")
	}
	permissions, err := repos.GrantRepo().PermissionsOfUser(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load permissions")
	}

	return entity.NewPrincipal(user, roles, permissions), nil
}

// Claims builds access token claims for p. Disabled groups are left empty so
// they are omitted from the encoded token.
func (b *claimsBuilder) Claims(p *entity.Principal) *service.Claims {
	claims := &service.Claims{}

	if b.cfg.IncludeUserDetails {
		claims.UserID = p.User.ID.String()
		claims.Username = p.User.Username
		claims.Email = p.User.Email
	}
	if b.cfg.IncludeRoles {
		claims.Roles = p.Roles
	}
	if b.cfg.IncludePermissions {
		claims.Permissions = p.Permissions
	}
	if b.cfg.IncludeAuthorities {
		claims.Authorities = p.Authorities
	}

	return claims
}
