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
	"identity/internal/usecase"

	"go.uber.org/fx"
)

// authorizationService implements the AuthorizationUsecase interface. Every
// answer is recomputed from the store; token claims are only a hint.
type authorizationService struct {
	txManager repository.TransactionManager
	tokens    service.TokenService
	metrics   service.AuthMetrics
	claims    *claimsBuilder
	clientID  string
	logger    *slog.Logger
}

// AuthorizationServiceParams holds dependencies for AuthorizationService, injected by Fx.
type AuthorizationServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	TokenService service.TokenService
	Metrics      service.AuthMetrics `optional:"true"`
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthorizationService is the constructor for authorizationService.
func NewAuthorizationService(params AuthorizationServiceParams) usecase.AuthorizationUsecase {
	metrics := params.Metrics
	if metrics == nil {
		metrics = service.NopAuthMetrics{}
	}

	return &authorizationService{
		txManager: params.TxManager,
		tokens:    params.TokenService,
		metrics:   metrics,
		claims:    newClaimsBuilder(params.Config.JWT),
		clientID:  params.Config.Auth.ClientID,
		logger:    params.Logger,
	}
}

func (srv *authorizationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Introspect reports token metadata with live roles and permissions.
func (srv *authorizationService) Introspect(ctx context.Context, token string) *usecase.IntrospectionOutput {
	out := srv.introspect(ctx, token)
	srv.metrics.ObserveIntrospection(out.Active)

	return out
}

func (srv *authorizationService) introspect(ctx context.Context, token string) *usecase.IntrospectionOutput {
	inactive := &usecase.IntrospectionOutput{Active: false}

	claims, err := srv.tokens.Parse(token)
	if err != nil {
		srv.log(ctx).Debug("Introspection: token rejected", slog.Any("error", err))

		return inactive
	}
	if claims.IsRefresh() {
		srv.log(ctx).Debug("Introspection: refresh token presented")

		return inactive
	}

	principal, err := srv.Principal(ctx, claims.Subject)
	if err != nil {
		srv.log(ctx).Debug("Introspection: principal unavailable", slog.String("sub", claims.Subject), slog.Any("error", err))

		return inactive
	}

	out := &usecase.IntrospectionOutput{
		Active:      true,
		Username:    principal.User.Username,
		Subject:     claims.Subject,
		ClientID:    srv.clientID,
		Roles:       principal.Roles,
		Permissions: principal.Permissions,
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Unix()
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Unix()
	}

	return out
}

// Validate is Introspect reduced to its active flag.
func (srv *authorizationService) Validate(ctx context.Context, token string) bool {
	return srv.Introspect(ctx, token).Active
}

// Principal loads the live principal of an account that may still authenticate.
func (srv *authorizationService) Principal(ctx context.Context, username string) (*entity.Principal, error) {
	var principal *entity.Principal
	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		var err error
		principal, err = srv.claims.LoadPrincipal(ctx, repos, username)

		return err
	})
	if err != nil {
		return nil, wrapUnlessDomain(err, "failed to load principal")
	}
	if !principal.User.CanAuthenticate() {
		return nil, domainerrors.ErrAuthenticationFailed.WithDetails("account is disabled")
	}

	return principal, nil
}
