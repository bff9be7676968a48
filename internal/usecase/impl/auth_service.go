// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"identity/config"
	deliverycontext "identity/internal/delivery/context"
	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"
	"identity/internal/domain/service"
	"identity/internal/errors"
	"identity/internal/usecase"

	"go.uber.org/fx"
)

// dummyPassword is hashed once and compared against when the username is
// unknown, so both failure paths spend the same bcrypt time.
const dummyPassword = "identity-timing-equalizer"

// authService implements the AuthUsecase interface.
type authService struct {
	txManager   repository.TransactionManager
	hasher      service.PasswordHasher
	tokens      service.TokenService
	metrics     service.AuthMetrics
	claims      *claimsBuilder
	defaultRole string
	logger      *slog.Logger
	now         func() time.Time
	dummyHash   func() string
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Metrics      service.AuthMetrics `optional:"true"`
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	metrics := params.Metrics
	if metrics == nil {
		metrics = service.NopAuthMetrics{}
	}

	srv := &authService{
		txManager:   params.TxManager,
		hasher:      params.Hasher,
		tokens:      params.TokenService,
		metrics:     metrics,
		claims:      newClaimsBuilder(params.Config.JWT),
		defaultRole: params.Config.Auth.DefaultRole,
		logger:      params.Logger,
		now:         time.Now,
	}
	srv.dummyHash = sync.OnceValue(func() string {
		hash, err := srv.hasher.Hash(dummyPassword)
		if err != nil {
			srv.logger.Error("Failed to prepare dummy password hash", slog.Any("error", err))

			return ""
		}

		return hash
	})

	return srv
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete user registration process.
func (srv *authService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.UserOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("username", input.Username))

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	var principal *entity.Principal
	err = srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		var txErr error
		principal, txErr = createAccount(ctx, repos, accountSpec{
			input:        input,
			passwordHash: passwordHash,
			enabled:      true,
			defaultRole:  srv.defaultRole,
		})

		return txErr
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("username", input.Username), slog.Any("error", err))

		return nil, wrapUnlessDomain(err, "failed to execute user registration transaction")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", principal.User.ID))

	return usecase.NewUserOutput(principal), nil
}

// Login authenticates the user and issues a new token pair.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.TokenPairOutput, error) {
	pair, err := srv.login(ctx, input)
	if err != nil {
		srv.metrics.ObserveLogin(service.OutcomeFailure)
		srv.log(ctx).Info("Login rejected", slog.String("username", input.Username), slog.Any("error", err))

		return nil, err
	}
	srv.metrics.ObserveLogin(service.OutcomeSuccess)

	return pair, nil
}

func (srv *authService) login(ctx context.Context, input usecase.LoginInput) (*usecase.TokenPairOutput, error) {
	var principal *entity.Principal
	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		p, err := srv.claims.LoadPrincipal(ctx, repos, input.Username)
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			return nil
		}
		principal = p

		return err
	})
	if err != nil {
		return nil, wrapUnlessDomain(err, "failed to load principal")
	}

	// Password checks run outside the transaction; bcrypt is slow.
	if principal == nil {
		srv.hasher.Check(input.Password, srv.dummyHash())

		return nil, domainerrors.ErrAuthenticationFailed
	}
	if !srv.hasher.Check(input.Password, principal.User.PasswordHash) || !principal.User.CanAuthenticate() {
		return nil, domainerrors.ErrAuthenticationFailed
	}

	pair, err := srv.issuePair(principal)
	if err != nil {
		return nil, err
	}

	now := srv.now()
	err = srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if err := repos.RefreshTokenRepo().CreateRefreshToken(ctx, srv.refreshRecord(principal.User, pair.RefreshToken, now)); err != nil {
			return wrapUnlessDomain(err, "failed to store refresh token")
		}

		return wrapUnlessDomain(repos.UserRepo().UpdateLastLogin(ctx, principal.User.ID, now), "failed to update last login")
	})
	if err != nil {
		return nil, translateRepoError(err)
	}

	srv.log(ctx).Info("Login succeeded", slog.Any("userID", principal.User.ID))

	return pair, nil
}

// Refresh rotates the presented refresh token. Lookup, revocation and the
// insert of the successor happen in one transaction holding the row lock.
func (srv *authService) Refresh(ctx context.Context, input usecase.RefreshInput) (*usecase.TokenPairOutput, error) {
	pair, err := srv.refresh(ctx, input.RefreshToken)
	if err != nil {
		srv.metrics.ObserveRefresh(service.OutcomeFailure)
		srv.log(ctx).Info("Refresh rejected", slog.Any("error", err))

		return nil, err
	}
	srv.metrics.ObserveRefresh(service.OutcomeSuccess)

	return pair, nil
}

func (srv *authService) refresh(ctx context.Context, raw string) (*usecase.TokenPairOutput, error) {
	expired, err := srv.tokens.IsExpired(raw)
	if err != nil {
		return nil, domainerrors.ErrTokenInvalid.WrapMessage("refresh token cannot be verified")
	}
	if expired {
		return nil, domainerrors.ErrTokenExpired
	}

	claims, err := srv.tokens.Parse(raw)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefresh() {
		return nil, domainerrors.ErrTokenInvalid.WithDetails("not a refresh token")
	}

	tokenHash := srv.tokens.HashToken(raw)

	var pair *usecase.TokenPairOutput
	err = srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		refreshRepo := repos.RefreshTokenRepo()
		now := srv.now()

		stored, err := refreshRepo.LockRefreshTokenByHash(ctx, tokenHash)
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return domainerrors.ErrTokenInvalid.WithDetails("refresh token is not recognized")
		}
		if err != nil {
			return errors.Wrap(err, "failed to load refresh token")
		}
		if stored.Revoked {
			return domainerrors.ErrTokenRevoked
		}
		if stored.IsExpired(now) {
			return domainerrors.ErrTokenExpired
		}

		revoked, err := refreshRepo.RevokeRefreshToken(ctx, stored.ID)
		if err != nil {
			return wrapUnlessDomain(err, "failed to revoke refresh token")
		}
		if !revoked {
			return domainerrors.ErrTokenRevoked
		}

		principal, err := srv.claims.LoadPrincipal(ctx, repos, claims.Subject)
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			return domainerrors.ErrTokenInvalid.WithDetails("token subject no longer exists")
		}
		if err != nil {
			return err
		}
		if principal.User.ID != stored.UserID {
			return domainerrors.ErrTokenInvalid.WithDetails("token subject does not own the refresh token")
		}
		if !principal.User.CanAuthenticate() {
			return domainerrors.ErrAuthenticationFailed
		}

		pair, err = srv.issuePair(principal)
		if err != nil {
			return err
		}

		return wrapUnlessDomain(
			refreshRepo.CreateRefreshToken(ctx, srv.refreshRecord(principal.User, pair.RefreshToken, now)),
			"failed to store refresh token",
		)
	})
	if err != nil {
		return nil, err
	}

	return pair, nil
}

// Logout deletes every refresh token of the user.
func (srv *authService) Logout(ctx context.Context, username string) error {
	var deleted int64
	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		user, err := repos.UserRepo().FindByUsername(ctx, username)
		if err != nil {
			return translateRepoError(err)
		}

		deleted, err = repos.RefreshTokenRepo().DeleteRefreshTokensByUserID(ctx, user.ID)

		return wrapUnlessDomain(err, "failed to delete refresh tokens")
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Logout completed", slog.String("username", username), slog.Int64("sessions", deleted))

	return nil
}

func (srv *authService) issuePair(p *entity.Principal) (*usecase.TokenPairOutput, error) {
	accessToken, err := srv.tokens.Issue(p.User.Username, srv.claims.Claims(p), srv.tokens.AccessTTL(), service.PurposeAccess)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}
	srv.metrics.ObserveTokenIssued(service.PurposeAccess)

	refreshToken, err := srv.tokens.Issue(p.User.Username, nil, srv.tokens.RefreshTTL(), service.PurposeRefresh)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue refresh token")
	}
	srv.metrics.ObserveTokenIssued(service.PurposeRefresh)

	return &usecase.TokenPairOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    usecase.TokenTypeBearer,
		ExpiresIn:    srv.tokens.AccessTTL().Milliseconds(),
	}, nil
}

// refreshRecord builds the stored row for a freshly issued refresh token. Its
// expiry follows the refresh lifetime, not the access lifetime.
func (srv *authService) refreshRecord(user *entity.User, refreshToken string, now time.Time) *entity.RefreshToken {
	return &entity.RefreshToken{
		UserID:    user.ID,
		TokenHash: srv.tokens.HashToken(refreshToken),
		ExpiresAt: now.Add(srv.tokens.RefreshTTL()),
	}
}
