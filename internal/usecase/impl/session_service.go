package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "identity/internal/delivery/context"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"
	"identity/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
	now       func() time.Time
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(txManager repository.TransactionManager, logger *slog.Logger) usecase.SessionUsecase {
	return &sessionService{
		txManager: txManager,
		logger:    logger,
		now:       time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListActiveSessions returns the caller's live refresh tokens, newest first.
func (srv *sessionService) ListActiveSessions(ctx context.Context, username string) ([]*usecase.SessionOutput, error) {
	var sessions []*usecase.SessionOutput
	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		user, err := repos.UserRepo().FindByUsername(ctx, username)
		if err != nil {
			return translateRepoError(err)
		}

		tokens, err := repos.RefreshTokenRepo().FindActiveRefreshTokensByUserID(ctx, user.ID, srv.now())
		if err != nil {
			return errors.Wrap(err, "failed to find active sessions")
		}

		sessions = make([]*usecase.SessionOutput, 0, len(tokens))
		for _, token := range tokens {
			sessions = append(sessions, &usecase.SessionOutput{
				ID:        token.ID,
				CreatedAt: token.CreatedAt,
				ExpiresAt: token.ExpiresAt,
			})
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to list active sessions", slog.String("username", username), slog.Any("error", err))

		return nil, err
	}

	return sessions, nil
}

// RevokeSession revokes one active session owned by the caller.
func (srv *sessionService) RevokeSession(ctx context.Context, username string, sessionID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		user, err := repos.UserRepo().FindByUsername(ctx, username)
		if err != nil {
			return translateRepoError(err)
		}

		tokens, err := repos.RefreshTokenRepo().FindActiveRefreshTokensByUserID(ctx, user.ID, srv.now())
		if err != nil {
			return errors.Wrap(err, "failed to find active sessions")
		}
		for _, token := range tokens {
			if token.ID != sessionID {
				continue
			}
			if _, err := repos.RefreshTokenRepo().RevokeRefreshToken(ctx, sessionID); err != nil {
				return errors.Wrap(err, "failed to revoke session")
			}

			return nil
		}

		return domainerrors.ErrSessionNotFound
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Session revoked", slog.String("username", username), slog.Any("sessionID", sessionID))

	return nil
}

// CleanupExpiredSessions purges refresh tokens whose expiry has passed.
func (srv *sessionService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	var deleted int64
	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		var err error
		deleted, err = repos.RefreshTokenRepo().DeleteExpiredRefreshTokens(ctx, srv.now())

		return err
	})
	if err != nil {
		srv.log(ctx).Error("Failed to clean up expired sessions", slog.Any("error", err))

		return 0, errors.Wrap(err, "failed to clean up expired sessions")
	}

	if deleted > 0 {
		srv.log(ctx).Info("Cleaned up expired sessions", slog.Int64("count", deleted))
	}

	return deleted, nil
}
