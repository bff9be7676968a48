package impl

import (
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"
	"identity/internal/errors"
)

// translateRepoError maps repository lookup sentinels onto domain errors and
// passes everything else through unchanged.
func translateRepoError(err error) error {
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		return domainerrors.ErrUserNotFound
	case errors.Is(err, repository.ErrRoleNotFound):
		return domainerrors.ErrRoleNotFound
	case errors.Is(err, repository.ErrPermissionNotFound):
		return domainerrors.ErrPermissionNotFound
	case errors.Is(err, repository.ErrRefreshTokenNotFound):
		return domainerrors.ErrSessionNotFound
	default:
		return err
	}
}

// isAppError reports whether err already carries a domain classification.
func isAppError(err error) bool {
	_, ok := errors.AsType[domainerrors.AppError](err)

	return ok
}

// wrapUnlessDomain keeps domain errors intact for the delivery layer and adds
// context to infrastructure failures.
func wrapUnlessDomain(err error, message string) error {
	if err == nil || isAppError(err) {
		return err
	}

	return errors.Wrap(err, message)
}
