// Package handler contains the HTTP handlers of the identity API.
package handler

import (
	"identity/internal/delivery/api/middleware"
	domainerrors "identity/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// bindAndValidate decodes the body into req and runs its validate tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed request body")
	}

	return c.Validate(req)
}

func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails(name + " must be a UUID")
	}

	return id, nil
}

func currentUsername(c echo.Context) (string, error) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		return "", domainerrors.ErrUnauthorized
	}

	return username, nil
}
