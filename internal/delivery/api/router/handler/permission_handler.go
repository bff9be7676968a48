package handler

import (
	"net/http"

	"identity/internal/delivery/api/response"
	"identity/internal/usecase"

	"github.com/labstack/echo/v4"
)

type createPermissionRequest struct {
	Name        string `json:"name" validate:"required,max=100,permission"`
	Description string `json:"description" validate:"max=255"`
	Resource    string `json:"resource" validate:"max=50"`
	Action      string `json:"action" validate:"max=50"`
}

// PermissionHandler serves permission administration.
type PermissionHandler struct {
	perms usecase.PermissionUsecase
}

// NewPermissionHandler is the constructor for PermissionHandler, injected by Fx.
func NewPermissionHandler(perms usecase.PermissionUsecase) *PermissionHandler {
	return &PermissionHandler{perms: perms}
}

func (h *PermissionHandler) CreatePermission(c echo.Context) error {
	var req createPermissionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	perm, err := h.perms.CreatePermission(c.Request().Context(), usecase.PermissionInput{
		Name:        req.Name,
		Description: req.Description,
		Resource:    req.Resource,
		Action:      req.Action,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, perm)
}

func (h *PermissionHandler) GetPermission(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	perm, err := h.perms.GetPermission(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, perm)
}

func (h *PermissionHandler) GetPermissionByName(c echo.Context) error {
	perm, err := h.perms.GetPermissionByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, perm)
}

func (h *PermissionHandler) UpdatePermission(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req updateDescriptionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	perm, err := h.perms.UpdatePermission(c.Request().Context(), id, req.Description)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, perm)
}

func (h *PermissionHandler) DeletePermission(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.perms.DeletePermission(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
