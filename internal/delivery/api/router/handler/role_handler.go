package handler

import (
	"net/http"

	"identity/internal/delivery/api/response"
	"identity/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type createRoleRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=50,uppercase"`
	Description string `json:"description" validate:"max=255"`
}

type updateDescriptionRequest struct {
	Description string `json:"description" validate:"max=255"`
}

type assignPermissionsRequest struct {
	PermissionIDs []uuid.UUID `json:"permissionIds" validate:"required,min=1"`
}

// RoleHandler serves role administration.
type RoleHandler struct {
	roles usecase.RoleUsecase
}

// NewRoleHandler is the constructor for RoleHandler, injected by Fx.
func NewRoleHandler(roles usecase.RoleUsecase) *RoleHandler {
	return &RoleHandler{roles: roles}
}

func (h *RoleHandler) CreateRole(c echo.Context) error {
	var req createRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	role, err := h.roles.CreateRole(c.Request().Context(), usecase.RoleInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, role)
}

func (h *RoleHandler) GetRole(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	role, err := h.roles.GetRole(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, role)
}

func (h *RoleHandler) GetRoleByName(c echo.Context) error {
	role, err := h.roles.GetRoleByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, role)
}

func (h *RoleHandler) UpdateRole(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req updateDescriptionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	role, err := h.roles.UpdateRole(c.Request().Context(), id, req.Description)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, role)
}

func (h *RoleHandler) DeleteRole(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.roles.DeleteRole(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *RoleHandler) AssignPermissions(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req assignPermissionsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	role, err := h.roles.AssignPermissions(c.Request().Context(), id, req.PermissionIDs)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, role)
}

func (h *RoleHandler) RemovePermission(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	permissionID, err := pathUUID(c, "permissionId")
	if err != nil {
		return err
	}

	role, err := h.roles.RemovePermission(c.Request().Context(), id, permissionID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, role)
}

func (h *RoleHandler) ListPermissions(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	perms, err := h.roles.ListPermissions(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, perms)
}
