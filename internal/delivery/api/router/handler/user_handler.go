package handler

import (
	"log/slog"
	"net/http"

	"identity/internal/delivery/api/response"
	"identity/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type createUserRequest struct {
	registerRequest
	Enabled *bool       `json:"enabled"`
	RoleIDs []uuid.UUID `json:"roleIds"`
}

type userStatusRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

type assignRolesRequest struct {
	RoleIDs []uuid.UUID `json:"roleIds" validate:"required,min=1"`
}

// UserHandler serves the caller's own profile and user administration.
type UserHandler struct {
	users  usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(users usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// Me handles GET /users/me.
func (h *UserHandler) Me(c echo.Context) error {
	username, err := currentUsername(c)
	if err != nil {
		return err
	}

	user, err := h.users.GetCurrentUser(c.Request().Context(), username)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, user)
}

// CreateUser handles POST /admin/users. Accounts are enabled unless the body says otherwise.
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	user, err := h.users.CreateUser(c.Request().Context(), usecase.CreateUserInput{
		RegisterInput: req.toInput(),
		Enabled:       enabled,
		RoleIDs:       req.RoleIDs,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, user)
}

// GetUser handles GET /admin/users/:id.
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.users.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, user)
}

// DeleteUser handles DELETE /admin/users/:id.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.users.DeleteUser(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// SetStatus handles PATCH /admin/users/:id/status.
func (h *UserHandler) SetStatus(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req userStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.users.SetUserStatus(c.Request().Context(), id, *req.Enabled)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, user)
}

// AssignRoles handles POST /admin/users/:id/roles.
func (h *UserHandler) AssignRoles(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req assignRolesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.users.AssignRoles(c.Request().Context(), id, req.RoleIDs)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, user)
}

// RemoveRole handles DELETE /admin/users/:id/roles/:roleId.
func (h *UserHandler) RemoveRole(c echo.Context) error {
	actor, err := currentUsername(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	roleID, err := pathUUID(c, "roleId")
	if err != nil {
		return err
	}

	user, err := h.users.RemoveRole(c.Request().Context(), actor, id, roleID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, user)
}

// ListRoles handles GET /admin/users/:id/roles.
func (h *UserHandler) ListRoles(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	roles, err := h.users.ListRoles(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, roles)
}
