package handler

import (
	"log/slog"
	"net/http"

	"identity/internal/delivery/api/response"
	"identity/internal/usecase"

	"github.com/labstack/echo/v4"
)

type registerRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Email     string `json:"email" validate:"required,email,max=100"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"firstName" validate:"max=50"`
	LastName  string `json:"lastName" validate:"max=50"`
}

func (r *registerRequest) toInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Username:  r.Username,
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// AuthHandler serves registration and the token pair lifecycle.
type AuthHandler struct {
	auth     usecase.AuthUsecase
	sessions usecase.SessionUsecase
	logger   *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(auth usecase.AuthUsecase, sessions usecase.SessionUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, logger: logger}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.auth.Register(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, user)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	pair, err := h.auth.Login(c.Request().Context(), usecase.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, pair)
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	pair, err := h.auth.Refresh(c.Request().Context(), usecase.RefreshInput{RefreshToken: req.RefreshToken})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, pair)
}

// Logout handles POST /auth/logout for the authenticated caller.
func (h *AuthHandler) Logout(c echo.Context) error {
	username, err := currentUsername(c)
	if err != nil {
		return err
	}

	if err := h.auth.Logout(c.Request().Context(), username); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// ListSessions handles GET /auth/sessions.
func (h *AuthHandler) ListSessions(c echo.Context) error {
	username, err := currentUsername(c)
	if err != nil {
		return err
	}

	sessions, err := h.sessions.ListActiveSessions(c.Request().Context(), username)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, sessions)
}

// RevokeSession handles DELETE /auth/sessions/:id.
func (h *AuthHandler) RevokeSession(c echo.Context) error {
	username, err := currentUsername(c)
	if err != nil {
		return err
	}
	sessionID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.sessions.RevokeSession(c.Request().Context(), username, sessionID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
