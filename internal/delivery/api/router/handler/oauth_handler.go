package handler

import (
	"net/http"

	"identity/internal/usecase"

	"github.com/labstack/echo/v4"
)

type tokenRequest struct {
	Token string `json:"token" form:"token" query:"token"`
}

// OAuthHandler serves RFC 7662 style introspection. Responses are bare JSON
// objects so resource servers can consume them without the API envelope.
type OAuthHandler struct {
	authz usecase.AuthorizationUsecase
}

// NewOAuthHandler is the constructor for OAuthHandler, injected by Fx.
func NewOAuthHandler(authz usecase.AuthorizationUsecase) *OAuthHandler {
	return &OAuthHandler{authz: authz}
}

// Introspect handles POST /oauth/introspect. It always answers 200.
func (h *OAuthHandler) Introspect(c echo.Context) error {
	return c.JSON(http.StatusOK, h.authz.Introspect(c.Request().Context(), tokenParam(c)))
}

// Validate handles POST /oauth/validate. It always answers 200.
func (h *OAuthHandler) Validate(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{
		"valid": h.authz.Validate(c.Request().Context(), tokenParam(c)),
	})
}

// tokenParam reads token from a form, JSON body or the query string.
func tokenParam(c echo.Context) string {
	var req tokenRequest
	if err := c.Bind(&req); err == nil && req.Token != "" {
		return req.Token
	}

	return c.QueryParam("token")
}
