package middleware

import (
	"strings"

	deliverycontext "identity/internal/delivery/context"
	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/service"
	"identity/internal/usecase"

	"github.com/labstack/echo/v4"
)

const (
	keyClaims    = "claims"
	keyPrincipal = "principal"

	bearerPrefix = "Bearer "
)

// AuthMiddleware authenticates bearer access tokens and authorizes against live role state.
type AuthMiddleware struct {
	tokens service.TokenService
	authz  usecase.AuthorizationUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokens service.TokenService, authz usecase.AuthorizationUsecase) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, authz: authz}
}

// Authenticate verifies the access token and stores its subject on the context.
// Refresh tokens are rejected here even though they carry a valid signature.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return domainerrors.ErrUnauthorized.WithDetails("authorization header is missing")
		}

		tokenString, found := strings.CutPrefix(authHeader, bearerPrefix)
		if !found || tokenString == "" {
			return domainerrors.ErrUnauthorized.WithDetails("authorization header must carry a bearer token")
		}

		claims, err := m.tokens.Parse(tokenString)
		if err != nil {
			return err
		}
		if claims.IsRefresh() {
			return domainerrors.ErrTokenInvalid.WithDetails("refresh tokens cannot authenticate requests")
		}

		deliverycontext.SetUsername(c, claims.Subject)
		c.Set(keyClaims, claims)

		return next(c)
	}
}

// RequireRole admits callers that currently hold role. It must run after Authenticate.
func (m *AuthMiddleware) RequireRole(role string) echo.MiddlewareFunc {
	return m.require(func(p *entity.Principal) bool { return p.HasRole(role) }, "requires role "+role)
}

// RequirePermission admits callers that currently hold permission. It must run after Authenticate.
func (m *AuthMiddleware) RequirePermission(permission string) echo.MiddlewareFunc {
	return m.require(func(p *entity.Principal) bool { return p.HasPermission(permission) }, "requires permission "+permission)
}

func (m *AuthMiddleware) require(allowed func(*entity.Principal) bool, reason string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			username, ok := GetUsername(c)
			if !ok {
				return domainerrors.ErrUnauthorized
			}

			principal, err := m.authz.Principal(c.Request().Context(), username)
			if err != nil {
				switch domainerrors.KindOf(err) {
				case domainerrors.KindNotFound, domainerrors.KindAuthenticationFailed:
					return domainerrors.ErrUnauthorized
				default:
					return err
				}
			}
			if !allowed(principal) {
				return domainerrors.ErrForbidden.WithDetails(reason)
			}

			c.Set(keyPrincipal, principal)

			return next(c)
		}
	}
}

// GetUsername returns the authenticated subject.
func GetUsername(c echo.Context) (string, bool) {
	return deliverycontext.GetUsername(c)
}

// GetClaims returns the verified access token claims.
func GetClaims(c echo.Context) (*service.Claims, bool) {
	claims, ok := c.Get(keyClaims).(*service.Claims)

	return claims, ok
}

// GetPrincipal returns the principal loaded by RequireRole or RequirePermission.
func GetPrincipal(c echo.Context) (*entity.Principal, bool) {
	principal, ok := c.Get(keyPrincipal).(*entity.Principal)

	return principal, ok
}
