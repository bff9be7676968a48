// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"encoding/json"
	"net/http"

	"identity/config"
	"identity/internal/delivery/api/middleware"
	"identity/internal/delivery/api/response"
	"identity/internal/delivery/api/router/handler"
	deliverycontext "identity/internal/delivery/context"
	"identity/internal/domain/entity"
	"identity/internal/infra/metrics"

	"github.com/go-chi/httprate"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler       *handler.AuthHandler
	OAuthHandler      *handler.OAuthHandler
	UserHandler       *handler.UserHandler
	RoleHandler       *handler.RoleHandler
	PermissionHandler *handler.PermissionHandler
	HealthHandler     *handler.HealthHandler
	AuthMiddleware    *middleware.AuthMiddleware
	Metrics           *metrics.Metrics `optional:"true"`
	Config            *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler       *handler.AuthHandler
	oauthHandler      *handler.OAuthHandler
	userHandler       *handler.UserHandler
	roleHandler       *handler.RoleHandler
	permissionHandler *handler.PermissionHandler
	healthHandler     *handler.HealthHandler
	authMiddleware    *middleware.AuthMiddleware
	metrics           *metrics.Metrics
	config            *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:       params.AuthHandler,
		oauthHandler:      params.OAuthHandler,
		userHandler:       params.UserHandler,
		roleHandler:       params.RoleHandler,
		permissionHandler: params.PermissionHandler,
		healthHandler:     params.HealthHandler,
		authMiddleware:    params.AuthMiddleware,
		metrics:           params.Metrics,
		config:            params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", r.healthHandler.Check)
	if r.metrics != nil {
		e.GET("/metrics", echo.WrapHandler(r.metrics.Handler()))
	}

	throttle := r.credentialThrottle()

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register, throttle...)
		authGroup.POST("/login", r.authHandler.Login, throttle...)
		authGroup.POST("/refresh", r.authHandler.Refresh, throttle...)

		authGroup.POST("/logout", r.authHandler.Logout, r.authMiddleware.Authenticate)
		authGroup.GET("/sessions", r.authHandler.ListSessions, r.authMiddleware.Authenticate)
		authGroup.DELETE("/sessions/:id", r.authHandler.RevokeSession, r.authMiddleware.Authenticate)
	}

	oauthGroup := e.Group("/oauth")
	{
		oauthGroup.POST("/introspect", r.oauthHandler.Introspect)
		oauthGroup.POST("/validate", r.oauthHandler.Validate)
	}

	userGroup := e.Group("/users")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/me", r.userHandler.Me)
	}

	// Admin routes check the ADMIN role against live state, not token claims
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.AdminRoleName))

	usersGroup := adminGroup.Group("/users")
	{
		usersGroup.POST("", r.userHandler.CreateUser)
		usersGroup.GET("/:id", r.userHandler.GetUser)
		usersGroup.DELETE("/:id", r.userHandler.DeleteUser)
		usersGroup.PATCH("/:id/status", r.userHandler.SetStatus)
		usersGroup.POST("/:id/roles", r.userHandler.AssignRoles)
		usersGroup.DELETE("/:id/roles/:roleId", r.userHandler.RemoveRole)
		usersGroup.GET("/:id/roles", r.userHandler.ListRoles)
	}

	rolesGroup := adminGroup.Group("/roles")
	{
		rolesGroup.POST("", r.roleHandler.CreateRole)
		rolesGroup.GET("/:id", r.roleHandler.GetRole)
		rolesGroup.GET("/name/:name", r.roleHandler.GetRoleByName)
		rolesGroup.PUT("/:id", r.roleHandler.UpdateRole)
		rolesGroup.DELETE("/:id", r.roleHandler.DeleteRole)
		rolesGroup.POST("/:id/permissions", r.roleHandler.AssignPermissions)
		rolesGroup.DELETE("/:id/permissions/:permissionId", r.roleHandler.RemovePermission)
		rolesGroup.GET("/:id/permissions", r.roleHandler.ListPermissions)
	}

	permissionsGroup := adminGroup.Group("/permissions")
	{
		permissionsGroup.POST("", r.permissionHandler.CreatePermission)
		permissionsGroup.GET("/:id", r.permissionHandler.GetPermission)
		permissionsGroup.GET("/name/:name", r.permissionHandler.GetPermissionByName)
		permissionsGroup.PUT("/:id", r.permissionHandler.UpdatePermission)
		permissionsGroup.DELETE("/:id", r.permissionHandler.DeletePermission)
	}
}

// credentialThrottle limits credential endpoints per client IP. One limiter is
// shared by all of them so switching endpoints does not reset the budget.
func (r *router) credentialThrottle() []echo.MiddlewareFunc {
	limit := r.config.HTTP.RateLimit
	if limit.LoginRequests <= 0 {
		return nil
	}

	limiter := httprate.Limit(limit.LoginRequests, limit.Window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSONCharsetUTF8)
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(response.ErrorResponse{
				Error: &response.ErrorInfo{
					Code:    response.StatusCode(http.StatusTooManyRequests),
					Message: "Too many requests, please retry later",
				},
				Meta: &response.MetaInfo{
					RequestID: w.Header().Get(deliverycontext.HeaderXRequestID),
				},
			})
		}),
	)

	return []echo.MiddlewareFunc{echo.WrapMiddleware(limiter)}
}
