package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/finapp/backend/internal/infrastructure/auth"
	"github.com/finapp/backend/internal/infrastructure/logger"
	"github.com/finapp/backend/internal/interfaces/http/handler"
	"github.com/finapp/backend/internal/interfaces/http/middleware"
)

// RouteRegistrar registers a handler's routes on a group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Config wires the HTTP router
type Config struct {
	Logger     *zap.Logger
	JWTService *auth.JWTService
	APIVersion string

	System    *handler.SystemHandler
	Auth      *handler.AuthHandler
	Protected []RouteRegistrar
}

// New builds the gin engine with logging, recovery, authentication
// and permission checks applied.
func New(cfg Config) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	engine := gin.New()
	engine.Use(logger.RequestID())
	engine.Use(logger.GinMiddleware(cfg.Logger))
	engine.Use(logger.Recovery(cfg.Logger))

	version := cfg.APIVersion
	if version == "" {
		version = "v1"
	}
	api := engine.Group("/api/" + version)

	if cfg.System != nil {
		cfg.System.RegisterRoutes(api)
	}
	if cfg.Auth != nil {
		cfg.Auth.RegisterRoutes(api)
	}

	protected := api.Group("")
	protected.Use(middleware.JWTAuth(cfg.JWTService, cfg.Logger))

	if cfg.Auth != nil {
		cfg.Auth.RegisterProtectedRoutes(protected)
	}
	for _, registrar := range cfg.Protected {
		registrar.RegisterRoutes(protected)
	}

	return engine
}

// Permission builds the per-route permission middleware backed by the
// resolver
func Permission(checker middleware.PermissionChecker, log *zap.Logger) handler.PermissionFunc {
	return func(resource, action string) gin.HandlerFunc {
		return middleware.RequirePermission(checker, resource, action, log)
	}
}
