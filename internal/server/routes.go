// Package server configures the HTTP server and routes.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fleveque/shoe-card-service/internal/config"
	"github.com/fleveque/shoe-card-service/internal/handler"
	"github.com/fleveque/shoe-card-service/internal/metrics"
	"github.com/fleveque/shoe-card-service/internal/middleware"
	"github.com/fleveque/shoe-card-service/internal/service"
	"github.com/fleveque/shoe-card-service/internal/validation"
)

// Deps are the long-lived collaborators the handlers need.
type Deps struct {
	CardService *service.CardService
	Validator   *validation.Validator
	Metrics     *metrics.Metrics
}

// RegisterRoutes sets up all HTTP routes on the Gin engine.
// Dependencies are passed explicitly; each handler gets only what it uses.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, deps Deps, logger *zap.Logger) {
	healthHandler := handler.NewHealthHandler()
	cardHandler := handler.NewCardHandler(deps.CardService, deps.Validator, logger)
	adminHandler := handler.NewAdminHandler(deps.CardService)

	// Public endpoints (no auth)
	r.GET("/healthz", healthHandler.Healthz)

	api := r.Group("/api/v1")
	api.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	// Group middleware only runs on matched routes, so preflights need one.
	api.OPTIONS("/*path", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	authed := api.Group("")
	authed.Use(middleware.APIKeyAuth(cfg.Auth.APIKeys))
	authed.Use(middleware.RateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	{
		authed.POST("/variants", cardHandler.ResolveVariant)
		authed.POST("/cards", cardHandler.BuildCard)
		authed.POST("/cards/batch", cardHandler.BuildCards)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AdminKeyAuth(cfg.Auth.AdminKeys))
	{
		admin.GET("/recency", adminHandler.Recency)
		admin.GET("/metrics", deps.Metrics.Handler())
	}
}
