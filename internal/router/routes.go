package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/lead-router/internal/auth"
	"github.com/octobees/lead-router/internal/config"
	"github.com/octobees/lead-router/internal/handler"
	middlewarepkg "github.com/octobees/lead-router/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth    *handler.AuthHandler
	Routing *handler.RoutingHandler
	Team    *handler.TeamHandler
	Rules   *handler.RulesHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})

	e.POST("/auth/login", handlers.Auth.Login)

	secured := e.Group("")
	secured.Use(middlewarepkg.JWT(jwtManager))

	secured.POST("/routing/route", handlers.Routing.Route, middlewarepkg.RouteRateLimiter(cfg.RateLimitRoute))
	secured.GET("/routing/stats", handlers.Routing.Stats)

	secured.GET("/team/workload", handlers.Routing.Workload)
	secured.GET("/team", handlers.Team.List)
	secured.GET("/rules", handlers.Rules.List)

	admin := secured.Group("", middlewarepkg.RequireRole("admin"))
	admin.POST("/team", handlers.Team.Create)
	admin.PATCH("/team/:id/capacity", handlers.Team.UpdateCapacity)
	admin.PATCH("/team/:id/performance", handlers.Team.UpdatePerformance)
	admin.POST("/rules", handlers.Rules.Create)
}
