package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ghuser/itemsvc/pkg/app"
	"github.com/ghuser/itemsvc/pkg/auth"
	"github.com/ghuser/itemsvc/pkg/config"
	"github.com/ghuser/itemsvc/pkg/httpx"
	"github.com/ghuser/itemsvc/pkg/logger"
	"github.com/ghuser/itemsvc/pkg/metrics"
	"github.com/ghuser/itemsvc/pkg/observability"
	"github.com/ghuser/itemsvc/pkg/telemetry"
	itemApi "github.com/ghuser/itemsvc/services/item/application/api"
)

// newRouter assembles the full HTTP surface. The observability middleware is
// outermost so that 401s and recovered panics are counted and carry a request id.
func newRouter(cfg *config.Config, a *app.Application, m *metrics.HTTPMetrics, metricsHandler http.Handler) *chi.Mux {
	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:        cfg.ServiceName,
			IsDevelopment:      cfg.Environment != config.EnvProduction,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
			RateLimitPerMinute: cfg.RateLimitPerMinute,
		},
		observability.Middleware(m),
		logger.Recovery(a.Logger),
		telemetry.SentryMiddleware(),
		otelhttp.NewMiddleware(cfg.ServiceName),
		logger.Middleware(a.Logger),
	)

	r.Get("/health", httpx.HealthHandler(httpx.HealthChecks{
		Database: a.Db,
	}))
	r.Post("/auth/token", auth.TokenHandler(a.Auth))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.Route("/api/v1", func(r chi.Router) {
		registerRoutes(r, a)
	})
	return r
}

// registerRoutes mounts all service routes under /api/v1.
// Add each new service's route function here.
func registerRoutes(r chi.Router, a *app.Application) {
	itemApi.ItemRoutes(r, a)
}
