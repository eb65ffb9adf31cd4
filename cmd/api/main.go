package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/ghuser/itemsvc/docs/swagger"
	"github.com/ghuser/itemsvc/pkg/app"
	"github.com/ghuser/itemsvc/pkg/auth"
	"github.com/ghuser/itemsvc/pkg/config"
	"github.com/ghuser/itemsvc/pkg/database"
	"github.com/ghuser/itemsvc/pkg/errhttp"
	"github.com/ghuser/itemsvc/pkg/httpx"
	"github.com/ghuser/itemsvc/pkg/logger"
	"github.com/ghuser/itemsvc/pkg/metrics"
	"github.com/ghuser/itemsvc/pkg/migrator"
	"github.com/ghuser/itemsvc/pkg/telemetry"
)

// @title						Items API
// @version					1.0
// @description				CRUD service for priced items with filtering, sorting and pagination.
// @license.name				MIT
// @license.url				https://opensource.org/licenses/MIT
// @host						localhost:8080
// @BasePath					/
// @schemes					http https
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)
	ctx := context.Background()

	reg := metrics.NewRegistry()
	httpMetrics, err := metrics.NewHTTPMetrics(reg)
	if err != nil {
		log.Error("failed to register http metrics", "error", err)
		os.Exit(1)
	}

	// Telemetry: OTel tracing + metrics bridged into reg
	otelShutdown, metricsHandler := telemetry.Setup(ctx, cfg, reg, log)
	defer otelShutdown(ctx) //nolint:errcheck

	// Crash reporting: Sentry (optional, log and continue on failure)
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	db, err := database.Open(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
	}
	defer db.Close() //nolint:errcheck

	if err := migrator.RunMigrations(ctx, db, log); err != nil {
		log.Error("failed to run migrations", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	appConfig := &app.Application{
		Db:     db,
		Logger: log,
		Auth:   auth.NewAuthenticator(cfg.APIToken),
		Errors: errhttp.NewWriter(log, cfg.Environment == config.EnvProduction),
	}

	srv := httpx.NewServer(cfg.HTTPAddr, newRouter(cfg, appConfig, httpMetrics, metricsHandler))

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
