package config

import (
	"fmt"
	"strings"

	"github.com/ardanlabs/conf/v3"
	"github.com/joho/godotenv"
)

// Environment name constants used in ENVIRONMENT config field.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTesting     = "testing"
)

// DefaultAPIToken is the shared bearer secret used when API_TOKEN is unset.
const DefaultAPIToken = "devtoken"

// Config holds all configuration for the application
type Config struct {
	// Database: postgres:// or postgresql:// selects pgx, anything else is a SQLite DSN.
	DatabaseURL string `conf:"default:file:items.db,env:DATABASE_URL"`

	// Auth
	APIToken string `conf:"default:devtoken,env:API_TOKEN,noprint"`

	// HTTP
	HTTPAddr string `conf:"default::8080,env:HTTP_ADDR"`
	// CORS: comma-separated list of allowed origins; use * to allow all (dev only)
	CORSAllowedOrigins string `conf:"default:*,env:CORS_ALLOWED_ORIGINS"`
	// Requests per minute per client IP. 0 disables the limiter.
	RateLimitPerMinute int `conf:"default:0,env:RATE_LIMIT_PER_MINUTE"`

	// Application
	LogLevel    string `conf:"default:info,env:LOG_LEVEL"`
	Environment string `conf:"default:development,enum:development|testing|production,env:ENVIRONMENT"`

	// Observability
	ServiceName    string `conf:"default:itemsvc,env:SERVICE_NAME"`
	ServiceVersion string `conf:"default:dev,env:SERVICE_VERSION"`
	OtelEndpoint   string `conf:"env:OTEL_ENDPOINT"`
	SentryDSN      string `conf:"env:SENTRY_DSN,noprint"`
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	var cfg Config
	_ = godotenv.Load()
	if _, err := conf.Parse("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// ValidateForProduction enforces security requirements when ENVIRONMENT=production.
// Returns an error if any critical settings are missing or unsafe.
// No-ops for non-production environments.
func ValidateForProduction(cfg *Config) error {
	if cfg.Environment != EnvProduction {
		return nil
	}

	var errs []string

	if cfg.APIToken == "" || cfg.APIToken == DefaultAPIToken {
		errs = append(errs, "API_TOKEN must be set to a non-default secret; generate with: openssl rand -base64 32")
	}

	if cfg.LogLevel == "debug" {
		errs = append(errs, "LOG_LEVEL must not be 'debug' in production (may leak sensitive data)")
	}

	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("production config validation failed: %s", strings.Join(errs, "; "))
}
