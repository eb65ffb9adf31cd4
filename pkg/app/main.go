package app

import (
	"github.com/ghuser/itemsvc/pkg/auth"
	"github.com/ghuser/itemsvc/pkg/database"
	"github.com/ghuser/itemsvc/pkg/errhttp"
	"github.com/ghuser/itemsvc/pkg/logger"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to all service ItemRoutes calls during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler. Use slog's context
// methods and trace_id, span_id, request_id, path and method are injected
// automatically:
//
//	app.Logger.InfoContext(ctx, "item created", "item_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Db     *database.Database
	Logger logger.Logger
	Auth   *auth.Authenticator
	Errors *errhttp.Writer
}
