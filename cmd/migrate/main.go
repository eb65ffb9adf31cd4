// Command migrate applies the item store migrations and exits.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ghuser/itemsvc/pkg/config"
	"github.com/ghuser/itemsvc/pkg/database"
	"github.com/ghuser/itemsvc/pkg/logger"
	"github.com/ghuser/itemsvc/pkg/migrator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg)
	ctx := context.Background()

	db, err := database.Open(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close() //nolint:errcheck

	if err := migrator.RunMigrations(ctx, db, log); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: deferred close is best-effort
	}
	log.Info("migrations complete")
}
