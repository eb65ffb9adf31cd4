package migrator

import (
	"context"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/ghuser/itemsvc/migrations"
	"github.com/ghuser/itemsvc/pkg/database"
	"github.com/ghuser/itemsvc/pkg/logger"
)

// RunMigrations applies every pending goose migration for db's dialect.
// It is safe to call on every startup; applied versions are skipped.
func RunMigrations(ctx context.Context, db *database.Database, log logger.Logger) error {
	files, err := migrations.FS(string(db.Dialect()))
	if err != nil {
		return err
	}

	provider, err := goose.NewProvider(gooseDialect(db.Dialect()), db.DB(), files)
	if err != nil {
		return fmt.Errorf("failed to create goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to up migrations: %w", err)
	}
	for _, res := range results {
		log.Info("migration applied",
			"version", res.Source.Version,
			"duration_ms", res.Duration.Milliseconds(),
		)
	}
	return nil
}

func gooseDialect(d database.Dialect) goose.Dialect {
	if d == database.DialectPostgres {
		return goose.DialectPostgres
	}
	return goose.DialectSQLite3
}
