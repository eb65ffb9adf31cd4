// Package database opens the item store and runs work inside transactions.
//
// A DATABASE_URL with a postgres:// or postgresql:// scheme is opened through
// the pgx stdlib driver. Anything else is treated as a SQLite DSN and opened
// with the pure-Go modernc driver, e.g. "file:items.db" or ":memory:".
package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"modernc.org/sqlite"

	"github.com/ghuser/itemsvc/pkg/logger"
)

// Dialect identifies the SQL engine behind a Database.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// SQLiteLowerFunc is a Unicode-aware replacement for SQLite's LOWER, which
// only folds ASCII. It is registered on every SQLite connection.
const SQLiteLowerFunc = "unicode_lower"

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(SQLiteLowerFunc, 1, unicodeLower)
}

func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

// sqlitePragmas are applied on every connection the driver opens.
var sqlitePragmas = []string{
	"busy_timeout(5000)",
	"foreign_keys(1)",
}

// Database wraps a *sql.DB together with the dialect it speaks.
type Database struct {
	db      *sql.DB
	dialect Dialect
}

// Open connects to url, verifies the connection and returns a Database.
func Open(ctx context.Context, url string, log logger.Logger) (*Database, error) {
	dialect := DialectFromURL(url)

	var (
		db  *sql.DB
		err error
	)
	switch dialect {
	case DialectPostgres:
		db, err = sql.Open("pgx", url)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
	default:
		db, err = sql.Open("sqlite", sqliteDSN(url))
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// SQLite allows one writer at a time; a single connection serializes
		// writes and keeps an in-memory database alive for the process.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect, err)
	}

	log.Info("database connected", "dialect", string(dialect))
	return &Database{db: db, dialect: dialect}, nil
}

// DialectFromURL reports which engine url refers to.
func DialectFromURL(url string) Dialect {
	lower := strings.ToLower(url)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return DialectPostgres
	}
	return DialectSQLite
}

func sqliteDSN(url string) string {
	params := make([]string, 0, len(sqlitePragmas)+1)
	for _, p := range sqlitePragmas {
		params = append(params, "_pragma="+p)
	}
	if !strings.Contains(url, ":memory:") && !strings.Contains(url, "mode=memory") {
		params = append(params, "_pragma=journal_mode(WAL)")
	}

	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + strings.Join(params, "&")
}

// DB returns the underlying handle for read-only queries outside a transaction.
func (d *Database) DB() *sql.DB {
	return d.db
}

// Dialect returns the engine the database was opened with.
func (d *Database) Dialect() Dialect {
	return d.dialect
}

// Ping satisfies httpx.HealthChecker.
func (d *Database) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// Close releases every connection.
func (d *Database) Close() error {
	return d.db.Close()
}

// WithTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back otherwise; fn's error is returned unchanged so
// callers can match domain sentinels with errors.Is.
func (d *Database) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// FromDB wraps an existing handle, e.g. a go-sqlmock connection in tests.
func FromDB(db *sql.DB, dialect Dialect) *Database {
	return &Database{db: db, dialect: dialect}
}
