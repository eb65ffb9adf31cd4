package sqlstore

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	itemdomain "github.com/ghuser/itemsvc/services/item/domain"
)

// isUniqueViolation reports whether err is a uniqueness constraint failure
// from either driver. Only typed driver errors are inspected.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	return false
}

// classifyWriteError turns a uniqueness failure into ErrItemAlreadyExists and
// wraps anything else with op.
func classifyWriteError(op string, err error) error {
	if isUniqueViolation(err) {
		return itemdomain.ErrItemAlreadyExists
	}
	return fmt.Errorf("%s: %w", op, err)
}
