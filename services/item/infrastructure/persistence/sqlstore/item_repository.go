// Package sqlstore implements the item repository on database/sql, for both
// SQLite and PostgreSQL. Statements are built with squirrel so that the
// placeholder style follows the dialect.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/ghuser/itemsvc/pkg/database"
	itemdomain "github.com/ghuser/itemsvc/services/item/domain"
	"github.com/ghuser/itemsvc/services/item/domain/models"
	"github.com/ghuser/itemsvc/services/item/domain/repositories"
)

const itemsTable = "items"

var itemColumns = []string{"id", "name", "price"}

// ItemRepository implements repositories.ItemRepository.
type ItemRepository struct {
	db    *database.Database
	sb    sq.StatementBuilderType
	lower string
}

// NewItemRepository returns an ItemRepository on db.
func NewItemRepository(db *database.Database) *ItemRepository {
	return &ItemRepository{
		db:    db,
		sb:    statementBuilder(db.Dialect()),
		lower: lowerFunc(db.Dialect()),
	}
}

func statementBuilder(d database.Dialect) sq.StatementBuilderType {
	if d == database.DialectPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// lowerFunc names the SQL function used for case-insensitive matching.
// SQLite's built-in LOWER leaves non-ASCII letters unchanged.
func lowerFunc(d database.Dialect) string {
	if d == database.DialectPostgres {
		return "LOWER"
	}
	return database.SQLiteLowerFunc
}

// Create inserts item inside a transaction and returns the stored row.
// A name collision rolls the transaction back and returns ErrItemAlreadyExists.
func (r *ItemRepository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	query, args, err := r.sb.Insert(itemsTable).
		Columns("name", "price").
		Values(item.Name.String(), item.Price.Float64()).
		Suffix("RETURNING id, name, price").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	var created *models.Item
	if err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		item, scanErr := scanItem(tx.QueryRowContext(ctx, query, args...))
		if scanErr != nil {
			return classifyWriteError("insert item", scanErr)
		}
		created = item
		return nil
	}); err != nil {
		return nil, err
	}
	return created, nil
}

// GetByID returns ErrItemNotFound when no row has the given id.
func (r *ItemRepository) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	query, args, err := r.sb.Select(itemColumns...).
		From(itemsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	item, err := scanItem(r.db.DB().QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, itemdomain.ErrItemNotFound
		}
		return nil, fmt.Errorf("query item: %w", err)
	}
	return item, nil
}

// List runs one filtered, ordered and paginated select. The result is never
// nil so that it encodes as an empty JSON array.
func (r *ItemRepository) List(ctx context.Context, q repositories.ListQuery) ([]*models.Item, error) {
	query, args, err := buildListQuery(r.sb, r.lower, q)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	items := make([]*models.Item, 0, q.Limit)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// Update applies patch in a single statement and returns the updated row.
// An empty patch returns the current row unchanged.
func (r *ItemRepository) Update(ctx context.Context, id int64, patch repositories.ItemPatch) (*models.Item, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	set := map[string]any{}
	if patch.Name != nil {
		set["name"] = patch.Name.String()
	}
	if patch.Price != nil {
		set["price"] = patch.Price.Float64()
	}

	query, args, err := r.sb.Update(itemsTable).
		SetMap(set).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING id, name, price").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}

	var updated *models.Item
	if err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		item, scanErr := scanItem(tx.QueryRowContext(ctx, query, args...))
		if errors.Is(scanErr, sql.ErrNoRows) {
			return itemdomain.ErrItemNotFound
		}
		if scanErr != nil {
			return classifyWriteError("update item", scanErr)
		}
		updated = item
		return nil
	}); err != nil {
		return nil, err
	}
	return updated, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*models.Item, error) {
	var (
		id    int64
		name  string
		price float64
	)
	if err := row.Scan(&id, &name, &price); err != nil {
		return nil, err
	}
	return &models.Item{ID: id, Name: models.ItemName(name), Price: models.Price(price)}, nil
}
