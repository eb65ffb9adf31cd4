package repositories

//go:generate mockgen -source=item.go -destination=mocks/mock_item.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/ghuser/itemsvc/services/item/domain/models"
)

// Pagination bounds for list queries.
const (
	DefaultLimit = 50
	MinLimit     = 1
	MaxLimit     = 200
)

// SortKey is the closed set of fields a list may be ordered by.
type SortKey string

const (
	SortByID    SortKey = "id"
	SortByName  SortKey = "name"
	SortByPrice SortKey = "price"
)

// ParseSortKey accepts exactly "id", "name" or "price".
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case SortByID, SortByName, SortByPrice:
		return k, nil
	default:
		return "", fmt.Errorf("order_by must be one of id, name, price; got %q", s)
	}
}

// SortDirection is ascending or descending.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ParseSortDirection accepts exactly "asc" or "desc".
func ParseSortDirection(s string) (SortDirection, error) {
	switch d := SortDirection(s); d {
	case SortAsc, SortDesc:
		return d, nil
	default:
		return "", fmt.Errorf("direction must be asc or desc; got %q", s)
	}
}

// ListQuery describes one bounded, ordered read. Nil filters are not applied;
// all supplied filters must hold for an item to be returned.
type ListQuery struct {
	MinPrice  *float64
	MaxPrice  *float64
	NameQuery *string // case-insensitive substring of name
	Limit     int
	Offset    int
	OrderBy   SortKey
	Direction SortDirection
}

// DefaultListQuery returns the query used when no parameters are supplied:
// no filters, first 50 items by id ascending.
func DefaultListQuery() ListQuery {
	return ListQuery{
		Limit:     DefaultLimit,
		Offset:    0,
		OrderBy:   SortByID,
		Direction: SortAsc,
	}
}

// ItemPatch carries the fields of a partial update. Nil fields are left unchanged.
type ItemPatch struct {
	Name  *models.ItemName
	Price *models.Price
}

// IsEmpty reports whether the patch changes nothing.
func (p ItemPatch) IsEmpty() bool {
	return p.Name == nil && p.Price == nil
}

// ItemRepository is the persistence interface for the Item aggregate.
// The domain layer owns this interface; infrastructure implements it.
type ItemRepository interface {
	// Create inserts item and returns it with its assigned ID.
	// Returns ErrItemAlreadyExists when the name is taken.
	Create(ctx context.Context, item *models.Item) (*models.Item, error)

	// GetByID returns ErrItemNotFound when no item has the given id.
	GetByID(ctx context.Context, id int64) (*models.Item, error)

	// List returns at most q.Limit items; an offset past the end yields an empty slice.
	List(ctx context.Context, q ListQuery) ([]*models.Item, error)

	// Update applies patch to the item with the given id and returns the result.
	// Returns ErrItemNotFound or ErrItemAlreadyExists.
	Update(ctx context.Context, id int64, patch ItemPatch) (*models.Item, error)
}
