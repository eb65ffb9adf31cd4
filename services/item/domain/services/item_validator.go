// Package services contains stateless domain services for the item bounded context.
// Domain services enforce business rules that operate purely on domain types
// and have zero external dependencies beyond stdlib and the domain layer.
package services

import (
	"fmt"

	itemdomain "github.com/ghuser/itemsvc/services/item/domain"
	"github.com/ghuser/itemsvc/services/item/domain/models"
	"github.com/ghuser/itemsvc/services/item/domain/repositories"
)

// NewValidatedItem builds an unsaved Item from raw input. Errors wrap
// ErrInvalidItemName or ErrInvalidPrice.
func NewValidatedItem(name string, price float64) (*models.Item, error) {
	itemName, err := models.NewItemName(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", itemdomain.ErrInvalidItemName, err)
	}
	itemPrice, err := models.NewPrice(price)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", itemdomain.ErrInvalidPrice, err)
	}
	return models.NewItem(itemName, itemPrice), nil
}

// NewValidatedPatch builds an ItemPatch from optional raw fields. Absent
// fields stay nil; present ones obey the same rules as on creation.
func NewValidatedPatch(name *string, price *float64) (repositories.ItemPatch, error) {
	var patch repositories.ItemPatch
	if name != nil {
		n, err := models.NewItemName(*name)
		if err != nil {
			return repositories.ItemPatch{}, fmt.Errorf("%w: %w", itemdomain.ErrInvalidItemName, err)
		}
		patch.Name = &n
	}
	if price != nil {
		p, err := models.NewPrice(*price)
		if err != nil {
			return repositories.ItemPatch{}, fmt.Errorf("%w: %w", itemdomain.ErrInvalidPrice, err)
		}
		patch.Price = &p
	}
	return patch, nil
}

// ValidateListQuery enforces the bounds of a list request:
//   - limit in [1, 200], offset >= 0
//   - min_price and max_price >= 0 when set
//   - q non-empty when set
//   - order_by and direction drawn from their closed sets
//
// An inverted price range is allowed and simply matches nothing.
func ValidateListQuery(q repositories.ListQuery) error {
	if q.Limit < repositories.MinLimit || q.Limit > repositories.MaxLimit {
		return fmt.Errorf("%w: limit must be between %d and %d",
			itemdomain.ErrInvalidListQuery, repositories.MinLimit, repositories.MaxLimit)
	}
	if q.Offset < 0 {
		return fmt.Errorf("%w: offset must be >= 0", itemdomain.ErrInvalidListQuery)
	}
	if q.MinPrice != nil && *q.MinPrice < 0 {
		return fmt.Errorf("%w: min_price must be >= 0", itemdomain.ErrInvalidListQuery)
	}
	if q.MaxPrice != nil && *q.MaxPrice < 0 {
		return fmt.Errorf("%w: max_price must be >= 0", itemdomain.ErrInvalidListQuery)
	}
	if q.NameQuery != nil && *q.NameQuery == "" {
		return fmt.Errorf("%w: q must not be empty", itemdomain.ErrInvalidListQuery)
	}
	if _, err := repositories.ParseSortKey(string(q.OrderBy)); err != nil {
		return fmt.Errorf("%w: %w", itemdomain.ErrInvalidListQuery, err)
	}
	if _, err := repositories.ParseSortDirection(string(q.Direction)); err != nil {
		return fmt.Errorf("%w: %w", itemdomain.ErrInvalidListQuery, err)
	}
	return nil
}
