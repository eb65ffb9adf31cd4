package services

import (
	"context"
	"fmt"

	"github.com/ghuser/itemsvc/pkg/logger"
	"github.com/ghuser/itemsvc/services/item/domain/models"
	"github.com/ghuser/itemsvc/services/item/domain/repositories"
	domainsvcs "github.com/ghuser/itemsvc/services/item/domain/services"
)

// ItemService orchestrates creation, retrieval, listing and partial update
// of Items. Uniqueness is enforced by the repository, not checked up front.
type ItemService struct {
	repo repositories.ItemRepository
	log  logger.Logger
}

// NewItemService returns an ItemService wired with the given repository.
func NewItemService(repo repositories.ItemRepository, log logger.Logger) *ItemService {
	return &ItemService{repo: repo, log: log}
}

// Create validates and persists an Item.
func (s *ItemService) Create(ctx context.Context, name string, price float64) (*models.Item, error) {
	item, err := domainsvcs.NewValidatedItem(name, price)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	s.log.InfoContext(ctx, "item created", "item_id", created.ID)
	return created, nil
}

// GetByID returns the item with the given id or ErrItemNotFound.
func (s *ItemService) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// List returns one page of items matching q.
func (s *ItemService) List(ctx context.Context, q repositories.ListQuery) ([]*models.Item, error) {
	if err := domainsvcs.ValidateListQuery(q); err != nil {
		return nil, err
	}

	items, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// Update applies the supplied fields to item id. Nil fields are left as they are.
func (s *ItemService) Update(ctx context.Context, id int64, name *string, price *float64) (*models.Item, error) {
	patch, err := domainsvcs.NewValidatedPatch(name, price)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	if !patch.IsEmpty() {
		s.log.InfoContext(ctx, "item updated", "item_id", item.ID)
	}
	return item, nil
}
