package services

import (
	"github.com/ghuser/itemsvc/pkg/app"
	"github.com/ghuser/itemsvc/services/item/infrastructure/persistence/sqlstore"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Item *ItemService
}

// New wires all item application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := sqlstore.NewItemRepository(a.Db)
	return &Services{
		Item: NewItemService(repo, a.Logger),
	}
}
