package models

// Item is the core aggregate for this bounded context.
type Item struct {
	ID    int64 // assigned by the store on insert; zero until persisted
	Name  ItemName
	Price Price
}

// NewItem constructs an unsaved Item from already-validated value objects.
func NewItem(name ItemName, price Price) *Item {
	return &Item{Name: name, Price: price}
}
