package domain

import "errors"

// Sentinel errors for the item domain. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates the requested item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrItemAlreadyExists indicates another item already uses the same name.
	ErrItemAlreadyExists = errors.New("item already exists")

	// ErrInvalidItemName indicates the item name violates domain constraints.
	ErrInvalidItemName = errors.New("invalid item name")

	// ErrInvalidPrice indicates a negative or non-finite price.
	ErrInvalidPrice = errors.New("invalid price")

	// ErrInvalidListQuery indicates an out-of-range filter, sort or page parameter.
	ErrInvalidListQuery = errors.New("invalid list query")
)
