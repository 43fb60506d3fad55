package models

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by the repositories. Handlers map these to
// HTTP status codes; anything else is treated as a storage fault.
var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")

	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryExists is returned when creating a category whose name
	// is already taken.
	ErrCategoryExists = errors.New("category already exists")

	// ErrCategoryInUse is returned when a referential constraint blocks
	// a category deletion.
	ErrCategoryInUse = errors.New("category has linked products")

	// ErrInvalidMovement is returned for a movement with a bad type or
	// non-positive quantity.
	ErrInvalidMovement = errors.New("invalid movement")
)

// InsufficientStockError rejects an OUT movement larger than the
// product's current stock. Available carries the quantity at
// evaluation time so callers can show it.
type InsufficientStockError struct {
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: %d available", e.Available)
}
