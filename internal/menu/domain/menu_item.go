// Package domain defines the core menu domain entities.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/tableside/tableside/internal/errors"
)

// MenuItem represents a single dish on a restaurant's menu. PriceCents
// stores the price in the smallest currency unit to avoid float rounding.
type MenuItem struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
	Name         string
	PriceCents   int64
	Category     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Domain-specific errors for menu operations.
var (
	// ErrMenuItemNotFound indicates the menu item does not exist under the
	// given restaurant. Lookups are always restaurant-scoped, so an item
	// belonging to a different restaurant is also not found.
	ErrMenuItemNotFound = errors.Wrap(errors.ErrNotFound, "menu item not found")
)
