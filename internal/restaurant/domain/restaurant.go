// Package domain defines the core restaurant domain entities.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/tableside/tableside/internal/errors"
)

// Restaurant represents a managed restaurant.
type Restaurant struct {
	ID          uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Domain-specific errors for restaurant operations.
var (
	// ErrRestaurantNotFound indicates the requested restaurant does not exist.
	ErrRestaurantNotFound = errors.Wrap(errors.ErrNotFound, "restaurant not found")
)
