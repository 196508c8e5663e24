// Package dto provides data transfer objects for the menu HTTP layer.
package dto

import (
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	"github.com/tableside/tableside/internal/menu/domain"
	"github.com/tableside/tableside/internal/menu/usecase"
	appValidation "github.com/tableside/tableside/internal/validation"
)

// MenuItemRequest represents the API request for creating or updating a
// menu item.
type MenuItemRequest struct {
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Category   string `json:"category"`
}

// Validate validates the MenuItemRequest.
func (r *MenuItemRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(&r.PriceCents,
			validation.Required.Error("price_cents is required"),
			validation.Min(int64(1)).Error("price_cents must be positive"),
		),
		validation.Field(&r.Category,
			validation.Required.Error("category is required"),
			appValidation.NotBlank,
			validation.Length(1, 100).Error("category must be between 1 and 100 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// ToMenuItemInput converts a MenuItemRequest DTO to a use case input.
func ToMenuItemInput(req MenuItemRequest) usecase.MenuItemInput {
	return usecase.MenuItemInput{
		Name:       req.Name,
		PriceCents: req.PriceCents,
		Category:   req.Category,
	}
}

// MenuItemResponse represents a menu item in API responses.
type MenuItemResponse struct {
	ID           uuid.UUID `json:"id"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	Name         string    `json:"name"`
	PriceCents   int64     `json:"price_cents"`
	Category     string    `json:"category"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToMenuItemResponse converts a domain menu item to an API response.
func ToMenuItemResponse(item *domain.MenuItem) MenuItemResponse {
	return MenuItemResponse{
		ID:           item.ID,
		RestaurantID: item.RestaurantID,
		Name:         item.Name,
		PriceCents:   item.PriceCents,
		Category:     item.Category,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

// ListMenuItemsResponse represents a restaurant's menu in API responses.
type ListMenuItemsResponse struct {
	Data []MenuItemResponse `json:"data"`
}

// ToListMenuItemsResponse converts domain menu items to a list response.
func ToListMenuItemsResponse(items []*domain.MenuItem) ListMenuItemsResponse {
	responses := make([]MenuItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, ToMenuItemResponse(item))
	}
	return ListMenuItemsResponse{
		Data: responses,
	}
}
