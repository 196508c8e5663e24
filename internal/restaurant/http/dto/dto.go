// Package dto provides data transfer objects for the restaurant HTTP layer.
package dto

import (
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	"github.com/tableside/tableside/internal/restaurant/domain"
	"github.com/tableside/tableside/internal/restaurant/usecase"
	appValidation "github.com/tableside/tableside/internal/validation"
)

// RestaurantRequest represents the API request for creating or updating a
// restaurant.
type RestaurantRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate validates the RestaurantRequest.
func (r *RestaurantRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(&r.Description,
			validation.Length(0, 2000).Error("description must be at most 2000 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// ToRestaurantInput converts a RestaurantRequest DTO to a use case input.
func ToRestaurantInput(req RestaurantRequest) usecase.RestaurantInput {
	return usecase.RestaurantInput{
		Name:        req.Name,
		Description: req.Description,
	}
}

// RestaurantResponse represents a restaurant in API responses.
type RestaurantResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToRestaurantResponse converts a domain restaurant to an API response.
func ToRestaurantResponse(restaurant *domain.Restaurant) RestaurantResponse {
	return RestaurantResponse{
		ID:          restaurant.ID,
		Name:        restaurant.Name,
		Description: restaurant.Description,
		CreatedAt:   restaurant.CreatedAt,
		UpdatedAt:   restaurant.UpdatedAt,
	}
}

// ListRestaurantsResponse represents a paginated list of restaurants.
type ListRestaurantsResponse struct {
	Data []RestaurantResponse `json:"data"`
}

// ToListRestaurantsResponse converts domain restaurants to a list response.
func ToListRestaurantsResponse(restaurants []*domain.Restaurant) ListRestaurantsResponse {
	responses := make([]RestaurantResponse, 0, len(restaurants))
	for _, restaurant := range restaurants {
		responses = append(responses, ToRestaurantResponse(restaurant))
	}
	return ListRestaurantsResponse{
		Data: responses,
	}
}
