// Package usecase implements the restaurant business logic.
package usecase

import (
	"context"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/tableside/tableside/internal/restaurant/domain"
	appValidation "github.com/tableside/tableside/internal/validation"
)

// RestaurantInput contains the mutable fields of a restaurant.
type RestaurantInput struct {
	Name        string
	Description string
}

// UseCase defines the interface for restaurant operations.
type UseCase interface {
	Create(ctx context.Context, input RestaurantInput) (*domain.Restaurant, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Restaurant, error)
	Update(ctx context.Context, id uuid.UUID, input RestaurantInput) (*domain.Restaurant, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// RestaurantRepository defines restaurant persistence operations.
type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *domain.Restaurant) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Restaurant, error)
	Update(ctx context.Context, restaurant *domain.Restaurant) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RestaurantUseCase handles restaurant business logic.
type RestaurantUseCase struct {
	restaurantRepo RestaurantRepository
}

// NewRestaurantUseCase creates a new RestaurantUseCase.
func NewRestaurantUseCase(restaurantRepo RestaurantRepository) UseCase {
	return &RestaurantUseCase{
		restaurantRepo: restaurantRepo,
	}
}

// validateRestaurantInput validates the name and description fields.
func validateRestaurantInput(input RestaurantInput) error {
	err := validation.Errors{
		"name": validation.Validate(input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		"description": validation.Validate(input.Description,
			validation.Length(0, 2000).Error("description must be at most 2000 characters"),
		),
	}.Filter()
	return appValidation.WrapValidationError(err)
}

// Create registers a new restaurant.
func (uc *RestaurantUseCase) Create(ctx context.Context, input RestaurantInput) (*domain.Restaurant, error) {
	if err := validateRestaurantInput(input); err != nil {
		return nil, err
	}

	restaurant := &domain.Restaurant{
		ID:          uuid.Must(uuid.NewV7()),
		Name:        input.Name,
		Description: input.Description,
	}

	if err := uc.restaurantRepo.Create(ctx, restaurant); err != nil {
		return nil, err
	}

	return restaurant, nil
}

// GetByID retrieves a restaurant by ID.
func (uc *RestaurantUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error) {
	return uc.restaurantRepo.GetByID(ctx, id)
}

// List retrieves restaurants with pagination.
func (uc *RestaurantUseCase) List(ctx context.Context, offset, limit int) ([]*domain.Restaurant, error) {
	return uc.restaurantRepo.List(ctx, offset, limit)
}

// Update modifies a restaurant's name and description.
func (uc *RestaurantUseCase) Update(
	ctx context.Context,
	id uuid.UUID,
	input RestaurantInput,
) (*domain.Restaurant, error) {
	if err := validateRestaurantInput(input); err != nil {
		return nil, err
	}

	restaurant, err := uc.restaurantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	restaurant.Name = input.Name
	restaurant.Description = input.Description

	if err := uc.restaurantRepo.Update(ctx, restaurant); err != nil {
		return nil, err
	}

	return restaurant, nil
}

// Delete removes a restaurant by ID.
func (uc *RestaurantUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.restaurantRepo.Delete(ctx, id)
}
