// Package usecase implements the menu business logic.
package usecase

import (
	"context"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/tableside/tableside/internal/menu/domain"
	restaurantDomain "github.com/tableside/tableside/internal/restaurant/domain"
	appValidation "github.com/tableside/tableside/internal/validation"
)

// MenuItemInput contains the mutable fields of a menu item.
type MenuItemInput struct {
	Name       string
	PriceCents int64
	Category   string
}

// UseCase defines the interface for menu operations. Every operation is
// scoped to a restaurant; an item id from another restaurant resolves to
// not found.
type UseCase interface {
	Create(ctx context.Context, restaurantID uuid.UUID, input MenuItemInput) (*domain.MenuItem, error)
	GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*domain.MenuItem, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID, offset, limit int) ([]*domain.MenuItem, error)
	Update(ctx context.Context, restaurantID, id uuid.UUID, input MenuItemInput) (*domain.MenuItem, error)
	Delete(ctx context.Context, restaurantID, id uuid.UUID) error
}

// MenuItemRepository defines menu item persistence operations.
type MenuItemRepository interface {
	Create(ctx context.Context, item *domain.MenuItem) error
	GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*domain.MenuItem, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID, offset, limit int) ([]*domain.MenuItem, error)
	Update(ctx context.Context, item *domain.MenuItem) error
	Delete(ctx context.Context, restaurantID, id uuid.UUID) error
}

// RestaurantDirectory is the read-only view of restaurants used to verify
// the parent exists before attaching menu items.
type RestaurantDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*restaurantDomain.Restaurant, error)
}

// MenuUseCase handles menu business logic.
type MenuUseCase struct {
	menuRepo    MenuItemRepository
	restaurants RestaurantDirectory
}

// NewMenuUseCase creates a new MenuUseCase.
func NewMenuUseCase(menuRepo MenuItemRepository, restaurants RestaurantDirectory) UseCase {
	return &MenuUseCase{
		menuRepo:    menuRepo,
		restaurants: restaurants,
	}
}

// validateMenuItemInput validates the name, price and category fields.
func validateMenuItemInput(input MenuItemInput) error {
	err := validation.Errors{
		"name": validation.Validate(input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		"price_cents": validation.Validate(input.PriceCents,
			validation.Required.Error("price_cents is required"),
			validation.Min(int64(1)).Error("price_cents must be positive"),
		),
		"category": validation.Validate(input.Category,
			validation.Required.Error("category is required"),
			appValidation.NotBlank,
			validation.Length(1, 100).Error("category must be between 1 and 100 characters"),
		),
	}.Filter()
	return appValidation.WrapValidationError(err)
}

// Create adds a menu item to a restaurant. The restaurant must exist.
func (uc *MenuUseCase) Create(
	ctx context.Context,
	restaurantID uuid.UUID,
	input MenuItemInput,
) (*domain.MenuItem, error) {
	if err := validateMenuItemInput(input); err != nil {
		return nil, err
	}

	if _, err := uc.restaurants.GetByID(ctx, restaurantID); err != nil {
		return nil, err
	}

	item := &domain.MenuItem{
		ID:           uuid.Must(uuid.NewV7()),
		RestaurantID: restaurantID,
		Name:         input.Name,
		PriceCents:   input.PriceCents,
		Category:     input.Category,
	}

	if err := uc.menuRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// GetByID retrieves a menu item within a restaurant.
func (uc *MenuUseCase) GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*domain.MenuItem, error) {
	return uc.menuRepo.GetByID(ctx, restaurantID, id)
}

// ListByRestaurant retrieves a restaurant's menu items with pagination.
func (uc *MenuUseCase) ListByRestaurant(
	ctx context.Context,
	restaurantID uuid.UUID,
	offset, limit int,
) ([]*domain.MenuItem, error) {
	return uc.menuRepo.ListByRestaurant(ctx, restaurantID, offset, limit)
}

// Update modifies a menu item within a restaurant.
func (uc *MenuUseCase) Update(
	ctx context.Context,
	restaurantID, id uuid.UUID,
	input MenuItemInput,
) (*domain.MenuItem, error) {
	if err := validateMenuItemInput(input); err != nil {
		return nil, err
	}

	item, err := uc.menuRepo.GetByID(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}

	item.Name = input.Name
	item.PriceCents = input.PriceCents
	item.Category = input.Category

	if err := uc.menuRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// Delete removes a menu item within a restaurant.
func (uc *MenuUseCase) Delete(ctx context.Context, restaurantID, id uuid.UUID) error {
	return uc.menuRepo.Delete(ctx, restaurantID, id)
}
