package app

import (
	"fmt"

	menuRepository "github.com/tableside/tableside/internal/menu/repository"
	menuUseCase "github.com/tableside/tableside/internal/menu/usecase"
)

// MenuItemRepository returns the menu item repository based on database driver.
func (c *Container) MenuItemRepository() (menuUseCase.MenuItemRepository, error) {
	c.menuRepoInit.Do(func() {
		repo, err := c.initMenuItemRepository()
		if err != nil {
			c.initErrors["menuRepo"] = err
			return
		}
		c.menuRepo = repo
	})
	if storedErr, exists := c.initErrors["menuRepo"]; exists {
		return nil, storedErr
	}
	return c.menuRepo, nil
}

// MenuUseCase returns the menu use case instance.
func (c *Container) MenuUseCase() (menuUseCase.UseCase, error) {
	c.menuUseCaseInit.Do(func() {
		useCase, err := c.initMenuUseCase()
		if err != nil {
			c.initErrors["menuUseCase"] = err
			return
		}
		c.menuUseCase = useCase
	})
	if storedErr, exists := c.initErrors["menuUseCase"]; exists {
		return nil, storedErr
	}
	return c.menuUseCase, nil
}

// initMenuItemRepository creates the menu item repository instance.
func (c *Container) initMenuItemRepository() (menuUseCase.MenuItemRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for menu repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return menuRepository.NewMySQLMenuItemRepository(db), nil
	case "postgres":
		return menuRepository.NewPostgreSQLMenuItemRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initMenuUseCase creates the menu use case with all its dependencies. The
// restaurant use case provides the parent existence check.
func (c *Container) initMenuUseCase() (menuUseCase.UseCase, error) {
	menuRepo, err := c.MenuItemRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get menu repository for menu use case: %w", err)
	}

	restaurantUC, err := c.RestaurantUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get restaurant use case for menu use case: %w", err)
	}

	return menuUseCase.NewMenuUseCase(menuRepo, restaurantUC), nil
}
