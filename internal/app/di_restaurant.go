package app

import (
	"fmt"

	restaurantRepository "github.com/tableside/tableside/internal/restaurant/repository"
	restaurantUseCase "github.com/tableside/tableside/internal/restaurant/usecase"
)

// RestaurantRepository returns the restaurant repository based on database driver.
func (c *Container) RestaurantRepository() (restaurantUseCase.RestaurantRepository, error) {
	c.restaurantRepoInit.Do(func() {
		repo, err := c.initRestaurantRepository()
		if err != nil {
			c.initErrors["restaurantRepo"] = err
			return
		}
		c.restaurantRepo = repo
	})
	if storedErr, exists := c.initErrors["restaurantRepo"]; exists {
		return nil, storedErr
	}
	return c.restaurantRepo, nil
}

// RestaurantUseCase returns the restaurant use case instance.
func (c *Container) RestaurantUseCase() (restaurantUseCase.UseCase, error) {
	c.restaurantUseCaseInit.Do(func() {
		repo, err := c.RestaurantRepository()
		if err != nil {
			c.initErrors["restaurantUseCase"] = fmt.Errorf("failed to get restaurant repository for restaurant use case: %w", err)
			return
		}
		c.restaurantUseCase = restaurantUseCase.NewRestaurantUseCase(repo)
	})
	if storedErr, exists := c.initErrors["restaurantUseCase"]; exists {
		return nil, storedErr
	}
	return c.restaurantUseCase, nil
}

// initRestaurantRepository creates the restaurant repository instance.
func (c *Container) initRestaurantRepository() (restaurantUseCase.RestaurantRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for restaurant repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return restaurantRepository.NewMySQLRestaurantRepository(db), nil
	case "postgres":
		return restaurantRepository.NewPostgreSQLRestaurantRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}
