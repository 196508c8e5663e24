package app

import (
	"fmt"

	authHTTP "github.com/tableside/tableside/internal/auth/http"
	"github.com/tableside/tableside/internal/http"
	menuHTTP "github.com/tableside/tableside/internal/menu/http"
	restaurantHTTP "github.com/tableside/tableside/internal/restaurant/http"
	userHTTP "github.com/tableside/tableside/internal/user/http"
)

// Handlers builds the API handler set for the HTTP server.
func (c *Container) Handlers() (http.Handlers, error) {
	logger := c.Logger()

	authUC, err := c.AuthUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get auth use case for handlers: %w", err)
	}

	userUC, err := c.UserUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get user use case for handlers: %w", err)
	}

	restaurantUC, err := c.RestaurantUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get restaurant use case for handlers: %w", err)
	}

	menuUC, err := c.MenuUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get menu use case for handlers: %w", err)
	}

	return http.Handlers{
		Auth:       authHTTP.NewHandler(authUC, logger),
		User:       userHTTP.NewUserHandler(userUC, logger),
		Restaurant: restaurantHTTP.NewRestaurantHandler(restaurantUC, logger),
		Menu:       menuHTTP.NewMenuHandler(menuUC, logger),
	}, nil
}
