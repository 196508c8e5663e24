// Package http provides HTTP handlers for restaurant operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tableside/tableside/internal/httputil"
	"github.com/tableside/tableside/internal/restaurant/http/dto"
	"github.com/tableside/tableside/internal/restaurant/usecase"
)

// RestaurantHandler handles restaurant-related HTTP requests.
type RestaurantHandler struct {
	restaurantUseCase usecase.UseCase
	logger            *slog.Logger
}

// NewRestaurantHandler creates a new RestaurantHandler.
func NewRestaurantHandler(restaurantUseCase usecase.UseCase, logger *slog.Logger) *RestaurantHandler {
	return &RestaurantHandler{
		restaurantUseCase: restaurantUseCase,
		logger:            logger,
	}
}

// CreateRestaurantHandler creates a new restaurant.
// POST /v1/restaurants - Admin only.
func (h *RestaurantHandler) CreateRestaurantHandler(c *gin.Context) {
	var req dto.RestaurantRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	restaurant, err := h.restaurantUseCase.Create(c.Request.Context(), dto.ToRestaurantInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToRestaurantResponse(restaurant))
}

// GetRestaurantHandler retrieves a single restaurant by ID.
// GET /v1/restaurants/:restaurantID - Any authenticated principal.
func (h *RestaurantHandler) GetRestaurantHandler(c *gin.Context) {
	id, err := parseIDParam(c, "restaurantID")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	restaurant, err := h.restaurantUseCase.GetByID(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToRestaurantResponse(restaurant))
}

// ListRestaurantsHandler retrieves restaurants with pagination.
// GET /v1/restaurants - Any authenticated principal.
func (h *RestaurantHandler) ListRestaurantsHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	restaurants, err := h.restaurantUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToListRestaurantsResponse(restaurants))
}

// UpdateRestaurantHandler modifies a restaurant.
// PUT /v1/restaurants/:restaurantID - Admin only.
func (h *RestaurantHandler) UpdateRestaurantHandler(c *gin.Context) {
	id, err := parseIDParam(c, "restaurantID")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.RestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	restaurant, err := h.restaurantUseCase.Update(c.Request.Context(), id, dto.ToRestaurantInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToRestaurantResponse(restaurant))
}

// DeleteRestaurantHandler removes a restaurant and its menu.
// DELETE /v1/restaurants/:restaurantID - Admin only.
func (h *RestaurantHandler) DeleteRestaurantHandler(c *gin.Context) {
	id, err := parseIDParam(c, "restaurantID")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.restaurantUseCase.Delete(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// parseIDParam parses a path parameter as a UUID.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s format: must be a valid UUID", name)
	}
	return id, nil
}
