// Package http provides HTTP handlers for menu operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tableside/tableside/internal/httputil"
	"github.com/tableside/tableside/internal/menu/http/dto"
	"github.com/tableside/tableside/internal/menu/usecase"
)

// MenuHandler handles menu-related HTTP requests. All routes are nested
// under /v1/restaurants/:restaurantID/menu-items.
type MenuHandler struct {
	menuUseCase usecase.UseCase
	logger      *slog.Logger
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(menuUseCase usecase.UseCase, logger *slog.Logger) *MenuHandler {
	return &MenuHandler{
		menuUseCase: menuUseCase,
		logger:      logger,
	}
}

// CreateMenuItemHandler adds an item to a restaurant's menu.
// POST /v1/restaurants/:restaurantID/menu-items - Admin only.
func (h *MenuHandler) CreateMenuItemHandler(c *gin.Context) {
	restaurantID, err := parseUUIDParam(c, "restaurantID")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	item, err := h.menuUseCase.Create(c.Request.Context(), restaurantID, dto.ToMenuItemInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMenuItemResponse(item))
}

// GetMenuItemHandler retrieves a single menu item within a restaurant.
// GET /v1/restaurants/:restaurantID/menu-items/:id - Any authenticated principal.
func (h *MenuHandler) GetMenuItemHandler(c *gin.Context) {
	restaurantID, id, err := parseScopedIDs(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	item, err := h.menuUseCase.GetByID(c.Request.Context(), restaurantID, id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToMenuItemResponse(item))
}

// ListMenuItemsHandler retrieves a restaurant's menu with pagination.
// GET /v1/restaurants/:restaurantID/menu-items - Any authenticated principal.
func (h *MenuHandler) ListMenuItemsHandler(c *gin.Context) {
	restaurantID, err := parseUUIDParam(c, "restaurantID")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	items, err := h.menuUseCase.ListByRestaurant(c.Request.Context(), restaurantID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToListMenuItemsResponse(items))
}

// UpdateMenuItemHandler modifies a menu item within a restaurant.
// PUT /v1/restaurants/:restaurantID/menu-items/:id - Admin only.
func (h *MenuHandler) UpdateMenuItemHandler(c *gin.Context) {
	restaurantID, id, err := parseScopedIDs(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	item, err := h.menuUseCase.Update(c.Request.Context(), restaurantID, id, dto.ToMenuItemInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToMenuItemResponse(item))
}

// DeleteMenuItemHandler removes a menu item within a restaurant.
// DELETE /v1/restaurants/:restaurantID/menu-items/:id - Admin only.
func (h *MenuHandler) DeleteMenuItemHandler(c *gin.Context) {
	restaurantID, id, err := parseScopedIDs(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.menuUseCase.Delete(c.Request.Context(), restaurantID, id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// parseUUIDParam parses a path parameter as a UUID.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s format: must be a valid UUID", name)
	}
	return id, nil
}

// parseScopedIDs parses the restaurant and item path parameters.
func parseScopedIDs(c *gin.Context) (restaurantID, id uuid.UUID, err error) {
	restaurantID, err = parseUUIDParam(c, "restaurantID")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	id, err = parseUUIDParam(c, "id")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return restaurantID, id, nil
}
