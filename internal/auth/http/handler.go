// Package http provides HTTP handlers and middleware for authentication.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tableside/tableside/internal/auth/http/dto"
	authUseCase "github.com/tableside/tableside/internal/auth/usecase"
	"github.com/tableside/tableside/internal/httputil"
	customValidation "github.com/tableside/tableside/internal/validation"
)

// Handler handles HTTP requests for authentication operations.
// It coordinates login and registration with the auth UseCase.
type Handler struct {
	authUseCase authUseCase.UseCase
	logger      *slog.Logger
}

// NewHandler creates a new authentication handler with required dependencies.
func NewHandler(authUseCase authUseCase.UseCase, logger *slog.Logger) *Handler {
	return &Handler{
		authUseCase: authUseCase,
		logger:      logger,
	}
}

// LoginHandler authenticates an email/password pair and returns an access token.
// POST /v1/auth/login - No authentication required (this is the authentication endpoint).
// Returns 200 OK with the token and its expiration time.
// Unknown email and wrong password both map to the same 401 invalid_credentials
// response so the endpoint does not leak which accounts exist.
func (h *Handler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := authUseCase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}

	token, err := h.authUseCase.Login(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapIssuedTokenToResponse(token))
}

// RegisterHandler creates a new account and immediately logs it in.
// POST /v1/auth/register - No authentication required.
// The created account always carries the user role; role escalation happens
// through the admin-only user management endpoints.
// Returns 201 Created with the token and its expiration time.
func (h *Handler) RegisterHandler(c *gin.Context) {
	var req dto.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := authUseCase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
	}

	token, err := h.authUseCase.Register(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapIssuedTokenToResponse(token))
}

// MeHandler returns the authenticated caller's identity as carried by the
// access token claims. Requires authentication; any role is accepted.
// GET /v1/auth/me
func (h *Handler) MeHandler(c *gin.Context) {
	principal, ok := GetPrincipal(c.Request.Context())
	if !ok || principal == nil {
		// Unreachable behind the guard chain; kept for direct handler use.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	c.JSON(http.StatusOK, dto.MapPrincipalToResponse(principal))
}
