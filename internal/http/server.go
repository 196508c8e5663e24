package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	authDomain "github.com/tableside/tableside/internal/auth/domain"
	authHTTP "github.com/tableside/tableside/internal/auth/http"
	authUseCase "github.com/tableside/tableside/internal/auth/usecase"
	"github.com/tableside/tableside/internal/config"
	menuHTTP "github.com/tableside/tableside/internal/menu/http"
	"github.com/tableside/tableside/internal/metrics"
	restaurantHTTP "github.com/tableside/tableside/internal/restaurant/http"
	userHTTP "github.com/tableside/tableside/internal/user/http"
)

// Handlers bundles the per-module HTTP handlers wired into the router.
type Handlers struct {
	Auth       *authHTTP.Handler
	User       *userHTTP.UserHandler
	Restaurant *restaurantHTTP.RestaurantHandler
	Menu       *menuHTTP.MenuHandler
}

// Server represents the API HTTP server.
type Server struct {
	server          *http.Server
	router          *gin.Engine
	cfg             *config.Config
	logger          *slog.Logger
	authUseCase     authUseCase.UseCase
	handlers        Handlers
	metricsProvider *metrics.Provider
}

// NewServer creates the API server and registers all routes. The per-route
// role policy is declared here, next to the route it protects, so the whole
// authorization surface is readable in one place.
func NewServer(
	cfg *config.Config,
	logger *slog.Logger,
	authUC authUseCase.UseCase,
	handlers Handlers,
	metricsProvider *metrics.Provider,
) *Server {
	gin.SetMode(cfg.GetGinMode())

	s := &Server{
		router:          gin.New(),
		cfg:             cfg,
		logger:          logger,
		authUseCase:     authUC,
		handlers:        handlers,
		metricsProvider: metricsProvider,
	}

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// guard returns the authentication/authorization chain for a policy.
func (s *Server) guard(policy authDomain.RouteAuthPolicy) []gin.HandlerFunc {
	return authHTTP.Guard(policy, s.authUseCase, s.logger)
}

// guarded appends the final handler to a policy's guard chain.
func (s *Server) guarded(policy authDomain.RouteAuthPolicy, handler gin.HandlerFunc) []gin.HandlerFunc {
	return append(s.guard(policy), handler)
}

// registerRoutes wires middleware and the route table. appCtx drives the
// readiness endpoint.
func (s *Server) registerRoutes(appCtx context.Context) {
	anyAuthenticated := authDomain.AnyAuthenticated()
	adminOnly := authDomain.RequireRoles(authDomain.RoleAdmin)

	s.router.Use(RecoveryMiddleware(s.logger))
	s.router.Use(requestid.New())
	s.router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(
		s.cfg.CORSEnabled, s.cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		s.router.Use(corsMiddleware)
	}

	if s.metricsProvider != nil {
		s.router.Use(metrics.HTTPMetricsMiddleware(
			s.metricsProvider.MeterProvider(), s.cfg.MetricsNamespace))
	}

	// Liveness and readiness, unguarded
	s.router.GET("/health", HealthHandler)
	s.router.GET("/ready", ReadinessHandler(appCtx))

	v1 := s.router.Group("/v1")

	// Credential endpoints, unguarded but rate limited per IP
	auth := v1.Group("/auth")
	if s.cfg.RateLimitLoginEnabled {
		auth.Use(authHTTP.LoginRateLimitMiddleware(
			s.cfg.RateLimitLoginRequestsPerSec,
			s.cfg.RateLimitLoginBurst,
			s.logger,
		))
	}
	auth.POST("/login", s.handlers.Auth.LoginHandler)
	auth.POST("/register", s.handlers.Auth.RegisterHandler)
	v1.GET("/auth/me", s.guarded(anyAuthenticated, s.handlers.Auth.MeHandler)...)

	// User directory, admin only except the self endpoint
	v1.GET("/users/me", s.guarded(anyAuthenticated, s.handlers.User.GetCurrentUserHandler)...)
	v1.POST("/users", s.guarded(adminOnly, s.handlers.User.CreateUserHandler)...)
	v1.GET("/users", s.guarded(adminOnly, s.handlers.User.ListUsersHandler)...)
	v1.GET("/users/:id", s.guarded(adminOnly, s.handlers.User.GetUserHandler)...)
	v1.PUT("/users/:id", s.guarded(adminOnly, s.handlers.User.UpdateUserHandler)...)
	v1.DELETE("/users/:id", s.guarded(adminOnly, s.handlers.User.DeleteUserHandler)...)

	// Restaurants, reads for any authenticated principal, writes admin only
	v1.GET("/restaurants", s.guarded(anyAuthenticated, s.handlers.Restaurant.ListRestaurantsHandler)...)
	v1.GET("/restaurants/:restaurantID", s.guarded(anyAuthenticated, s.handlers.Restaurant.GetRestaurantHandler)...)
	v1.POST("/restaurants", s.guarded(adminOnly, s.handlers.Restaurant.CreateRestaurantHandler)...)
	v1.PUT("/restaurants/:restaurantID", s.guarded(adminOnly, s.handlers.Restaurant.UpdateRestaurantHandler)...)
	v1.DELETE("/restaurants/:restaurantID", s.guarded(adminOnly, s.handlers.Restaurant.DeleteRestaurantHandler)...)

	// Menu items, nested under their restaurant, same read/write split
	menuBase := "/restaurants/:restaurantID/menu-items"
	v1.GET(menuBase, s.guarded(anyAuthenticated, s.handlers.Menu.ListMenuItemsHandler)...)
	v1.GET(menuBase+"/:id", s.guarded(anyAuthenticated, s.handlers.Menu.GetMenuItemHandler)...)
	v1.POST(menuBase, s.guarded(adminOnly, s.handlers.Menu.CreateMenuItemHandler)...)
	v1.PUT(menuBase+"/:id", s.guarded(adminOnly, s.handlers.Menu.UpdateMenuItemHandler)...)
	v1.DELETE(menuBase+"/:id", s.guarded(adminOnly, s.handlers.Menu.DeleteMenuItemHandler)...)
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start registers routes and starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.registerRoutes(ctx)

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
