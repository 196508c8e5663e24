package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/tableside/tableside/internal/auth/domain"
	authHTTP "github.com/tableside/tableside/internal/auth/http"
	authService "github.com/tableside/tableside/internal/auth/service"
	authUseCase "github.com/tableside/tableside/internal/auth/usecase"
	"github.com/tableside/tableside/internal/config"
	menuDomain "github.com/tableside/tableside/internal/menu/domain"
	menuHTTP "github.com/tableside/tableside/internal/menu/http"
	menuUseCase "github.com/tableside/tableside/internal/menu/usecase"
	restaurantDomain "github.com/tableside/tableside/internal/restaurant/domain"
	restaurantHTTP "github.com/tableside/tableside/internal/restaurant/http"
	restaurantUseCase "github.com/tableside/tableside/internal/restaurant/usecase"
	userDomain "github.com/tableside/tableside/internal/user/domain"
	userHTTP "github.com/tableside/tableside/internal/user/http"
	userUseCase "github.com/tableside/tableside/internal/user/usecase"
)

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

const testJWTSecret = "http-test-signing-secret"

// memoryUserRepository is an in-memory user store for routing tests.
type memoryUserRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]*userDomain.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: make(map[uuid.UUID]*userDomain.User)}
}

func (r *memoryUserRepository) Create(ctx context.Context, user *userDomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return userDomain.ErrUserAlreadyExists
		}
	}
	stored := *user
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = time.Now()
	r.users[user.ID] = &stored
	return nil
}

func (r *memoryUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, userDomain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *memoryUserRepository) GetByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, userDomain.ErrUserNotFound
}

func (r *memoryUserRepository) List(ctx context.Context, offset, limit int) ([]*userDomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]*userDomain.User, 0, len(r.users))
	for _, user := range r.users {
		copied := *user
		users = append(users, &copied)
	}
	return users, nil
}

func (r *memoryUserRepository) Update(ctx context.Context, user *userDomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return userDomain.ErrUserNotFound
	}
	stored := *user
	stored.UpdatedAt = time.Now()
	r.users[user.ID] = &stored
	return nil
}

func (r *memoryUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return userDomain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// memoryRestaurantRepository is an in-memory restaurant store.
type memoryRestaurantRepository struct {
	mu          sync.Mutex
	restaurants map[uuid.UUID]*restaurantDomain.Restaurant
}

func newMemoryRestaurantRepository() *memoryRestaurantRepository {
	return &memoryRestaurantRepository{
		restaurants: make(map[uuid.UUID]*restaurantDomain.Restaurant),
	}
}

func (r *memoryRestaurantRepository) Create(
	ctx context.Context,
	restaurant *restaurantDomain.Restaurant,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *restaurant
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = time.Now()
	r.restaurants[restaurant.ID] = &stored
	return nil
}

func (r *memoryRestaurantRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*restaurantDomain.Restaurant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	restaurant, ok := r.restaurants[id]
	if !ok {
		return nil, restaurantDomain.ErrRestaurantNotFound
	}
	copied := *restaurant
	return &copied, nil
}

func (r *memoryRestaurantRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*restaurantDomain.Restaurant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	restaurants := make([]*restaurantDomain.Restaurant, 0, len(r.restaurants))
	for _, restaurant := range r.restaurants {
		copied := *restaurant
		restaurants = append(restaurants, &copied)
	}
	return restaurants, nil
}

func (r *memoryRestaurantRepository) Update(
	ctx context.Context,
	restaurant *restaurantDomain.Restaurant,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.restaurants[restaurant.ID]; !ok {
		return restaurantDomain.ErrRestaurantNotFound
	}
	stored := *restaurant
	r.restaurants[restaurant.ID] = &stored
	return nil
}

func (r *memoryRestaurantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.restaurants[id]; !ok {
		return restaurantDomain.ErrRestaurantNotFound
	}
	delete(r.restaurants, id)
	return nil
}

// memoryMenuItemRepository is an in-memory menu item store.
type memoryMenuItemRepository struct {
	mu    sync.Mutex
	items map[uuid.UUID]*menuDomain.MenuItem
}

func newMemoryMenuItemRepository() *memoryMenuItemRepository {
	return &memoryMenuItemRepository{items: make(map[uuid.UUID]*menuDomain.MenuItem)}
}

func (r *memoryMenuItemRepository) Create(ctx context.Context, item *menuDomain.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *item
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = time.Now()
	r.items[item.ID] = &stored
	return nil
}

func (r *memoryMenuItemRepository) GetByID(
	ctx context.Context,
	restaurantID, id uuid.UUID,
) (*menuDomain.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || item.RestaurantID != restaurantID {
		return nil, menuDomain.ErrMenuItemNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *memoryMenuItemRepository) ListByRestaurant(
	ctx context.Context,
	restaurantID uuid.UUID,
	offset, limit int,
) ([]*menuDomain.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]*menuDomain.MenuItem, 0)
	for _, item := range r.items {
		if item.RestaurantID == restaurantID {
			copied := *item
			items = append(items, &copied)
		}
	}
	return items, nil
}

func (r *memoryMenuItemRepository) Update(ctx context.Context, item *menuDomain.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[item.ID]
	if !ok || existing.RestaurantID != item.RestaurantID {
		return menuDomain.ErrMenuItemNotFound
	}
	stored := *item
	r.items[item.ID] = &stored
	return nil
}

func (r *memoryMenuItemRepository) Delete(ctx context.Context, restaurantID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[id]
	if !ok || existing.RestaurantID != restaurantID {
		return menuDomain.ErrMenuItemNotFound
	}
	delete(r.items, id)
	return nil
}

// noopTxManager runs the function without a real transaction.
type noopTxManager struct{}

func (noopTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// testEnv bundles the wired server and seeded accounts.
type testEnv struct {
	handler    http.Handler
	adminToken string
	userToken  string
	userRepo   *memoryUserRepository
}

// setupTestEnv wires a full server against in-memory stores, with one admin
// and one regular account already registered and logged in.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	passwordService := authService.NewPasswordService()
	tokenService, err := authService.NewTokenService(testJWTSecret, time.Hour)
	require.NoError(t, err)

	userRepo := newMemoryUserRepository()
	restaurantRepo := newMemoryRestaurantRepository()

	userUC := userUseCase.NewUserUseCase(noopTxManager{}, userRepo, passwordService)
	authUC := authUseCase.NewAuthUseCase(userUC, userUC, passwordService, tokenService)
	restaurantUC := restaurantUseCase.NewRestaurantUseCase(restaurantRepo)

	menuUC := menuUseCase.NewMenuUseCase(newMemoryMenuItemRepository(), restaurantUC)

	handlers := Handlers{
		Auth:       authHTTP.NewHandler(authUC, logger),
		User:       userHTTP.NewUserHandler(userUC, logger),
		Restaurant: restaurantHTTP.NewRestaurantHandler(restaurantUC, logger),
		Menu:       menuHTTP.NewMenuHandler(menuUC, logger),
	}

	cfg := &config.Config{
		ServerHost:            "localhost",
		ServerPort:            8080,
		LogLevel:              "error",
		AuthJWTSecret:         testJWTSecret,
		AuthTokenExpiration:   time.Hour,
		RateLimitLoginEnabled: false,
	}

	server := NewServer(cfg, logger, authUC, handlers, nil)
	server.registerRoutes(context.Background())

	// Seed an admin account directly, then log in through the API
	admin, err := userUC.Create(context.Background(), userUseCase.CreateUserInput{
		Email:    "admin@example.com",
		Password: "admin-pass1",
		Role:     authDomain.RoleAdmin,
	})
	require.NoError(t, err)
	require.Equal(t, authDomain.RoleAdmin, admin.Role)

	env := &testEnv{handler: server.GetHandler(), userRepo: userRepo}
	env.adminToken = env.login(t, "admin@example.com", "admin-pass1")

	// Register a regular account through the API
	env.userToken = env.register(t, "member@example.com", "member-pass1")

	return env
}

func (e *testEnv) do(
	t *testing.T,
	method, path, token string,
	body any,
) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	e.handler.ServeHTTP(w, req)
	return w
}

func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()

	w := e.do(t, http.MethodPost, "/v1/auth/login", "",
		map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var response struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response.AccessToken)
	return response.AccessToken
}

func (e *testEnv) register(t *testing.T, email, password string) string {
	t.Helper()

	w := e.do(t, http.MethodPost, "/v1/auth/register", "",
		map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var response struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response.AccessToken)
	return response.AccessToken
}

func TestRoutes_HealthAndReadiness(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/ready", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoutes_LoginRejectsWrongPassword(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/v1/auth/login", "",
		map[string]string{"email": "admin@example.com", "password": "wrong-pass1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoutes_LoginUnknownEmailSameResponseAsWrongPassword(t *testing.T) {
	env := setupTestEnv(t)

	unknown := env.do(t, http.MethodPost, "/v1/auth/login", "",
		map[string]string{"email": "ghost@example.com", "password": "whatever1"})
	wrong := env.do(t, http.MethodPost, "/v1/auth/login", "",
		map[string]string{"email": "admin@example.com", "password": "wrong-pass1"})

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, wrong.Code, unknown.Code)
	assert.JSONEq(t, wrong.Body.String(), unknown.Body.String())
}

func TestRoutes_LoginNormalizesEmailCase(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/v1/auth/login", "",
		map[string]string{"email": "  Admin@Example.COM ", "password": "admin-pass1"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestRoutes_ProtectedRouteWithoutToken(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodGet, "/v1/restaurants", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoutes_RegisteredAccountHasUserRole(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodGet, "/v1/auth/me", env.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Role string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "user", response.Role)
}

func TestRoutes_AdminOnlyRoutesForbiddenForUserRole(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodGet, "/v1/users", env.userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodPost, "/v1/restaurants", env.userToken,
		map[string]string{"name": "Sneaky Cafe"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRoutes_AdminCanManageRestaurantsAndMenu(t *testing.T) {
	env := setupTestEnv(t)

	// Create a restaurant as admin
	w := env.do(t, http.MethodPost, "/v1/restaurants", env.adminToken,
		map[string]string{"name": "Trattoria Rossi", "description": "Italian"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var restaurant struct {
		ID uuid.UUID `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &restaurant))

	// Regular user can read it
	w = env.do(t, http.MethodGet, "/v1/restaurants/"+restaurant.ID.String(), env.userToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Regular user can't delete it
	w = env.do(t, http.MethodDelete, "/v1/restaurants/"+restaurant.ID.String(), env.userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admin can
	w = env.do(t, http.MethodDelete, "/v1/restaurants/"+restaurant.ID.String(), env.adminToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRoutes_MenuItemsNestedUnderRestaurant(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/v1/restaurants", env.adminToken,
		map[string]string{"name": "Ramen Ichiban"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var restaurant struct {
		ID uuid.UUID `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &restaurant))

	base := "/v1/restaurants/" + restaurant.ID.String() + "/menu-items"

	// Writes are admin only
	w = env.do(t, http.MethodPost, base, env.userToken,
		map[string]any{"name": "Shoyu ramen", "price_cents": 1450, "category": "mains"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodPost, base, env.adminToken,
		map[string]any{"name": "Shoyu ramen", "price_cents": 1450, "category": "mains"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var item struct {
		ID uuid.UUID `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))

	// Reads are open to any authenticated role
	w = env.do(t, http.MethodGet, base+"/"+item.ID.String(), env.userToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Creating under an unknown restaurant is not found
	w = env.do(t, http.MethodPost,
		"/v1/restaurants/"+uuid.Must(uuid.NewV7()).String()+"/menu-items", env.adminToken,
		map[string]any{"name": "Gyoza", "price_cents": 650, "category": "sides"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRoutes_UsersMeAccessibleToAnyRole(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodGet, "/v1/users/me", env.userToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/v1/users/me", env.adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoutes_TamperedTokenRejectedAsMalformed(t *testing.T) {
	env := setupTestEnv(t)

	tampered := env.userToken
	// Flip a character in the signature segment
	tampered = tampered[:len(tampered)-2] + "xx"

	w := env.do(t, http.MethodGet, "/v1/restaurants", tampered, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "token_malformed", response.Error)
}

func TestRoutes_RoleChangeNotEffectiveUntilReissue(t *testing.T) {
	env := setupTestEnv(t)

	// Promote the regular account directly in the store
	var memberID uuid.UUID
	env.userRepo.mu.Lock()
	for id, user := range env.userRepo.users {
		if user.Email == "member@example.com" {
			user.Role = authDomain.RoleAdmin
			memberID = id
		}
	}
	env.userRepo.mu.Unlock()
	require.NotEqual(t, uuid.Nil, memberID)

	// The old token still carries the user role and stays forbidden
	w := env.do(t, http.MethodGet, "/v1/users", env.userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// A fresh login picks up the new role
	newToken := env.login(t, "member@example.com", "member-pass1")
	w = env.do(t, http.MethodGet, "/v1/users", newToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
