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
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/tableside/tableside/internal/auth/domain"
	authHTTP "github.com/tableside/tableside/internal/auth/http"
	"github.com/tableside/tableside/internal/user/domain"
	"github.com/tableside/tableside/internal/user/http/dto"
	"github.com/tableside/tableside/internal/user/usecase"
)

// mockUserUseCase is a mock implementation of the user UseCase for testing.
type mockUserUseCase struct {
	mock.Mock
}

func (m *mockUserUseCase) Create(
	ctx context.Context,
	input usecase.CreateUserInput,
) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserUseCase) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserUseCase) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *mockUserUseCase) Update(
	ctx context.Context,
	id uuid.UUID,
	input usecase.UpdateUserInput,
) (*domain.User, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func createTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testUser() *domain.User {
	now := time.Now()
	return &domain.User{
		ID:        uuid.Must(uuid.NewV7()),
		Email:     "john@example.com",
		Password:  "hashed_password",
		Role:      authDomain.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func setupUserRouter(mockUC *mockUserUseCase) *gin.Engine {
	handler := NewUserHandler(mockUC, createTestLogger())
	router := gin.New()
	router.POST("/v1/users", handler.CreateUserHandler)
	router.GET("/v1/users", handler.ListUsersHandler)
	router.GET("/v1/users/me", handler.GetCurrentUserHandler)
	router.GET("/v1/users/:id", handler.GetUserHandler)
	router.PUT("/v1/users/:id", handler.UpdateUserHandler)
	router.DELETE("/v1/users/:id", handler.DeleteUserHandler)
	return router
}

func TestCreateUserHandler_Success(t *testing.T) {
	mockUC := &mockUserUseCase{}
	user := testUser()

	mockUC.On("Create", mock.Anything, usecase.CreateUserInput{
		Email:    "john@example.com",
		Password: "secret123",
		Role:     authDomain.RoleUser,
	}).Return(user, nil).Once()

	router := setupUserRouter(mockUC)

	body, _ := json.Marshal(dto.CreateUserRequest{
		Email:    "john@example.com",
		Password: "secret123",
		Role:     "user",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response dto.UserResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, user.ID, response.ID)
	assert.Equal(t, user.Email, response.Email)
	assert.Equal(t, "user", response.Role)
	mockUC.AssertExpectations(t)
}

func TestCreateUserHandler_Error_InvalidRole(t *testing.T) {
	mockUC := &mockUserUseCase{}
	router := setupUserRouter(mockUC)

	body, _ := json.Marshal(dto.CreateUserRequest{
		Email:    "john@example.com",
		Password: "secret123",
		Role:     "superadmin",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	mockUC.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetUserHandler_Success(t *testing.T) {
	mockUC := &mockUserUseCase{}
	user := testUser()

	mockUC.On("GetByID", mock.Anything, user.ID).Return(user, nil).Once()

	router := setupUserRouter(mockUC)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/users/"+user.ID.String(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.UserResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, user.ID, response.ID)
	mockUC.AssertExpectations(t)
}

func TestGetUserHandler_Error_NotFound(t *testing.T) {
	mockUC := &mockUserUseCase{}
	id := uuid.Must(uuid.NewV7())

	mockUC.On("GetByID", mock.Anything, id).Return(nil, domain.ErrUserNotFound).Once()

	router := setupUserRouter(mockUC)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/users/"+id.String(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockUC.AssertExpectations(t)
}

func TestGetUserHandler_Error_InvalidUUID(t *testing.T) {
	mockUC := &mockUserUseCase{}
	router := setupUserRouter(mockUC)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/users/not-a-uuid", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	mockUC.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestListUsersHandler_Success(t *testing.T) {
	mockUC := &mockUserUseCase{}
	users := []*domain.User{testUser(), testUser()}

	mockUC.On("List", mock.Anything, 0, 50).Return(users, nil).Once()

	router := setupUserRouter(mockUC)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/users", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.ListUsersResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Len(t, response.Data, 2)
	mockUC.AssertExpectations(t)
}

func TestUpdateUserHandler_Success(t *testing.T) {
	mockUC := &mockUserUseCase{}
	user := testUser()
	user.Role = authDomain.RoleAdmin

	mockUC.On("Update", mock.Anything, user.ID, usecase.UpdateUserInput{
		Email: "john@example.com",
		Role:  authDomain.RoleAdmin,
	}).Return(user, nil).Once()

	router := setupUserRouter(mockUC)

	body, _ := json.Marshal(dto.UpdateUserRequest{
		Email: "john@example.com",
		Role:  "admin",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/v1/users/"+user.ID.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.UserResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "admin", response.Role)
	mockUC.AssertExpectations(t)
}

func TestDeleteUserHandler_Success(t *testing.T) {
	mockUC := &mockUserUseCase{}
	id := uuid.Must(uuid.NewV7())

	mockUC.On("Delete", mock.Anything, id).Return(nil).Once()

	router := setupUserRouter(mockUC)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/v1/users/"+id.String(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockUC.AssertExpectations(t)
}

func TestGetCurrentUserHandler_UsesPrincipalID(t *testing.T) {
	mockUC := &mockUserUseCase{}
	user := testUser()

	mockUC.On("GetByID", mock.Anything, user.ID).Return(user, nil).Once()

	handler := NewUserHandler(mockUC, createTestLogger())
	router := gin.New()
	router.Use(func(c *gin.Context) {
		principal := &authDomain.Principal{
			ID:    user.ID,
			Email: user.Email,
			Role:  user.Role,
		}
		c.Request = c.Request.WithContext(
			authHTTP.WithPrincipal(c.Request.Context(), principal))
		c.Next()
	})
	router.GET("/v1/users/me", handler.GetCurrentUserHandler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/users/me", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.UserResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, user.ID, response.ID)
	mockUC.AssertExpectations(t)
}
