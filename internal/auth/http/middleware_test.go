// Package http provides HTTP handlers and middleware for authentication.
package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/tableside/tableside/internal/auth/domain"
	authUseCase "github.com/tableside/tableside/internal/auth/usecase"
	"github.com/tableside/tableside/internal/httputil"
)

// mockAuthUseCase is a mock implementation of the auth UseCase for testing.
type mockAuthUseCase struct {
	mock.Mock
}

func (m *mockAuthUseCase) Login(
	ctx context.Context,
	input authUseCase.LoginInput,
) (*authDomain.IssuedToken, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.IssuedToken), args.Error(1)
}

func (m *mockAuthUseCase) Register(
	ctx context.Context,
	input authUseCase.RegisterInput,
) (*authDomain.IssuedToken, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.IssuedToken), args.Error(1)
}

func (m *mockAuthUseCase) Authenticate(
	ctx context.Context,
	token string,
) (*authDomain.Principal, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Principal), args.Error(1)
}

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// createTestLogger creates a test logger that discards output.
func createTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func userPrincipal() *authDomain.Principal {
	return &authDomain.Principal{
		ID:    uuid.Must(uuid.NewV7()),
		Email: "user@example.com",
		Role:  authDomain.RoleUser,
	}
}

func adminPrincipal() *authDomain.Principal {
	return &authDomain.Principal{
		ID:    uuid.Must(uuid.NewV7()),
		Email: "admin@example.com",
		Role:  authDomain.RoleAdmin,
	}
}

func TestAuthenticationMiddleware_Success(t *testing.T) {
	mockUC := &mockAuthUseCase{}
	logger := createTestLogger()

	principal := userPrincipal()
	mockUC.On("Authenticate", mock.Anything, "valid-token").Return(principal, nil).Once()

	router := gin.New()
	router.Use(AuthenticationMiddleware(mockUC, logger))
	router.GET("/test", func(c *gin.Context) {
		retrieved, ok := GetPrincipal(c.Request.Context())
		require.True(t, ok, "principal should be in context")
		require.NotNil(t, retrieved)
		assert.Equal(t, principal.ID, retrieved.ID)
		assert.Equal(t, principal.Role, retrieved.Role)

		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUC.AssertExpectations(t)
}

func TestAuthenticationMiddleware_Success_CaseInsensitiveBearer(t *testing.T) {
	testCases := []struct {
		name   string
		prefix string
	}{
		{"lowercase_bearer", "bearer "},
		{"uppercase_BEARER", "BEARER "},
		{"mixedcase_BeArEr", "BeArEr "},
		{"standard_Bearer", "Bearer "},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockUC := &mockAuthUseCase{}
			logger := createTestLogger()

			mockUC.On("Authenticate", mock.Anything, "some-token").Return(userPrincipal(), nil).Once()

			router := gin.New()
			router.Use(AuthenticationMiddleware(mockUC, logger))
			router.GET("/test", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"message": "success"})
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set("Authorization", tc.prefix+"some-token")
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			mockUC.AssertExpectations(t)
		})
	}
}

func TestAuthenticationMiddleware_Error_MissingAuthorizationHeader(t *testing.T) {
	mockUC := &mockAuthUseCase{}
	logger := createTestLogger()

	router := gin.New()
	router.Use(AuthenticationMiddleware(mockUC, logger))
	router.GET("/test", func(c *gin.Context) {
		t.Fatal("handler should not be called when authentication fails")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response httputil.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "token_missing", response.Error)

	// Verification never ran
	mockUC.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
}

func TestAuthenticationMiddleware_Error_EmptyBearerToken(t *testing.T) {
	testCases := []struct {
		name   string
		header string
	}{
		{"empty_header", ""},
		{"bearer_no_token", "Bearer "},
		{"bearer_only_spaces", "Bearer    "},
		{"wrong_scheme", "Basic dXNlcjpwYXNz"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockUC := &mockAuthUseCase{}
			logger := createTestLogger()

			router := gin.New()
			router.Use(AuthenticationMiddleware(mockUC, logger))
			router.GET("/test", func(c *gin.Context) {
				t.Fatal("handler should not be called")
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)

			var response httputil.ErrorResponse
			err := json.Unmarshal(w.Body.Bytes(), &response)
			require.NoError(t, err)
			assert.Equal(t, "token_missing", response.Error)

			mockUC.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
		})
	}
}

func TestAuthenticationMiddleware_Error_MalformedToken(t *testing.T) {
	mockUC := &mockAuthUseCase{}
	logger := createTestLogger()

	mockUC.On("Authenticate", mock.Anything, "garbage").Return(nil, authDomain.ErrTokenMalformed).Once()

	router := gin.New()
	router.Use(AuthenticationMiddleware(mockUC, logger))
	router.GET("/test", func(c *gin.Context) {
		t.Fatal("handler should not be called")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response httputil.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "token_malformed", response.Error)
	mockUC.AssertExpectations(t)
}

func TestAuthenticationMiddleware_Error_ExpiredToken(t *testing.T) {
	mockUC := &mockAuthUseCase{}
	logger := createTestLogger()

	mockUC.On("Authenticate", mock.Anything, "stale-token").Return(nil, authDomain.ErrTokenExpired).Once()

	router := gin.New()
	router.Use(AuthenticationMiddleware(mockUC, logger))
	router.GET("/test", func(c *gin.Context) {
		t.Fatal("handler should not be called")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer stale-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response httputil.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "token_expired", response.Error)
	mockUC.AssertExpectations(t)
}

func TestAuthorizationMiddleware_Success_EmptyPolicyAllowsAnyRole(t *testing.T) {
	for _, principal := range []*authDomain.Principal{userPrincipal(), adminPrincipal()} {
		t.Run(string(principal.Role), func(t *testing.T) {
			logger := createTestLogger()

			router := gin.New()
			router.Use(func(c *gin.Context) {
				c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), principal))
				c.Next()
			})
			router.Use(AuthorizationMiddleware(authDomain.AnyAuthenticated(), logger))
			router.GET("/test", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"message": "success"})
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestAuthorizationMiddleware_Success_RoleInPolicy(t *testing.T) {
	logger := createTestLogger()

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), adminPrincipal()))
		c.Next()
	})
	router.Use(AuthorizationMiddleware(authDomain.RequireRoles(authDomain.RoleAdmin), logger))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthorizationMiddleware_Error_InsufficientRole(t *testing.T) {
	logger := createTestLogger()

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), userPrincipal()))
		c.Next()
	})
	router.Use(AuthorizationMiddleware(authDomain.RequireRoles(authDomain.RoleAdmin), logger))
	router.GET("/test", func(c *gin.Context) {
		t.Fatal("handler should not be called for insufficient role")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var response httputil.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "insufficient_role", response.Error)
}

func TestAuthorizationMiddleware_Error_NoPrincipalInContext(t *testing.T) {
	logger := createTestLogger()

	// Authorization without prior authentication rejects as unauthenticated,
	// not as a role failure.
	router := gin.New()
	router.Use(AuthorizationMiddleware(authDomain.RequireRoles(authDomain.RoleAdmin), logger))
	router.GET("/test", func(c *gin.Context) {
		t.Fatal("handler should not be called")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGuard_OrderingAuthenticationBeforeAuthorization(t *testing.T) {
	mockUC := &mockAuthUseCase{}
	logger := createTestLogger()

	// With no token at all, the chain must fail at authentication with 401
	// token_missing; the role check never gets a chance to emit 403.
	router := gin.New()
	router.GET("/admin",
		append(Guard(authDomain.RequireRoles(authDomain.RoleAdmin), mockUC, logger),
			func(c *gin.Context) {
				t.Fatal("handler should not be called")
			})...)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response httputil.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "token_missing", response.Error)

	mockUC.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
}

func TestGuard_AuthenticatedButForbidden(t *testing.T) {
	mockUC := &mockAuthUseCase{}
	logger := createTestLogger()

	mockUC.On("Authenticate", mock.Anything, "user-token").Return(userPrincipal(), nil).Once()

	router := gin.New()
	router.GET("/admin",
		append(Guard(authDomain.RequireRoles(authDomain.RoleAdmin), mockUC, logger),
			func(c *gin.Context) {
				t.Fatal("handler should not be called")
			})...)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var response httputil.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "insufficient_role", response.Error)
	mockUC.AssertExpectations(t)
}

func TestGuard_AuthenticatedAndAllowed(t *testing.T) {
	mockUC := &mockAuthUseCase{}
	logger := createTestLogger()

	mockUC.On("Authenticate", mock.Anything, "admin-token").Return(adminPrincipal(), nil).Once()

	router := gin.New()
	router.GET("/admin",
		append(Guard(authDomain.RequireRoles(authDomain.RoleAdmin), mockUC, logger),
			func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"message": "success"})
			})...)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUC.AssertExpectations(t)
}
