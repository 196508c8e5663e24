package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/tableside/tableside/internal/auth/domain"
	authUseCase "github.com/tableside/tableside/internal/auth/usecase"
	apperrors "github.com/tableside/tableside/internal/errors"
	"github.com/tableside/tableside/internal/httputil"
)

// AuthenticationMiddleware authenticates requests via a Bearer token in the
// Authorization header.
//
// The middleware:
//  1. Extracts the Bearer token (case-insensitive scheme)
//  2. Verifies signature and expiry via the auth use case
//  3. Stores the resolved Principal in the request context
//
// Error handling:
//   - Missing/empty Authorization header → 401 token_missing
//   - Header without a Bearer token → 401 token_missing
//   - Structural or signature failure → 401 token_malformed
//   - Token past its expiry → 401 token_expired
//
// On any rejection the chain is aborted; the authorization middleware and
// the handler never run.
func AuthenticationMiddleware(
	authUC authUseCase.UseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			logger.Debug("authentication failed: no bearer token presented")
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		principal, err := authUC.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.Debug("authentication failed",
				slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithPrincipal(c.Request.Context(), principal)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("subject_id", principal.ID.String()),
			slog.String("role", string(principal.Role)))

		c.Next()
	}
}

// AuthorizationMiddleware enforces the route's role policy. It MUST run
// after AuthenticationMiddleware: it has no defined behavior for an absent
// Principal and treats that case as an unauthenticated request.
//
// An empty policy admits any authenticated principal. Otherwise the
// principal's role must be in the policy's allowed set, or the request is
// rejected with 403 insufficient_role.
func AuthorizationMiddleware(
	policy authDomain.RouteAuthPolicy,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c.Request.Context())
		if !ok || principal == nil {
			logger.Debug("authorization failed: no authenticated principal in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if !policy.Allows(principal.Role) {
			logger.Debug("authorization failed: insufficient role",
				slog.String("subject_id", principal.ID.String()),
				slog.String("role", string(principal.Role)),
				slog.String("path", c.Request.URL.Path))
			httputil.HandleErrorGin(c, authDomain.ErrInsufficientRole, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}

// Guard returns the ordered middleware chain for a protected route:
// authentication, then authorization. The ordering is an invariant of the
// pipeline, and each stage aborts the chain on its first rejection with
// that rejection's specific kind.
func Guard(
	policy authDomain.RouteAuthPolicy,
	authUC authUseCase.UseCase,
	logger *slog.Logger,
) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		AuthenticationMiddleware(authUC, logger),
		AuthorizationMiddleware(policy, logger),
	}
}

// extractBearerToken pulls the token out of an Authorization header value.
// An absent header, a non-Bearer scheme and an empty token all count as
// "no token presented".
func extractBearerToken(header string) (string, error) {
	if header == "" {
		return "", authDomain.ErrTokenMissing
	}

	const bearerPrefix = "bearer "
	if len(header) < len(bearerPrefix) ||
		!strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", authDomain.ErrTokenMissing
	}

	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		return "", authDomain.ErrTokenMissing
	}

	return token, nil
}
