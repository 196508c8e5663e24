package usecase

import (
	"context"
	"time"

	authDomain "github.com/tableside/tableside/internal/auth/domain"
	"github.com/tableside/tableside/internal/metrics"
)

// useCaseWithMetrics decorates the auth UseCase with metrics instrumentation.
type useCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewUseCaseWithMetrics wraps an auth UseCase with metrics recording.
func NewUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &useCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Login records metrics for login attempts.
func (u *useCaseWithMetrics) Login(ctx context.Context, input LoginInput) (*authDomain.IssuedToken, error) {
	start := time.Now()
	output, err := u.next.Login(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "auth", "login", status)
	u.metrics.RecordDuration(ctx, "auth", "login", time.Since(start), status)

	return output, err
}

// Register records metrics for registration attempts.
func (u *useCaseWithMetrics) Register(ctx context.Context, input RegisterInput) (*authDomain.IssuedToken, error) {
	start := time.Now()
	output, err := u.next.Register(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "auth", "register", status)
	u.metrics.RecordDuration(ctx, "auth", "register", time.Since(start), status)

	return output, err
}

// Authenticate records metrics for token verification.
func (u *useCaseWithMetrics) Authenticate(ctx context.Context, token string) (*authDomain.Principal, error) {
	start := time.Now()
	principal, err := u.next.Authenticate(ctx, token)

	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "auth", "authenticate", status)
	u.metrics.RecordDuration(ctx, "auth", "authenticate", time.Since(start), status)

	return principal, err
}
