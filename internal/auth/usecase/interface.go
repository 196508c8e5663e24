package usecase

import (
	"context"

	authDomain "github.com/tableside/tableside/internal/auth/domain"
	userDomain "github.com/tableside/tableside/internal/user/domain"
	userUsecase "github.com/tableside/tableside/internal/user/usecase"
)

// UseCase defines the authentication operations exposed to handlers and
// middleware.
type UseCase interface {
	// Login verifies an email/password pair and issues an access token for
	// the matching principal.
	Login(ctx context.Context, input LoginInput) (*authDomain.IssuedToken, error)

	// Register creates a new account with the user role and immediately
	// issues an access token for it.
	Register(ctx context.Context, input RegisterInput) (*authDomain.IssuedToken, error)

	// Authenticate verifies a presented token and returns the Principal
	// embedded in its claims. Pure token verification; no directory lookup.
	// The context only scopes instrumentation, verification itself never
	// blocks.
	Authenticate(ctx context.Context, token string) (*authDomain.Principal, error)
}

// UserDirectory is the read-only view of stored credentials consumed by the
// login flow. The user module owns writes.
type UserDirectory interface {
	GetByEmail(ctx context.Context, email string) (*userDomain.User, error)
}

// UserRegistrar creates accounts during self-registration.
type UserRegistrar interface {
	Create(ctx context.Context, input userUsecase.CreateUserInput) (*userDomain.User, error)
}
