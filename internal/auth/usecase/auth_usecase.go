// Package usecase implements the authentication business logic: credential
// verification, token issuance on login and registration, and token
// verification for already-issued tokens.
package usecase

import (
	"context"
	"errors"

	authDomain "github.com/tableside/tableside/internal/auth/domain"
	authService "github.com/tableside/tableside/internal/auth/service"
	userDomain "github.com/tableside/tableside/internal/user/domain"
	userUsecase "github.com/tableside/tableside/internal/user/usecase"
)

// LoginInput contains the submitted credentials.
type LoginInput struct {
	Email    string
	Password string
}

// RegisterInput contains the self-registration data. The role is never
// caller-controlled: registration always creates a user-role account.
type RegisterInput struct {
	Email    string
	Password string
}

// authUseCase implements UseCase.
type authUseCase struct {
	userDirectory   UserDirectory
	userRegistrar   UserRegistrar
	passwordService authService.PasswordService
	tokenService    authService.TokenService
}

// Login verifies the submitted credentials against the directory.
//
// An unknown email and a wrong password both return ErrInvalidCredentials:
// the caller cannot tell whether the account exists. On success the token is
// issued from a Principal built off the directory record with the password
// hash stripped.
func (a *authUseCase) Login(ctx context.Context, input LoginInput) (*authDomain.IssuedToken, error) {
	user, err := a.userDirectory.GetByEmail(ctx, userUsecase.NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, userDomain.ErrUserNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !a.passwordService.Compare(input.Password, user.Password) {
		return nil, authDomain.ErrInvalidCredentials
	}

	return a.issueFor(user)
}

// Register creates the account through the user directory and issues a token
// for it, so a fresh registration is immediately logged in.
func (a *authUseCase) Register(ctx context.Context, input RegisterInput) (*authDomain.IssuedToken, error) {
	user, err := a.userRegistrar.Create(ctx, userUsecase.CreateUserInput{
		Email:    input.Email,
		Password: input.Password,
		Role:     authDomain.RoleUser,
	})
	if err != nil {
		return nil, err
	}

	return a.issueFor(user)
}

// Authenticate delegates to the token service. The token carries everything
// needed to rebuild the Principal; the directory is not consulted.
func (a *authUseCase) Authenticate(ctx context.Context, token string) (*authDomain.Principal, error) {
	return a.tokenService.Verify(token)
}

func (a *authUseCase) issueFor(user *userDomain.User) (*authDomain.IssuedToken, error) {
	token, expiresAt, err := a.tokenService.Issue(user.Principal())
	if err != nil {
		return nil, err
	}

	return &authDomain.IssuedToken{
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

// NewAuthUseCase creates the authentication use case with its dependencies.
func NewAuthUseCase(
	userDirectory UserDirectory,
	userRegistrar UserRegistrar,
	passwordService authService.PasswordService,
	tokenService authService.TokenService,
) UseCase {
	return &authUseCase{
		userDirectory:   userDirectory,
		userRegistrar:   userRegistrar,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}
