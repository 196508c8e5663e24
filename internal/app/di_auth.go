package app

import (
	"fmt"

	authService "github.com/tableside/tableside/internal/auth/service"
	authUseCase "github.com/tableside/tableside/internal/auth/usecase"
)

// PasswordService returns the Argon2id password hashing service.
func (c *Container) PasswordService() authService.PasswordService {
	c.passwordServiceInit.Do(func() {
		c.passwordService = authService.NewPasswordService()
	})
	return c.passwordService
}

// TokenService returns the JWT token service.
func (c *Container) TokenService() (authService.TokenService, error) {
	c.tokenServiceInit.Do(func() {
		tokenService, err := authService.NewTokenService(
			c.config.AuthJWTSecret, c.config.AuthTokenExpiration)
		if err != nil {
			c.initErrors["tokenService"] = fmt.Errorf("failed to create token service: %w", err)
			return
		}
		c.tokenService = tokenService
	})
	if storedErr, exists := c.initErrors["tokenService"]; exists {
		return nil, storedErr
	}
	return c.tokenService, nil
}

// AuthUseCase returns the authentication use case. When metrics are enabled
// it is wrapped with the metrics decorator.
func (c *Container) AuthUseCase() (authUseCase.UseCase, error) {
	c.authUseCaseInit.Do(func() {
		useCase, err := c.initAuthUseCase()
		if err != nil {
			c.initErrors["authUseCase"] = err
			return
		}
		c.authUseCase = useCase
	})
	if storedErr, exists := c.initErrors["authUseCase"]; exists {
		return nil, storedErr
	}
	return c.authUseCase, nil
}

// initAuthUseCase creates the auth use case with all its dependencies. The
// user use case doubles as the directory and registrar behind authentication.
func (c *Container) initAuthUseCase() (authUseCase.UseCase, error) {
	userUC, err := c.UserUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get user use case for auth use case: %w", err)
	}

	tokenService, err := c.TokenService()
	if err != nil {
		return nil, fmt.Errorf("failed to get token service for auth use case: %w", err)
	}

	useCase := authUseCase.NewAuthUseCase(userUC, userUC, c.PasswordService(), tokenService)

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for auth use case: %w", err)
	}

	if c.config.MetricsEnabled {
		useCase = authUseCase.NewUseCaseWithMetrics(useCase, businessMetrics)
	}

	return useCase, nil
}
