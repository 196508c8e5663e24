package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tableside/tableside/internal/app"
	authDomain "github.com/tableside/tableside/internal/auth/domain"
	"github.com/tableside/tableside/internal/config"
	userUseCase "github.com/tableside/tableside/internal/user/usecase"
)

// RunCreateUser creates an account directly in the directory, bypassing the
// API. Self-registration only produces user-role accounts, so this is how
// the first admin gets seeded.
func RunCreateUser(ctx context.Context, email, password, roleStr string) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)
	logger := container.Logger()
	defer closeContainer(container, logger)

	role, err := authDomain.ParseRole(roleStr)
	if err != nil {
		return fmt.Errorf("invalid role %q: role must be admin or user", roleStr)
	}

	userUC, err := container.UserUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize user use case: %w", err)
	}

	user, err := userUC.Create(ctx, userUseCase.CreateUserInput{
		Email:    email,
		Password: password,
		Role:     role,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("user created",
		slog.String("id", user.ID.String()),
		slog.String("email", user.Email),
		slog.String("role", string(user.Role)),
	)

	return nil
}
