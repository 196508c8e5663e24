// Package usecase implements the user directory business logic.
package usecase

import (
	"context"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	authDomain "github.com/tableside/tableside/internal/auth/domain"
	authService "github.com/tableside/tableside/internal/auth/service"
	"github.com/tableside/tableside/internal/database"
	"github.com/tableside/tableside/internal/user/domain"
	appValidation "github.com/tableside/tableside/internal/validation"
)

// CreateUserInput contains the input data for creating a user.
type CreateUserInput struct {
	Email    string
	Password string
	Role     authDomain.Role
}

// UpdateUserInput contains the mutable fields of a user. An empty Password
// leaves the stored hash unchanged.
type UpdateUserInput struct {
	Email    string
	Password string
	Role     authDomain.Role
}

// UseCase defines the interface for user directory operations.
type UseCase interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]*domain.User, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserUseCase handles user directory business logic.
type UserUseCase struct {
	txManager       database.TxManager
	userRepo        UserRepository
	passwordService authService.PasswordService
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	passwordService authService.PasswordService,
) UseCase {
	return &UserUseCase{
		txManager:       txManager,
		userRepo:        userRepo,
		passwordService: passwordService,
	}
}

// validateCreateUserInput validates email format, password rules and role.
func validateCreateUserInput(input CreateUserInput) error {
	err := validation.Errors{
		"email": validation.Validate(input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		"password": validation.Validate(input.Password,
			validation.Required.Error("password is required"),
			validation.Length(6, 128).Error("password must be between 6 and 128 characters"),
			appValidation.PasswordStrength{
				MinLength:     6,
				RequireLower:  true,
				RequireNumber: true,
			},
		),
		"role": validation.Validate(string(input.Role),
			validation.Required.Error("role is required"),
			validation.In(string(authDomain.RoleAdmin), string(authDomain.RoleUser)).
				Error("role must be admin or user"),
		),
	}.Filter()
	return appValidation.WrapValidationError(err)
}

// Create registers a new user with a hashed password and normalized email.
func (uc *UserUseCase) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if input.Role == "" {
		input.Role = authDomain.RoleUser
	}

	if err := validateCreateUserInput(input); err != nil {
		return nil, err
	}

	hashedPassword, err := uc.passwordService.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:       uuid.Must(uuid.NewV7()),
		Email:    NormalizeEmail(input.Email),
		Password: hashedPassword,
		Role:     input.Role,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetByID retrieves a user by ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

// GetByEmail retrieves a user by normalized email.
func (uc *UserUseCase) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return uc.userRepo.GetByEmail(ctx, NormalizeEmail(email))
}

// List retrieves users with pagination.
func (uc *UserUseCase) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	return uc.userRepo.List(ctx, offset, limit)
}

// Update modifies a user's email, role and optionally the password. The
// read and write run in one transaction so concurrent updates don't
// interleave.
func (uc *UserUseCase) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*domain.User, error) {
	if input.Role == "" {
		input.Role = authDomain.RoleUser
	}

	if err := validateUpdateUserInput(input); err != nil {
		return nil, err
	}

	var updated *domain.User
	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		user, err := uc.userRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		user.Email = NormalizeEmail(input.Email)
		user.Role = input.Role

		if input.Password != "" {
			hashedPassword, err := uc.passwordService.Hash(input.Password)
			if err != nil {
				return err
			}
			user.Password = hashedPassword
		}

		if err := uc.userRepo.Update(ctx, user); err != nil {
			return err
		}

		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes a user by ID.
func (uc *UserUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.userRepo.Delete(ctx, id)
}

// validateUpdateUserInput validates update fields; password only when set.
func validateUpdateUserInput(input UpdateUserInput) error {
	rules := validation.Errors{
		"email": validation.Validate(input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		"role": validation.Validate(string(input.Role),
			validation.In(string(authDomain.RoleAdmin), string(authDomain.RoleUser)).
				Error("role must be admin or user"),
		),
	}
	if input.Password != "" {
		rules["password"] = validation.Validate(input.Password,
			validation.Length(6, 128).Error("password must be between 6 and 128 characters"),
		)
	}
	return appValidation.WrapValidationError(rules.Filter())
}

// NormalizeEmail lowercases and trims an email address so lookups and
// uniqueness checks are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
