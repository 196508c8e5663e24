// Package dto provides data transfer objects for the user HTTP layer.
package dto

import (
	authDomain "github.com/tableside/tableside/internal/auth/domain"
	"github.com/tableside/tableside/internal/user/domain"
	"github.com/tableside/tableside/internal/user/usecase"
)

// ToCreateUserInput converts a CreateUserRequest DTO to a use case input.
func ToCreateUserInput(req CreateUserRequest) usecase.CreateUserInput {
	return usecase.CreateUserInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     authDomain.Role(req.Role),
	}
}

// ToUpdateUserInput converts an UpdateUserRequest DTO to a use case input.
func ToUpdateUserInput(req UpdateUserRequest) usecase.UpdateUserInput {
	return usecase.UpdateUserInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     authDomain.Role(req.Role),
	}
}

// ToUserResponse converts a domain User model to a UserResponse DTO. This
// enforces the boundary between internal domain models and external API
// contracts.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// ToListUsersResponse converts a slice of domain users to a list API response.
func ToListUsersResponse(users []*domain.User) ListUsersResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, ToUserResponse(user))
	}
	return ListUsersResponse{
		Data: responses,
	}
}
