// Package dto provides data transfer objects for the user HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	authDomain "github.com/tableside/tableside/internal/auth/domain"
	appValidation "github.com/tableside/tableside/internal/validation"
)

// CreateUserRequest represents the API request for creating a user.
// Unlike self-registration this is an admin operation and may assign any role.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate validates the CreateUserRequest.
func (r *CreateUserRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(6, 128).Error("password must be between 6 and 128 characters"),
			appValidation.PasswordStrength{
				MinLength:     6,
				RequireLower:  true,
				RequireNumber: true,
			},
		),
		validation.Field(&r.Role,
			validation.Required.Error("role is required"),
			validation.In(string(authDomain.RoleAdmin), string(authDomain.RoleUser)).
				Error("role must be admin or user"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// UpdateUserRequest represents the API request for updating a user.
// An empty password leaves the stored credential unchanged.
type UpdateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate validates the UpdateUserRequest.
func (r *UpdateUserRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&r.Password,
			validation.Length(6, 128).Error("password must be between 6 and 128 characters"),
		),
		validation.Field(&r.Role,
			validation.Required.Error("role is required"),
			validation.In(string(authDomain.RoleAdmin), string(authDomain.RoleUser)).
				Error("role must be admin or user"),
		),
	)
	return appValidation.WrapValidationError(err)
}
