// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	authDomain "github.com/tableside/tableside/internal/auth/domain"
)

// TokenResponse contains the result of a successful login or registration.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// MapIssuedTokenToResponse converts an issued token to an API response.
func MapIssuedTokenToResponse(token *authDomain.IssuedToken) TokenResponse {
	return TokenResponse{
		AccessToken: token.AccessToken,
		ExpiresAt:   token.ExpiresAt,
	}
}

// PrincipalResponse represents the authenticated caller in API responses.
type PrincipalResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// MapPrincipalToResponse converts a domain principal to an API response.
func MapPrincipalToResponse(principal *authDomain.Principal) PrincipalResponse {
	return PrincipalResponse{
		ID:    principal.ID.String(),
		Email: principal.Email,
		Role:  string(principal.Role),
	}
}
