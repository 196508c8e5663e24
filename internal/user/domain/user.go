// Package domain defines the core user domain entities.
package domain

import (
	"time"

	"github.com/google/uuid"

	authDomain "github.com/tableside/tableside/internal/auth/domain"
	"github.com/tableside/tableside/internal/errors"
)

// User represents a stored account. Email is unique and case-normalized;
// Password holds the Argon2id hash, never plaintext. The user directory owns
// writes; the auth core only reads.
type User struct {
	ID        uuid.UUID
	Email     string
	Password  string
	Role      authDomain.Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Principal builds the authenticated identity from the stored record with
// the secret field stripped.
func (u *User) Principal() *authDomain.Principal {
	return &authDomain.Principal{
		ID:    u.ID,
		Email: u.Email,
		Role:  u.Role,
	}
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same email already exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")
)
