package domain

import (
	"github.com/tableside/tableside/internal/errors"
)

// Authentication and authorization errors. Each wraps a base sentinel so
// handlers can map the whole family to a status code while middleware and
// logs keep the specific kind.
var (
	// ErrInvalidCredentials indicates the email/password pair did not match a
	// stored credential. Unknown email and wrong password are deliberately
	// indistinguishable to prevent account enumeration.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrTokenMissing indicates no token was presented where one is required.
	ErrTokenMissing = errors.Wrap(errors.ErrUnauthorized, "token missing")

	// ErrTokenMalformed indicates the token failed the structural or
	// signature check. The two cases are not distinguished to avoid giving
	// an attacker a signature oracle.
	ErrTokenMalformed = errors.Wrap(errors.ErrUnauthorized, "token malformed")

	// ErrTokenExpired indicates the token is past its expiry claim.
	ErrTokenExpired = errors.Wrap(errors.ErrUnauthorized, "token expired")

	// ErrInsufficientRole indicates an authenticated principal whose role is
	// not in the route's allowed set.
	ErrInsufficientRole = errors.Wrap(errors.ErrForbidden, "insufficient role")

	// ErrUnknownRole indicates a role value outside the known enumeration.
	ErrUnknownRole = errors.Wrap(errors.ErrInvalidInput, "unknown role")
)
