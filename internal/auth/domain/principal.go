// Package domain defines the authentication and authorization domain models.
//
// Authentication resolves a request to a Principal, either from an
// email/password login or from a signed access token. Authorization compares
// the Principal's role against the route's declared policy.
package domain

import (
	"github.com/google/uuid"
)

// Role identifies the access level of a principal. Roles are a fixed, flat
// enumeration, not hierarchical.
type Role string

const (
	// RoleAdmin grants access to management routes (user administration,
	// restaurant and menu writes).
	RoleAdmin Role = "admin"

	// RoleUser grants access to read routes and the principal's own profile.
	RoleUser Role = "user"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// ParseRole converts a string into a Role. Unknown values yield
// ErrUnknownRole so a tampered or stale claim never maps to a valid role.
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.Valid() {
		return "", ErrUnknownRole
	}
	return role, nil
}

// Principal is the authenticated identity attached to a request. It is
// constructed by the login flow or rebuilt from token claims, never mutated
// afterwards, and carries no secret material.
type Principal struct {
	ID    uuid.UUID
	Email string
	Role  Role
}
