// Package service provides authentication services: password hashing and
// access token issuance/verification.
package service

import (
	"github.com/allisson/go-pwdhash"

	apperrors "github.com/tableside/tableside/internal/errors"
)

// passwordService implements PasswordService using Argon2id.
type passwordService struct {
	hasher *pwdhash.PasswordHasher
}

// Hash hashes a plaintext password using Argon2id with a fresh salt.
func (s *passwordService) Hash(plaintext string) (string, error) {
	hashed, err := s.hasher.Hash([]byte(plaintext))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hashed, nil
}

// Compare performs a constant-time comparison between a plaintext password
// and its hash. Any error, including a malformed hash, yields false.
func (s *passwordService) Compare(plaintext string, hashed string) bool {
	ok, err := s.hasher.Verify([]byte(plaintext), hashed)
	if err != nil {
		return false
	}
	return ok
}

// NewPasswordService creates a PasswordService using Argon2id hashing.
// Uses the Interactive policy: deliberately expensive, tuned for login flows.
func NewPasswordService() PasswordService {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyInteractive),
	)
	if err != nil {
		// This should never happen with a valid built-in policy
		panic(err)
	}

	return &passwordService{
		hasher: hasher,
	}
}
