package service

import (
	"time"

	authDomain "github.com/tableside/tableside/internal/auth/domain"
)

// PasswordService hashes and verifies user passwords.
type PasswordService interface {
	// Hash derives a salted hash from a plaintext password. A fresh salt is
	// used on every call, so the same plaintext yields a different hash.
	Hash(plaintext string) (string, error)

	// Compare checks a plaintext password against a stored hash in constant
	// time. A malformed hash yields false, never an allow.
	Compare(plaintext string, hashed string) bool
}

// TokenService issues and verifies signed access tokens.
type TokenService interface {
	// Issue signs a time-bounded token carrying the principal's identity and
	// role. Claims are frozen at issuance: later role changes do not affect
	// tokens already in circulation until they expire.
	Issue(principal *authDomain.Principal) (token string, expiresAt time.Time, err error)

	// Verify checks the token's signature and expiry and rebuilds the
	// Principal from the embedded claims. No directory lookup is performed;
	// the token is self-contained for its TTL window.
	Verify(token string) (*authDomain.Principal, error)
}
