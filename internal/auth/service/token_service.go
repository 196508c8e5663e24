package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authDomain "github.com/tableside/tableside/internal/auth/domain"
	apperrors "github.com/tableside/tableside/internal/errors"
)

// accessTokenClaims is the wire format of the token payload: a flat mapping
// of {sub, email, role, iat, exp}.
type accessTokenClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// tokenService implements TokenService using HMAC-SHA256 signed JWTs with a
// process-wide symmetric secret loaded once at startup.
type tokenService struct {
	secret []byte
	ttl    time.Duration
}

// Issue builds and signs the claims for the given principal.
func (t *tokenService) Issue(principal *authDomain.Principal) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(t.ttl)

	claims := accessTokenClaims{
		Email: principal.Email,
		Role:  string(principal.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, apperrors.Wrap(err, "failed to sign token")
	}

	return token, expiresAt, nil
}

// Verify parses the token, checks the signature against the shared secret,
// checks expiry, and rebuilds the Principal from the claims.
//
// A structural failure and a signature mismatch both map to ErrTokenMalformed
// so the response never reveals which check failed. Expiry is only reported
// for tokens whose signature verified.
func (t *tokenService) Verify(token string) (*authDomain.Principal, error) {
	parsed, err := jwt.ParseWithClaims(
		token,
		&accessTokenClaims{},
		func(token *jwt.Token) (interface{}, error) {
			return t.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, authDomain.ErrTokenExpired
		}
		return nil, authDomain.ErrTokenMalformed
	}

	claims, ok := parsed.Claims.(*accessTokenClaims)
	if !ok {
		return nil, authDomain.ErrTokenMalformed
	}

	subjectID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, authDomain.ErrTokenMalformed
	}

	role, err := authDomain.ParseRole(claims.Role)
	if err != nil {
		return nil, authDomain.ErrTokenMalformed
	}

	// The role is trusted as-issued for the token's TTL window. A demotion
	// takes effect at re-login or expiry, not before.
	return &authDomain.Principal{
		ID:    subjectID,
		Email: claims.Email,
		Role:  role,
	}, nil
}

// NewTokenService creates a TokenService signing with the given secret.
// An empty secret is a configuration error and is rejected here so the
// process fails at startup instead of on the first request.
func NewTokenService(secret string, ttl time.Duration) (TokenService, error) {
	if secret == "" {
		return nil, apperrors.New("token signing secret cannot be empty")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &tokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}, nil
}
