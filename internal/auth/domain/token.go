package domain

import "time"

// IssuedToken is the outcome of a successful login or registration: the
// signed bearer token and its expiry.
type IssuedToken struct {
	AccessToken string
	ExpiresAt   time.Time
}
