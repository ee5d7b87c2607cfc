package domain

import "time"

// Identity is the authenticated caller as asserted by the session provider.
type Identity struct {
	UserID string
	Email  string
	Name   string
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(id Identity, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the identity it was issued for.
type TokenVerifier interface {
	Verify(token string) (Identity, error)
}
