package auth

import (
	"context"
	"time"
)

// TokenService issues and validates signed bearer tokens.
type TokenService interface {
	// Issue creates a signed token whose subject is the given identity.
	Issue(ctx context.Context, subject string) (string, error)

	// Validate checks signature, algorithm and expiry and returns the claims.
	// Any failure returns ErrInvalidToken.
	Validate(ctx context.Context, token string) (*Claims, error)
}

// Claims is the validated content of a token.
type Claims struct {
	Subject   string    `json:"sub"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
	ID        string    `json:"jti"`
}
