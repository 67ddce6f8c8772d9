package mocks

import (
	"context"
	"time"

	"github.com/n0secutiry/taskapi/internal/service/auth"
)

// MockTokenService implements auth.TokenService for testing. The default
// token for a subject is "token-for:<subject>".
type MockTokenService struct {
	IssueFn    func(ctx context.Context, subject string) (string, error)
	ValidateFn func(ctx context.Context, token string) (*auth.Claims, error)
}

const mockTokenPrefix = "token-for:"

// Issue implements auth.TokenService.
func (m *MockTokenService) Issue(ctx context.Context, subject string) (string, error) {
	if m.IssueFn != nil {
		return m.IssueFn(ctx, subject)
	}
	return mockTokenPrefix + subject, nil
}

// Validate implements auth.TokenService.
func (m *MockTokenService) Validate(ctx context.Context, token string) (*auth.Claims, error) {
	if m.ValidateFn != nil {
		return m.ValidateFn(ctx, token)
	}
	if len(token) <= len(mockTokenPrefix) || token[:len(mockTokenPrefix)] != mockTokenPrefix {
		return nil, auth.ErrInvalidToken
	}
	now := time.Now()
	return &auth.Claims{
		Subject:   token[len(mockTokenPrefix):],
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}, nil
}
