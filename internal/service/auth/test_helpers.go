package auth

import (
	"context"
	"testing"
	"time"

	"github.com/n0secutiry/taskapi/internal/config"
	"github.com/stretchr/testify/require"
)

// TestSecret is a signing key long enough to pass validation.
const TestSecret = "test-secret-that-is-long-enough-for-testing"

// DefaultTestAuthConfig returns auth settings suitable for tests.
func DefaultTestAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		SecretKey:            TestSecret,
		Algorithm:            "HS256",
		TokenLifetimeMinutes: 60,
		BCryptCost:           4,
	}
}

// NewTestTokenService creates a TokenService with a fixed signing key,
// lifetime and clock. It panics on invalid input since callers are tests.
func NewTestTokenService(secret string, lifetime time.Duration, timeFunc func() time.Time) TokenService {
	cfg := DefaultTestAuthConfig()
	cfg.SecretKey = secret
	cfg.TokenLifetimeMinutes = int(lifetime / time.Minute)
	if timeFunc == nil {
		timeFunc = time.Now
	}
	svc, err := newHMACTokenService(cfg, timeFunc)
	if err != nil {
		// ALLOW-PANIC
		panic(err)
	}
	return svc
}

// RequireTestTokenService creates a token service from DefaultTestAuthConfig.
func RequireTestTokenService(t *testing.T) TokenService {
	t.Helper()
	svc, err := NewTokenService(DefaultTestAuthConfig())
	require.NoError(t, err, "Failed to create test token service")
	return svc
}

// AuthHeaderForTesting issues a token for subject and returns it with the
// Bearer prefix.
func AuthHeaderForTesting(t *testing.T, svc TokenService, subject string) string {
	t.Helper()
	token, err := svc.Issue(context.Background(), subject)
	require.NoError(t, err, "Failed to issue test token")
	return "Bearer " + token
}
