package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssue(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tokenLifetime := 30 * time.Minute

	svc := NewTestTokenService(TestSecret, tokenLifetime, func() time.Time {
		return fixedTime
	})

	token, err := svc.Issue(context.Background(), "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, "user@example.com", claims.Subject)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(tokenLifetime).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)

	other, err := svc.Issue(context.Background(), "user@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, token, other, "each token carries a unique jti")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tokenLifetime := 60 * time.Minute
	wrongSecret := "wrong-secret-that-is-long-enough-for-testing"
	at := func(ts time.Time) func() time.Time { return func() time.Time { return ts } }

	tests := []struct {
		name      string
		setupFunc func() (TokenService, string)
		wantErr   error
	}{
		{
			name: "valid token",
			setupFunc: func() (TokenService, string) {
				svc := NewTestTokenService(TestSecret, tokenLifetime, at(fixedTime))
				token, _ := svc.Issue(context.Background(), "a@example.com")
				return svc, token
			},
		},
		{
			name: "within clock skew after expiry",
			setupFunc: func() (TokenService, string) {
				gen := NewTestTokenService(TestSecret, tokenLifetime, at(fixedTime))
				token, _ := gen.Issue(context.Background(), "a@example.com")
				val := NewTestTokenService(TestSecret, tokenLifetime, at(fixedTime.Add(tokenLifetime+10*time.Second)))
				return val, token
			},
		},
		{
			name: "expired token",
			setupFunc: func() (TokenService, string) {
				gen := NewTestTokenService(TestSecret, tokenLifetime, at(fixedTime))
				token, _ := gen.Issue(context.Background(), "a@example.com")
				val := NewTestTokenService(TestSecret, tokenLifetime, at(fixedTime.Add(2*tokenLifetime)))
				return val, token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "invalid signature",
			setupFunc: func() (TokenService, string) {
				gen := NewTestTokenService(TestSecret, tokenLifetime, at(fixedTime))
				token, _ := gen.Issue(context.Background(), "a@example.com")
				val := NewTestTokenService(wrongSecret, tokenLifetime, at(fixedTime))
				return val, token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "malformed token",
			setupFunc: func() (TokenService, string) {
				return NewTestTokenService(TestSecret, tokenLifetime, at(fixedTime)), "not-a-jwt"
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "empty token",
			setupFunc: func() (TokenService, string) {
				return NewTestTokenService(TestSecret, tokenLifetime, at(fixedTime)), ""
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "tampered payload",
			setupFunc: func() (TokenService, string) {
				svc := NewTestTokenService(TestSecret, tokenLifetime, at(fixedTime))
				token, _ := svc.Issue(context.Background(), "a@example.com")
				other, _ := svc.Issue(context.Background(), "b@example.com")
				p1 := strings.Split(token, ".")
				p2 := strings.Split(other, ".")
				return svc, p1[0] + "." + p2[1] + "." + p1[2]
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "algorithm none",
			setupFunc: func() (TokenService, string) {
				claims := jwt.RegisteredClaims{
					Subject:   "a@example.com",
					ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
				}
				token, _ := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
					SignedString(jwt.UnsafeAllowNoneSignatureType)
				return NewTestTokenService(TestSecret, tokenLifetime, at(fixedTime)), token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "different HMAC algorithm",
			setupFunc: func() (TokenService, string) {
				claims := jwt.RegisteredClaims{
					Subject:   "a@example.com",
					ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
				}
				token, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(TestSecret))
				return NewTestTokenService(TestSecret, tokenLifetime, at(fixedTime)), token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "missing subject",
			setupFunc: func() (TokenService, string) {
				claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour))}
				token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(TestSecret))
				return NewTestTokenService(TestSecret, tokenLifetime, at(fixedTime)), token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "missing expiry",
			setupFunc: func() (TokenService, string) {
				claims := jwt.RegisteredClaims{Subject: "a@example.com"}
				token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(TestSecret))
				return NewTestTokenService(TestSecret, tokenLifetime, at(fixedTime)), token
			},
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, token := tt.setupFunc()
			claims, err := svc.Validate(context.Background(), token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "a@example.com", claims.Subject)
		})
	}
}

func TestNewTokenService(t *testing.T) {
	t.Parallel()

	cfg := DefaultTestAuthConfig()
	_, err := NewTokenService(cfg)
	require.NoError(t, err)

	short := cfg
	short.SecretKey = "too-short"
	_, err = NewTokenService(short)
	assert.Error(t, err)

	rsa := cfg
	rsa.Algorithm = "RS256"
	_, err = NewTokenService(rsa)
	assert.Error(t, err)

	zero := cfg
	zero.TokenLifetimeMinutes = 0
	_, err = NewTokenService(zero)
	assert.Error(t, err)

	for _, alg := range []string{"HS256", "HS384", "HS512"} {
		c := cfg
		c.Algorithm = alg
		svc, err := NewTokenService(c)
		require.NoError(t, err, alg)
		token, err := svc.Issue(context.Background(), "a@example.com")
		require.NoError(t, err, alg)
		_, err = svc.Validate(context.Background(), token)
		assert.NoError(t, err, alg)
	}
}
