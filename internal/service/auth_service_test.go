package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/n0secutiry/taskapi/internal/domain"
	"github.com/n0secutiry/taskapi/internal/job"
	"github.com/n0secutiry/taskapi/internal/mocks"
	"github.com/n0secutiry/taskapi/internal/platform/logger"
	"github.com/n0secutiry/taskapi/internal/service"
	"github.com/n0secutiry/taskapi/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	users     *mocks.MockUserStore
	tokens    *mocks.MockTokenService
	submitter *mocks.MockSubmitter
	service   service.AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:     mocks.NewMockUserStore(),
		tokens:    &mocks.MockTokenService{},
		submitter: &mocks.MockSubmitter{},
	}
	hasher := &mocks.MockPasswordHasher{}
	dir := service.NewUserDirectory(f.users, hasher, &mocks.MockTransactor{}, testLogger())
	f.service = service.NewAuthService(dir, hasher, f.tokens, f.submitter, &job.RecordingMailer{}, testLogger())
	return f
}

func TestAuthService_RegisterLoginResolve(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()

	user, err := f.service.Register(ctx, "a@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", user.Email)
	assert.NotZero(t, user.ID)

	token, err := f.service.Login(ctx, "a@example.com", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	current, err := f.service.ResolveCurrentUser(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", current.Email)
	assert.Equal(t, user.ID, current.ID)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("schedules welcome email", func(t *testing.T) {
		f := newAuthFixture()

		_, err := f.service.Register(ctx, "a@example.com", "secret")
		require.NoError(t, err)

		jobs := f.submitter.Jobs()
		require.Len(t, jobs, 1)
		welcome, ok := jobs[0].(*job.WelcomeEmailJob)
		require.True(t, ok)
		assert.Equal(t, "a@example.com", welcome.Email())
	})

	t.Run("duplicate email is a conflict and writes once", func(t *testing.T) {
		f := newAuthFixture()

		_, err := f.service.Register(ctx, "a@example.com", "secret")
		require.NoError(t, err)
		_, err = f.service.Register(ctx, "a@example.com", "other")

		assert.ErrorIs(t, err, service.ErrUserAlreadyExists)
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.Len(t, f.users.Users, 1)
		assert.Equal(t, 1, f.users.CreateCalls)
		assert.Len(t, f.submitter.Jobs(), 1)
	})

	t.Run("submit failure does not fail registration", func(t *testing.T) {
		f := newAuthFixture()
		f.submitter.SubmitFn = func(context.Context, job.Job) error {
			return fmt.Errorf("dial redis://:hunter2@cache:6379: %w", job.ErrQueueFull)
		}
		logCtx, logBuf := logger.NewTestContext(t)

		user, err := f.service.Register(logCtx, "a@example.com", "secret")

		require.NoError(t, err)
		assert.NotNil(t, user)
		logger.AssertLogContains(t, logBuf, "failed to schedule welcome email")
		logger.AssertLogNotContains(t, logBuf, "hunter2")
	})

	t.Run("invalid input", func(t *testing.T) {
		f := newAuthFixture()

		_, err := f.service.Register(ctx, "not-an-email", "secret")
		assert.ErrorIs(t, err, domain.ErrValidation)

		_, err = f.service.Register(ctx, "a@example.com", "")
		assert.ErrorIs(t, err, domain.ErrValidation)

		assert.Empty(t, f.users.Users)
		assert.Empty(t, f.submitter.Jobs())
	})

	t.Run("testify submitter receives welcome job", func(t *testing.T) {
		submitter := new(mocks.TestifyMockSubmitter)
		submitter.On("Submit", mock.Anything, mock.MatchedBy(func(j job.Job) bool {
			return j.Type() == job.TypeWelcomeEmail
		})).Return(nil).Once()

		hasher := &mocks.MockPasswordHasher{}
		dir := service.NewUserDirectory(mocks.NewMockUserStore(), hasher, &mocks.MockTransactor{}, testLogger())
		svc := service.NewAuthService(dir, hasher, &mocks.MockTokenService{}, submitter, nil, testLogger())

		_, err := svc.Register(ctx, "a@example.com", "secret")
		require.NoError(t, err)
		submitter.AssertExpectations(t)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	_, err := f.service.Register(ctx, "a@example.com", "secret")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "unknown email", email: "b@example.com", password: "secret", wantErr: service.ErrIncorrectUsername},
		{name: "wrong password", email: "a@example.com", password: "wrong", wantErr: service.ErrIncorrectPassword},
		{name: "email is case sensitive", email: "A@example.com", password: "secret", wantErr: service.ErrIncorrectUsername},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			token, err := f.service.Login(ctx, tc.email, tc.password)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
			assert.Empty(t, token)
		})
	}

	t.Run("issue failure", func(t *testing.T) {
		f.tokens.IssueFn = func(context.Context, string) (string, error) { return "", errors.New("sign failed") }
		defer func() { f.tokens.IssueFn = nil }()

		_, err := f.service.Login(ctx, "a@example.com", "secret")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestAuthService_ResolveCurrentUser(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	_, err := f.service.Register(ctx, "a@example.com", "secret")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		setup func()
	}{
		{name: "garbage token", token: "garbage"},
		{name: "unknown subject", token: "token-for:ghost@example.com"},
		{
			name:  "empty subject",
			token: "anything",
			setup: func() {
				f.tokens.ValidateFn = func(context.Context, string) (*auth.Claims, error) {
					return &auth.Claims{Subject: ""}, nil
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f.tokens.ValidateFn = nil
			if tc.setup != nil {
				tc.setup()
			}

			user, err := f.service.ResolveCurrentUser(ctx, tc.token)
			assert.ErrorIs(t, err, service.ErrInvalidCredentials)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
			assert.Nil(t, user)
		})
	}
}

func TestAuthService_WithRealTokenService(t *testing.T) {
	ctx := context.Background()
	hasher := auth.NewBcryptHasher(4)
	users := mocks.NewMockUserStore()
	dir := service.NewUserDirectory(users, hasher, &mocks.MockTransactor{}, testLogger())
	svc := service.NewAuthService(dir, hasher, auth.RequireTestTokenService(t), &mocks.MockSubmitter{}, nil, testLogger())

	_, err := svc.Register(ctx, "real@example.com", "correct horse")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "real@example.com", "correct horse")
	require.NoError(t, err)

	user, err := svc.ResolveCurrentUser(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "real@example.com", user.Email)

	_, err = svc.ResolveCurrentUser(ctx, token+"x")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}
