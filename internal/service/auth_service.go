package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/n0secutiry/taskapi/internal/domain"
	"github.com/n0secutiry/taskapi/internal/job"
	"github.com/n0secutiry/taskapi/internal/platform/logger"
	"github.com/n0secutiry/taskapi/internal/redact"
	"github.com/n0secutiry/taskapi/internal/service/auth"
)

// AuthService implements registration, login and bearer-token resolution.
type AuthService interface {
	// Register creates a user and schedules the welcome email.
	//
	// Returns ErrUserAlreadyExists if the email is taken, or a
	// domain.ErrValidation error for a malformed email or password.
	// A failure to schedule the email is logged and does not fail the call.
	Register(ctx context.Context, email, password string) (*domain.User, error)

	// Login verifies the credentials and issues a token whose subject is
	// the email. Returns ErrIncorrectUsername or ErrIncorrectPassword.
	Login(ctx context.Context, email, password string) (string, error)

	// ResolveCurrentUser maps a bearer token to its user. Every failure
	// returns ErrInvalidCredentials.
	ResolveCurrentUser(ctx context.Context, token string) (*domain.User, error)
}

type authService struct {
	users     UserDirectory
	hasher    auth.PasswordHasher
	tokens    auth.TokenService
	submitter job.Submitter
	mailer    job.Mailer
	logger    *slog.Logger
}

// Ensure authService implements AuthService interface
var _ AuthService = (*authService)(nil)

// NewAuthService creates an AuthService. mailer is bound to the welcome
// jobs handed to submitter; queues that serialize jobs rebind it on the
// consumer side.
func NewAuthService(
	users UserDirectory,
	hasher auth.PasswordHasher,
	tokens auth.TokenService,
	submitter job.Submitter,
	mailer job.Mailer,
	logger *slog.Logger,
) AuthService {
	if users == nil {
		panic("users cannot be nil")
	}
	if hasher == nil {
		panic("hasher cannot be nil")
	}
	if tokens == nil {
		panic("tokens cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if submitter == nil {
		submitter = job.NewNoopSubmitter(logger)
	}
	return &authService{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		submitter: submitter,
		mailer:    mailer,
		logger:    logger.With(slog.String("component", "auth_service")),
	}
}

// Register implements AuthService.
func (s *authService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(password); err != nil {
		return nil, err
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		log.Debug("registration rejected, email already registered")
		return nil, ErrUserAlreadyExists
	}

	user, err := s.users.Create(ctx, email, password)
	if err != nil {
		return nil, err
	}

	welcome := job.NewWelcomeEmailJob(user.Email, s.mailer)
	if err := s.submitter.Submit(ctx, welcome); err != nil {
		log.Warn("failed to schedule welcome email",
			slog.Int64("user_id", user.ID),
			slog.String("job_id", welcome.ID().String()),
			slog.String("error", redact.Error(err)))
	}

	return user, nil
}

// Login implements AuthService.
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		log.Debug("login rejected, unknown email")
		return "", ErrIncorrectUsername
	}

	if !s.hasher.Verify(password, user.HashedPassword) {
		log.Debug("login rejected, password mismatch", slog.Int64("user_id", user.ID))
		return "", ErrIncorrectPassword
	}

	token, err := s.tokens.Issue(ctx, user.Email)
	if err != nil {
		log.Error("failed to issue token",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	log.Info("user logged in", slog.Int64("user_id", user.ID))
	return token, nil
}

// ResolveCurrentUser implements AuthService.
func (s *authService) ResolveCurrentUser(ctx context.Context, token string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	claims, err := s.tokens.Validate(ctx, token)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidToken) {
			log.Error("unexpected token validation error", slog.String("error", redact.Error(err)))
		}
		return nil, ErrInvalidCredentials
	}
	if claims.Subject == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve current user: %w", err)
	}
	if user == nil {
		log.Debug("token subject no longer exists")
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
