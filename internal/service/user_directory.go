package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/n0secutiry/taskapi/internal/domain"
	"github.com/n0secutiry/taskapi/internal/platform/logger"
	"github.com/n0secutiry/taskapi/internal/service/auth"
	"github.com/n0secutiry/taskapi/internal/store"
)

// UserDirectory looks up and creates users.
type UserDirectory interface {
	// FindByEmail returns the user with exactly this email, or (nil, nil)
	// when there is none.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// Create hashes plaintext and persists a new user inside a transaction.
	// Returns ErrUserAlreadyExists when the email is already taken.
	Create(ctx context.Context, email, plaintext string) (*domain.User, error)
}

type userDirectory struct {
	users  store.UserStore
	hasher auth.PasswordHasher
	tx     store.Transactor
	logger *slog.Logger
}

// Ensure userDirectory implements UserDirectory interface
var _ UserDirectory = (*userDirectory)(nil)

// NewUserDirectory creates a UserDirectory.
func NewUserDirectory(
	users store.UserStore,
	hasher auth.PasswordHasher,
	tx store.Transactor,
	logger *slog.Logger,
) UserDirectory {
	if users == nil {
		panic("users cannot be nil")
	}
	if hasher == nil {
		panic("hasher cannot be nil")
	}
	if tx == nil {
		panic("tx cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &userDirectory{
		users:  users,
		hasher: hasher,
		tx:     tx,
		logger: logger.With(slog.String("component", "user_directory")),
	}
}

// FindByEmail implements UserDirectory.
func (d *userDirectory) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := d.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, nil
		}
		logger.FromContextOrDefault(ctx, d.logger).Error("failed to look up user by email",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return user, nil
}

// Create implements UserDirectory.
func (d *userDirectory) Create(ctx context.Context, email, plaintext string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, d.logger)

	if err := domain.ValidatePassword(plaintext); err != nil {
		return nil, err
	}

	hashed, err := d.hasher.Hash(plaintext)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user, err := domain.NewUser(email, hashed)
	if err != nil {
		return nil, err
	}

	err = d.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return d.users.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("email already registered")
			return nil, ErrUserAlreadyExists
		}
		log.Error("failed to save user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info("user created", slog.Int64("user_id", user.ID))
	return user, nil
}
