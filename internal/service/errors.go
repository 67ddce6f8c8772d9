package service

import (
	"fmt"

	"github.com/n0secutiry/taskapi/internal/domain"
)

// Sentinel errors returned by the authentication flow. The messages are
// safe to show to clients.
var (
	// ErrUserAlreadyExists is returned by Register when the email is taken.
	ErrUserAlreadyExists = fmt.Errorf("%w: User already registered", domain.ErrConflict)

	// ErrIncorrectUsername is returned by Login when no user has the email.
	ErrIncorrectUsername = fmt.Errorf("%w: Incorrect username", domain.ErrUnauthorized)

	// ErrIncorrectPassword is returned by Login when the password does not match.
	ErrIncorrectPassword = fmt.Errorf("%w: Incorrect password", domain.ErrUnauthorized)

	// ErrInvalidCredentials is returned by ResolveCurrentUser for any token
	// that cannot be turned into an existing user.
	ErrInvalidCredentials = fmt.Errorf("%w: Could not validate credentials", domain.ErrUnauthorized)
)
