package shared

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/n0secutiry/taskapi/internal/domain"
	"github.com/n0secutiry/taskapi/internal/platform/logger"
)

// Key type for context values
type ContextKey string

// CurrentUserContextKey is the context key for the authenticated *domain.User
const CurrentUserContextKey ContextKey = "currentUser"

// SetTraceID adds a fresh trace ID to the context and to the context logger.
// This is useful for correlating logs and error responses.
func SetTraceID(ctx context.Context) context.Context {
	return logger.WithTraceID(ctx, NewTraceID())
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	return logger.TraceIDFromContext(ctx)
}

// NewTraceID returns a random 32-character hex identifier.
func NewTraceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// WithCurrentUser stores the authenticated user in the context.
func WithCurrentUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, CurrentUserContextKey, user)
}

// CurrentUser returns the authenticated user stored by WithCurrentUser.
func CurrentUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(CurrentUserContextKey).(*domain.User)
	return user, ok && user != nil
}
