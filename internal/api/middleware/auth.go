package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/n0secutiry/taskapi/internal/api/shared"
	"github.com/n0secutiry/taskapi/internal/domain"
	"github.com/n0secutiry/taskapi/internal/service"
)

// Client-facing messages for rejected bearer credentials.
const (
	MsgNotAuthenticated   = "Not authenticated"
	MsgInvalidCredentials = "Could not validate credentials"
)

// AuthMiddleware resolves the bearer token on protected routes.
type AuthMiddleware struct {
	auth service.AuthService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(auth service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// Authenticate requires an "Authorization: Bearer <token>" header that
// resolves to an existing user, and stores that user in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized, MsgNotAuthenticated,
				shared.WithHeader("WWW-Authenticate", "Bearer"))
			return
		}

		user, err := m.auth.ResolveCurrentUser(r.Context(), token)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, MsgInvalidCredentials, err,
					shared.WithHeader("WWW-Authenticate", "Bearer"))
				return
			}
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Authentication error", err)
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithCurrentUser(r.Context(), user)))
	})
}

// bearerToken extracts the credentials of a Bearer authorization header.
// The scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
