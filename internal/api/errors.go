package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/n0secutiry/taskapi/internal/domain"
	"github.com/n0secutiry/taskapi/internal/service"
	"github.com/n0secutiry/taskapi/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error category. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusUnprocessableEntity

	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound

	// Registration reports a taken email as a bad request, not a conflict.
	case errors.Is(err, service.ErrUserAlreadyExists):
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// routeFailureStatus returns the status a task route reports for err.
// Validation failures are always 422; anything else uses the route's own
// failure status.
func routeFailureStatus(err error, failure int) int {
	if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrInvalidID) {
		return http.StatusUnprocessableEntity
	}
	return failure
}

// safeValidationErrors are domain errors whose text is written for clients.
var safeValidationErrors = []error{
	domain.ErrEmptyEmail,
	domain.ErrInvalidEmail,
	domain.ErrEmptyPassword,
	domain.ErrPasswordTooLong,
	domain.ErrEmptyTaskName,
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, service.ErrUserAlreadyExists):
		return "User already registered"
	case errors.Is(err, service.ErrIncorrectUsername):
		return "Incorrect username"
	case errors.Is(err, service.ErrIncorrectPassword):
		return "Incorrect password"
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Could not validate credentials"
	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"
	case errors.Is(err, store.ErrTaskNameExists):
		return "Task name already exists"
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"
	}

	for _, safe := range safeValidationErrors {
		if errors.Is(err, safe) {
			return safe.Error()
		}
	}
	if errors.Is(err, domain.ErrValidation) {
		return "Validation error"
	}

	return "An unexpected error occurred"
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
	}

	// Fall back to a generic validation error message
	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
