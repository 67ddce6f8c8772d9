package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/n0secutiry/taskapi/internal/api/shared"
	"github.com/n0secutiry/taskapi/internal/domain"
)

// decodeRequest decodes and validates a JSON body into req. On failure it
// writes a 422 and returns false.
func decodeRequest(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	err := shared.DecodeAndValidate(r, req)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		shared.RespondWithErrorAndLog(w, r, http.StatusUnprocessableEntity, SanitizeValidationError(err), err)
	} else {
		shared.RespondWithErrorAndLog(w, r, http.StatusUnprocessableEntity, "Invalid request format", err)
	}
	return false
}

// getPathID extracts an integer ID from the URL path parameters. Range checks
// are left to the services, which treat non-positive IDs as absent.
//
// Returns:
//   - (id, nil): The parsed ID
//   - (0, error): An error wrapping domain.ErrInvalidID if the parameter is
//     missing or not an integer
func getPathID(r *http.Request, paramName string) (int64, error) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is required", domain.ErrInvalidID, paramName)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s has invalid format", domain.ErrInvalidID, paramName)
	}
	return id, nil
}
