package httpx

import (
	"errors"
	"net/http"

	"github.com/warebase/warebase/internal/shared"
)

// RespondError maps domain errors to HTTP responses. All core failures reach
// handlers as typed errors; nothing in the domain layer writes status codes.
func RespondError(w http.ResponseWriter, err error) {
	var missing *shared.MissingPermissionError
	switch {
	case errors.As(err, &missing):
		JSON(w, http.StatusForbidden, map[string]string{
			"error":              "forbidden",
			"missing_permission": missing.Permission,
		})
	case errors.Is(err, shared.ErrForbidden):
		Error(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, shared.ErrUnauthenticated):
		Error(w, http.StatusUnauthorized, "unauthenticated")
	case errors.Is(err, shared.ErrInvalidCredentials):
		Error(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, shared.ErrNotFound):
		Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, shared.ErrValidation):
		Error(w, http.StatusBadRequest, err.Error())
	default:
		Error(w, http.StatusInternalServerError, "internal error")
	}
}
