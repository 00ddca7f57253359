package handler

import (
	"errors"
	"net/http"

	"lorekeeper/internal/domain"
	"lorekeeper/internal/httputil"
)

// handleError converts domain errors to HTTP responses. Denied access is
// reported by the services as ErrNotFound and therefore surfaces as 404.
func handleError(w http.ResponseWriter, err error) {
	var conflictErr *domain.ConflictError

	switch {
	case errors.As(err, &conflictErr):
		httputil.RespondErrorWithExtras(w, http.StatusConflict, conflictErr.Error(), map[string]any{
			"resource_type": conflictErr.ResourceType,
			"resource_id":   conflictErr.ResourceID,
		})
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// handleBodyError reports a request body that could not be decoded.
func handleBodyError(w http.ResponseWriter, err error) {
	if httputil.IsBodyTooLarge(err) {
		httputil.RespondError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
}

// pathValues returns the named path parameters, or false after writing a 400
// if any of them is empty.
func pathValues(w http.ResponseWriter, r *http.Request, names ...string) ([]string, bool) {
	values := make([]string, len(names))
	for i, name := range names {
		values[i] = r.PathValue(name)
		if values[i] == "" {
			httputil.RespondError(w, http.StatusBadRequest, name+" is required")
			return nil, false
		}
	}
	return values, true
}
