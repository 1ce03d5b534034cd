package controllers

import (
	"net/http"

	"eventactivities/internal/delivery/http/helpers"
	"eventactivities/internal/delivery/http/middleware"
)

// callerID returns the authenticated user or writes a 401.
func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
	}
	return id, ok
}

// pathValue returns a required path parameter or writes a 400.
func pathValue(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	v := r.PathValue(name)
	if v == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing "+name)
	}
	return v, v != ""
}
