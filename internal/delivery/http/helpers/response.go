package helpers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"eventactivities/internal/domain"
)

// Error codes for API error responses. Use these with WriteJSONError.
const (
	ErrCodeBadRequest    = "bad_request"
	ErrCodeUnauthorized  = "unauthorized"
	ErrCodeForbidden     = "forbidden"
	ErrCodeNotFound      = "not_found"
	ErrCodeConflict      = "date_conflict"
	ErrCodeInternalError = "internal_error"
)

// Business rule codes, one per rule violation.
var businessRuleCodes = map[error]string{
	domain.ErrResponsibleRegistry:    "responsible_registry",
	domain.ErrAlreadyRegistered:      "already_registered",
	domain.ErrArchivedEvent:          "archived_event",
	domain.ErrInvisibleEvent:         "invisible_event",
	domain.ErrOutsideRegistryWindow:  "outside_registry_window",
	domain.ErrEventChangeRestriction: "event_change_restriction",
	domain.ErrIncompleteActivity:     "incomplete_activity",
	domain.ErrActivityHasRegistries:  "activity_has_registries",
	domain.ErrNoVacancy:              "no_vacancy",
	domain.ErrCertificatesNotReady:   "certificates_not_ready",
}

// APIError is the error object in the standardized API response envelope.
// swagger:model APIError
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIResponse is the standardized envelope for all API responses.
// On success: Data is set, Error is nil. On error: Data is nil, Error is set.
// swagger:model APIResponse
type APIResponse struct {
	Data  any       `json:"data"`
	Error *APIError `json:"error"`
}

// ConflictResponse is the body of a 409 date conflict.
// swagger:model ConflictResponse
type ConflictResponse struct {
	Message string            `json:"message"`
	Data    []domain.Conflict `json:"data"`
}

// WriteJSONSuccess sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with the given data and error set to nil.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{Data: data, Error: nil})
}

// WriteJSONError sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with data nil and the given error code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{
		Data:  nil,
		Error: &APIError{Code: code, Message: message},
	})
}

// WriteJSONConflict writes a 409 with the conflicts of ce.
func WriteJSONConflict(w http.ResponseWriter, ce *domain.ConflictError) {
	conflicts := ce.Conflicts
	if conflicts == nil {
		conflicts = []domain.Conflict{}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusConflict)
	_ = json.NewEncoder(w).Encode(ConflictResponse{Message: ce.Message, Data: conflicts})
}

// WriteServiceError maps a service error to its HTTP response. Unexpected errors are logged
// and answered with 500.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var ce *domain.ConflictError
	switch {
	case errors.As(err, &ce):
		WriteJSONConflict(w, ce)
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		WriteJSONError(w, http.StatusForbidden, ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrInvalidInput):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case domain.IsBusinessRule(err):
		WriteJSONError(w, http.StatusBadRequest, businessRuleCode(err), err.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal error")
	}
}

func businessRuleCode(err error) string {
	for rule, code := range businessRuleCodes {
		if errors.Is(err, rule) {
			return code
		}
	}
	return ErrCodeBadRequest
}
