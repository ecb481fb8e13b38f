package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/saralwebs/kundli/internal/common"
)

// ErrorResponse is the standard error format for REST API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// WriteError writes a JSON error response.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message})
}

// WriteServiceError maps the gateway error taxonomy to HTTP status codes:
// ValidationError 400, NotFoundError 404, ExternalServiceError and anything
// unrecognized 500. The underlying cause, when present, is surfaced in the
// details field.
func WriteServiceError(w http.ResponseWriter, err error) {
	var valErr *common.ValidationError
	if errors.As(err, &valErr) {
		WriteError(w, http.StatusBadRequest, valErr.Message)
		return
	}

	var nfErr *common.NotFoundError
	if errors.As(err, &nfErr) {
		WriteError(w, http.StatusNotFound, nfErr.Message)
		return
	}

	var svcErr *common.ExternalServiceError
	if errors.As(err, &svcErr) {
		resp := ErrorResponse{Error: svcErr.Message}
		if svcErr.Err != nil {
			resp.Details = svcErr.Err.Error()
		}
		WriteJSON(w, http.StatusInternalServerError, resp)
		return
	}

	WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal server error",
		Details: err.Error(),
	})
}

// RequireMethod validates the HTTP method and returns true if it matches.
// If it doesn't match, it writes a 405 response and returns false.
func RequireMethod(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	return false
}

// DecodeJSON reads and decodes JSON from the request body into v.
// Returns false and writes a 400 error if decoding fails.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if r.Body == nil {
		WriteError(w, http.StatusBadRequest, "Request body is required")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return false
	}
	return true
}
