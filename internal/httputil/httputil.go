// Package httputil provides shared JSON response and request helpers plus
// the storage-error-to-status mapping used at the HTTP boundary.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/workhands/service_market/internal/app/storage"
)

const contentTypeJSON = "application/json; charset=utf-8"

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a JSON error body with the given status.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"error": msg})
}

// WriteStorageError maps a storage error onto the HTTP status contract:
// ErrNotFound → 404, ValidationError and MissingFieldError → 400, anything
// else → 500. A missing record must never crash the process.
func WriteStorageError(w http.ResponseWriter, err error) {
	WriteError(w, StatusFor(err), err.Error())
}

// StatusFor returns the HTTP status for a storage error.
func StatusFor(err error) int {
	var validation *storage.ValidationError
	var missing *storage.MissingFieldError
	var malformed *MalformedPayloadError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &validation), errors.As(err, &missing), errors.As(err, &malformed):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// MalformedPayloadError reports a request body that is not valid JSON.
type MalformedPayloadError struct {
	Err error
}

func (e *MalformedPayloadError) Error() string {
	return "malformed JSON payload"
}

func (e *MalformedPayloadError) Unwrap() error {
	return e.Err
}
