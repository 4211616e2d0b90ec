package httputil

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/workhands/service_market/internal/app/storage"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{storage.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("get user: %w", storage.ErrNotFound), http.StatusNotFound},
		{&storage.ValidationError{Field: "id", Reason: "must not be supplied"}, http.StatusBadRequest},
		{&storage.MissingFieldError{Field: "email"}, http.StatusBadRequest},
		{&MalformedPayloadError{Err: errors.New("unexpected EOF")}, http.StatusBadRequest},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := StatusFor(c.err); got != c.want {
			t.Fatalf("StatusFor(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestWriteJSONSetsContentType(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content type: %q", ct)
	}
}

func TestWriteStorageErrorBody(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteStorageError(rec, &storage.MissingFieldError{Field: "email"})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: %d", rec.Code)
	}
	if body := rec.Body.String(); body != "{\"error\":\"missing required field \\\"email\\\"\"}\n" {
		t.Fatalf("body: %s", body)
	}
}
