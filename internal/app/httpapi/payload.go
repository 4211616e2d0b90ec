package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/workhands/service_market/internal/app/domain/order"
	"github.com/workhands/service_market/internal/app/storage"
	"github.com/workhands/service_market/internal/httputil"
)

// body wraps a decoded JSON object and tracks which keys a handler has read.
// Access is strict: a missing key fails with MissingFieldError and a key of
// the wrong type with ValidationError, giving updates their full-replace
// semantics. Keys left unread are rejected the way the schema would reject
// an unknown column.
type body struct {
	fields map[string]interface{}
	seen   map[string]bool
}

func parseBody(r *http.Request) (*body, error) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	var fields map[string]interface{}
	if err := dec.Decode(&fields); err != nil {
		return nil, &httputil.MalformedPayloadError{Err: err}
	}
	return &body{fields: fields, seen: make(map[string]bool)}, nil
}

func (b *body) has(key string) bool {
	_, ok := b.fields[key]
	return ok
}

// String reads a required string field.
func (b *body) String(key string) (string, error) {
	raw, ok := b.fields[key]
	if !ok {
		return "", &storage.MissingFieldError{Field: key}
	}
	b.seen[key] = true
	s, ok := raw.(string)
	if !ok {
		return "", &storage.ValidationError{Field: key, Reason: "must be a string"}
	}
	return s, nil
}

// Int reads a required integer field.
func (b *body) Int(key string) (int, error) {
	raw, ok := b.fields[key]
	if !ok {
		return 0, &storage.MissingFieldError{Field: key}
	}
	b.seen[key] = true
	num, ok := raw.(json.Number)
	if !ok {
		return 0, &storage.ValidationError{Field: key, Reason: "must be an integer"}
	}
	n, err := strconv.Atoi(num.String())
	if err != nil {
		return 0, &storage.ValidationError{Field: key, Reason: "must be an integer"}
	}
	return n, nil
}

// Date reads a required "YYYY-MM-DD" date field.
func (b *body) Date(key string) (order.Date, error) {
	s, err := b.String(key)
	if err != nil {
		return order.Date{}, err
	}
	d, err := order.ParseDate(s)
	if err != nil {
		return order.Date{}, &storage.ValidationError{Field: key, Reason: "must be a YYYY-MM-DD date"}
	}
	return d, nil
}

// rejectUnknown fails when the payload carries a key no handler read.
func (b *body) rejectUnknown() error {
	for key := range b.fields {
		if !b.seen[key] {
			return &storage.ValidationError{Field: key, Reason: "unknown field"}
		}
	}
	return nil
}
