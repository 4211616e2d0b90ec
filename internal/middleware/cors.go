// Package middleware provides the HTTP middleware chain: request logging,
// metrics, rate limiting and CORS.
package middleware

import (
	"net/http"
	"strings"
)

// CORS handles cross-origin resource sharing for the configured origins.
// An entry of "*" allows every origin.
type CORS struct {
	origins  []string
	allowAll bool
}

// NewCORS creates the CORS middleware.
func NewCORS(origins []string) *CORS {
	allowAll := false
	for _, origin := range origins {
		if origin == "*" {
			allowAll = true
			break
		}
	}
	return &CORS{origins: origins, allowAll: allowAll}
}

// Handler returns the CORS middleware handler.
func (c *CORS) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && (c.allowAll || c.allowed(origin)) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Trace-ID")
			w.Header().Set("Access-Control-Expose-Headers", "X-Trace-ID")
			w.Header().Set("Access-Control-Max-Age", "3600")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (c *CORS) allowed(origin string) bool {
	for _, candidate := range c.origins {
		if candidate == origin || strings.HasSuffix(origin, candidate) {
			return true
		}
	}
	return false
}
