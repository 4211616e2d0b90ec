package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/workhands/service_market/pkg/logger"
)

// Logging logs each request with method, path, status, duration and a trace
// id. An incoming X-Trace-ID is honoured; otherwise one is generated and
// echoed on the response.
func Logging(log *logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.NewDefault("http")
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			traceID := r.Header.Get("X-Trace-ID")
			if traceID == "" {
				traceID = uuid.NewString()
			}
			w.Header().Set("X-Trace-ID", traceID)

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   wrapped.statusCode,
				"duration": time.Since(start).String(),
				"trace_id": traceID,
			}).Info("request handled")
		})
	}
}
