package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORSAllowAll(t *testing.T) {
	h := NewCORS([]string{"*"}).Handler(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://example.com" {
		t.Fatalf("allow origin: %q", got)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	h := NewCORS([]string{"https://trusted.example.com"}).Handler(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Origin", "https://evil.example.net")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no allow origin header, got %q", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := NewCORS([]string{"*"}).Handler(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/users", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight status: %d", rec.Code)
	}
}

func TestRateLimiterThrottlesPerClient(t *testing.T) {
	rl := NewRateLimiter(1, 2, nil)
	h := rl.Handler(okHandler())

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := send("10.0.0.1:1000"); code != http.StatusOK {
		t.Fatalf("first request: %d", code)
	}
	if code := send("10.0.0.1:1001"); code != http.StatusOK {
		t.Fatalf("second request within burst: %d", code)
	}
	if code := send("10.0.0.1:1002"); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 past burst, got %d", code)
	}

	// Ports differ but the host is the key; a different host gets its own
	// bucket.
	if code := send("10.0.0.2:1000"); code != http.StatusOK {
		t.Fatalf("other client: %d", code)
	}
}

func TestLoggingEchoesTraceID(t *testing.T) {
	h := Logging(nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("X-Trace-ID", "trace-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Trace-ID"); got != "trace-123" {
		t.Fatalf("trace id: %q", got)
	}
}

func TestLoggingGeneratesTraceID(t *testing.T) {
	h := Logging(nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Header().Get("X-Trace-ID") == "" {
		t.Fatalf("expected generated trace id")
	}
}
