package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	handler := CORS([]string{"https://futdraft.example.com"}, okHandler())

	req := httptest.NewRequest(http.MethodGet, "/v1/formations", nil)
	req.Header.Set("Origin", "https://futdraft.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://futdraft.example.com" {
		t.Fatalf("unexpected Access-Control-Allow-Origin: %q", got)
	}
}

func TestCORS_OptionsPreflight(t *testing.T) {
	handler := CORS([]string{"*"}, okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/v1/drafts", nil)
	req.Header.Set("Origin", "https://futdraft.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("unexpected Access-Control-Allow-Origin: %q", got)
	}
}

func TestCORS_DisallowsUnconfiguredOrigin(t *testing.T) {
	handler := CORS([]string{"https://allowed.example.com"}, okHandler())

	req := httptest.NewRequest(http.MethodGet, "/v1/formations", nil)
	req.Header.Set("Origin", "https://not-allowed.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected empty Access-Control-Allow-Origin, got %q", got)
	}
}

func TestShouldTraceRequest(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "/healthz", want: false},
		{path: " /readyz ", want: false},
		{path: "/v1/drafts/abc/stream", want: false},
		{path: "/v1/drafts", want: true},
		{path: "/v1/players", want: true},
		{path: "/docs", want: true},
	}
	for _, tt := range tests {
		if got := shouldTraceRequest(tt.path); got != tt.want {
			t.Fatalf("shouldTraceRequest(%q)=%v want=%v", tt.path, got, tt.want)
		}
	}
}

func TestRateLimit_RejectsBurstOverflow(t *testing.T) {
	limiter := NewRateLimiter(1, 2)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	handler := RateLimit(limiter, okHandler())

	call := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/v1/players", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	for i := range 2 {
		if rec := call("10.0.0.1:5000"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
	}
	rec := call("10.0.0.1:5001")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "1" {
		t.Fatalf("expected Retry-After 1, got %q", got)
	}
	if rec := call("10.0.0.2:5000"); rec.Code != http.StatusOK {
		t.Fatalf("other clients keep their own bucket, got %d", rec.Code)
	}

	now = now.Add(time.Second)
	if rec := call("10.0.0.1:5000"); rec.Code != http.StatusOK {
		t.Fatalf("expected refill after one second, got %d", rec.Code)
	}
}

func TestRateLimiter_Sweep(t *testing.T) {
	limiter := NewRateLimiter(5, 5)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	limiter.Reserve("a")
	now = now.Add(10 * time.Minute)
	limiter.Reserve("b")

	if removed := limiter.Sweep(5 * time.Minute); removed != 1 {
		t.Fatalf("expected 1 idle bucket removed, got %d", removed)
	}
}

func TestResolveClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.10:1234"
	req.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	if got := resolveClientIP(req); got != "203.0.113.5" {
		t.Fatalf("expected forwarded address, got %q", got)
	}

	req.Header.Set("X-Forwarded-For", "not-an-ip")
	if got := resolveClientIP(req); got != "192.0.2.10" {
		t.Fatalf("expected peer address, got %q", got)
	}

	req.Header.Del("X-Forwarded-For")
	req.RemoteAddr = "[::ffff:198.51.100.7]:443"
	if got := resolveClientIP(req); got != "198.51.100.7" {
		t.Fatalf("expected unmapped v4 peer, got %q", got)
	}
}
