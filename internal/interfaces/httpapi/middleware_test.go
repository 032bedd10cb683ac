package httpapi

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

func TestCORS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		allowed    []string
		method     string
		origin     string
		wantStatus int
		wantOrigin string
	}{
		{name: "configured origin", allowed: []string{"https://tables.example.com"}, method: http.MethodGet, origin: "https://tables.example.com", wantStatus: http.StatusOK, wantOrigin: "https://tables.example.com"},
		{name: "wildcard preflight", allowed: []string{"*"}, method: http.MethodOptions, origin: "https://any.example.com", wantStatus: http.StatusNoContent, wantOrigin: "*"},
		{name: "unconfigured origin", allowed: []string{"https://tables.example.com"}, method: http.MethodGet, origin: "https://other.example.com", wantStatus: http.StatusOK, wantOrigin: ""},
		{name: "no origin header", allowed: []string{"*"}, method: http.MethodGet, origin: "", wantStatus: http.StatusOK, wantOrigin: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(tc.method, "/v1/competitions", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			rec := httptest.NewRecorder()
			CORS(tc.allowed, okHandler()).ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tc.wantOrigin {
				t.Fatalf("unexpected Access-Control-Allow-Origin: %q", got)
			}
		})
	}
}

func TestRequireInternalJobToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		configured string
		provided   string
		wantStatus int
	}{
		{name: "matching token", configured: "s3cret", provided: "s3cret", wantStatus: http.StatusOK},
		{name: "wrong token", configured: "s3cret", provided: "nope", wantStatus: http.StatusUnauthorized},
		{name: "missing token", configured: "s3cret", provided: "", wantStatus: http.StatusUnauthorized},
		{name: "not configured", configured: " ", provided: "s3cret", wantStatus: http.StatusServiceUnavailable},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/v1/internal/sync/run", nil)
			if tc.provided != "" {
				req.Header.Set("X-Internal-Job-Token", tc.provided)
			}
			rec := httptest.NewRecorder()
			RequireInternalJobToken(tc.configured, okHandler()).ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
		})
	}
}

func TestShouldTraceRequest(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/healthz", "/health", "/livez", "/readyz", " /healthz "} {
		if shouldTraceRequest(path) {
			t.Fatalf("expected no tracing for path %q", path)
		}
	}
	for _, path := range []string{"/v1/competitions", "/v1/sync/last-run", "/", "/docs"} {
		if !shouldTraceRequest(path) {
			t.Fatalf("expected tracing for path %q", path)
		}
	}
}
