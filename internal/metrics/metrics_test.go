package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

// TestInitAndRecord verifies that recorded metrics appear in the registry
// output.
func TestInitAndRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	if err := Init(reg); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	RecordRequest("GET", "/admin/keys", "200")
	RecordAuthFailure("invalid_token")
	RecordCacheEvictions(42)
	RecordSweepFailure()

	text, err := GetMetricsText(reg)
	if err != nil {
		t.Fatalf("GetMetricsText failed: %v", err)
	}

	for _, want := range []string{
		"grok_gateway_requests_total",
		"grok_gateway_auth_failures_total",
		`reason="invalid_token"`,
		"grok_gateway_cache_evictions_total 42",
		"grok_gateway_cache_sweep_failures_total 1",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected metrics output to contain %q", want)
		}
	}
}

// TestRecordBeforeInit verifies that recording without Init is a no-op
// rather than a panic.
func TestRecordBeforeInit(t *testing.T) {
	// These must not panic even when Init was never called in this order;
	// the atomics may or may not be populated by other tests, either is fine.
	RecordRequest("GET", "/", "200")
	RecordRequestDuration("GET", "/", "200", 0.01)
	RecordAuthFailure("missing_token")
	RecordCacheEvictions(1)
	RecordSweepFailure()
}

// TestNormalizePath verifies label cardinality control.
func TestNormalizePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"/admin/keys", "/admin/keys"},
		{"/admin/keys/sk-abc123", "/admin/keys/:key"},
		{"/admin/logs/12345", "/admin/logs/:id"},
		{"/", "/"},
	}

	for _, tt := range tests {
		if got := normalizePath(tt.in); got != tt.want {
			t.Errorf("normalizePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestMiddleware verifies that the middleware passes requests through and
// preserves the handler's status code.
func TestMiddleware(t *testing.T) {
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest("GET", "/admin/keys/sk-abc", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusTeapot {
		t.Errorf("expected 418, got %d", w.Code)
	}
}
