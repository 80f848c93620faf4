// Package testenv boots a complete in-process gateway for end-to-end tests:
// a :memory: SQLite store, an in-memory KV fake and the full HTTP router on
// an httptest server. No external services are needed.
package testenv

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"grok-gateway/internal/admin"
	"grok-gateway/internal/auth"
	"grok-gateway/internal/cache"
	"grok-gateway/internal/gateway"
	"grok-gateway/internal/refresh"
	"grok-gateway/internal/stats"
	"grok-gateway/internal/storage"
	"grok-gateway/internal/testutil"
)

// AdminPassword is the operator password the test gateway is configured with.
const AdminPassword = "testpassword123"

// Env is one running test gateway.
type Env struct {
	// URL is the base URL of the in-process gateway.
	URL string
	// Store gives tests direct access to the database for seeding and checks.
	Store *storage.SQLiteStorage
	// KV is the in-memory payload store backing the cache.
	KV *testutil.MemKV
	// Cache pairs KV with the index for write-path tests.
	Cache *cache.Cache

	server *httptest.Server
}

// Setup boots a gateway with no admin secret configured. Cleanup is
// registered on t.
func Setup(t *testing.T) *Env {
	return SetupWithSecret(t, "")
}

// SetupWithSecret boots a gateway with the given global admin API secret.
func SetupWithSecret(t *testing.T, adminSecret string) *Env {
	t.Helper()

	store, err := storage.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}

	kv := testutil.NewMemKV()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	levelVar := &slog.LevelVar{}

	adminHandler := admin.New(store, stats.NewAggregator(store), refresh.NewTracker(store),
		logger, levelVar, AdminPassword, 0)
	router := gateway.NewRouter(logger, auth.NewAuthenticator(store, adminSecret), adminHandler)

	server := httptest.NewServer(router)

	env := &Env{
		URL:    server.URL,
		Store:  store,
		KV:     kv,
		Cache:  cache.NewCache(kv, store),
		server: server,
	}

	t.Cleanup(func() {
		server.Close()
		_ = store.Close()
	})

	return env
}

// Login authenticates with the operator password and returns a session token.
func (e *Env) Login(t *testing.T) string {
	t.Helper()

	resp := e.Request(t, "POST", "/admin/api/login", "", map[string]string{
		"password": AdminPassword,
	})
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed with status %d", resp.StatusCode)
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	if body.Token == "" {
		t.Fatal("expected non-empty session token")
	}
	return body.Token
}

// Request sends a JSON request to the gateway. token, when set, is sent as a
// bearer credential. The caller owns the response body.
func (e *Env) Request(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req, err := http.NewRequest(method, e.URL+path, &buf)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	return resp
}

// Decode reads and decodes a JSON response body, then closes it.
func Decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close() //nolint:errcheck

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}
