// Package gateway wires the public HTTP surface: health, the authenticated
// API group and the operator API.
package gateway

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"grok-gateway/internal/admin"
	"grok-gateway/internal/auth"
	"grok-gateway/internal/metrics"
	"grok-gateway/internal/middleware"
)

// NewRouter builds the gateway router.
func NewRouter(logger *slog.Logger, authenticator *auth.Authenticator, adminHandler *admin.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.AccessLog(logger))
	r.Use(metrics.Middleware)

	r.Get("/health", healthHandler)

	r.Route("/v1", func(r chi.Router) {
		r.Use(auth.RequireAPIAuth(authenticator))
		r.Get("/auth/verify", verifyHandler)
	})

	r.Mount("/admin/api", adminHandler.NewRouter())

	return r
}

// healthHandler returns OK if the process is alive
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // Response write errors are unrecoverable
	w.Write([]byte(`{"status":"ok"}`))
}

// verifyHandler echoes the identity the auth gate resolved, so clients can
// check a key without spending an upstream call.
func verifyHandler(w http.ResponseWriter, r *http.Request) {
	id := auth.IdentityFromContext(r.Context())
	if id == nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // Response write errors are unrecoverable
	json.NewEncoder(w).Encode(map[string]any{
		"name":  id.Name,
		"admin": id.IsAdmin,
	})
}
