package admin

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"grok-gateway/internal/auth"
)

// NewRouter creates the admin API router. Login is rate limited per IP;
// everything else sits behind the session middleware.
func (h *Handler) NewRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Group(func(r chi.Router) {
		r.Use(httprate.LimitByIP(10, time.Minute))
		r.Post("/login", h.HandleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAdminSession(h.storage))

		r.Post("/logout", h.HandleLogout)
		r.Post("/loglevel", h.HandleSetLogLevel)

		r.Get("/keys", h.HandleListKeys)
		r.Post("/keys", h.HandleCreateKeys)
		r.Delete("/keys/{key}", h.HandleDeleteKey)
		r.Post("/keys/delete", h.HandleBatchDeleteKeys)
		r.Post("/keys/active", h.HandleBatchSetKeysActive)
		r.Post("/keys/{key}/active", h.HandleSetKeyActive)
		r.Post("/keys/{key}/rename", h.HandleRenameKey)

		r.Get("/logs", h.HandleListLogs)
		r.Delete("/logs", h.HandleClearLogs)

		r.Get("/stats", h.HandleStats)
		r.Get("/refresh/progress", h.HandleRefreshProgress)
	})

	return r
}
