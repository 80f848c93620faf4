// Package admin implements the operator-facing JSON API: login sessions,
// API key management, request logs, usage stats and refresh progress.
package admin

import (
	"log/slog"
	"time"

	"grok-gateway/internal/refresh"
	"grok-gateway/internal/stats"
	"grok-gateway/internal/storage"
)

// Handler holds dependencies for the admin API handlers.
type Handler struct {
	storage       storage.Storage
	stats         *stats.Aggregator
	progress      *refresh.Tracker
	logger        *slog.Logger
	logLevel      *slog.LevelVar
	adminPassword string
	sessionTTL    time.Duration
}

// New creates an admin Handler. A zero sessionTTL falls back to the storage
// default of eight hours.
func New(store storage.Storage, agg *stats.Aggregator, tracker *refresh.Tracker, logger *slog.Logger, logLevel *slog.LevelVar, adminPassword string, sessionTTL time.Duration) *Handler {
	return &Handler{
		storage:       store,
		stats:         agg,
		progress:      tracker,
		logger:        logger,
		logLevel:      logLevel,
		adminPassword: adminPassword,
		sessionTTL:    sessionTTL,
	}
}
