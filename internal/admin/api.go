package admin

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

// HandleListLogs returns recent request logs, newest first.
// GET /api/logs?limit=N
func (h *Handler) HandleListLogs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid limit")
			return
		}
		limit = n
	}

	logs, err := h.storage.ListRequestLogs(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list request logs", "error", err)
		WriteError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, logs)
}

// HandleClearLogs deletes all request logs.
// DELETE /api/logs
func (h *Handler) HandleClearLogs(w http.ResponseWriter, r *http.Request) {
	if err := h.storage.ClearRequestLogs(r.Context()); err != nil {
		h.logger.Error("failed to clear request logs", "error", err)
		WriteError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal error")
		return
	}

	h.logger.Info("request logs cleared")
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// HandleStats returns the aggregated usage report.
// GET /api/stats
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	report, err := h.stats.Report(r.Context(), time.Now())
	if err != nil {
		h.logger.Error("failed to build stats report", "error", err)
		WriteError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// HandleRefreshProgress returns the current token refresh progress.
// GET /api/refresh/progress
func (h *Handler) HandleRefreshProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.progress.Get(r.Context())
	if err != nil {
		h.logger.Error("failed to read refresh progress", "error", err)
		WriteError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, progress)
}

// SetLogLevelRequest is the request body for POST /api/loglevel
type SetLogLevelRequest struct {
	Level string `json:"level"`
}

// HandleSetLogLevel changes runtime log level
// POST /api/loglevel
// Body: {"level": "debug|info|warn|error"}
func (h *Handler) HandleSetLogLevel(w http.ResponseWriter, r *http.Request) {
	var req SetLogLevelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid JSON")
		return
	}

	var level slog.Level
	switch req.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid level (must be: debug, info, warn, error)")
		return
	}

	h.logLevel.Set(level)
	h.logger.Info("log level changed", "new_level", req.Level)
	writeJSON(w, http.StatusOK, map[string]string{"level": req.Level})
}
