package admin

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"grok-gateway/internal/storage"
)

// KeyResponse represents an API key in admin responses.
type KeyResponse struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
	IsActive  bool   `json:"is_active"`
}

func keyResponse(k *storage.APIKey) KeyResponse {
	return KeyResponse{
		Key:       k.Key,
		Name:      k.Name,
		CreatedAt: k.CreatedAt,
		IsActive:  k.IsActive,
	}
}

// HandleListKeys returns all API keys, newest first.
// GET /api/keys
func (h *Handler) HandleListKeys(w http.ResponseWriter, r *http.Request) {
	keys, err := h.storage.ListAPIKeys(r.Context())
	if err != nil {
		h.logger.Error("failed to list keys", "error", err)
		WriteError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal error")
		return
	}

	response := make([]KeyResponse, len(keys))
	for i, k := range keys {
		response[i] = keyResponse(k)
	}
	writeJSON(w, http.StatusOK, response)
}

// CreateKeysRequest is the request body for POST /api/keys
type CreateKeysRequest struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// HandleCreateKeys generates one or more API keys. With count > 1 the name
// becomes a prefix and each key gets a numeric suffix.
// POST /api/keys
// Body: {"name": "...", "count": 3}
func (h *Handler) HandleCreateKeys(w http.ResponseWriter, r *http.Request) {
	var req CreateKeysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid JSON")
		return
	}
	if req.Name == "" {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "name required")
		return
	}
	if req.Count < 1 {
		req.Count = 1
	}

	keys, err := h.storage.BatchAddAPIKeys(r.Context(), req.Name, req.Count)
	if err != nil {
		h.logger.Error("failed to create keys", "error", err, "count", req.Count)
		WriteError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal error")
		return
	}

	response := make([]KeyResponse, len(keys))
	for i, k := range keys {
		response[i] = keyResponse(k)
	}
	h.logger.Info("api keys created", "name", req.Name, "count", len(keys))
	writeJSON(w, http.StatusCreated, response)
}

// HandleDeleteKey removes a single API key.
// DELETE /api/keys/{key}
func (h *Handler) HandleDeleteKey(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	deleted, err := h.storage.DeleteAPIKey(r.Context(), key)
	if err != nil {
		h.logger.Error("failed to delete key", "error", err)
		WriteError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal error")
		return
	}
	if !deleted {
		WriteError(w, http.StatusNotFound, ErrCodeNotFound, "key not found")
		return
	}

	h.logger.Info("api key deleted")
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// BatchKeysRequest is the request body for batch delete and batch activate.
type BatchKeysRequest struct {
	Keys   []string `json:"keys"`
	Active bool     `json:"active"`
}

// HandleBatchDeleteKeys removes multiple API keys, reporting how many existed.
// POST /api/keys/delete
// Body: {"keys": ["sk-...", ...]}
func (h *Handler) HandleBatchDeleteKeys(w http.ResponseWriter, r *http.Request) {
	var req BatchKeysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid JSON")
		return
	}
	if len(req.Keys) == 0 {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "keys required")
		return
	}

	deleted, err := h.storage.BatchDeleteAPIKeys(r.Context(), req.Keys)
	if err != nil {
		h.logger.Error("failed to batch delete keys", "error", err)
		WriteError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal error")
		return
	}

	h.logger.Info("api keys deleted", "requested", len(req.Keys), "deleted", deleted)
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

// SetActiveRequest is the request body for toggling a single key.
type SetActiveRequest struct {
	Active bool `json:"active"`
}

// HandleSetKeyActive enables or disables one API key.
// POST /api/keys/{key}/active
// Body: {"active": false}
func (h *Handler) HandleSetKeyActive(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var req SetActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid JSON")
		return
	}

	updated, err := h.storage.SetAPIKeyActive(r.Context(), key, req.Active)
	if err != nil {
		h.logger.Error("failed to toggle key", "error", err)
		WriteError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal error")
		return
	}
	if !updated {
		WriteError(w, http.StatusNotFound, ErrCodeNotFound, "key not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"active": req.Active})
}

// HandleBatchSetKeysActive toggles multiple API keys at once.
// POST /api/keys/active
// Body: {"keys": [...], "active": true}
func (h *Handler) HandleBatchSetKeysActive(w http.ResponseWriter, r *http.Request) {
	var req BatchKeysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid JSON")
		return
	}
	if len(req.Keys) == 0 {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "keys required")
		return
	}

	updated, err := h.storage.BatchSetAPIKeyActive(r.Context(), req.Keys, req.Active)
	if err != nil {
		h.logger.Error("failed to batch toggle keys", "error", err)
		WriteError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"updated": updated})
}

// RenameKeyRequest is the request body for renaming a key.
type RenameKeyRequest struct {
	Name string `json:"name"`
}

// HandleRenameKey changes the display name of an API key.
// POST /api/keys/{key}/rename
// Body: {"name": "new-name"}
func (h *Handler) HandleRenameKey(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var req RenameKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid JSON")
		return
	}
	if req.Name == "" {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "name required")
		return
	}

	renamed, err := h.storage.RenameAPIKey(r.Context(), key, req.Name)
	if err != nil {
		h.logger.Error("failed to rename key", "error", err)
		WriteError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal error")
		return
	}
	if !renamed {
		WriteError(w, http.StatusNotFound, ErrCodeNotFound, "key not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"name": req.Name})
}
