package admin

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"grok-gateway/internal/auth"
)

// LoginRequest is the request body for POST /api/login
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse carries the session token, shown only once.
type LoginResponse struct {
	Token string `json:"token"`
}

// HandleLogin verifies the admin password and mints a session token.
// POST /api/login
// Body: {"password": "..."}
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid JSON")
		return
	}

	if h.adminPassword == "" ||
		subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.adminPassword)) != 1 {
		h.logger.Warn("admin login rejected", "remote_addr", r.RemoteAddr)
		WriteError(w, http.StatusUnauthorized, ErrCodeInvalidCredentials, "invalid password")
		return
	}

	token, err := h.storage.CreateAdminSession(r.Context(), h.sessionTTL)
	if err != nil {
		h.logger.Error("failed to create admin session", "error", err)
		WriteError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal error")
		return
	}

	h.logger.Info("admin login", "remote_addr", r.RemoteAddr)
	writeJSON(w, http.StatusOK, LoginResponse{Token: token})
}

// HandleLogout deletes the current admin session. Deleting an already-gone
// session is still a successful logout.
// POST /api/logout
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if token := auth.SessionTokenFromContext(r.Context()); token != "" {
		if err := h.storage.DeleteAdminSession(r.Context(), token); err != nil {
			h.logger.Error("failed to delete admin session", "error", err)
			WriteError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal error")
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
