package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"grok-gateway/internal/metrics"
)

// Machine-readable codes for API authentication failures.
const (
	CodeMissingToken = "missing_token"
	CodeInvalidToken = "invalid_token"
)

// Machine-readable codes for admin session failures.
const (
	CodeMissingSession = "MISSING_SESSION"
	CodeSessionExpired = "SESSION_EXPIRED"
)

// SessionVerifier is the subset of storage the session middleware needs.
type SessionVerifier interface {
	VerifyAdminSession(ctx context.Context, token string) (bool, error)
}

// apiAuthError is the OpenAI-style error envelope returned to API callers.
type apiAuthError struct {
	Error apiAuthErrorBody `json:"error"`
}

type apiAuthErrorBody struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

// RequireAPIAuth returns chi-compatible middleware that gates every API
// request through the Authenticator. The resolved identity is attached to the
// request context.
func RequireAPIAuth(a *Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			id, err := a.Authenticate(r.Context(), header)
			if err != nil {
				switch {
				case errors.Is(err, ErrMissingToken):
					metrics.RecordAuthFailure(CodeMissingToken)
					writeAPIAuthError(w, "missing authentication token", CodeMissingToken)
				case errors.Is(err, ErrInvalidToken):
					// The token length in the message mirrors the historical
					// behavior of the gateway; see DESIGN.md before changing it.
					metrics.RecordAuthFailure(CodeInvalidToken)
					token := ParseBearer(header)
					msg := fmt.Sprintf("invalid token, length %d", len(token))
					writeAPIAuthError(w, msg, CodeInvalidToken)
				default:
					writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
				}
				return
			}

			ctx := WithIdentity(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdminSession returns middleware that gates administrator-only
// operations behind a live admin session. It never consults API keys or the
// global admin secret.
func RequireAdminSession(sessions SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ParseBearer(r.Header.Get("Authorization"))
			if token == "" {
				metrics.RecordAuthFailure(CodeMissingSession)
				writeSessionError(w, "missing session", CodeMissingSession)
				return
			}

			ok, err := sessions.VerifyAdminSession(r.Context(), token)
			if err != nil {
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
				return
			}
			if !ok {
				metrics.RecordAuthFailure(CodeSessionExpired)
				writeSessionError(w, "session expired", CodeSessionExpired)
				return
			}

			ctx := WithSessionToken(r.Context(), token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeAPIAuthError(w http.ResponseWriter, message, code string) {
	writeJSON(w, http.StatusUnauthorized, apiAuthError{
		Error: apiAuthErrorBody{
			Message: message,
			Type:    "authentication_error",
			Code:    code,
		},
	})
}

func writeSessionError(w http.ResponseWriter, message, code string) {
	writeJSON(w, http.StatusUnauthorized, map[string]string{
		"error": message,
		"code":  code,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Response already started, nothing we can do
		_ = err
	}
}
