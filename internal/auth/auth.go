// Package auth resolves caller identity for the gateway and guards the
// operator API with admin sessions.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"grok-gateway/internal/storage"
)

// Errors for authentication failures. Both map to HTTP 401.
var (
	// ErrMissingToken indicates no bearer token was provided.
	ErrMissingToken = errors.New("auth: missing token")
	// ErrInvalidToken indicates the token is neither the admin secret nor an
	// active API key. Absent and inactive keys are deliberately
	// indistinguishable here.
	ErrInvalidToken = errors.New("auth: invalid token")
)

// Identity is the resolved caller of a gateway request.
type Identity struct {
	Key     string // empty for anonymous callers
	Name    string
	IsAdmin bool
}

// CredentialStore is the subset of storage the authenticator reads.
type CredentialStore interface {
	ValidateAPIKey(ctx context.Context, key string) (*storage.APIKey, error)
	CountActiveAPIKeys(ctx context.Context) (int64, error)
}

// Authenticator resolves bearer tokens to identities.
// adminSecret is the globally configured administrator secret; empty means no
// global secret is configured.
type Authenticator struct {
	store       CredentialStore
	adminSecret string
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(store CredentialStore, adminSecret string) *Authenticator {
	return &Authenticator{store: store, adminSecret: strings.TrimSpace(adminSecret)}
}

// ParseBearer extracts the token from an Authorization header value.
// The "Bearer " prefix is matched case-insensitively. Returns "" when the
// header is absent, malformed or carries an empty token.
func ParseBearer(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Authenticate resolves the Authorization header to an identity.
//
// With no token: if a global admin secret is configured the request fails
// with ErrMissingToken; otherwise, if no active API keys exist yet, the
// caller is granted anonymous access (first-run bootstrap); any other case
// fails with ErrMissingToken.
//
// With a token: an exact match on the admin secret grants an administrator
// identity, otherwise the token must be an existing, active API key.
// Performs only reads.
func (a *Authenticator) Authenticate(ctx context.Context, authHeader string) (*Identity, error) {
	token := ParseBearer(authHeader)

	if token == "" {
		if a.adminSecret == "" {
			active, err := a.store.CountActiveAPIKeys(ctx)
			if err != nil {
				return nil, err
			}
			if active == 0 {
				return &Identity{Name: "Anonymous"}, nil
			}
		}
		return nil, ErrMissingToken
	}

	if a.adminSecret != "" &&
		subtle.ConstantTimeCompare([]byte(token), []byte(a.adminSecret)) == 1 {
		return &Identity{Key: token, Name: "Administrator", IsAdmin: true}, nil
	}

	key, err := a.store.ValidateAPIKey(ctx, token)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}

	return &Identity{Key: key.Key, Name: key.Name}, nil
}
