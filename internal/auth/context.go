package auth

import "context"

// ctxKey is a private type for context keys to prevent collisions.
type ctxKey int

const (
	identityKey ctxKey = iota // stores *Identity
	sessionKey                // stores the admin session token
)

// WithIdentity adds the resolved identity to the context.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext retrieves the authenticated identity from context.
// Returns nil if the request did not pass through the API auth middleware.
func IdentityFromContext(ctx context.Context) *Identity {
	if v := ctx.Value(identityKey); v != nil {
		if id, ok := v.(*Identity); ok {
			return id
		}
	}
	return nil
}

// WithSessionToken adds the verified admin session token to the context.
func WithSessionToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, sessionKey, token)
}

// SessionTokenFromContext retrieves the admin session token from context.
// Returns "" if the request did not pass through the session middleware.
func SessionTokenFromContext(ctx context.Context) string {
	if v := ctx.Value(sessionKey); v != nil {
		if token, ok := v.(string); ok {
			return token
		}
	}
	return ""
}
