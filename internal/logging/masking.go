// Package logging provides helpers for keeping secrets out of log output.
package logging

import "strings"

// TokenSuffix returns the last four characters of a token, for request log
// attribution without storing the full secret.
func TokenSuffix(token string) string {
	if len(token) <= 4 {
		return token
	}
	return token[len(token)-4:]
}

// MaskToken renders a token as "prefix...suffix" for display. Tokens of 12
// characters or fewer are returned unchanged; they are too short to be real
// gateway secrets.
func MaskToken(token string) string {
	if len(token) <= 12 {
		return token
	}
	return token[:6] + "..." + token[len(token)-4:]
}

// MaskHeader masks the value of sensitive HTTP headers for debug logging.
// Non-sensitive headers pass through unchanged.
func MaskHeader(name, value string) string {
	switch strings.ToLower(name) {
	case "authorization", "cookie", "set-cookie", "x-api-key":
		return maskAuthValue(value)
	default:
		return value
	}
}

// maskAuthValue keeps a recognizable scheme prefix but hides the credential.
func maskAuthValue(value string) string {
	parts := strings.SplitN(value, " ", 2)
	if len(parts) == 2 {
		return parts[0] + " " + MaskToken(parts[1])
	}
	return MaskToken(value)
}
