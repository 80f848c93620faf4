package storage

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"time"
)

// DefaultSessionTTL is how long an admin session stays valid.
// Expiry is absolute; sessions are not renewed on use.
const DefaultSessionTTL = 8 * time.Hour

// GenerateSessionToken returns a new opaque admin session token.
func GenerateSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// CreateAdminSession creates a session expiring after ttl.
// A non-positive ttl falls back to DefaultSessionTTL.
func (s *SQLiteStorage) CreateAdminSession(ctx context.Context, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	token, err := GenerateSessionToken()
	if err != nil {
		return "", err
	}

	expiresAt := time.Now().Add(ttl).UnixMilli()
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO admin_sessions (token, expires_at) VALUES (?, ?)",
		token, expiresAt,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create admin session: %w", err)
	}

	return token, nil
}

// DeleteAdminSession removes a session (logout). Deleting a session that
// doesn't exist is not an error.
func (s *SQLiteStorage) DeleteAdminSession(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM admin_sessions WHERE token = ?", token)
	if err != nil {
		return fmt.Errorf("failed to delete admin session: %w", err)
	}
	return nil
}

// VerifyAdminSession reports whether token names a live session.
// All expired sessions are purged first, so a session is never accepted past
// its expires_at. The purge is an idempotent delete-by-predicate and safe to
// run concurrently from multiple requests.
func (s *SQLiteStorage) VerifyAdminSession(ctx context.Context, token string) (bool, error) {
	now := time.Now().UnixMilli()

	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM admin_sessions WHERE expires_at <= ?", now,
	); err != nil {
		return false, fmt.Errorf("failed to purge expired sessions: %w", err)
	}

	var found string
	err := s.db.QueryRowContext(ctx,
		"SELECT token FROM admin_sessions WHERE token = ? AND expires_at > ?",
		token, now,
	).Scan(&found)

	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to verify admin session: %w", err)
	}

	return true, nil
}

// insertAdminSession inserts a session row with an explicit expiry.
// Used by tests to create already-expired sessions.
func (s *SQLiteStorage) insertAdminSession(ctx context.Context, token string, expiresAt int64) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO admin_sessions (token, expires_at) VALUES (?, ?)",
		token, expiresAt,
	)
	return err
}

// countAdminSessions returns the number of session rows. Test helper.
func (s *SQLiteStorage) countAdminSessions(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM admin_sessions").Scan(&count)
	return count, err
}
