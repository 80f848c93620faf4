package storage

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
)

// GenerateAPIKey returns a new opaque API key with the "sk-" prefix.
func GenerateAPIKey() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate API key: %w", err)
	}
	return "sk-" + base64.RawURLEncoding.EncodeToString(b), nil
}

// ListAPIKeys returns all API keys, newest first.
// Returns empty slice if no keys exist.
func (s *SQLiteStorage) ListAPIKeys(ctx context.Context) ([]*APIKey, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT key, name, created_at, is_active FROM api_keys ORDER BY created_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query API keys: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var keys []*APIKey

	for rows.Next() {
		var k APIKey
		var active int
		if err := rows.Scan(&k.Key, &k.Name, &k.CreatedAt, &active); err != nil {
			return nil, fmt.Errorf("failed to scan API key row: %w", err)
		}
		k.IsActive = active != 0
		keys = append(keys, &k)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating API keys: %w", err)
	}

	if keys == nil {
		keys = make([]*APIKey, 0)
	}

	return keys, nil
}

// AddAPIKey creates a single API key with a generated secret.
func (s *SQLiteStorage) AddAPIKey(ctx context.Context, name string) (*APIKey, error) {
	if name == "" {
		return nil, errors.New("name required")
	}

	key, err := GenerateAPIKey()
	if err != nil {
		return nil, err
	}

	k := &APIKey{
		Key:       key,
		Name:      name,
		CreatedAt: time.Now().Unix(),
		IsActive:  true,
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO api_keys (key, name, created_at, is_active) VALUES (?, ?, ?, 1)",
		k.Key, k.Name, k.CreatedAt,
	)
	if err != nil {
		if isUniqueConstraint(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to insert API key: %w", err)
	}

	return k, nil
}

// BatchAddAPIKeys creates count keys in one transaction.
// Names are suffixed "-1".."-N" when count > 1.
func (s *SQLiteStorage) BatchAddAPIKeys(ctx context.Context, namePrefix string, count int) ([]*APIKey, error) {
	if namePrefix == "" {
		return nil, errors.New("name required")
	}
	if count < 1 {
		return nil, errors.New("count must be positive")
	}

	createdAt := time.Now().Unix()
	keys := make([]*APIKey, 0, count)
	for i := 1; i <= count; i++ {
		name := namePrefix
		if count > 1 {
			name = fmt.Sprintf("%s-%d", namePrefix, i)
		}
		key, err := GenerateAPIKey()
		if err != nil {
			return nil, err
		}
		keys = append(keys, &APIKey{Key: key, Name: name, CreatedAt: createdAt, IsActive: true})
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, k := range keys {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO api_keys (key, name, created_at, is_active) VALUES (?, ?, ?, 1)",
			k.Key, k.Name, k.CreatedAt,
		); err != nil {
			if isUniqueConstraint(err) {
				return nil, ErrDuplicate
			}
			return nil, fmt.Errorf("failed to insert API key: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit batch insert: %w", err)
	}

	return keys, nil
}

// DeleteAPIKey deletes one key.
// Returns false if the key doesn't exist, without error.
func (s *SQLiteStorage) DeleteAPIKey(ctx context.Context, key string) (bool, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM api_keys WHERE key = ?", key)
	if err != nil {
		return false, fmt.Errorf("failed to delete API key: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected > 0, nil
}

// BatchDeleteAPIKeys deletes the given keys and returns how many rows existed.
// Keys not present are ignored, so callers can report "N of M" outcomes.
func (s *SQLiteStorage) BatchDeleteAPIKeys(ctx context.Context, keys []string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf("DELETE FROM api_keys WHERE key IN (%s)", placeholders(len(keys)))
	result, err := s.db.ExecContext(ctx, query, stringArgs(keys)...)
	if err != nil {
		return 0, fmt.Errorf("failed to batch delete API keys: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected, nil
}

// SetAPIKeyActive activates or deactivates one key.
// Returns false if the key doesn't exist.
func (s *SQLiteStorage) SetAPIKeyActive(ctx context.Context, key string, active bool) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		"UPDATE api_keys SET is_active = ? WHERE key = ?",
		boolToInt(active), key,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update API key status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected > 0, nil
}

// BatchSetAPIKeyActive updates the status of the given keys.
// Returns how many rows matched.
func (s *SQLiteStorage) BatchSetAPIKeyActive(ctx context.Context, keys []string, active bool) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf("UPDATE api_keys SET is_active = ? WHERE key IN (%s)", placeholders(len(keys)))
	args := append([]any{boolToInt(active)}, stringArgs(keys)...)
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to batch update API key status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected, nil
}

// RenameAPIKey changes the display name of one key.
// Returns false if the key doesn't exist.
func (s *SQLiteStorage) RenameAPIKey(ctx context.Context, key, name string) (bool, error) {
	if name == "" {
		return false, errors.New("name required")
	}

	result, err := s.db.ExecContext(ctx,
		"UPDATE api_keys SET name = ? WHERE key = ?",
		name, key,
	)
	if err != nil {
		return false, fmt.Errorf("failed to rename API key: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected > 0, nil
}

// ValidateAPIKey looks up a key for authentication.
// Returns ErrNotFound when the key is absent or inactive; callers must not
// distinguish the two cases in anything user visible.
func (s *SQLiteStorage) ValidateAPIKey(ctx context.Context, key string) (*APIKey, error) {
	if key == "" {
		return nil, ErrNotFound
	}

	var k APIKey
	var active int
	err := s.db.QueryRowContext(ctx,
		"SELECT key, name, created_at, is_active FROM api_keys WHERE key = ?",
		key,
	).Scan(&k.Key, &k.Name, &k.CreatedAt, &active)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to validate API key: %w", err)
	}

	if active == 0 {
		return nil, ErrNotFound
	}

	k.IsActive = true
	return &k, nil
}

// CountActiveAPIKeys returns the number of active keys.
func (s *SQLiteStorage) CountActiveAPIKeys(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM api_keys WHERE is_active = 1",
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active API keys: %w", err)
	}
	return count, nil
}

// placeholders returns "?,?,...,?" with n placeholders for IN clauses.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func stringArgs(keys []string) []any {
	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	return args
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
