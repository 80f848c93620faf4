package storage

import (
	"context"
	"fmt"
)

// InsertCacheRow records a live KV cache entry.
// An existing row for the same key is replaced, keeping created_at current
// with the latest write of the payload.
func (s *SQLiteStorage) InsertCacheRow(ctx context.Context, key string, createdAt int64) error {
	if key == "" {
		return fmt.Errorf("cache key required")
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO cache_index (key, created_at) VALUES (?, ?)",
		key, createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert cache index row: %w", err)
	}

	return nil
}

// OldestCacheRows returns up to limit rows ordered by insertion time, oldest
// first. Used by the eviction sweep to pick the next batch.
func (s *SQLiteStorage) OldestCacheRows(ctx context.Context, limit int) ([]*CacheIndexRow, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT key, created_at FROM cache_index ORDER BY created_at ASC, key ASC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query cache index rows: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var result []*CacheIndexRow

	for rows.Next() {
		var r CacheIndexRow
		if err := rows.Scan(&r.Key, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cache index row: %w", err)
		}
		result = append(result, &r)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cache index rows: %w", err)
	}

	return result, nil
}

// DeleteCacheRows removes index rows for the given keys in one statement.
func (s *SQLiteStorage) DeleteCacheRows(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	query := fmt.Sprintf("DELETE FROM cache_index WHERE key IN (%s)", placeholders(len(keys)))
	if _, err := s.db.ExecContext(ctx, query, stringArgs(keys)...); err != nil {
		return fmt.Errorf("failed to delete cache index rows: %w", err)
	}

	return nil
}

// CountCacheRows returns the number of index rows.
func (s *SQLiteStorage) CountCacheRows(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM cache_index").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count cache index rows: %w", err)
	}
	return count, nil
}
