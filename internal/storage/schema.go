// Package storage handles all database operations for the Grok Gateway.
package storage

import (
	"database/sql"
	"fmt"
)

// InitSchema creates all required tables and indexes.
// This is idempotent - safe to call multiple times.
func InitSchema(db *sql.DB) error {
	ddlStatements := []string{
		// api_keys table: gateway API keys issued to callers
		`CREATE TABLE IF NOT EXISTS api_keys (
			key TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			is_active INTEGER NOT NULL DEFAULT 1
		)`,

		`CREATE INDEX IF NOT EXISTS idx_api_keys_created ON api_keys(created_at)`,

		// admin_sessions table: operator login sessions, expires_at in epoch ms
		`CREATE TABLE IF NOT EXISTS admin_sessions (
			token TEXT PRIMARY KEY,
			expires_at INTEGER NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_admin_sessions_expires ON admin_sessions(expires_at)`,

		// cache_index table: one row per live KV cache entry, created_at in epoch ms
		`CREATE TABLE IF NOT EXISTS cache_index (
			key TEXT PRIMARY KEY,
			created_at INTEGER NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_cache_index_created ON cache_index(created_at)`,

		// token_refresh_progress table: singleton status row for the refresh job
		`CREATE TABLE IF NOT EXISTS token_refresh_progress (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			running INTEGER NOT NULL DEFAULT 0,
			current INTEGER NOT NULL DEFAULT 0,
			total INTEGER NOT NULL DEFAULT 0,
			success INTEGER NOT NULL DEFAULT 0,
			failed INTEGER NOT NULL DEFAULT 0,
			updated_at INTEGER NOT NULL DEFAULT 0
		)`,

		// request_logs table: append-only record of completed upstream calls
		`CREATE TABLE IF NOT EXISTS request_logs (
			id TEXT PRIMARY KEY,
			time TEXT NOT NULL,
			timestamp INTEGER NOT NULL,
			ip TEXT NOT NULL DEFAULT '',
			model TEXT NOT NULL DEFAULT '',
			duration INTEGER NOT NULL DEFAULT 0,
			status INTEGER NOT NULL DEFAULT 0,
			key_name TEXT NOT NULL DEFAULT '',
			token_suffix TEXT NOT NULL DEFAULT '',
			error TEXT NOT NULL DEFAULT ''
		)`,

		`CREATE INDEX IF NOT EXISTS idx_request_logs_timestamp ON request_logs(timestamp)`,
	}

	for _, stmt := range ddlStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute DDL: %w", err)
		}
	}

	return nil
}
