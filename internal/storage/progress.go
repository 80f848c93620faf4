package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// refreshProgressID is the fixed id of the singleton progress row.
const refreshProgressID = 1

// GetRefreshProgress returns the singleton progress row, creating a zeroed
// row on first read if none exists.
func (s *SQLiteStorage) GetRefreshProgress(ctx context.Context) (*RefreshProgress, error) {
	var p RefreshProgress
	var running int
	err := s.db.QueryRowContext(ctx,
		"SELECT running, current, total, success, failed, updated_at FROM token_refresh_progress WHERE id = ?",
		refreshProgressID,
	).Scan(&running, &p.Current, &p.Total, &p.Success, &p.Failed, &p.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		now := time.Now().UnixMilli()
		if _, err := s.db.ExecContext(ctx,
			"INSERT OR REPLACE INTO token_refresh_progress (id, running, current, total, success, failed, updated_at) VALUES (?, 0, 0, 0, 0, 0, ?)",
			refreshProgressID, now,
		); err != nil {
			return nil, fmt.Errorf("failed to initialize refresh progress: %w", err)
		}
		return &RefreshProgress{UpdatedAt: now}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query refresh progress: %w", err)
	}

	p.Running = running != 0
	return &p, nil
}

// PutRefreshProgress writes the full singleton row. The caller is expected to
// have merged its changes over the current row first (see refresh.Tracker).
func (s *SQLiteStorage) PutRefreshProgress(ctx context.Context, p *RefreshProgress) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO token_refresh_progress (id, running, current, total, success, failed, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		refreshProgressID, boolToInt(p.Running), p.Current, p.Total, p.Success, p.Failed, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to write refresh progress: %w", err)
	}
	return nil
}
