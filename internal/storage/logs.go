package storage

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// FormatUTCMillis renders an epoch-ms timestamp as "2006-01-02 15:04:05" UTC.
func FormatUTCMillis(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02 15:04:05")
}

// InsertRequestLog appends one request log row.
// Timestamp, Time and ID are filled in when unset; ID defaults to the
// millisecond timestamp as a string.
func (s *SQLiteStorage) InsertRequestLog(ctx context.Context, entry *RequestLog) error {
	if entry.Timestamp == 0 {
		entry.Timestamp = time.Now().UnixMilli()
	}
	if entry.ID == "" {
		entry.ID = strconv.FormatInt(entry.Timestamp, 10)
	}
	if entry.Time == "" {
		entry.Time = FormatUTCMillis(entry.Timestamp)
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO request_logs (id, time, timestamp, ip, model, duration, status, key_name, token_suffix, error) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		entry.ID, entry.Time, entry.Timestamp, entry.IP, entry.Model,
		entry.Duration, entry.Status, entry.KeyName, entry.TokenSuffix, entry.Error,
	)
	if err != nil {
		if isUniqueConstraint(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert request log: %w", err)
	}

	return nil
}

// ListRequestLogs returns up to limit rows, newest first.
func (s *SQLiteStorage) ListRequestLogs(ctx context.Context, limit int) ([]*RequestLog, error) {
	if limit <= 0 {
		limit = 1000
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, time, timestamp, ip, model, duration, status, key_name, token_suffix, error FROM request_logs ORDER BY timestamp DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query request logs: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var logs []*RequestLog

	for rows.Next() {
		var l RequestLog
		if err := rows.Scan(&l.ID, &l.Time, &l.Timestamp, &l.IP, &l.Model,
			&l.Duration, &l.Status, &l.KeyName, &l.TokenSuffix, &l.Error); err != nil {
			return nil, fmt.Errorf("failed to scan request log row: %w", err)
		}
		logs = append(logs, &l)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating request logs: %w", err)
	}

	if logs == nil {
		logs = make([]*RequestLog, 0)
	}

	return logs, nil
}

// ClearRequestLogs deletes all rows.
func (s *SQLiteStorage) ClearRequestLogs(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM request_logs"); err != nil {
		return fmt.Errorf("failed to clear request logs: %w", err)
	}
	return nil
}

// RequestLogsSince returns (timestamp, status) samples at or after sinceMs,
// oldest first. The aggregator buckets these in memory.
func (s *SQLiteStorage) RequestLogsSince(ctx context.Context, sinceMs int64) ([]*LogSample, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT timestamp, status FROM request_logs WHERE timestamp >= ? ORDER BY timestamp ASC",
		sinceMs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query log samples: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var samples []*LogSample

	for rows.Next() {
		var sample LogSample
		if err := rows.Scan(&sample.Timestamp, &sample.Status); err != nil {
			return nil, fmt.Errorf("failed to scan log sample: %w", err)
		}
		samples = append(samples, &sample)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating log samples: %w", err)
	}

	return samples, nil
}

// ModelCountsSince returns the most used models at or after sinceMs,
// descending by row count, at most limit entries.
func (s *SQLiteStorage) ModelCountsSince(ctx context.Context, sinceMs int64, limit int) ([]*ModelCount, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT model, COUNT(1) AS count FROM request_logs WHERE timestamp >= ? GROUP BY model ORDER BY count DESC LIMIT ?",
		sinceMs, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query model counts: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var counts []*ModelCount

	for rows.Next() {
		var c ModelCount
		if err := rows.Scan(&c.Model, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan model count: %w", err)
		}
		counts = append(counts, &c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating model counts: %w", err)
	}

	if counts == nil {
		counts = make([]*ModelCount, 0)
	}

	return counts, nil
}
