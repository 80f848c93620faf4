// Package storage provides types and interfaces for SQLite persistence operations.
package storage

import (
	"context"
	"time"
)

// Storage defines the interface for SQLite persistence operations.
type Storage interface {
	// API key operations
	ListAPIKeys(ctx context.Context) ([]*APIKey, error)
	AddAPIKey(ctx context.Context, name string) (*APIKey, error)
	BatchAddAPIKeys(ctx context.Context, namePrefix string, count int) ([]*APIKey, error)
	DeleteAPIKey(ctx context.Context, key string) (bool, error)
	BatchDeleteAPIKeys(ctx context.Context, keys []string) (int64, error)
	SetAPIKeyActive(ctx context.Context, key string, active bool) (bool, error)
	BatchSetAPIKeyActive(ctx context.Context, keys []string, active bool) (int64, error)
	RenameAPIKey(ctx context.Context, key, name string) (bool, error)
	ValidateAPIKey(ctx context.Context, key string) (*APIKey, error)
	CountActiveAPIKeys(ctx context.Context) (int64, error)

	// Admin session operations
	CreateAdminSession(ctx context.Context, ttl time.Duration) (string, error)
	DeleteAdminSession(ctx context.Context, token string) error
	VerifyAdminSession(ctx context.Context, token string) (bool, error)

	// Cache index operations
	InsertCacheRow(ctx context.Context, key string, createdAt int64) error
	OldestCacheRows(ctx context.Context, limit int) ([]*CacheIndexRow, error)
	DeleteCacheRows(ctx context.Context, keys []string) error
	CountCacheRows(ctx context.Context) (int64, error)

	// Refresh progress operations
	GetRefreshProgress(ctx context.Context) (*RefreshProgress, error)
	PutRefreshProgress(ctx context.Context, p *RefreshProgress) error

	// Request log operations
	InsertRequestLog(ctx context.Context, entry *RequestLog) error
	ListRequestLogs(ctx context.Context, limit int) ([]*RequestLog, error)
	ClearRequestLogs(ctx context.Context) error
	RequestLogsSince(ctx context.Context, sinceMs int64) ([]*LogSample, error)
	ModelCountsSince(ctx context.Context, sinceMs int64, limit int) ([]*ModelCount, error)

	// Lifecycle
	Close() error
}
