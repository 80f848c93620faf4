package storage

// APIKey represents a gateway API key.
// CreatedAt is epoch seconds.
type APIKey struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
	IsActive  bool   `json:"is_active"`
}

// AdminSession represents an operator login session.
// ExpiresAt is epoch milliseconds; expiry is absolute, sessions are never renewed.
type AdminSession struct {
	Token     string
	ExpiresAt int64
}

// CacheIndexRow tracks one live entry of the external key-value cache.
// The row is authoritative for existence; the KV store holds the payload.
// CreatedAt is epoch milliseconds.
type CacheIndexRow struct {
	Key       string
	CreatedAt int64
}

// RefreshProgress is the singleton status row for the token refresh job.
// UpdatedAt is epoch milliseconds, stamped on every write.
type RefreshProgress struct {
	Running   bool  `json:"running"`
	Current   int64 `json:"current"`
	Total     int64 `json:"total"`
	Success   int64 `json:"success"`
	Failed    int64 `json:"failed"`
	UpdatedAt int64 `json:"updated_at"`
}

// RequestLog is one append-only record of a completed upstream call.
type RequestLog struct {
	ID          string `json:"id"`
	Time        string `json:"time"` // human-readable UTC, "2006-01-02 15:04:05"
	Timestamp   int64  `json:"timestamp"`
	IP          string `json:"ip"`
	Model       string `json:"model"`
	Duration    int64  `json:"duration"` // milliseconds
	Status      int    `json:"status"`
	KeyName     string `json:"key_name"`
	TokenSuffix string `json:"token_suffix"`
	Error       string `json:"error"`
}

// LogSample is the projection of a request log used for time bucketing.
type LogSample struct {
	Timestamp int64
	Status    int
}

// ModelCount is one row of the model usage leaderboard.
type ModelCount struct {
	Model string `json:"model"`
	Count int64  `json:"count"`
}
