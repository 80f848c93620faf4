// Package cache manages the gateway's two-tier response cache: payloads live
// in an external key-value store, while a relational index tracks each
// entry's key and insertion time. The index is authoritative for existence,
// the KV store for content.
package cache

import (
	"context"
	"time"
)

// KV is the external key-value store holding opaque cache payloads.
// It has no native ability to list entries by age; that's what the
// relational index is for.
type KV interface {
	// Get returns the payload for key. The second return is false on a miss.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set writes the payload. A zero ttl stores the entry without expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Delete removes the entry. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
