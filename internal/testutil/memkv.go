// Package testutil provides shared test doubles for the gateway packages.
package testutil

import (
	"context"
	"sync"
	"time"
)

// MemKV is an in-memory KV store for tests, implementing cache.KV.
// Individual keys can be made to fail deletion to exercise the sweeper's
// partial-failure handling.
type MemKV struct {
	mu         sync.Mutex
	entries    map[string]string
	failDelete map[string]error
	deletes    int
}

// NewMemKV creates an empty MemKV.
func NewMemKV() *MemKV {
	return &MemKV{
		entries:    make(map[string]string),
		failDelete: make(map[string]error),
	}
}

// Get returns the stored value, with false on a miss.
func (m *MemKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[key]
	return v, ok, nil
}

// Set stores a value. The ttl is ignored; tests drive eviction explicitly.
func (m *MemKV) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

// Delete removes a key, or fails if the key was registered with FailDelete.
func (m *MemKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.failDelete[key]; ok {
		return err
	}
	delete(m.entries, key)
	m.deletes++
	return nil
}

// FailDelete makes future deletions of key return err.
func (m *MemKV) FailDelete(key string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failDelete[key] = err
}

// Len returns the number of stored entries.
func (m *MemKV) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Deletes returns how many deletions succeeded.
func (m *MemKV) Deletes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deletes
}
