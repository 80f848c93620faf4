package cache

import (
	"context"
	"log/slog"
	"sync"

	"grok-gateway/internal/metrics"
	"grok-gateway/internal/storage"
)

const (
	// DefaultBatchSize is the eviction batch size when none is configured.
	DefaultBatchSize = 200
	// MinBatchSize and MaxBatchSize bound the configurable batch size.
	MinBatchSize = 1
	MaxBatchSize = 500

	// maxSweepIterations caps the work done by a single Sweep call so an
	// invocation cannot run unbounded. Partial progress is fine; the caller
	// re-invokes on the next schedule.
	maxSweepIterations = 200
)

// ClampBatchSize bounds n to [MinBatchSize, MaxBatchSize], substituting
// DefaultBatchSize for zero or negative values.
func ClampBatchSize(n int) int {
	if n <= 0 {
		n = DefaultBatchSize
	}
	if n < MinBatchSize {
		return MinBatchSize
	}
	if n > MaxBatchSize {
		return MaxBatchSize
	}
	return n
}

// IndexStore is the subset of storage the sweeper needs.
type IndexStore interface {
	OldestCacheRows(ctx context.Context, limit int) ([]*storage.CacheIndexRow, error)
	DeleteCacheRows(ctx context.Context, keys []string) error
}

// Sweeper evicts the oldest cache entries in bounded batches, keeping the KV
// store and the relational index consistent.
type Sweeper struct {
	kv        KV
	index     IndexStore
	batchSize int
	logger    *slog.Logger
}

// NewSweeper creates a Sweeper. batchSize is clamped to [1, 500].
func NewSweeper(kv KV, index IndexStore, batchSize int, logger *slog.Logger) *Sweeper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{
		kv:        kv,
		index:     index,
		batchSize: ClampBatchSize(batchSize),
		logger:    logger,
	}
}

// Sweep runs one bounded eviction pass and returns how many entries were
// fully removed (payload and index row).
//
// Each iteration takes the oldest batch of index rows, deletes the KV
// payloads concurrently, then bulk-deletes index rows only for keys whose
// payload deletion was confirmed. Keys that failed stay indexed and are
// retried on the next sweep. The pass stops when a batch comes back empty or
// short, or after the iteration cap.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	deleted := 0

	for i := 0; i < maxSweepIterations; i++ {
		rows, err := s.index.OldestCacheRows(ctx, s.batchSize)
		if err != nil {
			return deleted, err
		}
		if len(rows) == 0 {
			break
		}

		keys := make([]string, len(rows))
		for j, r := range rows {
			keys[j] = r.Key
		}

		confirmed := s.deleteFromKV(ctx, keys)
		if len(confirmed) > 0 {
			if err := s.index.DeleteCacheRows(ctx, confirmed); err != nil {
				return deleted, err
			}
			deleted += len(confirmed)
			metrics.RecordCacheEvictions(len(confirmed))
		}

		if len(confirmed) < len(keys) {
			// Some payload deletions failed; their index rows were kept for
			// the next sweep. Don't spin on the same batch.
			break
		}
		if len(rows) < s.batchSize {
			break
		}
	}

	return deleted, nil
}

// deleteFromKV fans out payload deletions for one batch and returns the keys
// whose deletion succeeded. Order within the batch is irrelevant.
func (s *Sweeper) deleteFromKV(ctx context.Context, keys []string) []string {
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		confirmed = make([]string, 0, len(keys))
	)

	for _, key := range keys {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			if err := s.kv.Delete(ctx, key); err != nil {
				s.logger.Warn("cache eviction: KV delete failed, index row retained",
					"key", key, "error", err)
				metrics.RecordSweepFailure()
				return
			}
			mu.Lock()
			confirmed = append(confirmed, key)
			mu.Unlock()
		}(key)
	}

	wg.Wait()
	return confirmed
}
