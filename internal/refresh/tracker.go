// Package refresh tracks progress of the long-running token refresh job and
// provides the harness that drives it.
package refresh

import (
	"context"
	"time"

	"grok-gateway/internal/storage"
)

// ProgressStore is the subset of storage the tracker needs.
type ProgressStore interface {
	GetRefreshProgress(ctx context.Context) (*storage.RefreshProgress, error)
	PutRefreshProgress(ctx context.Context, p *storage.RefreshProgress) error
}

// Patch holds the fields of an update. Nil fields are left unchanged.
type Patch struct {
	Running *bool
	Current *int64
	Total   *int64
	Success *int64
	Failed  *int64
}

// Tracker exposes get/merge-update semantics over the singleton progress
// record. Updates are read-modify-write with last-writer-wins on the whole
// row; the job's own running flag is the informal mutual-exclusion signal,
// so concurrent writers are not expected in practice.
type Tracker struct {
	store ProgressStore
}

// NewTracker creates a Tracker.
func NewTracker(store ProgressStore) *Tracker {
	return &Tracker{store: store}
}

// Get returns the current progress, creating a zeroed record on first read.
func (t *Tracker) Get(ctx context.Context) (*storage.RefreshProgress, error) {
	return t.store.GetRefreshProgress(ctx)
}

// Update merges the supplied fields over the current record, stamps
// updated_at with the current time and writes the full row back.
func (t *Tracker) Update(ctx context.Context, patch Patch) error {
	current, err := t.store.GetRefreshProgress(ctx)
	if err != nil {
		return err
	}

	next := *current
	if patch.Running != nil {
		next.Running = *patch.Running
	}
	if patch.Current != nil {
		next.Current = *patch.Current
	}
	if patch.Total != nil {
		next.Total = *patch.Total
	}
	if patch.Success != nil {
		next.Success = *patch.Success
	}
	if patch.Failed != nil {
		next.Failed = *patch.Failed
	}
	next.UpdatedAt = time.Now().UnixMilli()

	return t.store.PutRefreshProgress(ctx, &next)
}

func ptrBool(b bool) *bool    { return &b }
func ptrInt64(n int64) *int64 { return &n }
