package refresh

import (
	"context"
	"log/slog"
)

// ItemFunc performs the refresh work for one item. The upstream client that
// actually talks to the chat API is injected here.
type ItemFunc func(ctx context.Context, index int) error

// Runner drives one refresh job run, reporting through the Tracker.
type Runner struct {
	tracker *Tracker
	logger  *slog.Logger
}

// NewRunner creates a Runner.
func NewRunner(tracker *Tracker, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{tracker: tracker, logger: logger}
}

// Run executes fn for each of total items, resetting the progress record at
// the start and clearing the running flag at the end. Item failures are
// counted, not fatal; a context cancellation stops the run early with the
// counters reflecting completed work.
func (r *Runner) Run(ctx context.Context, total int, fn ItemFunc) error {
	// Progress writes are detached from ctx so a cancelled run still leaves
	// an accurate record behind
	updCtx := context.WithoutCancel(ctx)

	err := r.tracker.Update(updCtx, Patch{
		Running: ptrBool(true),
		Current: ptrInt64(0),
		Total:   ptrInt64(int64(total)),
		Success: ptrInt64(0),
		Failed:  ptrInt64(0),
	})
	if err != nil {
		return err
	}

	var success, failed int64
	for i := 0; i < total; i++ {
		if ctx.Err() != nil {
			break
		}

		if err := fn(ctx, i); err != nil {
			failed++
			r.logger.Warn("refresh item failed", "index", i, "error", err)
		} else {
			success++
		}

		err := r.tracker.Update(updCtx, Patch{
			Current: ptrInt64(int64(i + 1)),
			Success: ptrInt64(success),
			Failed:  ptrInt64(failed),
		})
		if err != nil {
			return err
		}
	}

	// Clear the running flag even when the run was cancelled
	return r.tracker.Update(updCtx, Patch{Running: ptrBool(false)})
}
