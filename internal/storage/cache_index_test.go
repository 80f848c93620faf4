package storage

import (
	"context"
	"fmt"
	"testing"

	_ "modernc.org/sqlite"
)

// TestInsertCacheRow verifies insert and replace-on-rewrite behavior.
func TestInsertCacheRow(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)
	ctx := context.Background()

	if err := s.InsertCacheRow(ctx, "chat:abc", 1000); err != nil {
		t.Fatalf("InsertCacheRow failed: %v", err)
	}

	// Rewriting the same key replaces the row instead of failing
	if err := s.InsertCacheRow(ctx, "chat:abc", 2000); err != nil {
		t.Fatalf("InsertCacheRow replace failed: %v", err)
	}

	count, err := s.CountCacheRows(ctx)
	if err != nil {
		t.Fatalf("CountCacheRows failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 row, got %d", count)
	}

	rows, err := s.OldestCacheRows(ctx, 10)
	if err != nil {
		t.Fatalf("OldestCacheRows failed: %v", err)
	}
	if len(rows) != 1 || rows[0].CreatedAt != 2000 {
		t.Errorf("expected created_at 2000 after replace, got %+v", rows[0])
	}
}

// TestInsertCacheRowEmptyKey verifies that empty keys are rejected.
func TestInsertCacheRowEmptyKey(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)

	if err := s.InsertCacheRow(context.Background(), "", 1000); err == nil {
		t.Fatalf("expected error for empty key, got nil")
	}
}

// TestOldestCacheRows verifies oldest-first ordering and the limit.
func TestOldestCacheRows(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		key := fmt.Sprintf("entry-%d", i)
		if err := s.InsertCacheRow(ctx, key, int64(5000-i*1000)); err != nil {
			t.Fatalf("InsertCacheRow failed: %v", err)
		}
	}

	rows, err := s.OldestCacheRows(ctx, 3)
	if err != nil {
		t.Fatalf("OldestCacheRows failed: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	// entry-4 has created_at 1000, entry-3 2000, entry-2 3000
	want := []string{"entry-4", "entry-3", "entry-2"}
	for i, r := range rows {
		if r.Key != want[i] {
			t.Errorf("row[%d]: expected key %q, got %q", i, want[i], r.Key)
		}
	}
}

// TestOldestCacheRowsEmpty verifies the empty-store case.
func TestOldestCacheRowsEmpty(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)

	rows, err := s.OldestCacheRows(context.Background(), 200)
	if err != nil {
		t.Fatalf("OldestCacheRows failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}

// TestDeleteCacheRows verifies bulk deletion by key list.
func TestDeleteCacheRows(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		if err := s.InsertCacheRow(ctx, fmt.Sprintf("k%d", i), int64(i+1)); err != nil {
			t.Fatalf("InsertCacheRow failed: %v", err)
		}
	}

	if err := s.DeleteCacheRows(ctx, []string{"k0", "k2", "missing"}); err != nil {
		t.Fatalf("DeleteCacheRows failed: %v", err)
	}

	count, err := s.CountCacheRows(ctx)
	if err != nil {
		t.Fatalf("CountCacheRows failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 remaining rows, got %d", count)
	}

	// Deleting nothing is a no-op
	if err := s.DeleteCacheRows(ctx, nil); err != nil {
		t.Errorf("expected nil for empty key list, got %v", err)
	}
}
