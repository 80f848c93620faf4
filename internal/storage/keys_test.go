package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	_ "modernc.org/sqlite"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	return s
}

// TestAddAPIKey verifies that AddAPIKey creates an active key with a
// generated sk- secret.
func TestAddAPIKey(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)
	ctx := context.Background()

	k, err := s.AddAPIKey(ctx, "team-alpha")
	if err != nil {
		t.Fatalf("AddAPIKey failed: %v", err)
	}

	if !strings.HasPrefix(k.Key, "sk-") {
		t.Errorf("expected sk- prefix, got %q", k.Key)
	}
	if !k.IsActive {
		t.Errorf("expected new key to be active")
	}
	if k.CreatedAt <= 0 {
		t.Errorf("expected positive created_at, got %d", k.CreatedAt)
	}

	keys, err := s.ListAPIKeys(ctx)
	if err != nil {
		t.Fatalf("ListAPIKeys failed: %v", err)
	}
	if len(keys) != 1 {
		t.Fatalf("expected 1 key, got %d", len(keys))
	}
	if keys[0].Name != "team-alpha" {
		t.Errorf("expected name 'team-alpha', got %q", keys[0].Name)
	}
}

// TestAddAPIKeyEmptyName verifies that empty name returns an error.
func TestAddAPIKeyEmptyName(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)

	_, err := s.AddAPIKey(context.Background(), "")
	if err == nil {
		t.Fatalf("expected error for empty name, got nil")
	}
	if err.Error() != "name required" {
		t.Errorf("expected 'name required' error, got %q", err.Error())
	}
}

// TestBatchAddAPIKeys verifies naming of batch-created keys.
func TestBatchAddAPIKeys(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)
	ctx := context.Background()

	keys, err := s.BatchAddAPIKeys(ctx, "bot", 3)
	if err != nil {
		t.Fatalf("BatchAddAPIKeys failed: %v", err)
	}

	if len(keys) != 3 {
		t.Fatalf("expected 3 keys, got %d", len(keys))
	}

	want := []string{"bot-1", "bot-2", "bot-3"}
	for i, k := range keys {
		if k.Name != want[i] {
			t.Errorf("key[%d]: expected name %q, got %q", i, want[i], k.Name)
		}
	}

	stored, err := s.ListAPIKeys(ctx)
	if err != nil {
		t.Fatalf("ListAPIKeys failed: %v", err)
	}
	if len(stored) != 3 {
		t.Errorf("expected 3 stored keys, got %d", len(stored))
	}
}

// TestBatchAddAPIKeysSingle verifies that a batch of one keeps the bare name.
func TestBatchAddAPIKeysSingle(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)

	keys, err := s.BatchAddAPIKeys(context.Background(), "solo", 1)
	if err != nil {
		t.Fatalf("BatchAddAPIKeys failed: %v", err)
	}
	if len(keys) != 1 {
		t.Fatalf("expected 1 key, got %d", len(keys))
	}
	if keys[0].Name != "solo" {
		t.Errorf("expected name 'solo', got %q", keys[0].Name)
	}
}

// TestDeleteAPIKey verifies delete semantics, including the false return for
// missing keys.
func TestDeleteAPIKey(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)
	ctx := context.Background()

	k, err := s.AddAPIKey(ctx, "victim")
	if err != nil {
		t.Fatalf("AddAPIKey failed: %v", err)
	}

	ok, err := s.DeleteAPIKey(ctx, k.Key)
	if err != nil {
		t.Fatalf("DeleteAPIKey failed: %v", err)
	}
	if !ok {
		t.Errorf("expected true for existing key")
	}

	ok, err = s.DeleteAPIKey(ctx, k.Key)
	if err != nil {
		t.Fatalf("DeleteAPIKey failed: %v", err)
	}
	if ok {
		t.Errorf("expected false for missing key")
	}
}

// TestBatchDeleteAPIKeys verifies that deleting 2 real and 1 nonexistent key
// reports a count of 2 and removes exactly those 2 rows.
func TestBatchDeleteAPIKeys(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)
	ctx := context.Background()

	k1, _ := s.AddAPIKey(ctx, "one")
	k2, _ := s.AddAPIKey(ctx, "two")
	k3, _ := s.AddAPIKey(ctx, "three")

	count, err := s.BatchDeleteAPIKeys(ctx, []string{k1.Key, k2.Key, "sk-does-not-exist"})
	if err != nil {
		t.Fatalf("BatchDeleteAPIKeys failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected count 2, got %d", count)
	}

	keys, err := s.ListAPIKeys(ctx)
	if err != nil {
		t.Fatalf("ListAPIKeys failed: %v", err)
	}
	if len(keys) != 1 {
		t.Fatalf("expected 1 remaining key, got %d", len(keys))
	}
	if keys[0].Key != k3.Key {
		t.Errorf("expected remaining key %q, got %q", k3.Key, keys[0].Key)
	}
}

// TestBatchDeleteAPIKeysEmpty verifies the zero-count path for an empty list.
func TestBatchDeleteAPIKeysEmpty(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)

	count, err := s.BatchDeleteAPIKeys(context.Background(), nil)
	if err != nil {
		t.Fatalf("BatchDeleteAPIKeys failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected count 0, got %d", count)
	}
}

// TestSetAPIKeyActive verifies activate/deactivate and the false return for
// missing keys.
func TestSetAPIKeyActive(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)
	ctx := context.Background()

	k, err := s.AddAPIKey(ctx, "toggler")
	if err != nil {
		t.Fatalf("AddAPIKey failed: %v", err)
	}

	ok, err := s.SetAPIKeyActive(ctx, k.Key, false)
	if err != nil {
		t.Fatalf("SetAPIKeyActive failed: %v", err)
	}
	if !ok {
		t.Errorf("expected true for existing key")
	}

	if _, err := s.ValidateAPIKey(ctx, k.Key); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for deactivated key, got %v", err)
	}

	ok, err = s.SetAPIKeyActive(ctx, "sk-missing", true)
	if err != nil {
		t.Fatalf("SetAPIKeyActive failed: %v", err)
	}
	if ok {
		t.Errorf("expected false for missing key")
	}
}

// TestBatchSetAPIKeyActive verifies the matched-row count.
func TestBatchSetAPIKeyActive(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)
	ctx := context.Background()

	k1, _ := s.AddAPIKey(ctx, "a")
	k2, _ := s.AddAPIKey(ctx, "b")

	count, err := s.BatchSetAPIKeyActive(ctx, []string{k1.Key, k2.Key, "sk-nope"}, false)
	if err != nil {
		t.Fatalf("BatchSetAPIKeyActive failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected count 2, got %d", count)
	}

	active, err := s.CountActiveAPIKeys(ctx)
	if err != nil {
		t.Fatalf("CountActiveAPIKeys failed: %v", err)
	}
	if active != 0 {
		t.Errorf("expected 0 active keys, got %d", active)
	}
}

// TestRenameAPIKey verifies rename and the false return for missing keys.
func TestRenameAPIKey(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)
	ctx := context.Background()

	k, err := s.AddAPIKey(ctx, "before")
	if err != nil {
		t.Fatalf("AddAPIKey failed: %v", err)
	}

	ok, err := s.RenameAPIKey(ctx, k.Key, "after")
	if err != nil {
		t.Fatalf("RenameAPIKey failed: %v", err)
	}
	if !ok {
		t.Errorf("expected true for existing key")
	}

	keys, _ := s.ListAPIKeys(ctx)
	if keys[0].Name != "after" {
		t.Errorf("expected name 'after', got %q", keys[0].Name)
	}

	ok, err = s.RenameAPIKey(ctx, "sk-missing", "whatever")
	if err != nil {
		t.Fatalf("RenameAPIKey failed: %v", err)
	}
	if ok {
		t.Errorf("expected false for missing key")
	}
}

// TestValidateAPIKey verifies lookup of active, inactive and absent keys.
func TestValidateAPIKey(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)
	ctx := context.Background()

	k, err := s.AddAPIKey(ctx, "caller")
	if err != nil {
		t.Fatalf("AddAPIKey failed: %v", err)
	}

	got, err := s.ValidateAPIKey(ctx, k.Key)
	if err != nil {
		t.Fatalf("ValidateAPIKey failed: %v", err)
	}
	if got.Name != "caller" {
		t.Errorf("expected name 'caller', got %q", got.Name)
	}

	if _, err := s.ValidateAPIKey(ctx, "sk-absent"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for absent key, got %v", err)
	}

	if _, err := s.ValidateAPIKey(ctx, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for empty key, got %v", err)
	}
}

// TestCountActiveAPIKeys verifies the active-key count used by bootstrap auth.
func TestCountActiveAPIKeys(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)
	ctx := context.Background()

	count, err := s.CountActiveAPIKeys(ctx)
	if err != nil {
		t.Fatalf("CountActiveAPIKeys failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 active keys, got %d", count)
	}

	k1, _ := s.AddAPIKey(ctx, "on")
	k2, _ := s.AddAPIKey(ctx, "off")
	_ = k1

	if _, err := s.SetAPIKeyActive(ctx, k2.Key, false); err != nil {
		t.Fatalf("SetAPIKeyActive failed: %v", err)
	}

	count, err = s.CountActiveAPIKeys(ctx)
	if err != nil {
		t.Fatalf("CountActiveAPIKeys failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 active key, got %d", count)
	}
}
