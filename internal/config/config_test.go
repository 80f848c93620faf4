package config

import "testing"

// TestLoadDefaults verifies defaults with a clean environment.
func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"LOG_LEVEL", "LISTEN_ADDR", "METRICS_LISTEN_ADDR", "DATABASE_PATH",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "GROK_API_KEY",
		"ADMIN_PASSWORD", "KV_CLEANUP_BATCH", "CACHE_TZ_OFFSET_MINUTES",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level 'info', got %q", cfg.LogLevel)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("expected default listen addr ':8080', got %q", cfg.ListenAddr)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("expected default redis addr, got %q", cfg.RedisAddr)
	}
	if cfg.CleanupBatchSize != 200 {
		t.Errorf("expected default cleanup batch 200, got %d", cfg.CleanupBatchSize)
	}
}

// TestLoadOverrides verifies explicit environment values.
func TestLoadOverrides(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9999")
	t.Setenv("KV_CLEANUP_BATCH", "50")
	t.Setenv("CACHE_TZ_OFFSET_MINUTES", "480")
	t.Setenv("GROK_API_KEY", "global-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ListenAddr != ":9999" {
		t.Errorf("expected ':9999', got %q", cfg.ListenAddr)
	}
	if cfg.CleanupBatchSize != 50 {
		t.Errorf("expected batch 50, got %d", cfg.CleanupBatchSize)
	}
	if cfg.TZOffsetMinutes != 480 {
		t.Errorf("expected offset 480, got %d", cfg.TZOffsetMinutes)
	}
	if cfg.AdminSecret != "global-secret" {
		t.Errorf("expected admin secret from env, got %q", cfg.AdminSecret)
	}
}

// TestLoadInvalidInt verifies that malformed numeric values are rejected.
func TestLoadInvalidInt(t *testing.T) {
	t.Setenv("KV_CLEANUP_BATCH", "many")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-numeric KV_CLEANUP_BATCH")
	}
}

// TestValidate verifies the ADMIN_PASSWORD requirement.
func TestValidate(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Errorf("expected error for missing admin password")
	}

	cfg.AdminPassword = "hunter2"
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}
