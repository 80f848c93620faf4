package logging

import "testing"

// TestTokenSuffix verifies suffix extraction for logging attribution.
func TestTokenSuffix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"abc", "abc"},
		{"abcd", "abcd"},
		{"sk-abcdef123456", "3456"},
	}

	for _, tt := range tests {
		if got := TokenSuffix(tt.in); got != tt.want {
			t.Errorf("TokenSuffix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestMaskToken verifies display masking.
func TestMaskToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"short", "short"},
		{"exactly12chr", "exactly12chr"},
		{"sk-abcdefghijklmnop", "sk-abc...mnop"},
	}

	for _, tt := range tests {
		if got := MaskToken(tt.in); got != tt.want {
			t.Errorf("MaskToken(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestMaskHeader verifies that only sensitive headers are masked.
func TestMaskHeader(t *testing.T) {
	t.Parallel()

	masked := MaskHeader("Authorization", "Bearer sk-abcdefghijklmnop")
	if masked != "Bearer sk-abc...mnop" {
		t.Errorf("unexpected masked value %q", masked)
	}

	plain := MaskHeader("Content-Type", "application/json")
	if plain != "application/json" {
		t.Errorf("expected pass-through, got %q", plain)
	}

	lower := MaskHeader("authorization", "Bearer sk-abcdefghijklmnop")
	if lower != "Bearer sk-abc...mnop" {
		t.Errorf("expected case-insensitive match, got %q", lower)
	}
}
