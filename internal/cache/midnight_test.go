package cache

import (
	"testing"
	"time"
)

// TestNextLocalMidnightSameDay verifies that two instants within the same
// local calendar day yield the same expiration.
func TestNextLocalMidnightSameDay(t *testing.T) {
	t.Parallel()

	offset := 480 // UTC+8
	morning := time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC)  // 09:00 local
	evening := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC) // 22:00 local

	a := NextLocalMidnight(morning, offset)
	b := NextLocalMidnight(evening, offset)

	if a != b {
		t.Errorf("expected same expiration for same local day, got %d and %d", a, b)
	}

	// 2026-03-11 00:00 UTC+8 is 2026-03-10 16:00 UTC
	want := time.Date(2026, 3, 10, 16, 0, 0, 0, time.UTC).Unix()
	if a != want {
		t.Errorf("expected %d, got %d", want, a)
	}
}

// TestNextLocalMidnightAtMidnight verifies that an instant exactly at local
// midnight expires a full day later, never at itself.
func TestNextLocalMidnightAtMidnight(t *testing.T) {
	t.Parallel()

	offset := 60 // UTC+1
	localMidnight := time.Date(2026, 5, 1, 23, 0, 0, 0, time.UTC) // 2026-05-02 00:00 local

	got := NextLocalMidnight(localMidnight, offset)
	want := localMidnight.Add(24 * time.Hour).Unix()

	if got != want {
		t.Errorf("expected midnight+24h (%d), got %d", want, got)
	}
}

// TestNextLocalMidnightNegativeOffset verifies timezones west of UTC.
func TestNextLocalMidnightNegativeOffset(t *testing.T) {
	t.Parallel()

	offset := -300 // UTC-5
	now := time.Date(2026, 7, 4, 3, 0, 0, 0, time.UTC) // 2026-07-03 22:00 local

	got := NextLocalMidnight(now, offset)
	// Next local midnight is 2026-07-04 00:00 UTC-5 = 2026-07-04 05:00 UTC
	want := time.Date(2026, 7, 4, 5, 0, 0, 0, time.UTC).Unix()

	if got != want {
		t.Errorf("expected %d, got %d", want, got)
	}
}

// TestNextLocalMidnightUTC verifies the zero-offset case.
func TestNextLocalMidnightUTC(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC)

	got := NextLocalMidnight(now, 0)
	want := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC).Unix()

	if got != want {
		t.Errorf("expected %d, got %d", want, got)
	}
}

// TestNextLocalMidnightStrictlyAfter verifies the result is always in the
// future relative to the input.
func TestNextLocalMidnightStrictlyAfter(t *testing.T) {
	t.Parallel()

	offsets := []int{-720, -300, 0, 60, 330, 480, 840}
	now := time.Date(2026, 11, 15, 12, 34, 56, 0, time.UTC)

	for _, offset := range offsets {
		got := NextLocalMidnight(now, offset)
		if got <= now.Unix() {
			t.Errorf("offset %d: expected expiration after %d, got %d", offset, now.Unix(), got)
		}
		if got > now.Unix()+24*60*60 {
			t.Errorf("offset %d: expected expiration within 24h, got %d", offset, got)
		}
	}
}
