package cache

import "time"

// NextLocalMidnight returns the epoch-seconds instant of the next local
// midnight strictly after now, for a timezone tzOffsetMinutes east of UTC.
//
// The instant is shifted into local-naive calendar fields, advanced to the
// next calendar day at 00:00, then shifted back to UTC. Freshly written
// cache entries expire at this instant regardless of server timezone.
func NextLocalMidnight(now time.Time, tzOffsetMinutes int) int64 {
	offset := time.Duration(tzOffsetMinutes) * time.Minute
	local := now.UTC().Add(offset)

	year, month, day := local.Date()
	nextLocal := time.Date(year, month, day+1, 0, 0, 0, 0, time.UTC)

	return nextLocal.Add(-offset).Unix()
}
