package session

import "time"

// ElapsedMinutes returns the whole minutes between startedAt and now,
// rounded down. A zero startedAt counts as no time elapsed.
func ElapsedMinutes(startedAt, now time.Time) uint {
	if startedAt.IsZero() || !now.After(startedAt) {
		return 0
	}

	return uint(now.Sub(startedAt) / time.Minute)
}
