package session

import (
	"time"

	"github.com/ayoisaiah/detox/internal/timeutil"
)

// Trigger decides when a daily schedule boundary is due. A boundary is due
// when the time since the previous check crosses it, and each boundary
// fires at most once per calendar day.
type Trigger struct {
	lastCheck   time.Time
	start       timeutil.TimeOfDay
	end         timeutil.TimeOfDay
	granularity time.Duration
	startFired  int
	endFired    int
	armed       bool
}

// NewTrigger returns an unarmed trigger. On the first check after arming, a
// boundary passed within the last granularity is still considered due.
func NewTrigger(granularity time.Duration) *Trigger {
	return &Trigger{granularity: granularity}
}

// Set arms the trigger with a new schedule.
func (t *Trigger) Set(start, end timeutil.TimeOfDay) {
	*t = Trigger{
		granularity: t.granularity,
		start:       start,
		end:         end,
		armed:       true,
	}
}

// Clear disarms the trigger.
func (t *Trigger) Clear() {
	*t = Trigger{granularity: t.granularity}
}

// SetGranularity changes the look-back used on the first check.
func (t *Trigger) SetGranularity(d time.Duration) {
	t.granularity = d
}

// Window returns the armed schedule.
func (t *Trigger) Window() (start, end timeutil.TimeOfDay, ok bool) {
	return t.start, t.end, t.armed
}

// Check reports which boundaries were crossed since the previous check.
// When both were crossed and the window has already closed, only the end
// is reported.
func (t *Trigger) Check(now time.Time) (startDue, endDue bool) {
	if !t.armed {
		return false, false
	}

	since := t.lastCheck
	if since.IsZero() || since.After(now) {
		since = now.Add(-t.granularity)
	}

	t.lastCheck = now

	startAt := lastOccurrence(t.start, now)
	endAt := lastOccurrence(t.end, now)

	startDue = crossed(startAt, since, t.startFired)
	endDue = crossed(endAt, since, t.endFired)

	if startDue {
		t.startFired = timeutil.DayFormat(startAt)
	}

	if endDue {
		t.endFired = timeutil.DayFormat(endAt)
	}

	// the window opened and closed between checks
	if startDue && endDue && startAt.Before(endAt) {
		startDue = false
	}

	return startDue, endDue
}

// lastOccurrence returns the most recent instant at or before now that
// falls on tod.
func lastOccurrence(tod timeutil.TimeOfDay, now time.Time) time.Time {
	at := tod.On(now)
	if at.After(now) {
		at = tod.On(now.AddDate(0, 0, -1))
	}

	return at
}

func crossed(at, since time.Time, firedDay int) bool {
	return at.After(since) && timeutil.DayFormat(at) != firedDay
}
