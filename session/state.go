package session

import "time"

// Phase is the lifecycle phase of a session.
type Phase int

const (
	Idle Phase = iota
	Active
)

func (p Phase) String() string {
	if p == Active {
		return "active"
	}

	return "idle"
}

// Authority is the source of a session transition. Locked mode only
// restrains the Manual authority.
type Authority int

const (
	Manual Authority = iota
	Limit
	Schedule
)

func (a Authority) String() string {
	switch a {
	case Limit:
		return "limit"
	case Schedule:
		return "schedule"
	default:
		return "manual"
	}
}

// State is the in-memory session state. StartedAt is zero unless the phase
// is Active. AccumulatedMinutes survives stop and start cycles for the
// lifetime of the process.
type State struct {
	StartedAt          time.Time
	Phase              Phase
	AccumulatedMinutes uint
}

// Result describes the outcome of a session transition.
type Result struct {
	// Errors holds collaborator failures that did not stop the transition.
	Errors       []error
	Warnings     []string
	AppsKilled   []string
	Authority    Authority
	Phase        Phase
	SitesBlocked int
	// Minutes is the number of minutes added to the accumulated total when
	// a session ends.
	Minutes      uint
	LimitReached bool
}

// EventKind identifies an Event.
type EventKind int

const (
	EventStarted EventKind = iota
	EventEnded
	EventScheduleSet
	EventScheduleCleared
	EventPlaybackFailed
	EventError
)

// Event reports something that happened outside of a direct command, such
// as a scheduled start or the daily limit ending a session.
type Event struct {
	Time    time.Time
	Err     error
	Result  *Result
	Message string
	Kind    EventKind
}
