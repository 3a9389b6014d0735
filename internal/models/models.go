// Package models defines the records shared between the session state
// machine, the data store and the command-line interface
package models

import "time"

// Session is a completed detox session as recorded in the history.
type Session struct {
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Authority    string    `json:"authority"`
	AppsKilled   []string  `json:"apps_killed"`
	SitesBlocked int       `json:"sites_blocked"`
	Minutes      uint      `json:"minutes"`
}

// Status describes the state of a running detox instance.
type Status struct {
	StartedAt          time.Time `json:"started_at"`
	UpdatedAt          time.Time `json:"updated_at"`
	Phase              string    `json:"phase"`
	ScheduleStart      string    `json:"schedule_start,omitempty"`
	ScheduleEnd        string    `json:"schedule_end,omitempty"`
	AccumulatedMinutes uint      `json:"accumulated_minutes"`
	ElapsedMinutes     uint      `json:"elapsed_minutes"`
	LimitMinutes       uint      `json:"limit_minutes"`
	LimitEnabled       bool      `json:"limit_enabled"`
	LockedMode         bool      `json:"locked_mode"`
}

// Active reports whether a session is in progress.
func (s *Status) Active() bool {
	return s.Phase == "active"
}

// TotalMinutes is the usage counted against the daily limit.
func (s *Status) TotalMinutes() uint {
	return s.AccumulatedMinutes + s.ElapsedMinutes
}

// RemainingMinutes returns the minutes left before the daily limit ends the
// session. ok is false when no limit is enabled.
func (s *Status) RemainingMinutes() (remaining uint, ok bool) {
	if !s.LimitEnabled {
		return 0, false
	}

	if s.TotalMinutes() >= s.LimitMinutes {
		return 0, true
	}

	return s.LimitMinutes - s.TotalMinutes(), true
}
