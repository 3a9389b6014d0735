package session

import "github.com/ayoisaiah/detox/internal/apperr"

var (
	// ErrSessionActive is returned when a session is started while another
	// one is in progress.
	ErrSessionActive = &apperr.Error{
		Message: "a detox session is already active",
	}

	// ErrNoActiveSession is returned when ending a session while idle.
	ErrNoActiveSession = &apperr.Error{
		Message: "no active detox session",
	}

	// ErrLocked is returned when the user tries to end a session in locked
	// mode.
	ErrLocked = &apperr.Error{
		Message: "locked mode: cannot end the session until time is up",
	}

	// ErrExitLocked is returned when the user tries to quit during a session
	// in locked mode.
	ErrExitLocked = &apperr.Error{
		Message: "locked mode: cannot exit during a session",
	}
)
