package store

import (
	"time"

	"github.com/ayoisaiah/detox/internal/models"
)

// DB is the database storage interface.
type DB interface {
	// SaveSession records a completed session. A session with the same start
	// time is overwritten.
	SaveSession(sess *models.Session) error
	// GetSessions returns the sessions that started within the time range
	GetSessions(startTime, endTime time.Time) ([]*models.Session, error)
	// DeleteSessions deletes one or more saved sessions
	DeleteSessions(sessions []*models.Session) error
	// Close ends the database connection
	Close() error
}
