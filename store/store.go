// Package store connects to the data store that keeps the session history.
// Holding the database open also marks this process as the running detox
// instance.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/detox/internal/models"
	"github.com/ayoisaiah/detox/internal/timeutil"
)

const sessionBucket = "sessions"

// ErrDetoxRunning is returned when the database is locked by another instance.
var ErrDetoxRunning = errors.New(
	"is detox already running? Only one instance can be active at a time",
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

// SaveSession records a completed session keyed by its start time.
func (c *Client) SaveSession(sess *models.Session) error {
	value, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(sessionBucket)).
			Put(timeutil.ToKey(sess.StartTime), value)
	})
}

// GetSessions returns the sessions that started between startTime and
// endTime in chronological order.
func (c *Client) GetSessions(
	startTime, endTime time.Time,
) ([]*models.Session, error) {
	var sessions []*models.Session

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(sessionBucket)).Cursor()

		minKey := timeutil.ToKey(startTime)
		maxKey := timeutil.ToKey(endTime)

		for k, v := cur.Seek(minKey); k != nil && bytes.Compare(k, maxKey) <= 0; k, v = cur.Next() {
			sess := &models.Session{}

			err := json.Unmarshal(v, sess)
			if err != nil {
				return err
			}

			sessions = append(sessions, sess)
		}

		return nil
	})

	return sessions, err
}

// DeleteSessions removes the given sessions from the history.
func (c *Client) DeleteSessions(sessions []*models.Session) error {
	return c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(sessionBucket))

		for _, sess := range sessions {
			err := b.Delete(timeutil.ToKey(sess.StartTime))
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string, timeout time.Duration) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: timeout},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, ErrDetoxRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	db, err := openDB(dbPath, 1*time.Second)
	if err != nil {
		return nil, err
	}

	// Create the necessary buckets for storing data if they do not exist already
	err = db.Update(func(tx *bolt.Tx) error {
		_, err = tx.CreateBucketIfNotExists([]byte(sessionBucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Client{
		db,
	}, nil
}

// IsRunning reports whether another process holds the database open.
func IsRunning(dbPath string) (bool, error) {
	db, err := openDB(dbPath, 100*time.Millisecond)
	if errors.Is(err, ErrDetoxRunning) {
		return true, nil
	}

	if err != nil {
		return false, err
	}

	return false, db.Close()
}
