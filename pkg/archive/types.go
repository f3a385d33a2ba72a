// Package archive keeps a persistent record of deleted logbook entries.
//
// Deleting a user or session removes it from the live document for good;
// the archive gives those records a place to land so an accidental delete
// is recoverable by hand. Records are stored in BoltDB keyed by their
// original ID.
//
// Example usage:
//
//	arc, err := archive.New(archive.Config{
//	    DBPath: "~/.config/logbook/archive.db",
//	}, log)
//	if err != nil {
//	    log.Error("archive unavailable", "error", err)
//	}
//	defer arc.Close()
//
//	arc.RecordUser(user)
//	arc.RecordSessions(sessions)
package archive

import (
	"time"

	"github.com/mkling/logbook/pkg/store"
)

// DeletedUser is a user record captured at deletion time.
type DeletedUser struct {
	User store.User `json:"user"`

	// DeletedAt is when the record entered the archive.
	DeletedAt time.Time `json:"deleted_at"`
}

// DeletedSession is a session record captured at deletion time.
type DeletedSession struct {
	Session store.Session `json:"session"`

	// DeletedAt is when the record entered the archive.
	DeletedAt time.Time `json:"deleted_at"`
}

// Archive provides write-once storage for deleted records.
type Archive interface {
	// RecordUser stores a deleted user.
	//
	// Returns error if:
	//   - The user has an empty ID
	//   - Database operation fails
	RecordUser(u store.User) error

	// RecordSessions stores a batch of deleted sessions in one
	// transaction. Sessions with empty IDs are rejected before any
	// write happens.
	RecordSessions(sessions []store.Session) error

	// Users returns all archived users (empty if none exist).
	Users() ([]DeletedUser, error)

	// Sessions returns all archived sessions (empty if none exist).
	Sessions() ([]DeletedSession, error)

	// Close closes the database connection and releases resources.
	Close() error
}

// Config contains archive configuration.
type Config struct {
	// DBPath is the BoltDB file path.
	DBPath string

	// Timeout is the database open timeout (default: 1 second).
	Timeout time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}
