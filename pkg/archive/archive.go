package archive

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mkling/logbook/pkg/logger"
	"github.com/mkling/logbook/pkg/store"
	bolt "go.etcd.io/bbolt"
)

// Bucket names.
var (
	bucketUsers    = []byte("deleted_users")    // ID -> DeletedUser
	bucketSessions = []byte("deleted_sessions") // ID -> DeletedSession
)

// archive implements the Archive interface using BoltDB.
type archive struct {
	db     *bolt.DB
	logger logger.Logger
	now    func() time.Time
}

// New creates a new archive.
//
// Parameters:
//   - cfg: Archive configuration
//   - log: Logger instance
//
// Returns:
//   - Configured Archive
//   - Error if database cannot be opened
func New(cfg Config, log logger.Logger) (Archive, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = time.Second
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	dbPath := expandHome(cfg.DBPath)

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	db, err := bolt.Open(dbPath, 0600, &bolt.Options{
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open archive database: %w", err)
	}

	// Initialize buckets.
	if err := db.Update(func(tx *bolt.Tx) error {
		if _, createErr := tx.CreateBucketIfNotExists(bucketUsers); createErr != nil {
			return fmt.Errorf("failed to create users bucket: %w", createErr)
		}
		if _, createErr := tx.CreateBucketIfNotExists(bucketSessions); createErr != nil {
			return fmt.Errorf("failed to create sessions bucket: %w", createErr)
		}
		return nil
	}); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("failed to close archive after initialization error",
				"error", closeErr)
		}
		return nil, err
	}

	log.Info("archive opened", "db_path", dbPath)

	return &archive{
		db:     db,
		logger: log,
		now:    cfg.Now,
	}, nil
}

// RecordUser implements Archive.RecordUser.
func (a *archive) RecordUser(u store.User) error {
	if u.ID == "" {
		return ErrMissingID
	}

	record := DeletedUser{
		User:      u,
		DeletedAt: a.now(),
	}

	return a.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to marshal user record: %w", err)
		}

		if err := tx.Bucket(bucketUsers).Put([]byte(u.ID), data); err != nil {
			return fmt.Errorf("failed to store user record: %w", err)
		}

		a.logger.Info("user archived", "id", u.ID, "name", u.Name)
		return nil
	})
}

// RecordSessions implements Archive.RecordSessions.
func (a *archive) RecordSessions(sessions []store.Session) error {
	if len(sessions) == 0 {
		return nil
	}

	for _, s := range sessions {
		if s.ID == "" {
			return ErrMissingID
		}
	}

	deletedAt := a.now()

	return a.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSessions)

		for _, s := range sessions {
			record := DeletedSession{
				Session:   s,
				DeletedAt: deletedAt,
			}

			data, err := json.Marshal(record)
			if err != nil {
				return fmt.Errorf("failed to marshal session record: %w", err)
			}

			if err := b.Put([]byte(s.ID), data); err != nil {
				return fmt.Errorf("failed to store session record: %w", err)
			}
		}

		a.logger.Info("sessions archived", "count", len(sessions))
		return nil
	})
}

// Users implements Archive.Users.
func (a *archive) Users() ([]DeletedUser, error) {
	users := make([]DeletedUser, 0, 10)

	err := a.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketUsers)

		return b.ForEach(func(k, v []byte) error {
			var record DeletedUser
			if unmarshalErr := json.Unmarshal(v, &record); unmarshalErr != nil {
				a.logger.Warn("failed to unmarshal archived user",
					"id", string(k),
					"error", unmarshalErr)
				return nil // Skip invalid entries.
			}

			users = append(users, record)
			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list archived users: %w", err)
	}

	return users, nil
}

// Sessions implements Archive.Sessions.
func (a *archive) Sessions() ([]DeletedSession, error) {
	sessions := make([]DeletedSession, 0, 10)

	err := a.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSessions)

		return b.ForEach(func(k, v []byte) error {
			var record DeletedSession
			if unmarshalErr := json.Unmarshal(v, &record); unmarshalErr != nil {
				a.logger.Warn("failed to unmarshal archived session",
					"id", string(k),
					"error", unmarshalErr)
				return nil // Skip invalid entries.
			}

			sessions = append(sessions, record)
			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list archived sessions: %w", err)
	}

	return sessions, nil
}

// Close implements Archive.Close.
func (a *archive) Close() error {
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("failed to close archive database: %w", err)
	}

	a.logger.Info("archive closed")
	return nil
}

// expandHome expands ~ in file paths to the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	if path == "~" {
		return homeDir
	}

	return filepath.Join(homeDir, path[2:])
}
