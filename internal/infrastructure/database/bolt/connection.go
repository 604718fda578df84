package bolt

import (
	"fmt"
	"os"
	"time"

	"go.etcd.io/bbolt"

	"ummatcal/internal/pkg/logger"
)

var (
	remindersBucket = []byte("reminders")
	settingsBucket  = []byte("settings")
)

// Store wraps the bbolt database holding all persisted application state.
type Store struct {
	db  *bbolt.DB
	log logger.Logger
}

// Open opens (or creates) the database file and ensures the buckets
// exist. The path defaults to REMINDER_DB_PATH, falling back to
// reminders.db in the working directory.
func Open(path string, log logger.Logger) (*Store, error) {
	if path == "" {
		path = os.Getenv("REMINDER_DB_PATH")
	}
	if path == "" {
		path = "reminders.db"
		log.Warn("REMINDER_DB_PATH not set, defaulting to 'reminders.db'")
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(remindersBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(settingsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create buckets: %w", err)
	}

	log.Info(fmt.Sprintf("Opened database %s", path))
	return &Store{db: db, log: log}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
