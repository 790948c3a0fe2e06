package db

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tride/tride/internal/models"
)

// Store is the session record store, backed by SQLite. It assigns every
// authoritative timestamp (session start/end, note creation) from its own
// clock so callers can never supply skewed or tampered instants.
type Store struct {
	db  *gorm.DB
	tz  *time.Location
	now func() time.Time

	mu      sync.Mutex
	subs    map[int]subscriber
	nextSub int
}

// Options configures a Store
type Options struct {
	// Path of the SQLite file; empty means ~/.tride/tride.db, ":memory:"
	// gives a throwaway store for tests
	Path string
	// Timezone used to derive session date keys; nil means UTC
	Timezone *time.Location
	// Now overrides the store clock, for tests
	Now func() time.Time
}

// Open sets up the database connection and runs migrations
func Open(opts Options) (*Store, error) {
	path := opts.Path
	if path == "" {
		defaultPath, err := defaultDatabasePath()
		if err != nil {
			return nil, fmt.Errorf("failed to get database path: %w", err)
		}
		path = defaultPath
	}

	if path != ":memory:" {
		// Ensure the directory exists
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create tride directory: %w", err)
		}
	}

	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := &Store{
		db:   gdb,
		tz:   opts.Timezone,
		now:  opts.Now,
		subs: make(map[int]subscriber),
	}
	if store.tz == nil {
		store.tz = time.UTC
	}
	if store.now == nil {
		store.now = time.Now
	}

	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// defaultDatabasePath returns the path to the SQLite database file
func defaultDatabasePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".tride", "tride.db"), nil
}

// migrate creates/updates the database schema
func (s *Store) migrate() error {
	if err := s.db.AutoMigrate(
		&models.Session{},
		&models.Tag{},
		&models.SessionTag{},
		&models.Note{},
	); err != nil {
		return err
	}

	// Backstop for the one-open-session-per-user invariant: even if two
	// processes race past the transactional pre-check, the second insert
	// fails here instead of leaving two open sessions.
	return s.db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_open_owner
		 ON sessions(user_id) WHERE ended_at IS NULL`,
	).Error
}

// Close closes the database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
