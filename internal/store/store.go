// Package store provides the SQLite storage layer for intake.
//
// One database file holds everything:
// - Extraction records: raw transcript, extracted profile, confidence
// - Named form-fill mapping templates
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultDBPath is the default database location.
const DefaultDBPath = "~/.intake/intake.db"

// ErrNotFound is returned when a record or mapping does not exist.
var ErrNotFound = errors.New("not found")

// Record is one persisted extraction run.
type Record struct {
	ID             int64
	Source         string // transcript origin, usually a file path
	Transcript     string
	ProfileJSON    string
	ConfidenceJSON string
	Completion     float64
	CreatedAt      time.Time
}

// Mapping is a named form-fill mapping template. Spec holds the mapping
// document as JSON; the formfill package owns its shape.
type Mapping struct {
	ID        int64
	Name      string
	Spec      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListOpts controls pagination for List operations.
type ListOpts struct {
	Limit  int
	Offset int
}

// StoreStats holds observability statistics about the store.
type StoreStats struct {
	RecordCount  int64
	MappingCount int64
	DBSizeBytes  int64
}

// Store defines the storage interface.
type Store interface {
	// Records
	SaveRecord(ctx context.Context, r *Record) (int64, error)
	GetRecord(ctx context.Context, id int64) (*Record, error)
	ListRecords(ctx context.Context, opts ListOpts) ([]*Record, error)
	DeleteRecord(ctx context.Context, id int64) error

	// Mappings
	SaveMapping(ctx context.Context, m *Mapping) error
	GetMapping(ctx context.Context, name string) (*Mapping, error)
	ListMappings(ctx context.Context) ([]*Mapping, error)
	DeleteMapping(ctx context.Context, name string) error

	// Observability
	Stats(ctx context.Context) (*StoreStats, error)

	Close() error
}

// SQLiteStore implements Store.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewStore creates a new SQLite-backed Store.
// Pass ":memory:" for in-memory databases (testing).
func NewStore(dbPath string) (Store, error) {
	if dbPath == "" {
		dbPath = expandPath(DefaultDBPath)
	}

	// Create parent directory for non-memory databases
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	// Enable WAL mode and foreign keys
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	s := &SQLiteStore{db: db, dbPath: dbPath}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Stats returns row counts and the database file size.
func (s *SQLiteStore) Stats(ctx context.Context) (*StoreStats, error) {
	stats := &StoreStats{}

	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records").Scan(&stats.RecordCount); err != nil {
		return nil, fmt.Errorf("counting records: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM mappings").Scan(&stats.MappingCount); err != nil {
		return nil, fmt.Errorf("counting mappings: %w", err)
	}

	if s.dbPath != ":memory:" {
		if info, err := os.Stat(s.dbPath); err == nil {
			stats.DBSizeBytes = info.Size()
		}
	}

	return stats, nil
}

// expandPath expands ~ to home directory.
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
