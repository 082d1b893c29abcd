package store

import "fmt"

// bootstrapDDL creates the full schema. Every statement is idempotent so
// migrate can rerun safely on an existing database.
var bootstrapDDL = []string{
	`CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT NOT NULL DEFAULT '',
		transcript TEXT NOT NULL,
		profile_json TEXT NOT NULL,
		confidence_json TEXT NOT NULL DEFAULT '{}',
		completion REAL NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS mappings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		spec TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_records_created_at ON records(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_mappings_name ON mappings(name)`,
}

// migrate creates all tables if they don't exist and stamps the schema
// version.
func (s *SQLiteStore) migrate() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning bootstrap transaction: %w", err)
	}
	defer tx.Rollback()

	for _, ddl := range bootstrapDDL {
		if _, err := tx.Exec(ddl); err != nil {
			return fmt.Errorf("bootstrap DDL: %w", err)
		}
	}

	if _, err := tx.Exec(
		`INSERT INTO meta (key, value) VALUES ('schema_version', '1')
		 ON CONFLICT(key) DO NOTHING`); err != nil {
		return fmt.Errorf("stamping schema version: %w", err)
	}

	return tx.Commit()
}
