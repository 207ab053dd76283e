// Package db provides database access for Persona
package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the database connection
type DB struct {
	*sqlx.DB
	path string
}

// DefaultDBPath returns the default database path
func DefaultDBPath() string {
	// Try project-local first
	localPath := ".persona/config.db"
	if _, err := os.Stat(".persona"); err == nil {
		return localPath
	}

	// Fall back to home directory
	home, err := os.UserHomeDir()
	if err != nil {
		return localPath
	}
	return filepath.Join(home, ".persona", "config.db")
}

// Open opens or creates the database
func Open(path string) (*DB, error) {
	if path == "" {
		path = DefaultDBPath()
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database
	db, err := sqlx.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	d := &DB{DB: db, path: path}

	// Run migrations
	if err := d.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return d, nil
}

// Path returns the database file path
func (d *DB) Path() string {
	return d.path
}

// migrate runs database migrations
func (d *DB) migrate() error {
	migrations := []string{
		migrationScoringConfig,
		migrationUserOverrides,
		migrationAuditLog,
		migrationSnapshots,
		migrationIndexes,
	}

	for _, m := range migrations {
		if _, err := d.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// scoring_config holds the single canonical override record: one row, one
// version counter. Writes must present the version they read, which
// replaces the old two-blob last-writer-wins storage; the mapping_weights
// view is derived at read time and never written independently.
const migrationScoringConfig = `
CREATE TABLE IF NOT EXISTS scoring_config (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    version INTEGER NOT NULL,
    config_json TEXT NOT NULL,
    updated_by TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
`

const migrationUserOverrides = `
CREATE TABLE IF NOT EXISTS user_overrides (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id TEXT NOT NULL,
    framework TEXT NOT NULL,
    value TEXT NOT NULL,
    reason TEXT,
    created_by TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    UNIQUE (user_id, framework)
);
`

const migrationAuditLog = `
CREATE TABLE IF NOT EXISTS audit_log (
    id TEXT PRIMARY KEY,
    timestamp TIMESTAMP NOT NULL,
    user_id TEXT NOT NULL,
    action TEXT NOT NULL,
    target TEXT NOT NULL,
    framework TEXT,
    change_description TEXT NOT NULL,
    old_values TEXT,
    new_values TEXT,
    metadata TEXT
);
`

const migrationSnapshots = `
CREATE TABLE IF NOT EXISTS config_snapshots (
    id TEXT PRIMARY KEY,
    timestamp TIMESTAMP NOT NULL,
    user_id TEXT NOT NULL,
    description TEXT NOT NULL,
    config_json TEXT NOT NULL,
    changes_json TEXT NOT NULL
);
`

const migrationIndexes = `
CREATE INDEX IF NOT EXISTS idx_user_overrides_user_id ON user_overrides(user_id);
CREATE INDEX IF NOT EXISTS idx_audit_log_timestamp ON audit_log(timestamp);
CREATE INDEX IF NOT EXISTS idx_snapshots_timestamp ON config_snapshots(timestamp);
`
