package db

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/AbdouB/persona/internal/models"
)

// ErrVersionConflict is returned when a config write presents a stale
// version: another writer committed since the caller read the record.
var ErrVersionConflict = errors.New("scoring config version conflict")

// ConfigRecord is the stored global override record with its concurrency
// version.
type ConfigRecord struct {
	ID         int64     `db:"id"`
	Version    int64     `db:"version"`
	ConfigJSON string    `db:"config_json"`
	UpdatedBy  string    `db:"updated_by"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// Overrides decodes the stored config payload.
func (r *ConfigRecord) Overrides() (*models.ScoringOverrides, error) {
	return models.OverridesFromJSON(r.ConfigJSON)
}

// ConfigRepository handles the scoring_config record
type ConfigRepository struct {
	db *DB
}

// NewConfigRepository creates a new config repository
func NewConfigRepository(db *DB) *ConfigRepository {
	return &ConfigRepository{db: db}
}

// GetLatest retrieves the current config record, or nil when none has been
// written yet.
func (r *ConfigRepository) GetLatest() (*ConfigRecord, error) {
	var rec ConfigRecord
	query := `SELECT * FROM scoring_config WHERE id = 1`
	err := r.db.Get(&rec, query)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Save writes the config record. expectedVersion is the version the caller
// read (0 when no record existed); a mismatch returns ErrVersionConflict
// instead of clobbering a concurrent write.
func (r *ConfigRepository) Save(overrides *models.ScoringOverrides, expectedVersion int64, updatedBy string) (int64, error) {
	return saveConfig(r.db.DB, overrides, expectedVersion, updatedBy)
}

// SaveTx is Save within an existing transaction.
func (r *ConfigRepository) SaveTx(tx *sqlx.Tx, overrides *models.ScoringOverrides, expectedVersion int64, updatedBy string) (int64, error) {
	return saveConfig(tx, overrides, expectedVersion, updatedBy)
}

// execer covers both *sqlx.DB and *sqlx.Tx.
type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}

func saveConfig(e execer, overrides *models.ScoringOverrides, expectedVersion int64, updatedBy string) (int64, error) {
	payload, err := overrides.ToJSON()
	if err != nil {
		return 0, err
	}
	now := time.Now().UTC()

	if expectedVersion == 0 {
		query := `
			INSERT INTO scoring_config (id, version, config_json, updated_by, updated_at)
			VALUES (1, 1, ?, ?, ?)
		`
		if _, err := e.Exec(query, payload, updatedBy, now); err != nil {
			// A concurrent first write makes the insert collide on id=1.
			return 0, ErrVersionConflict
		}
		return 1, nil
	}

	query := `
		UPDATE scoring_config SET
			version = version + 1,
			config_json = ?,
			updated_by = ?,
			updated_at = ?
		WHERE id = 1 AND version = ?
	`
	result, err := e.Exec(query, payload, updatedBy, now, expectedVersion)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, ErrVersionConflict
	}
	return expectedVersion + 1, nil
}

// UserOverrideRepository handles per-user framework overrides
type UserOverrideRepository struct {
	db *DB
}

// NewUserOverrideRepository creates a new user override repository
func NewUserOverrideRepository(db *DB) *UserOverrideRepository {
	return &UserOverrideRepository{db: db}
}

// Upsert creates or replaces one user's override for one framework.
func (r *UserOverrideRepository) Upsert(override *models.UserOverride) error {
	query := `
		INSERT INTO user_overrides (user_id, framework, value, reason, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, framework) DO UPDATE SET
			value = excluded.value,
			reason = excluded.reason,
			created_by = excluded.created_by,
			created_at = excluded.created_at
	`
	_, err := r.db.Exec(query,
		override.UserID,
		override.Framework,
		override.Value,
		override.Reason,
		override.CreatedBy,
		override.CreatedAt,
	)
	return err
}

// Get retrieves one user's override for one framework
func (r *UserOverrideRepository) Get(userID, framework string) (*models.UserOverride, error) {
	var override models.UserOverride
	query := `SELECT * FROM user_overrides WHERE user_id = ? AND framework = ?`
	err := r.db.Get(&override, query, userID, framework)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &override, nil
}

// ListByUser lists all overrides for a user
func (r *UserOverrideRepository) ListByUser(userID string) ([]*models.UserOverride, error) {
	var overrides []*models.UserOverride
	query := `SELECT * FROM user_overrides WHERE user_id = ? ORDER BY framework`
	err := r.db.Select(&overrides, query, userID)
	if err != nil {
		return nil, err
	}
	return overrides, nil
}

// Delete removes one user's override for one framework
func (r *UserOverrideRepository) Delete(userID, framework string) error {
	query := `DELETE FROM user_overrides WHERE user_id = ? AND framework = ?`
	_, err := r.db.Exec(query, userID, framework)
	return err
}
