// Package audit records every configuration mutation, manages named
// snapshots, and restores them. The log is append-only; nothing in this
// package updates or deletes an entry after it is written.
package audit

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AbdouB/persona/internal/db"
	"github.com/AbdouB/persona/internal/models"
)

// WriteError reports a failed audit write. The mutation it describes may
// already be committed in memory, so callers must surface this and offer a
// retry rather than drop it.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("audit write failed: %v", e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Service is the audit trail: mutation log, snapshots, and rollback.
type Service struct {
	database  *db.DB
	entries   *db.AuditRepository
	snapshots *db.SnapshotRepository
	configs   *db.ConfigRepository
	log       *zap.Logger
}

// NewService creates an audit service over the given database.
func NewService(database *db.DB, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		database:  database,
		entries:   db.NewAuditRepository(database),
		snapshots: db.NewSnapshotRepository(database),
		configs:   db.NewConfigRepository(database),
		log:       log,
	}
}

// Record appends one audit entry, filling ID and timestamp. A storage
// failure comes back as *WriteError.
func (s *Service) Record(entry *models.AuditLogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if err := s.entries.Insert(entry); err != nil {
		s.log.Warn("audit entry insert failed",
			zap.String("action", string(entry.Action)),
			zap.String("target", string(entry.Target)),
			zap.Error(err))
		return &WriteError{Err: err}
	}
	return nil
}

// GetAuditLog returns the most recent entries, newest first.
func (s *Service) GetAuditLog(limit int) ([]*models.AuditLogEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.entries.List(limit)
}

// CreateSnapshot persists a named full copy of the override state and logs
// a create entry. Returns the snapshot ID.
func (s *Service) CreateSnapshot(userID, description string, config *models.ScoringOverrides, changesSummary []string) (string, error) {
	snapshot := &models.ConfigSnapshot{
		ID:             uuid.NewString(),
		Timestamp:      time.Now().UTC(),
		UserID:         userID,
		Description:    description,
		ConfigData:     config.Clone(),
		ChangesSummary: changesSummary,
	}
	if snapshot.ConfigData == nil {
		snapshot.ConfigData = &models.ScoringOverrides{}
	}
	if err := s.snapshots.Insert(snapshot); err != nil {
		return "", fmt.Errorf("failed to persist snapshot: %w", err)
	}

	newValues, _ := snapshot.ConfigData.ToJSON()
	err := s.Record(&models.AuditLogEntry{
		UserID:            userID,
		Action:            models.ActionCreate,
		Target:            models.TargetGlobalConfig,
		ChangeDescription: fmt.Sprintf("created snapshot %q", description),
		NewValues:         &newValues,
	})
	if err != nil {
		// Snapshot is durable; the missing log entry is what the caller
		// has to retry.
		return snapshot.ID, err
	}
	return snapshot.ID, nil
}

// GetSnapshots returns the most recent snapshots, newest first.
func (s *Service) GetSnapshots(limit int) ([]*models.ConfigSnapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.snapshots.List(limit)
}

// GetSnapshot returns one snapshot by ID, or nil.
func (s *Service) GetSnapshot(id string) (*models.ConfigSnapshot, error) {
	return s.snapshots.Get(id)
}

// RollbackToSnapshot restores a snapshot's configuration. The restored
// config write and the rollback audit entry commit in a single
// transaction, so a crash can never leave the rollback logged but not
// applied. Returns the restored overrides, or nil when the snapshot does
// not exist.
func (s *Service) RollbackToSnapshot(snapshotID, userID string) (*models.ScoringOverrides, error) {
	snapshot, err := s.snapshots.Get(snapshotID)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	if snapshot == nil {
		return nil, nil
	}

	tx, err := s.database.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin rollback transaction: %w", err)
	}
	defer tx.Rollback()

	var currentVersion int64
	var currentJSON *string
	row := tx.QueryRow(`SELECT version, config_json FROM scoring_config WHERE id = 1`)
	var cfgJSON string
	switch err := row.Scan(&currentVersion, &cfgJSON); err {
	case nil:
		currentJSON = &cfgJSON
	case sql.ErrNoRows:
		currentVersion = 0
	default:
		return nil, fmt.Errorf("failed to read current config: %w", err)
	}

	restored := snapshot.ConfigData.Clone()
	if restored == nil {
		restored = &models.ScoringOverrides{}
	}
	if _, err := s.configs.SaveTx(tx, restored, currentVersion, userID); err != nil {
		return nil, fmt.Errorf("failed to apply snapshot config: %w", err)
	}

	newValues, _ := restored.ToJSON()
	entry := &models.AuditLogEntry{
		ID:                uuid.NewString(),
		Timestamp:         time.Now().UTC(),
		UserID:            userID,
		Action:            models.ActionRollback,
		Target:            models.TargetGlobalConfig,
		ChangeDescription: fmt.Sprintf("rolled back to snapshot %q (%s)", snapshot.Description, snapshot.ID),
		OldValues:         currentJSON,
		NewValues:         &newValues,
	}
	if err := s.entries.InsertTx(tx, entry); err != nil {
		return nil, &WriteError{Err: err}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit rollback: %w", err)
	}

	s.log.Info("config rolled back",
		zap.String("snapshot_id", snapshot.ID),
		zap.String("description", snapshot.Description),
		zap.String("user_id", userID))
	return restored, nil
}
