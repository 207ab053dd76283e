package db

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/AbdouB/persona/internal/models"
)

// AuditRepository handles the append-only audit log. There is no update or
// delete path: entries are immutable once written.
type AuditRepository struct {
	db *DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Insert appends one audit entry.
func (r *AuditRepository) Insert(entry *models.AuditLogEntry) error {
	return insertAudit(r.db.DB, entry)
}

// InsertTx is Insert within an existing transaction.
func (r *AuditRepository) InsertTx(tx *sqlx.Tx, entry *models.AuditLogEntry) error {
	return insertAudit(tx, entry)
}

func insertAudit(e execer, entry *models.AuditLogEntry) error {
	query := `
		INSERT INTO audit_log (
			id, timestamp, user_id, action, target, framework,
			change_description, old_values, new_values, metadata
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := e.Exec(query,
		entry.ID,
		entry.Timestamp,
		entry.UserID,
		entry.Action,
		entry.Target,
		entry.Framework,
		entry.ChangeDescription,
		entry.OldValues,
		entry.NewValues,
		entry.Metadata,
	)
	return err
}

// List lists the most recent audit entries
func (r *AuditRepository) List(limit int) ([]*models.AuditLogEntry, error) {
	var entries []*models.AuditLogEntry
	query := `SELECT * FROM audit_log ORDER BY timestamp DESC, id DESC LIMIT ?`
	err := r.db.Select(&entries, query, limit)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// snapshotRow is the stored form of a ConfigSnapshot
type snapshotRow struct {
	ID          string    `db:"id"`
	Timestamp   time.Time `db:"timestamp"`
	UserID      string    `db:"user_id"`
	Description string    `db:"description"`
	ConfigJSON  string    `db:"config_json"`
	ChangesJSON string    `db:"changes_json"`
}

func (row *snapshotRow) toModel() (*models.ConfigSnapshot, error) {
	cfg, err := models.OverridesFromJSON(row.ConfigJSON)
	if err != nil {
		return nil, err
	}
	var changes []string
	if err := json.Unmarshal([]byte(row.ChangesJSON), &changes); err != nil {
		return nil, err
	}
	return &models.ConfigSnapshot{
		ID:             row.ID,
		Timestamp:      row.Timestamp,
		UserID:         row.UserID,
		Description:    row.Description,
		ConfigData:     cfg,
		ChangesSummary: changes,
	}, nil
}

// SnapshotRepository handles named config snapshots
type SnapshotRepository struct {
	db *DB
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Insert persists a snapshot.
func (r *SnapshotRepository) Insert(snapshot *models.ConfigSnapshot) error {
	configJSON, err := snapshot.ConfigData.ToJSON()
	if err != nil {
		return err
	}
	changesJSON, err := json.Marshal(snapshot.ChangesSummary)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO config_snapshots (id, timestamp, user_id, description, config_json, changes_json)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query,
		snapshot.ID,
		snapshot.Timestamp,
		snapshot.UserID,
		snapshot.Description,
		configJSON,
		string(changesJSON),
	)
	return err
}

// Get retrieves a snapshot by ID, or nil when it does not exist.
func (r *SnapshotRepository) Get(id string) (*models.ConfigSnapshot, error) {
	var row snapshotRow
	query := `SELECT * FROM config_snapshots WHERE id = ?`
	err := r.db.Get(&row, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.toModel()
}

// List lists the most recent snapshots
func (r *SnapshotRepository) List(limit int) ([]*models.ConfigSnapshot, error) {
	var rows []snapshotRow
	query := `SELECT * FROM config_snapshots ORDER BY timestamp DESC, id DESC LIMIT ?`
	if err := r.db.Select(&rows, query, limit); err != nil {
		return nil, err
	}
	snapshots := make([]*models.ConfigSnapshot, 0, len(rows))
	for i := range rows {
		s, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, nil
}
