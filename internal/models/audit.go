package models

import "time"

// AuditAction is the kind of configuration mutation being recorded.
type AuditAction string

const (
	ActionCreate   AuditAction = "create"
	ActionUpdate   AuditAction = "update"
	ActionDelete   AuditAction = "delete"
	ActionRollback AuditAction = "rollback"
)

// AuditTarget is what the mutation touched.
type AuditTarget string

const (
	TargetGlobalConfig AuditTarget = "global_config"
	TargetUserOverride AuditTarget = "user_override"
	TargetTraitMapping AuditTarget = "trait_mapping"
)

// AuditLogEntry is one immutable record of a configuration mutation.
// Entries are append-only: nothing updates or deletes them after insert.
// Old/new values and metadata are stored as JSON text.
type AuditLogEntry struct {
	ID                string      `db:"id" json:"id"`
	Timestamp         time.Time   `db:"timestamp" json:"timestamp"`
	UserID            string      `db:"user_id" json:"user_id"`
	Action            AuditAction `db:"action" json:"action"`
	Target            AuditTarget `db:"target" json:"target"`
	Framework         *string     `db:"framework" json:"framework,omitempty"`
	ChangeDescription string      `db:"change_description" json:"change_description"`
	OldValues         *string     `db:"old_values" json:"old_values,omitempty"`
	NewValues         *string     `db:"new_values" json:"new_values,omitempty"`
	Metadata          *string     `db:"metadata" json:"metadata,omitempty"`
}

// ConfigSnapshot is a named, restorable full copy of the override state.
// Snapshots are immutable once written; rollback reads them, never edits.
type ConfigSnapshot struct {
	ID             string            `json:"id"`
	Timestamp      time.Time         `json:"timestamp"`
	UserID         string            `json:"user_id"`
	Description    string            `json:"description"`
	ConfigData     *ScoringOverrides `json:"config_data"`
	ChangesSummary []string          `json:"changes_summary"`
}
