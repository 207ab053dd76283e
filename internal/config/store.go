package config

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/AbdouB/persona/internal/audit"
	"github.com/AbdouB/persona/internal/db"
	"github.com/AbdouB/persona/internal/models"
)

// CacheTTL bounds how stale a cached global config may be. Effective-config
// reads happen on every scoring call; the write path invalidates the cache
// best-effort, the TTL catches the rest.
const CacheTTL = 5 * time.Second

// readAttempts is how many times a failed store read is retried before the
// store degrades to built-in defaults.
const readAttempts = 3

// Store resolves the effective scoring configuration:
//
//	userOverride(user, framework) ?? globalOverride(framework) ?? builtInDefault(framework)
//
// Global writes are serialized through the store's mutex and versioned in
// the database, so concurrent admin edits conflict loudly instead of
// silently clobbering each other.
type Store struct {
	configs *db.ConfigRepository
	users   *db.UserOverrideRepository
	audit   *audit.Service
	log     *zap.Logger

	mu            sync.Mutex
	cached        *models.ScoringOverrides
	cachedVersion int64
	cachedAt      time.Time
}

// NewStore creates a config store over the given database and audit trail.
func NewStore(database *db.DB, auditService *audit.Service, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		configs: db.NewConfigRepository(database),
		users:   db.NewUserOverrideRepository(database),
		audit:   auditService,
		log:     log,
	}
}

// LoadScoringOverrides returns the stored global override record, or nil
// when none has been written.
func (s *Store) LoadScoringOverrides() (*models.ScoringOverrides, error) {
	rec, err := s.latestRecord()
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	return rec.Overrides()
}

// SaveScoringOverrides merges a partial override payload with the latest
// global config and commits it under optimistic concurrency. The audit
// entry is written before the save is reported successful; an audit write
// failure surfaces as *audit.WriteError so the caller can retry logging.
func (s *Store) SaveScoringOverrides(userID string, partial *models.ScoringOverrides) error {
	if err := partial.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.configs.GetLatest()
	if err != nil {
		return fmt.Errorf("failed to load current config: %w", err)
	}

	var current *models.ScoringOverrides
	var version int64
	var oldJSON *string
	action := models.ActionCreate
	if rec != nil {
		current, err = rec.Overrides()
		if err != nil {
			return fmt.Errorf("stored config is unreadable: %w", err)
		}
		version = rec.Version
		action = models.ActionUpdate
		oldJSON = &rec.ConfigJSON
	}

	merged := current.Merge(partial)
	if _, err := s.configs.Save(merged, version, userID); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	s.invalidate()

	newJSON, _ := merged.ToJSON()
	target := models.TargetGlobalConfig
	if mappingsOnly(partial) {
		target = models.TargetTraitMapping
	}
	return s.audit.Record(&models.AuditLogEntry{
		UserID:            userID,
		Action:            action,
		Target:            target,
		ChangeDescription: describeChange(current, merged),
		OldValues:         oldJSON,
		NewValues:         &newJSON,
	})
}

// ResetScoringOverrides replaces the stored global override with an empty
// payload, restoring built-in defaults for every framework and mapping.
// No-op when nothing is stored.
func (s *Store) ResetScoringOverrides(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.configs.GetLatest()
	if err != nil {
		return fmt.Errorf("failed to load current config: %w", err)
	}
	if rec == nil {
		return nil
	}
	current, err := rec.Overrides()
	if err != nil {
		return fmt.Errorf("stored config is unreadable: %w", err)
	}

	empty := &models.ScoringOverrides{}
	if _, err := s.configs.Save(empty, rec.Version, userID); err != nil {
		return fmt.Errorf("failed to reset config: %w", err)
	}
	s.invalidate()

	newJSON, _ := empty.ToJSON()
	return s.audit.Record(&models.AuditLogEntry{
		UserID:            userID,
		Action:            models.ActionDelete,
		Target:            models.TargetGlobalConfig,
		ChangeDescription: describeChange(current, empty),
		OldValues:         &rec.ConfigJSON,
		NewValues:         &newJSON,
	})
}

// Effective resolves the full configuration for one scoring call. It never
// fails: an unreachable store degrades to built-in defaults with a warning,
// because a scoring request must not die over a config cache miss.
func (s *Store) Effective(userID string) *models.EffectiveConfig {
	defaults := DefaultOverrides()

	global, err := s.cachedGlobal()
	if err != nil {
		s.log.Warn("config store unavailable, falling back to built-in defaults", zap.Error(err))
		global = nil
	}
	resolved := mergeLayers(defaults, global)

	eff := &models.EffectiveConfig{
		TraitMappings: resolved.TraitMappings,
		Frameworks:    make(map[string]models.FrameworkWeights, len(models.Frameworks)),
	}
	for _, f := range models.Frameworks {
		eff.Frameworks[f] = resolved.Framework(f)
	}

	if userID != "" {
		overrides, err := s.users.ListByUser(userID)
		if err != nil {
			s.log.Warn("user overrides unavailable, serving computed values",
				zap.String("user_id", userID), zap.Error(err))
		} else if len(overrides) > 0 {
			eff.UserValues = make(map[string]string, len(overrides))
			for _, o := range overrides {
				eff.UserValues[o.Framework] = o.Value
			}
		}
	}
	return eff
}

// MappingWeights is the derived per-framework weight view (the old
// mapping_weights blob). It is computed from the canonical config record on
// every call and never written back.
func (s *Store) MappingWeights() map[string]models.FrameworkWeights {
	eff := s.Effective("")
	return eff.Frameworks
}

// SaveUserOverride pins one user's displayed value for one framework and
// logs the mutation.
func (s *Store) SaveUserOverride(userID, framework, value, reason, createdBy string) error {
	if !models.IsFramework(framework) {
		return &models.ConfigError{Subject: framework, Reason: "unknown framework"}
	}
	if value == "" {
		return &models.ConfigError{Subject: framework, Reason: "override value must not be empty"}
	}

	previous, err := s.users.Get(userID, framework)
	if err != nil {
		return fmt.Errorf("failed to load existing override: %w", err)
	}

	override := &models.UserOverride{
		UserID:    userID,
		Framework: framework,
		Value:     value,
		Reason:    reason,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.users.Upsert(override); err != nil {
		return fmt.Errorf("failed to save user override: %w", err)
	}

	action := models.ActionCreate
	var oldValues *string
	if previous != nil {
		action = models.ActionUpdate
		oldValues = &previous.Value
	}
	return s.audit.Record(&models.AuditLogEntry{
		UserID:            createdBy,
		Action:            action,
		Target:            models.TargetUserOverride,
		Framework:         &framework,
		ChangeDescription: fmt.Sprintf("set %s override for user %s to %q", framework, userID, value),
		OldValues:         oldValues,
		NewValues:         &value,
	})
}

// LoadUserOverride returns all of a user's framework overrides.
func (s *Store) LoadUserOverride(userID string) ([]*models.UserOverride, error) {
	return s.users.ListByUser(userID)
}

// DeleteUserOverride removes one user's override for one framework and
// logs the mutation.
func (s *Store) DeleteUserOverride(userID, framework, deletedBy string) error {
	previous, err := s.users.Get(userID, framework)
	if err != nil {
		return fmt.Errorf("failed to load existing override: %w", err)
	}
	if previous == nil {
		return nil
	}
	if err := s.users.Delete(userID, framework); err != nil {
		return fmt.Errorf("failed to delete user override: %w", err)
	}
	return s.audit.Record(&models.AuditLogEntry{
		UserID:            deletedBy,
		Action:            models.ActionDelete,
		Target:            models.TargetUserOverride,
		Framework:         &framework,
		ChangeDescription: fmt.Sprintf("removed %s override for user %s", framework, userID),
		OldValues:         &previous.Value,
	})
}

// cachedGlobal serves the global override from the TTL cache, refreshing
// with retries on miss.
func (s *Store) cachedGlobal() (*models.ScoringOverrides, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && time.Since(s.cachedAt) < CacheTTL {
		return s.cached, nil
	}

	rec, err := s.latestRecordLocked()
	if err != nil {
		return nil, err
	}
	if rec == nil {
		s.cached = &models.ScoringOverrides{}
		s.cachedVersion = 0
	} else {
		overrides, err := rec.Overrides()
		if err != nil {
			return nil, fmt.Errorf("stored config is unreadable: %w", err)
		}
		s.cached = overrides
		s.cachedVersion = rec.Version
	}
	s.cachedAt = time.Now()
	return s.cached, nil
}

func (s *Store) latestRecord() (*db.ConfigRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latestRecordLocked()
}

func (s *Store) latestRecordLocked() (*db.ConfigRecord, error) {
	var rec *db.ConfigRecord
	var err error
	for attempt := 0; attempt < readAttempts; attempt++ {
		rec, err = s.configs.GetLatest()
		if err == nil {
			return rec, nil
		}
		time.Sleep(time.Duration(attempt+1) * 50 * time.Millisecond)
	}
	return nil, err
}

func (s *Store) invalidate() {
	s.cached = nil
	s.cachedAt = time.Time{}
}

// mergeLayers overlays the global override onto the built-in defaults.
func mergeLayers(defaults, global *models.ScoringOverrides) *models.ScoringOverrides {
	if global == nil {
		return defaults
	}
	return defaults.Merge(global)
}

func mappingsOnly(o *models.ScoringOverrides) bool {
	if o == nil || len(o.TraitMappings) == 0 {
		return false
	}
	for _, f := range models.Frameworks {
		if len(o.Framework(f)) > 0 {
			return false
		}
	}
	return true
}

func describeChange(before, after *models.ScoringOverrides) string {
	lines := audit.GenerateChangesSummary(before, after)
	if len(lines) == 1 {
		return lines[0]
	}
	return fmt.Sprintf("%s (+%d more changes)", lines[0], len(lines)-1)
}
