package audit

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdouB/persona/internal/db"
	"github.com/AbdouB/persona/internal/models"
)

func newTestService(t *testing.T) (*Service, *db.DB) {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "config.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return NewService(database, nil), database
}

func mappingOverrides(first int) *models.ScoringOverrides {
	return &models.ScoringOverrides{
		TraitMappings: map[string][]int{"Concrete": {first, first + 1, first + 2}},
	}
}

func TestRecordAndGetAuditLog(t *testing.T) {
	service, _ := newTestService(t)

	entry := &models.AuditLogEntry{
		UserID:            "admin",
		Action:            models.ActionUpdate,
		Target:            models.TargetGlobalConfig,
		ChangeDescription: "tuned mbti weights",
	}
	require.NoError(t, service.Record(entry))
	assert.NotEmpty(t, entry.ID, "Record fills the ID")
	assert.False(t, entry.Timestamp.IsZero(), "Record fills the timestamp")

	second := &models.AuditLogEntry{
		UserID:            "admin",
		Action:            models.ActionCreate,
		Target:            models.TargetUserOverride,
		ChangeDescription: "pinned a user value",
	}
	require.NoError(t, service.Record(second))

	entries, err := service.GetAuditLog(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "pinned a user value", entries[0].ChangeDescription, "newest first")
	assert.Equal(t, "tuned mbti weights", entries[1].ChangeDescription)
}

func TestSnapshots(t *testing.T) {
	service, _ := newTestService(t)

	overrides := mappingOverrides(1)
	id, err := service.CreateSnapshot("admin", "baseline", overrides, []string{"initial state"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	t.Run("get by id round-trips the config", func(t *testing.T) {
		snapshot, err := service.GetSnapshot(id)
		require.NoError(t, err)
		require.NotNil(t, snapshot)
		assert.Equal(t, "baseline", snapshot.Description)
		assert.Equal(t, []string{"initial state"}, snapshot.ChangesSummary)
		require.Empty(t, cmp.Diff(overrides, snapshot.ConfigData))
	})

	t.Run("snapshot is an isolated copy", func(t *testing.T) {
		overrides.TraitMappings["Concrete"][0] = 99
		snapshot, err := service.GetSnapshot(id)
		require.NoError(t, err)
		assert.Equal(t, 1, snapshot.ConfigData.TraitMappings["Concrete"][0])
	})

	t.Run("creation is logged", func(t *testing.T) {
		entries, err := service.GetAuditLog(10)
		require.NoError(t, err)
		require.NotEmpty(t, entries)
		assert.Equal(t, models.ActionCreate, entries[0].Action)
		assert.Contains(t, entries[0].ChangeDescription, "baseline")
	})

	t.Run("list is newest first", func(t *testing.T) {
		_, err := service.CreateSnapshot("admin", "later", mappingOverrides(4), nil)
		require.NoError(t, err)

		snapshots, err := service.GetSnapshots(10)
		require.NoError(t, err)
		require.Len(t, snapshots, 2)
		assert.Equal(t, "later", snapshots[0].Description)
	})

	t.Run("unknown id returns nil", func(t *testing.T) {
		snapshot, err := service.GetSnapshot("no-such-snapshot")
		require.NoError(t, err)
		assert.Nil(t, snapshot)
	})
}

func TestRollbackToSnapshot(t *testing.T) {
	service, database := newTestService(t)
	configs := db.NewConfigRepository(database)

	stateA := mappingOverrides(1)
	stateB := mappingOverrides(4)

	_, err := configs.Save(stateA, 0, "admin")
	require.NoError(t, err)
	snapshotA, err := service.CreateSnapshot("admin", "state A", stateA, nil)
	require.NoError(t, err)

	_, err = configs.Save(stateB, 1, "admin")
	require.NoError(t, err)
	snapshotB, err := service.CreateSnapshot("admin", "state B", stateB, nil)
	require.NoError(t, err)

	restored, err := service.RollbackToSnapshot(snapshotA, "admin")
	require.NoError(t, err)
	require.NotNil(t, restored)
	require.Empty(t, cmp.Diff(stateA, restored))

	t.Run("config record now holds the restored state", func(t *testing.T) {
		rec, err := configs.GetLatest()
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, int64(3), rec.Version, "rollback is a new version, not a rewind")

		current, err := rec.Overrides()
		require.NoError(t, err)
		require.Empty(t, cmp.Diff(stateA, current))
	})

	t.Run("rollback entry references the snapshot", func(t *testing.T) {
		entries, err := service.GetAuditLog(10)
		require.NoError(t, err)
		require.NotEmpty(t, entries)
		assert.Equal(t, models.ActionRollback, entries[0].Action)
		assert.Contains(t, entries[0].ChangeDescription, "state A")
		assert.Contains(t, entries[0].ChangeDescription, snapshotA)
		require.NotNil(t, entries[0].OldValues)
		require.NotNil(t, entries[0].NewValues)
	})

	t.Run("other snapshots are untouched", func(t *testing.T) {
		snapshot, err := service.GetSnapshot(snapshotB)
		require.NoError(t, err)
		require.NotNil(t, snapshot)
		require.Empty(t, cmp.Diff(stateB, snapshot.ConfigData))
	})

	t.Run("unknown snapshot is a no-op", func(t *testing.T) {
		restored, err := service.RollbackToSnapshot("no-such-snapshot", "admin")
		require.NoError(t, err)
		assert.Nil(t, restored)

		rec, err := configs.GetLatest()
		require.NoError(t, err)
		assert.Equal(t, int64(3), rec.Version)
	})
}
