package runstore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonarsheet/sonarsheet/schema"
)

func newSQLiteStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRunLifecycle(t *testing.T) {
	store := newSQLiteStore(t)

	start := time.Now().Add(-2 * time.Second)
	runID, err := store.BeginRun(start, "acme", map[string]any{"workers": 4})
	require.NoError(t, err)
	assert.Positive(t, runID)

	require.NoError(t, store.EndRun(runID, time.Now(), 42))

	runs, err := store.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, runID, run.RunID)
	assert.Equal(t, "acme", run.OrgKey)
	assert.Equal(t, 42, run.TotalProjects)
	require.NotNil(t, run.EndTime)
	require.NotNil(t, run.DurationMs)
	assert.GreaterOrEqual(t, *run.DurationMs, int64(2000))
	require.NotNil(t, run.ConfigParams)
	assert.Contains(t, *run.ConfigParams, `"workers":4`)
}

func TestListRunsNewestFirstWithLimit(t *testing.T) {
	store := newSQLiteStore(t)

	var ids []int64
	for range 3 {
		id, err := store.BeginRun(time.Now(), "acme", nil)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	runs, err := store.ListRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, ids[2], runs[0].RunID)
	assert.Equal(t, ids[1], runs[1].RunID)
}

func TestGetStatusAndClear(t *testing.T) {
	store := newSQLiteStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, "sqlite", status.Backend)
	assert.Equal(t, 0, status.TotalRuns)

	first, err := store.BeginRun(time.Now().Add(-time.Hour), "acme", nil)
	require.NoError(t, err)
	second, err := store.BeginRun(time.Now(), "acme", nil)
	require.NoError(t, err)

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 2, status.TotalRuns)
	assert.Equal(t, second, status.LastRunID)
	assert.True(t, status.OldestRunTime.Before(status.LastRunTime))
	_ = first

	require.NoError(t, store.Clear())
	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 0, status.TotalRuns)
}

func TestMigrateSQLiteUpAndDown(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	require.NoError(t, Migrate(schema.SQLiteBackend, dbPath, -1))

	// The migrated schema accepts runs through the store.
	store, err := NewStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	id, err := store.BeginRun(time.Now(), "acme", nil)
	require.NoError(t, err)
	assert.Positive(t, id)
	require.NoError(t, store.Close())

	require.NoError(t, Migrate(schema.SQLiteBackend, dbPath, 0))
}

func TestMigrateNoneBackendRejected(t *testing.T) {
	assert.Error(t, Migrate(schema.NoneBackend, "", -1))
}

func TestNoneBackendIsInert(t *testing.T) {
	store, err := NewStore(schema.NoneBackend, "")
	require.NoError(t, err)

	runID, err := store.BeginRun(time.Now(), "acme", nil)
	require.NoError(t, err)
	assert.Zero(t, runID)

	require.NoError(t, store.EndRun(1, time.Now(), 1))

	runs, err := store.ListRuns(10)
	require.NoError(t, err)
	assert.Empty(t, runs)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Close())
}
