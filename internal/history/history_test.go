package history

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pamout/devlog/internal/parquet"
	"github.com/pamout/devlog/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) (*HistoryStoreImpl, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "history.db")
	store, err := NewHistoryStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*HistoryStoreImpl), dbPath
}

func sampleSnapshots() []schema.RecordSnapshot {
	return []schema.RecordSnapshot{
		{LogNumber: "2", Title: "Kanban board", Type: "feat", Date: "2025-01-07 10:00:00", Author: "Jin", Commit: "abc", FilesChanged: 2, LinesAdded: 180, LinesDeleted: 20, Category: "frontend", SizeBucket: "large"},
		{LogNumber: "1", Title: "Setup", Type: "setup", Date: "2025-01-06 09:15:30", Author: "Jin", Commit: "def", FilesChanged: 3, LinesAdded: 120, Category: "config", SizeBucket: "medium"},
	}
}

func TestHistoryStore_NoneBackend(t *testing.T) {
	store, err := NewHistoryStore(schema.NoneBackend, "")
	require.NoError(t, err)

	runID, err := store.BeginRun(time.Now(), map[string]any{"input_dir": "docs"})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)

	assert.NoError(t, store.EndRun(1, time.Now(), 10, 0))
	assert.NoError(t, store.RecordSnapshots(1, sampleSnapshots()))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
	assert.Equal(t, string(schema.NoneBackend), status.Backend)

	runs, err := store.GetAllRuns()
	assert.NoError(t, err)
	assert.Nil(t, runs)

	assert.NoError(t, store.Close())
}

func TestHistoryStore_UnsupportedBackend(t *testing.T) {
	_, err := NewHistoryStore(schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
}

func TestHistoryStore_SQLiteLifecycle(t *testing.T) {
	store, _ := newSQLiteStore(t)

	start := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	runID, err := store.BeginRun(start, map[string]any{"input_dir": "docs/dev-log"})
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	require.NoError(t, store.RecordSnapshots(runID, sampleSnapshots()))
	require.NoError(t, store.EndRun(runID, start.Add(1500*time.Millisecond), 2, 1))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	run := runs[0]
	assert.Equal(t, runID, run.RunID)
	_, err = uuid.Parse(run.RunUUID)
	assert.NoError(t, err)
	assert.True(t, run.StartTime.Equal(start))
	require.NotNil(t, run.EndTime)
	require.NotNil(t, run.RunDurationMs)
	assert.Equal(t, int32(1500), *run.RunDurationMs)
	assert.Equal(t, int32(2), run.TotalLogs)
	assert.Equal(t, int32(1), run.SkippedFiles)
	require.NotNil(t, run.ConfigParams)
	assert.JSONEq(t, `{"input_dir":"docs/dev-log"}`, *run.ConfigParams)

	snapshots, err := store.GetAllSnapshots()
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	// ordered by run then log number
	assert.Equal(t, "1", snapshots[0].LogNumber)
	assert.Equal(t, runID, snapshots[1].RunID)
	assert.Equal(t, int32(180), snapshots[1].LinesAdded)
	assert.Equal(t, "large", snapshots[1].SizeBucket)
}

func TestHistoryStore_SQLiteStatus(t *testing.T) {
	store, _ := newSQLiteStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 0, status.TotalRuns)

	first := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	for i := range 3 {
		runID, err := store.BeginRun(first.Add(time.Duration(i)*time.Hour), nil)
		require.NoError(t, err)
		require.NoError(t, store.RecordSnapshots(runID, sampleSnapshots()))
	}

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 3, status.TotalRuns)
	assert.Equal(t, int64(3), status.LastRunID)
	assert.True(t, status.OldestRunTime.Equal(first))
	assert.True(t, status.LastRunTime.Equal(first.Add(2*time.Hour)))
	assert.Equal(t, 6, status.TotalRecordRows)
	assert.Equal(t, int64(3), status.TableSizes[runsTable])
}

func TestHistoryStore_DuplicateSnapshotRollsBack(t *testing.T) {
	store, _ := newSQLiteStore(t)
	runID, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)

	dup := append(sampleSnapshots(), sampleSnapshots()[0])
	assert.Error(t, store.RecordSnapshots(runID, dup))

	snapshots, err := store.GetAllSnapshots()
	require.NoError(t, err)
	assert.Empty(t, snapshots)
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`devlog_runs`", quoteTableName(runsTable, schema.MySQLBackend))
	assert.Equal(t, `"devlog_runs"`, quoteTableName(runsTable, schema.PostgreSQLBackend))
	assert.Equal(t, `"devlog_runs"`, quoteTableName(runsTable, schema.SQLiteBackend))
	assert.Equal(t, "$2", placeholder(schema.PostgreSQLBackend, 2))
	assert.Equal(t, "?", placeholder(schema.MySQLBackend, 2))
}

func TestClearHistory(t *testing.T) {
	t.Run("sqlite removes the file", func(t *testing.T) {
		store, dbPath := newSQLiteStore(t)
		require.NoError(t, store.Close())

		require.NoError(t, ClearHistory(schema.SQLiteBackend, "", dbPath))
		_, err := os.Stat(dbPath)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("sqlite missing file is fine", func(t *testing.T) {
		assert.NoError(t, ClearHistory(schema.SQLiteBackend, filepath.Join(t.TempDir(), "none.db"), ""))
	})

	t.Run("none", func(t *testing.T) {
		assert.NoError(t, ClearHistory(schema.NoneBackend, "", ""))
	})

	t.Run("unsupported", func(t *testing.T) {
		assert.Error(t, ClearHistory(schema.DatabaseBackend("oracle"), "", ""))
	})
}

func TestMigrateHistory_NoneBackend(t *testing.T) {
	err := MigrateHistory(schema.NoneBackend, "", -1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrations are not supported for NoneBackend")
}

func TestMigrateHistory_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")

	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, -1))
	_, err := os.Stat(dbPath)
	assert.NoError(t, err)

	// idempotent
	assert.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, -1))
	assert.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, 1))
	assert.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, 0))
	assert.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, 2))

	// a migrated database is usable by the store
	store, err := NewHistoryStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	_, err = store.BeginRun(time.Now(), nil)
	assert.NoError(t, err)
}

func TestExportHistory(t *testing.T) {
	t.Run("requires output file", func(t *testing.T) {
		assert.Error(t, ExportHistory(&MockHistoryStore{}, ""))
	})

	t.Run("requires a store", func(t *testing.T) {
		assert.Error(t, ExportHistory(nil, "out"))
	})

	t.Run("no runs", func(t *testing.T) {
		store := &MockHistoryStore{}
		store.On("GetStatus").Return(schema.HistoryStatus{Backend: "sqlite", Connected: true}, nil)
		err := ExportHistory(store, filepath.Join(t.TempDir(), "out"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no history data")
		store.AssertExpectations(t)
	})

	t.Run("status error", func(t *testing.T) {
		store := &MockHistoryStore{}
		store.On("GetStatus").Return(schema.HistoryStatus{}, errors.New("boom"))
		assert.Error(t, ExportHistory(store, filepath.Join(t.TempDir(), "out")))
	})

	t.Run("writes both files", func(t *testing.T) {
		store := &MockHistoryStore{}
		start := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
		store.On("GetStatus").Return(schema.HistoryStatus{Backend: "sqlite", Connected: true, TotalRuns: 1, TotalRecordRows: 2}, nil)
		store.On("GetAllRuns").Return([]schema.RunRecord{{RunID: 1, RunUUID: "u-1", StartTime: start, TotalLogs: 2}}, nil)
		store.On("GetAllSnapshots").Return(sampleSnapshots(), nil)

		out := filepath.Join(t.TempDir(), "export")
		require.NoError(t, ExportHistory(store, out))

		runs, err := parquet.ReadFile[parquet.Run](out + ".runs.parquet")
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, "u-1", runs[0].RunUUID)

		records, err := parquet.ReadFile[parquet.RecordSnapshot](out + ".records.parquet")
		require.NoError(t, err)
		assert.Len(t, records, 2)
		store.AssertExpectations(t)
	})
}

func TestHistoryStoreManager(t *testing.T) {
	mgr := &HistoryStoreManager{}
	assert.Nil(t, mgr.GetHistoryStore())

	store := &MockHistoryStore{}
	mgr.history = store
	assert.Same(t, store, mgr.GetHistoryStore())

	mockMgr := &MockHistoryManager{}
	mockMgr.On("GetHistoryStore").Return(store)
	assert.Same(t, store, mockMgr.GetHistoryStore())
	store.On("Close").Return(nil)
	assert.NoError(t, store.Close())
	store.AssertCalled(t, "Close")
	mock.AssertExpectationsForObjects(t, mockMgr)
}
