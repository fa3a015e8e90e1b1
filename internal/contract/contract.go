// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/pamout/devlog/schema"
)

// HistoryManager defines the interface for managing the run history store.
// This allows the persistence layer to be mocked for testing.
type HistoryManager interface {
	GetHistoryStore() HistoryStore
}

// HistoryStore defines the interface for tracking build runs and record snapshots.
type HistoryStore interface {
	// BeginRun creates a new build run and returns its unique ID
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the build run with completion data
	EndRun(runID int64, endTime time.Time, totalLogs, skippedFiles int) error

	// RecordSnapshots stores one row per record for the run
	RecordSnapshots(runID int64, snapshots []schema.RecordSnapshot) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns returns every stored run ordered by ID
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllSnapshots returns every stored record snapshot ordered by run and log number
	GetAllSnapshots() ([]schema.RecordSnapshot, error)

	// Close closes the underlying connection
	Close() error
}
