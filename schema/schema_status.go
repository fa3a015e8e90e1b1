package schema

import "time"

// HistoryStatus represents the status of the run history store.
type HistoryStatus struct {
	Backend         string           `json:"backend"`
	Connected       bool             `json:"connected"`
	TotalRuns       int              `json:"total_runs"`
	LastRunID       int64            `json:"last_run_id"`
	LastRunTime     time.Time        `json:"last_run_time"`
	OldestRunTime   time.Time        `json:"oldest_run_time"`
	TotalRecordRows int              `json:"total_record_rows"`
	TableSizes      map[string]int64 `json:"table_sizes"`
}

// RunRecord represents a row from the devlog_runs table.
type RunRecord struct {
	RunID         int64
	RunUUID       string
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	TotalLogs     int32
	SkippedFiles  int32
	ConfigParams  *string
}

// RecordSnapshot represents a row from the devlog_run_records table.
type RecordSnapshot struct {
	RunID        int64
	LogNumber    string
	Title        string
	Type         string
	Date         string
	Author       string
	Commit       string
	FilesChanged int32
	LinesAdded   int32
	LinesDeleted int32
	Category     string
	SizeBucket   string
}
