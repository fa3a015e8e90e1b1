// Package parquet provides data structures and functions for exporting devlog
// records and run history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pamout/devlog/schema"
	"github.com/parquet-go/parquet-go"
)

// Run represents a single build run with metadata.
// This struct maps to the devlog_runs database table.
type Run struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// RunUUID is the globally unique identifier for this run
	RunUUID string `parquet:"run_uuid,snappy"`

	// StartTime is when the build began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the build completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	TotalLogs    int32 `parquet:"total_logs,snappy"`
	SkippedFiles int32 `parquet:"skipped_files,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// RecordSnapshot is one record as it looked during a run.
// This struct maps to the devlog_run_records database table.
type RecordSnapshot struct {
	RunID        int64  `parquet:"run_id,snappy"`
	LogNumber    string `parquet:"log_number,snappy"`
	Title        string `parquet:"title,snappy"`
	Type         string `parquet:"type,snappy"`
	Date         string `parquet:"date,snappy"`
	Author       string `parquet:"author,snappy"`
	Commit       string `parquet:"commit,snappy"`
	FilesChanged int32  `parquet:"files_changed,snappy"`
	LinesAdded   int32  `parquet:"lines_added,snappy"`
	LinesDeleted int32  `parquet:"lines_deleted,snappy"`
	Category     string `parquet:"category,snappy"`
	SizeBucket   string `parquet:"size_bucket,snappy"`
}

// LogRow is the flat export row of a parsed record.
type LogRow struct {
	LogNumber    string `parquet:"log_number,snappy"`
	Title        string `parquet:"title,snappy"`
	Type         string `parquet:"type,snappy"`
	TypeLabel    string `parquet:"type_label,snappy"`
	Date         string `parquet:"date,snappy"`
	Author       string `parquet:"author,snappy"`
	Commit       string `parquet:"commit,snappy"`
	Summary      string `parquet:"summary,snappy"`
	FilesChanged int32  `parquet:"files_changed,snappy"`
	LinesAdded   int32  `parquet:"lines_added,snappy"`
	LinesDeleted int32  `parquet:"lines_deleted,snappy"`
	SizeBucket   string `parquet:"size_bucket,snappy"`
	Category     string `parquet:"category,snappy"`
	Filename     string `parquet:"filename,snappy"`
}

// WriteRunsParquet writes runs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteRecordSnapshotsParquet writes record snapshots to a Parquet file.
func WriteRecordSnapshotsParquet(data []RecordSnapshot, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteLogRowsParquet writes log rows to a Parquet file.
func WriteLogRowsParquet(data []LogRow, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteLogRows writes log rows as Parquet to w.
func WriteLogRows(w io.Writer, data []LogRow) error {
	return writeRows(w, data)
}

func writeFile[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return writeRows(file, data)
}

// writeRows derives the schema from T's struct tags.
func writeRows[T any](w io.Writer, data []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ReadFile reads every row of a Parquet file written by this package.
func ReadFile[T any](path string) ([]T, error) {
	rows, err := parquet.ReadFile[T](path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet file %s: %w", path, err)
	}
	return rows, nil
}

// ConvertRunRecords converts schema.RunRecord to Run for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, record := range records {
		result[i] = Run{
			RunID:         record.RunID,
			RunUUID:       record.RunUUID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			TotalLogs:     record.TotalLogs,
			SkippedFiles:  record.SkippedFiles,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertRecordSnapshots converts schema.RecordSnapshot to RecordSnapshot for Parquet export.
func ConvertRecordSnapshots(records []schema.RecordSnapshot) []RecordSnapshot {
	result := make([]RecordSnapshot, len(records))
	for i, record := range records {
		result[i] = RecordSnapshot{
			RunID:        record.RunID,
			LogNumber:    record.LogNumber,
			Title:        record.Title,
			Type:         record.Type,
			Date:         record.Date,
			Author:       record.Author,
			Commit:       record.Commit,
			FilesChanged: record.FilesChanged,
			LinesAdded:   record.LinesAdded,
			LinesDeleted: record.LinesDeleted,
			Category:     record.Category,
			SizeBucket:   record.SizeBucket,
		}
	}
	return result
}

// ConvertRecords flattens parsed records into log rows, classifying each with table.
func ConvertRecords(records []schema.Record, table schema.CategoryTable) []LogRow {
	result := make([]LogRow, len(records))
	for i, r := range records {
		result[i] = LogRow{
			LogNumber:    r.LogNumber,
			Title:        r.Title,
			Type:         r.Type,
			TypeLabel:    r.TypeLabel,
			Date:         r.Date,
			Author:       r.Author,
			Commit:       r.Commit,
			Summary:      r.Summary,
			FilesChanged: schema.ClampInt32(r.FilesChanged),
			LinesAdded:   schema.ClampInt32(r.LinesAdded),
			LinesDeleted: schema.ClampInt32(r.LinesDeleted),
			SizeBucket:   string(schema.SizeBucketFor(r.TotalLines())),
			Category:     string(table.Classify(r.FullContent)),
			Filename:     r.Filename,
		}
	}
	return result
}
