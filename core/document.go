package core

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/pamout/devlog/core/agg"
	"github.com/pamout/devlog/internal/contract"
	"github.com/pamout/devlog/schema"
	"github.com/spf13/afero"
)

// BuildDocument assembles the artifact from sorted records. Statistics are
// always recomputed from the records.
func BuildDocument(records []schema.Record, table schema.CategoryTable, now time.Time) schema.Document {
	logs := records
	if logs == nil {
		logs = []schema.Record{}
	}
	return schema.Document{
		GeneratedAt: now.Truncate(time.Second),
		Statistics:  agg.Summarize(logs, table),
		Logs:        logs,
	}
}

// LoadDocument reads a previously written artifact.
func LoadDocument(fs afero.Fs, path string) (schema.Document, error) {
	var doc schema.Document
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return doc, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return doc, nil
}

// BuildReport computes every aggregate of the document under cfg.
// The streak is anchored at the last dated record, matching the heatmap.
func BuildReport(doc schema.Document, cfg *contract.Config) schema.Report {
	records := doc.Logs
	counts := agg.CountByDate(records)

	report := schema.Report{
		GeneratedAt: doc.GeneratedAt,
		Statistics:  agg.Summarize(records, cfg.RecordCategories),
		Frequency:   agg.Frequency(records),
		ActiveDays:  agg.ActiveDays(counts),
		Time:        agg.TimeAnalysis(records),
		Sizes:       agg.SizeDistribution(records),
		Files:       agg.FileHistory(records, cfg.FileCategories, cfg.TopFiles),
		Deployments: agg.Deployments(records),
	}
	if first, last, ok := agg.DateRange(records); ok {
		report.FirstDate = agg.DayKey(first)
		report.LastDate = agg.DayKey(last)
		report.Streak = agg.Streak(counts, last)
	}
	return report
}

// FindRecord returns the record with the given log number. Numeric log numbers
// match regardless of leading zeros.
func FindRecord(records []schema.Record, logNumber string) (schema.Record, bool) {
	for _, r := range records {
		if r.LogNumber == logNumber {
			return r, true
		}
	}
	want, err := strconv.Atoi(logNumber)
	if err != nil {
		return schema.Record{}, false
	}
	for _, r := range records {
		if n, err := strconv.Atoi(r.LogNumber); err == nil && n == want {
			return r, true
		}
	}
	return schema.Record{}, false
}

// Snapshots converts records into the rows stored for a build run. Records
// without a log number, and repeats of a log number, have no row.
func Snapshots(records []schema.Record, table schema.CategoryTable) []schema.RecordSnapshot {
	out := make([]schema.RecordSnapshot, 0, len(records))
	seen := make(map[string]bool, len(records))
	for _, r := range records {
		if r.LogNumber == "" || seen[r.LogNumber] {
			continue
		}
		seen[r.LogNumber] = true
		out = append(out, schema.RecordSnapshot{
			LogNumber:    r.LogNumber,
			Title:        r.Title,
			Type:         r.Type,
			Date:         r.Date,
			Author:       r.Author,
			Commit:       r.Commit,
			FilesChanged: schema.ClampInt32(r.FilesChanged),
			LinesAdded:   schema.ClampInt32(r.LinesAdded),
			LinesDeleted: schema.ClampInt32(r.LinesDeleted),
			Category:     string(table.Classify(r.FullContent)),
			SizeBucket:   string(schema.SizeBucketFor(r.TotalLines())),
		})
	}
	return out
}
