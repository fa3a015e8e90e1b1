// Package agg has the pure aggregation functions over parsed records.
// No function in this package modifies its input.
package agg

import (
	"math"

	"github.com/pamout/devlog/schema"
)

// Summarize computes the statistics block over all records.
// Each record is counted in exactly one category of the table.
func Summarize(records []schema.Record, table schema.CategoryTable) schema.Statistics {
	stats := schema.Statistics{
		TotalLogs:  len(records),
		ByType:     CountByType(records),
		Categories: CategoryCounts(records, table),
	}
	for _, r := range records {
		stats.TotalFilesChanged += r.FilesChanged
		stats.TotalLinesAdded += r.LinesAdded
		stats.TotalLinesDeleted += r.LinesDeleted
	}
	return stats
}

// CountByType counts records per type, with missing types counted as unknown.
func CountByType(records []schema.Record) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.TypeOrUnknown()]++
	}
	return counts
}

// CategoryCounts classifies each record's full content with the table.
// Every category of the table is present in the result, even when zero.
func CategoryCounts(records []schema.Record, table schema.CategoryTable) map[schema.Category]int {
	counts := make(map[schema.Category]int)
	for _, c := range table.Categories() {
		counts[c] = 0
	}
	for _, r := range records {
		counts[table.Classify(r.FullContent)]++
	}
	return counts
}

// Percent returns part/total as a percentage rounded to one decimal, or 0 when total is 0.
func Percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}

// round2 rounds to two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
