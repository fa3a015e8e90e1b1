package agg

import (
	"cmp"
	"slices"

	"github.com/pamout/devlog/schema"
)

// LargestCommitsShown is how many of the largest commits are listed.
const LargestCommitsShown = 10

// SizeBucket classifies a commit by total lines changed.
func SizeBucket(lines int) schema.SizeBucket {
	return schema.SizeBucketFor(lines)
}

// NewSizeEntry places one record in its size bucket.
func NewSizeEntry(r schema.Record) schema.SizeEntry {
	total := r.TotalLines()
	return schema.SizeEntry{
		LogNumber: r.LogNumber,
		Title:     r.Title,
		Added:     r.LinesAdded,
		Deleted:   r.LinesDeleted,
		Total:     total,
		Files:     r.FilesChanged,
		Date:      r.Date,
		Commit:    r.ShortCommit(),
		Bucket:    SizeBucket(total),
	}
}

// SizeDistribution groups records by size bucket with counts and percentages.
// Every bucket is present in the result.
func SizeDistribution(records []schema.Record) schema.SizeDistribution {
	dist := schema.SizeDistribution{
		Total:    len(records),
		Buckets:  make(map[schema.SizeBucket][]schema.SizeEntry, len(schema.AllSizeBuckets)),
		Counts:   make(map[schema.SizeBucket]int, len(schema.AllSizeBuckets)),
		Percents: make(map[schema.SizeBucket]float64, len(schema.AllSizeBuckets)),
	}
	for _, b := range schema.AllSizeBuckets {
		dist.Buckets[b] = []schema.SizeEntry{}
	}

	entries := make([]schema.SizeEntry, 0, len(records))
	for _, r := range records {
		e := NewSizeEntry(r)
		entries = append(entries, e)
		dist.Buckets[e.Bucket] = append(dist.Buckets[e.Bucket], e)
	}
	for _, b := range schema.AllSizeBuckets {
		dist.Counts[b] = len(dist.Buckets[b])
		dist.Percents[b] = Percent(dist.Counts[b], dist.Total)
	}

	slices.SortStableFunc(entries, func(a, b schema.SizeEntry) int {
		return cmp.Compare(b.Total, a.Total)
	})
	dist.Largest = entries[:min(LargestCommitsShown, len(entries))]
	return dist
}
