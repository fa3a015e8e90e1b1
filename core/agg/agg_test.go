package agg

import (
	"encoding/json"
	"testing"

	"github.com/pamout/devlog/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRecordTable = schema.CategoryTable{
	{Category: schema.FrontendCategory, Patterns: []string{"frontend/", ".tsx"}},
	{Category: schema.BackendCategory, Patterns: []string{"server/", ".py"}},
	{Category: schema.DocsCategory, Patterns: []string{"docs/", ".md"}},
	{Category: schema.ConfigCategory, Patterns: []string{".yml", "docker-compose"}},
}

var testFileTable = schema.CategoryTable{
	{Category: schema.FrontendCategory, Patterns: []string{"frontend/", ".tsx"}},
	{Category: schema.BackendCategory, Patterns: []string{"server/", "api/"}},
	{Category: schema.DocsCategory, Patterns: []string{"docs/", "readme"}},
	{Category: schema.ConfigCategory, Patterns: []string{".yml", "docker"}},
}

func sampleRecords() []schema.Record {
	return []schema.Record{
		{LogNumber: "3", Type: "feat", Date: "2025-01-08 14:00:00", FilesChanged: 4, LinesAdded: 300, LinesDeleted: 20, FullContent: "changes in frontend/page.tsx"},
		{LogNumber: "2", Type: "fix", Date: "2025-01-07 23:30:00", FilesChanged: 1, LinesAdded: 5, LinesDeleted: 2, FullContent: "server/main.go and frontend/x.tsx"},
		{LogNumber: "1", Type: "", Date: "", FilesChanged: 2, LinesAdded: 10, FullContent: "nothing known here"},
	}
}

func TestSummarize(t *testing.T) {
	stats := Summarize(sampleRecords(), testRecordTable)

	assert.Equal(t, 3, stats.TotalLogs)
	assert.Equal(t, 7, stats.TotalFilesChanged)
	assert.Equal(t, 315, stats.TotalLinesAdded)
	assert.Equal(t, 22, stats.TotalLinesDeleted)
	assert.Equal(t, map[string]int{"feat": 1, "fix": 1, schema.UnknownType: 1}, stats.ByType)
}

func TestCategoryCounts(t *testing.T) {
	t.Run("first match wins", func(t *testing.T) {
		counts := CategoryCounts(sampleRecords(), testRecordTable)
		assert.Equal(t, 2, counts[schema.FrontendCategory])
		assert.Equal(t, 0, counts[schema.BackendCategory])
		assert.Equal(t, 1, counts[schema.OtherCategory])
	})

	t.Run("counts sum to total", func(t *testing.T) {
		records := sampleRecords()
		counts := CategoryCounts(records, testRecordTable)
		sum := 0
		for _, c := range counts {
			sum += c
		}
		assert.Equal(t, len(records), sum)
	})

	t.Run("all categories present on empty input", func(t *testing.T) {
		counts := CategoryCounts(nil, testRecordTable)
		assert.Len(t, counts, len(schema.AllCategories))
		for _, c := range schema.AllCategories {
			assert.Contains(t, counts, c)
		}
	})
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0.0, Percent(3, 0))
	assert.Equal(t, 33.3, Percent(1, 3))
	assert.Equal(t, 66.7, Percent(2, 3))
	assert.Equal(t, 100.0, Percent(4, 4))
}

func TestStatisticsStableAcrossDocumentRoundTrip(t *testing.T) {
	records := sampleRecords()
	doc := schema.Document{Statistics: Summarize(records, testRecordTable), Logs: records}

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded schema.Document
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, doc.Statistics, Summarize(decoded.Logs, testRecordTable))
}

func TestSummarizeDoesNotModifyInput(t *testing.T) {
	records := sampleRecords()
	before := sampleRecords()
	Summarize(records, testRecordTable)
	TimeAnalysis(records)
	SizeDistribution(records)
	GroupByDay(records)
	assert.Equal(t, before, records)
}
