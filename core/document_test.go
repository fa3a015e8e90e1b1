package core

import (
	"math"
	"testing"
	"time"

	"github.com/pamout/devlog/internal/contract"
	"github.com/pamout/devlog/internal/outwriter"
	"github.com/pamout/devlog/schema"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []schema.Record {
	return []schema.Record{
		{
			LogNumber: "12", Title: "Deploy docker stack", Type: "ci", Date: "2025-01-08 21:00:00",
			Author: "Jin", Commit: "ccccccccc", FilesChanged: 2, LinesAdded: 30, LinesDeleted: 5,
			Filename:    "012-deploy.md",
			FullContent: "Updated docker-compose.yml\n| `~` | `docker-compose.yml` |\n",
		},
		{
			LogNumber: "11", Title: "Fix login", Type: "fix", Date: "2025-01-07 10:00:00",
			Author: "Mina", Commit: "bbbbbbbbb", FilesChanged: 1, LinesAdded: 3, LinesDeleted: 1,
			Filename:    "011-fix.md",
			FullContent: "server/auth.py\n| `~` | `server/auth.py` |\n",
		},
		{
			LogNumber: "011", Title: "Duplicate number", Type: "docs",
			Filename:    "011b-dup.md",
			FullContent: "README.md notes\n",
		},
		{
			Title: "No number", Type: "chore", Date: "someday",
			Filename:    "notes.md",
			FullContent: "notes\n",
		},
	}
}

func TestBuildDocument(t *testing.T) {
	now := time.Date(2025, 1, 9, 12, 30, 15, 999, time.UTC)
	doc := BuildDocument(sampleRecords(), contract.DefaultRecordCategories(), now)

	assert.Equal(t, now.Truncate(time.Second), doc.GeneratedAt)
	assert.Equal(t, 4, doc.Statistics.TotalLogs)
	assert.Equal(t, 33, doc.Statistics.TotalLinesAdded)
	assert.Equal(t, map[string]int{"ci": 1, "fix": 1, "docs": 1, "chore": 1}, doc.Statistics.ByType)

	empty := BuildDocument(nil, contract.DefaultRecordCategories(), now)
	assert.NotNil(t, empty.Logs)
	assert.Empty(t, empty.Logs)
	assert.Equal(t, 0, empty.Statistics.TotalLogs)
}

func TestDocumentRoundTripKeepsStatistics(t *testing.T) {
	fs := afero.NewMemMapFs()
	table := contract.DefaultRecordCategories()
	doc := BuildDocument(sampleRecords(), table, time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC))
	require.NoError(t, outwriter.WriteDocument(fs, "/data/dev-logs.json", doc))

	loaded, err := LoadDocument(fs, "/data/dev-logs.json")
	require.NoError(t, err)
	assert.True(t, doc.GeneratedAt.Equal(loaded.GeneratedAt))
	assert.Equal(t, doc.Statistics, loaded.Statistics)
	assert.Equal(t, doc.Logs, loaded.Logs)

	rebuilt := BuildDocument(loaded.Logs, table, loaded.GeneratedAt)
	assert.Equal(t, doc.Statistics, rebuilt.Statistics)
}

func TestLoadDocumentErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := LoadDocument(fs, "/missing.json")
	assert.Error(t, err)

	require.NoError(t, afero.WriteFile(fs, "/bad.json", []byte("{not json"), 0o644))
	_, err = LoadDocument(fs, "/bad.json")
	assert.ErrorContains(t, err, "failed to decode")
}

func TestBuildReport(t *testing.T) {
	cfg := &contract.Config{
		RecordCategories: contract.DefaultRecordCategories(),
		FileCategories:   contract.DefaultFileCategories(),
		TopFiles:         1,
	}
	doc := BuildDocument(sampleRecords(), cfg.RecordCategories, time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC))
	report := BuildReport(doc, cfg)

	assert.Equal(t, "2025-01-07", report.FirstDate)
	assert.Equal(t, "2025-01-08", report.LastDate)
	assert.Equal(t, schema.Streak{Current: 2, Longest: 2}, report.Streak)
	assert.Equal(t, 2, report.ActiveDays)
	assert.Equal(t, 2, report.Files.TotalFiles)
	assert.Len(t, report.Files.Top, 1)
	require.Len(t, report.Deployments.Deployments, 1)
	assert.Equal(t, schema.InfrastructureDeploy, report.Deployments.Deployments[0].Kind)
	assert.Equal(t, 4, report.Sizes.Total)
}

func TestBuildReportUndated(t *testing.T) {
	cfg := &contract.Config{TopFiles: 5}
	doc := BuildDocument([]schema.Record{{Title: "x", Filename: "x.md"}}, nil, time.Now())
	report := BuildReport(doc, cfg)

	assert.Empty(t, report.FirstDate)
	assert.Empty(t, report.LastDate)
	assert.Equal(t, schema.Streak{}, report.Streak)
}

func TestFindRecord(t *testing.T) {
	records := sampleRecords()

	r, ok := FindRecord(records, "12")
	require.True(t, ok)
	assert.Equal(t, "Deploy docker stack", r.Title)

	r, ok = FindRecord(records, "011")
	require.True(t, ok)
	assert.Equal(t, "Duplicate number", r.Title, "exact match wins")

	r, ok = FindRecord(records, "0012")
	require.True(t, ok)
	assert.Equal(t, "12", r.LogNumber)

	_, ok = FindRecord(records, "99")
	assert.False(t, ok)
	_, ok = FindRecord(records, "abc")
	assert.False(t, ok)
}

func TestSnapshots(t *testing.T) {
	snaps := Snapshots(sampleRecords(), contract.DefaultRecordCategories())

	require.Len(t, snaps, 3)
	assert.Equal(t, "12", snaps[0].LogNumber)
	assert.Equal(t, int32(35), snaps[0].LinesAdded+snaps[0].LinesDeleted)
	assert.Equal(t, string(schema.SmallSize), snaps[0].SizeBucket)
	assert.Equal(t, "11", snaps[1].LogNumber)
	assert.Equal(t, "011", snaps[2].LogNumber)
}

func TestSnapshotsClampOversizedCounts(t *testing.T) {
	records := []schema.Record{{LogNumber: "1", FilesChanged: 3, LinesAdded: math.MaxInt32 + 10, LinesDeleted: 1 << 40}}
	snaps := Snapshots(records, contract.DefaultRecordCategories())

	require.Len(t, snaps, 1)
	assert.Equal(t, int32(3), snaps[0].FilesChanged)
	assert.Equal(t, int32(math.MaxInt32), snaps[0].LinesAdded)
	assert.Equal(t, int32(math.MaxInt32), snaps[0].LinesDeleted)
	assert.Equal(t, string(schema.XLargeSize), snaps[0].SizeBucket)
}
