package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pamout/devlog/schema"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(data)
}

func TestParseDocumentFullRecord(t *testing.T) {
	content := readFixture(t, "001-project-setup.md")
	rec, err := ParseDocument("testdata/001-project-setup.md", content)
	require.NoError(t, err)

	assert.Equal(t, "1", rec.LogNumber)
	assert.Equal(t, "Initialize monorepo", rec.Title)
	assert.Equal(t, "설정", rec.TypeLabel)
	assert.Equal(t, "2025-01-06 09:15:30", rec.Date)
	assert.Equal(t, "2025-01-06T09:15:30", rec.Timestamp)
	assert.Equal(t, "Jin Park", rec.Author)
	assert.Equal(t, "a1b2c3d4e5f60718293a4b5c6d7e8f9012345678", rec.Commit)
	assert.Equal(t, "setup", rec.Type)
	assert.Equal(t, "Bootstrap the web and api workspaces with shared tooling.", rec.Summary)
	assert.Equal(t, []string{
		"Create apps/web with Next.js",
		"Create apps/api with NestJS",
		"Add shared eslint config",
	}, rec.Details)
	assert.Equal(t, 3, rec.FilesChanged)
	assert.Equal(t, 120, rec.LinesAdded)
	assert.Equal(t, 0, rec.LinesDeleted)
	assert.Equal(t, "001", rec.Number)
	assert.Equal(t, "001-project-setup.md", rec.Filename)
	assert.Equal(t, "testdata/001-project-setup.md", rec.Filepath)
	assert.Equal(t, content, rec.FullContent)
}

func TestParseDocumentHeadingForms(t *testing.T) {
	tests := []struct {
		name      string
		heading   string
		wantNum   string
		wantTitle string
		wantLabel string
	}{
		{"label at end", "# Development Log #7 - Add board (기능 추가)", "7", "Add board", "기능 추가"},
		{"parentheses in title", "# Development Log #8 - Add board (feat) view (기능 추가)", "8", "Add board (feat) view", "기능 추가"},
		{"text after label", "# Development Log #9 - Fix bug (버그 수정) urgent", "9", "Fix bug", "버그 수정"},
		{"no label", "# Development Log #11 - Write notes", "11", "Write notes", ""},
		{"not a log heading", "# Weekly Notes", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ParseDocument("x.md", tt.heading+"\n\nbody\n")
			require.NoError(t, err)
			assert.Equal(t, tt.wantNum, rec.LogNumber)
			assert.Equal(t, tt.wantTitle, rec.Title)
			assert.Equal(t, tt.wantLabel, rec.TypeLabel)
		})
	}
}

func TestParseDocumentSections(t *testing.T) {
	t.Run("details stop at footer", func(t *testing.T) {
		rec, err := ParseDocument("002-kanban-board.md", readFixture(t, "002-kanban-board.md"))
		require.NoError(t, err)
		assert.Equal(t, "Render the board from parsed records.", rec.Summary)
		assert.Equal(t, []string{"Add src/components/Board.tsx", "Wire board into page.tsx"}, rec.Details)
		assert.Equal(t, 2, rec.FilesChanged)
		assert.Equal(t, 180, rec.LinesAdded)
		assert.Equal(t, 20, rec.LinesDeleted)
	})

	t.Run("headings without localized suffix", func(t *testing.T) {
		rec, err := ParseDocument("010-fix-login.md", readFixture(t, "010-fix-login.md"))
		require.NoError(t, err)
		assert.Equal(t, "Redirect loop after token refresh is gone.", rec.Summary)
		assert.Equal(t, []string{"Guard refresh handler", "Add regression test"}, rec.Details)
		assert.Equal(t, "2025-01-09 23:40", rec.Timestamp, "minute precision dates are kept raw")
		assert.Equal(t, "deadbee", rec.ShortCommit())
	})

	t.Run("summary ends at next section", func(t *testing.T) {
		content := "## Summary\n\n## Details\n- item\n"
		rec, err := ParseDocument("x.md", content)
		require.NoError(t, err)
		assert.Empty(t, rec.Summary)
		assert.Equal(t, []string{"item"}, rec.Details)
	})

	t.Run("crlf line endings", func(t *testing.T) {
		content := "## Summary\r\n\r\nLine one\r\n### Details\r\n- a\r\n- b\r\n"
		rec, err := ParseDocument("x.md", content)
		require.NoError(t, err)
		assert.Equal(t, "Line one", rec.Summary)
		assert.Equal(t, []string{"a", "b"}, rec.Details)
	})
}

func TestParseDocumentMissingFields(t *testing.T) {
	rec, err := ParseDocument("005-notes.md", readFixture(t, "005-notes.md"))
	require.NoError(t, err)

	assert.Equal(t, "5", rec.LogNumber)
	assert.Equal(t, "Write architecture notes", rec.Title)
	assert.Empty(t, rec.TypeLabel)
	assert.Empty(t, rec.Author)
	assert.Empty(t, rec.Commit)
	assert.Nil(t, rec.Details)
	assert.Zero(t, rec.FilesChanged)
	assert.Zero(t, rec.LinesAdded)
	assert.Zero(t, rec.LinesDeleted)
	// Malformed dates are kept raw.
	assert.Equal(t, "sometime in January", rec.Date)
	assert.Equal(t, "sometime in January", rec.Timestamp)
}

func TestParseDocumentUnparseable(t *testing.T) {
	_, err := ParseDocument("blank.md", "  \n\t\n")
	assert.ErrorIs(t, err, ErrUnparseable)

	_, err = ParseDocument("binary.md", string([]byte{0xff, 0xfe, 0x00}))
	assert.ErrorIs(t, err, ErrUnparseable)
}

func TestSortRecords(t *testing.T) {
	in := []schema.Record{{LogNumber: "3"}, {LogNumber: "1"}, {LogNumber: "2"}}
	out := SortRecords(in)

	got := make([]string, len(out))
	for i, r := range out {
		got[i] = r.LogNumber
	}
	assert.Equal(t, []string{"3", "2", "1"}, got)
	assert.Equal(t, "3", in[0].LogNumber)
	assert.Equal(t, "1", in[1].LogNumber, "input must not be reordered")
}

func TestSortRecordsStableForMissingNumbers(t *testing.T) {
	in := []schema.Record{
		{Filename: "a.md"},
		{LogNumber: "2"},
		{Filename: "b.md", LogNumber: "abc"},
		{Filename: "c.md"},
	}
	out := SortRecords(in)
	assert.Equal(t, "2", out[0].LogNumber)
	assert.Equal(t, "a.md", out[1].Filename)
	assert.Equal(t, "b.md", out[2].Filename)
	assert.Equal(t, "c.md", out[3].Filename)
}

func TestParseDir(t *testing.T) {
	result, err := ParseDir(afero.NewOsFs(), "testdata")
	require.NoError(t, err)
	assert.Empty(t, result.Skipped)

	var nums []string
	for _, r := range result.Records {
		nums = append(nums, r.LogNumber)
	}
	assert.Equal(t, []string{"10", "5", "4", "2", "1"}, nums)
}

func TestParseDirSkipsBadDocuments(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/logs/archive.md", 0o755)) // directory with a markdown name
	require.NoError(t, afero.WriteFile(fs, "/logs/01-good.md", []byte("# Development Log #1 - Good (기타)\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/logs/02-empty.md", []byte("\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/logs/README.md", []byte("# Index\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/logs/UPPER.MD", []byte("# Development Log #3 - Upper (기타)\n"), 0o644))

	result, err := ParseDir(fs, "/logs")
	require.NoError(t, err)
	require.Len(t, result.Records, 2)
	assert.Equal(t, "3", result.Records[0].LogNumber)
	assert.Equal(t, "1", result.Records[1].LogNumber)
	assert.Equal(t, []string{filepath.Join("/logs", "02-empty.md")}, result.Skipped)
}

func TestParseDirMissing(t *testing.T) {
	_, err := ParseDir(afero.NewMemMapFs(), "/nope")
	assert.Error(t, err)
}
