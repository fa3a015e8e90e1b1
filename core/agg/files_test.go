package agg

import (
	"testing"

	"github.com/pamout/devlog/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const changeTable = "## Files\n\n" +
	"| Status | File | Note |\n" +
	"|--------|------|------|\n" +
	"| `+` | `frontend/Board.tsx` | new |\n" +
	"| `~` | `server/api.go` | edit |\n" +
	"| `~` | `server/api.go` | again |\n" +
	"| `-` | `docs/old.md` | gone |\n" +
	"Plain prose with a `+` marker but no table.\n"

func TestChangedFiles(t *testing.T) {
	assert.Equal(t, []string{"frontend/Board.tsx", "server/api.go", "docs/old.md"}, ChangedFiles(changeTable))
	assert.Empty(t, ChangedFiles("no table here"))
	assert.Empty(t, ChangedFiles("| `+` | File | header-like |"))
}

func TestFileHistory(t *testing.T) {
	records := []schema.Record{
		{LogNumber: "2", Commit: "abcdef1234", Title: "Second", FullContent: changeTable},
		{LogNumber: "1", Commit: "0123456789", Title: "First", FullContent: "| `~` | `server/api.go` | x |\n| `+` | `docker-compose.yml` | y |"},
	}

	t.Run("counts and ordering", func(t *testing.T) {
		h := FileHistory(records, testFileTable, 0)
		assert.Equal(t, 4, h.TotalFiles)
		require.Len(t, h.Top, 4)
		assert.Equal(t, "server/api.go", h.Top[0].Path)
		assert.Equal(t, 2, h.Top[0].Count)
		assert.Equal(t, schema.BackendCategory, h.Top[0].Category)
		require.Len(t, h.Top[0].Commits, 2)
		assert.Equal(t, "abcdef1", h.Top[0].Commits[0].Commit)
		assert.Equal(t, "docker-compose.yml", h.Top[1].Path)
	})

	t.Run("categories per unique file", func(t *testing.T) {
		h := FileHistory(records, testFileTable, 0)
		assert.Equal(t, 1, h.Categories[schema.FrontendCategory])
		assert.Equal(t, 1, h.Categories[schema.BackendCategory])
		assert.Equal(t, 1, h.Categories[schema.DocsCategory])
		assert.Equal(t, 1, h.Categories[schema.ConfigCategory])
		assert.Equal(t, 0, h.Categories[schema.OtherCategory])
	})

	t.Run("top n", func(t *testing.T) {
		h := FileHistory(records, testFileTable, 1)
		assert.Equal(t, 4, h.TotalFiles)
		assert.Len(t, h.Top, 1)
	})

	t.Run("empty", func(t *testing.T) {
		h := FileHistory(nil, testFileTable, 10)
		assert.Equal(t, 0, h.TotalFiles)
		assert.Empty(t, h.Top)
		assert.Len(t, h.Categories, len(schema.AllCategories))
	})
}
