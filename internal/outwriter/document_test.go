package outwriter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pamout/devlog/schema"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

func TestEncodeDocument(t *testing.T) {
	doc := schema.Document{
		GeneratedAt: time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC),
		Logs: []schema.Record{{
			LogNumber:   "3",
			TypeLabel:   "기능 추가",
			Filename:    "003-board.md",
			FullContent: "<b>board</b> & more",
		}},
	}

	data, err := EncodeDocument(doc)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "기능 추가")
	assert.Contains(t, out, "<b>board</b> & more")
	assert.Contains(t, out, "\n  \"statistics\"")
	assert.Contains(t, out, `"generated_at": "2025-01-10T09:00:00Z"`)
}

func TestEncodeDocumentEmptyLogs(t *testing.T) {
	data, err := EncodeDocument(schema.Document{})
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, []any{}, raw["logs"])
}

func TestWriteDocument(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := filepath.Join("/site", "data", "dev-logs.json")
	doc := schema.Document{Logs: testRecords(), Statistics: schema.Statistics{TotalLogs: 2}}

	require.NoError(t, WriteDocument(fs, path, doc))

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	var decoded schema.Document
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, doc.Logs, decoded.Logs)
	assert.True(t, strings.HasSuffix(string(data), "\n"))

	ow := NewOutWriter(fs)
	require.NoError(t, ow.WriteDocument("/other/dev-logs.json", doc))
	exists, err := afero.Exists(fs, "/other/dev-logs.json")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestWriteDocumentReadOnly(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	assert.Error(t, WriteDocument(fs, "/site/data/dev-logs.json", schema.Document{}))
}
