package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pamout/devlog/internal/contract"
	"github.com/pamout/devlog/schema"
	"github.com/spf13/afero"
)

// indexFile is the directory readme, which is not a log.
const indexFile = "README.md"

// DirResult holds the records of a directory and the documents that were skipped.
type DirResult struct {
	Records []schema.Record
	Skipped []string
}

// ListDocuments returns the markdown documents of dir sorted by name, excluding the readme.
func ListDocuments(fs afero.Fs, dir string) ([]string, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	var out []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == indexFile || !strings.EqualFold(filepath.Ext(name), ".md") {
			continue
		}
		out = append(out, filepath.Join(dir, name))
	}
	return out, nil
}

// ParseDir extracts every document of dir. A document that cannot be read or
// parsed is logged and skipped; only failing to list dir is an error.
// Records are returned sorted by log number, highest first.
func ParseDir(fs afero.Fs, dir string) (DirResult, error) {
	var result DirResult

	docs, err := ListDocuments(fs, dir)
	if err != nil {
		return result, err
	}

	records := make([]schema.Record, 0, len(docs))
	for _, doc := range docs {
		data, err := afero.ReadFile(fs, doc)
		if err != nil {
			contract.Logger.Warn("Skipping unreadable document", "file", doc, "err", err)
			result.Skipped = append(result.Skipped, doc)
			continue
		}
		rec, err := ParseDocument(doc, string(data))
		if err != nil {
			contract.Logger.Warn("Skipping document", "file", doc, "err", err)
			result.Skipped = append(result.Skipped, doc)
			continue
		}
		contract.Logger.Debug("Parsed document", "file", filepath.Base(doc), "log", rec.LogNumber)
		records = append(records, rec)
	}

	result.Records = SortRecords(records)
	return result, nil
}
