// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/pamout/devlog/internal/contract"
	"github.com/pamout/devlog/schema"
	"github.com/spf13/afero"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct {
	fs afero.Fs
}

// NewOutWriter creates a new instance of the output writer backed by fs.
func NewOutWriter(fs afero.Fs) *OutWriter {
	return &OutWriter{fs: fs}
}

// WriteStats prints the aggregate report using the configured output format.
func (ow *OutWriter) WriteStats(report schema.Report, cfg *contract.Config, duration time.Duration) error {
	return WriteStats(report, cfg, duration)
}

// WriteLogs prints the record listing using the configured output format.
func (ow *OutWriter) WriteLogs(records []schema.Record, cfg *contract.Config, duration time.Duration) error {
	return WriteLogs(records, cfg, duration)
}

// WriteRecord prints a single record using the configured output format.
func (ow *OutWriter) WriteRecord(record schema.Record, cfg *contract.Config) error {
	return WriteRecord(record, cfg)
}

// WriteDocument stores the JSON artifact at path.
func (ow *OutWriter) WriteDocument(path string, doc schema.Document) error {
	return WriteDocument(ow.fs, path, doc)
}
