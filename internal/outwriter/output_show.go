package outwriter

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/pamout/devlog/internal/contract"
	"github.com/pamout/devlog/schema"
)

// WriteRecord outputs a single record. Text output renders the document
// markdown for the terminal; JSON output writes the record itself.
func WriteRecord(record schema.Record, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, record)
		}, "Wrote JSON")
	case schema.TextOut, "":
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRecordMarkdown(w, record, cfg)
		}, "Wrote text")
	default:
		return fmt.Errorf("output format %s is not supported by the show command", cfg.Output)
	}
}

// RecordMarkdown prefixes the document with a short metadata block.
func RecordMarkdown(r schema.Record) string {
	info := schema.LookupType(r.Type)
	var b strings.Builder
	fmt.Fprintf(&b, "> **%s** · #%s · %s · %s · `%s`\n", info.Icon, r.LogNumber, valueOr(r.Date, "undated"), valueOr(r.Author, "unknown"), r.ShortCommit())
	fmt.Fprintf(&b, "> %d files · +%d · -%d · %s\n\n", r.FilesChanged, r.LinesAdded, r.LinesDeleted, schema.SizeBucketFor(r.TotalLines()))
	b.WriteString(r.FullContent)
	return b.String()
}

// writeRecordMarkdown renders the record with glamour, styled for the terminal
// when colors are enabled and as plain text otherwise.
func writeRecordMarkdown(w io.Writer, r schema.Record, cfg *contract.Config) error {
	width := 80
	if cfg.Width > 0 {
		width = cfg.Width
	}
	style := glamour.WithStandardStyle("notty")
	if cfg.UseColors {
		style = glamour.WithAutoStyle()
	}
	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.Render(RecordMarkdown(r))
	if err != nil {
		return fmt.Errorf("failed to render log %s: %w", r.LogNumber, err)
	}
	_, err = io.WriteString(w, out)
	return err
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
