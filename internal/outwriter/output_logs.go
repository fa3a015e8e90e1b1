package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/pamout/devlog/internal/contract"
	"github.com/pamout/devlog/internal/parquet"
	"github.com/pamout/devlog/schema"
)

// WriteLogs outputs the record listing, dispatching based on the output format configured.
func WriteLogs(records []schema.Record, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONLogs(w, records, cfg.RecordCategories)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVLogs(w, records, cfg.RecordCategories)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		rows := parquet.ConvertRecords(records, cfg.RecordCategories)
		if err := parquet.WriteLogRowsParquet(rows, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		contract.Logger.Info("Wrote Parquet", "file", cfg.OutputFile, "rows", len(rows))
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeLogsTable(w, records, cfg, duration)
		}, "Wrote table")
	}
	return nil
}

// writeLogsTable generates and writes the human-readable listing.
func writeLogsTable(w io.Writer, records []schema.Record, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Log", "Date", "Type", "Title", "Files", "Added", "Deleted", "Size"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignLeft
	})

	titleWidth := GetMaxTableTitleWidth(cfg)
	var data [][]string
	totalAdded, totalDeleted := 0, 0
	for _, r := range records {
		size := contract.GetPlainSizeLabel(r.TotalLines())
		if cfg.UseColors {
			size = contract.GetColorSizeLabel(r.TotalLines())
		}
		data = append(data, []string{
			r.LogNumber,
			r.Date,
			r.Type,
			contract.TruncateText(r.Title, titleWidth),
			strconv.Itoa(r.FilesChanged),
			"+" + strconv.Itoa(r.LinesAdded),
			"-" + strconv.Itoa(r.LinesDeleted),
			size,
		})
		totalAdded += r.LinesAdded
		totalDeleted += r.LinesDeleted
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Showing %d logs (lines added: %d, lines deleted: %d)\n", len(records), totalAdded, totalDeleted); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Listed in %v\n", duration.Round(time.Millisecond)); err != nil {
		return err
	}
	return nil
}

// writeCSVLogs writes one row per record with its derived size bucket and category.
func writeCSVLogs(w io.Writer, records []schema.Record, table schema.CategoryTable) error {
	header := []string{
		"log_number",
		"title",
		"type",
		"date",
		"author",
		"commit",
		"files_changed",
		"lines_added",
		"lines_deleted",
		"size",
		"category",
		"filename",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range records {
			row := []string{
				r.LogNumber,
				r.Title,
				r.Type,
				r.Date,
				r.Author,
				r.Commit,
				strconv.Itoa(r.FilesChanged),
				strconv.Itoa(r.LinesAdded),
				strconv.Itoa(r.LinesDeleted),
				contract.GetPlainSizeLabel(r.TotalLines()),
				string(table.Classify(r.FullContent)),
				r.Filename,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeJSONLogs writes the records without their full content, adding the derived fields.
func writeJSONLogs(w io.Writer, records []schema.Record, table schema.CategoryTable) error {
	type JSONLog struct {
		schema.Record
		FullContent string            `json:"full_content,omitempty"`
		Size        schema.SizeBucket `json:"size"`
		Category    schema.Category   `json:"category"`
	}

	output := make([]JSONLog, len(records))
	for i, r := range records {
		output[i] = JSONLog{
			Record:   r,
			Size:     schema.SizeBucketFor(r.TotalLines()),
			Category: table.Classify(r.FullContent),
		}
	}
	return writeJSON(w, output)
}
