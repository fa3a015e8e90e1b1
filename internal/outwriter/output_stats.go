package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/pamout/devlog/internal/contract"
	"github.com/pamout/devlog/schema"
)

// ErrParquetStats is returned when parquet output is requested for statistics.
var ErrParquetStats = errors.New("parquet output is only supported by the logs command")

var sectionColor = color.New(color.FgCyan, color.Bold)

// statRow is one flattened section/key/value line of a report.
type statRow struct {
	Section string
	Key     string
	Value   string
}

// WriteStats outputs the aggregate report, dispatching based on the output format configured.
func WriteStats(report schema.Report, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		rows := flattenReport(report, fmtFloat, intFmt)
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVStats(w, rows)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return ErrParquetStats
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStatsText(w, report, cfg, fmtFloat, intFmt, duration)
		}, "Wrote text")
	}
	return nil
}

// flattenReport turns the report into ordered section/key/value rows.
func flattenReport(report schema.Report, fmtFloat func(float64) string, intFmt string) []statRow {
	itoa := func(v int) string { return fmt.Sprintf(intFmt, v) }
	stats := report.Statistics

	rows := []statRow{
		{"overview", "total_logs", itoa(stats.TotalLogs)},
		{"overview", "total_files_changed", itoa(stats.TotalFilesChanged)},
		{"overview", "total_lines_added", itoa(stats.TotalLinesAdded)},
		{"overview", "total_lines_deleted", itoa(stats.TotalLinesDeleted)},
		{"overview", "first_date", report.FirstDate},
		{"overview", "last_date", report.LastDate},
		{"overview", "active_days", itoa(report.ActiveDays)},
		{"frequency", "daily", fmtFloat(report.Frequency.Daily)},
		{"frequency", "weekly", fmtFloat(report.Frequency.Weekly)},
		{"frequency", "monthly", fmtFloat(report.Frequency.Monthly)},
		{"frequency", "total_days", itoa(report.Frequency.TotalDays)},
		{"streak", "current", itoa(report.Streak.Current)},
		{"streak", "longest", itoa(report.Streak.Longest)},
	}

	for _, typ := range slices.Sorted(maps.Keys(stats.ByType)) {
		rows = append(rows, statRow{"by_type", typ, itoa(stats.ByType[typ])})
	}
	for _, c := range orderedCategories(stats.Categories) {
		rows = append(rows, statRow{"categories", string(c), itoa(stats.Categories[c])})
	}
	for _, b := range schema.AllSizeBuckets {
		rows = append(rows, statRow{"commit_sizes", string(b), itoa(report.Sizes.Counts[b])})
	}

	ta := report.Time
	rows = append(rows,
		statRow{"time", "peak_hour", itoa(ta.PeakHour)},
		statRow{"time", "peak_period", ta.PeakPeriod},
		statRow{"time", "most_active_day", ta.MostActiveDay},
		statRow{"time", "weekday_commits", itoa(ta.WeekdayCommits)},
		statRow{"time", "weekend_commits", itoa(ta.WeekendCommits)},
		statRow{"time", "weekday_percent", fmtFloat(ta.WeekdayPercent)},
	)

	for _, f := range report.Files.Top {
		rows = append(rows, statRow{"top_files", f.Path, itoa(f.Count)})
	}
	for _, k := range schema.AllDeploymentKinds {
		rows = append(rows, statRow{"deployments", string(k), itoa(report.Deployments.Counts[k])})
	}
	return rows
}

// orderedCategories lists the built-in categories first, then any custom ones by name.
func orderedCategories(counts map[schema.Category]int) []schema.Category {
	out := make([]schema.Category, 0, len(counts))
	for _, c := range schema.AllCategories {
		if _, ok := counts[c]; ok {
			out = append(out, c)
		}
	}
	for _, c := range slices.Sorted(maps.Keys(counts)) {
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}

// writeCSVStats writes the flattened report rows.
func writeCSVStats(w io.Writer, rows []statRow) error {
	return writeCSVWithHeader(w, []string{"section", "key", "value"}, func(cw *csv.Writer) error {
		for _, r := range rows {
			if err := cw.Write([]string{r.Section, r.Key, r.Value}); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeStatsText renders each report section as a small table.
func writeStatsText(w io.Writer, report schema.Report, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	itoa := func(v int) string { return fmt.Sprintf(intFmt, v) }
	stats := report.Statistics

	heading := func(title string) error {
		if cfg.UseColors {
			title = sectionColor.Sprint(title)
		}
		_, err := fmt.Fprintf(w, "\n%s\n", title)
		return err
	}

	if err := heading("📊 Overview"); err != nil {
		return err
	}
	overview := [][]string{
		{"Logs", itoa(stats.TotalLogs)},
		{"Files changed", itoa(stats.TotalFilesChanged)},
		{"Lines added", "+" + itoa(stats.TotalLinesAdded)},
		{"Lines deleted", "-" + itoa(stats.TotalLinesDeleted)},
		{"Period", formatPeriod(report.FirstDate, report.LastDate)},
		{"Active days", itoa(report.ActiveDays)},
		{"Per day / week / month", fmtFloat(report.Frequency.Daily) + " / " + fmtFloat(report.Frequency.Weekly) + " / " + fmtFloat(report.Frequency.Monthly)},
		{"Streak (current / longest)", itoa(report.Streak.Current) + " / " + itoa(report.Streak.Longest)},
	}
	if err := renderTable(w, []string{"Metric", "Value"}, overview); err != nil {
		return err
	}

	if err := heading("🏷️  By Type"); err != nil {
		return err
	}
	var byType [][]string
	for _, typ := range slices.Sorted(maps.Keys(stats.ByType)) {
		label := typ
		if schema.IsKnownType(typ) {
			label = schema.LookupType(typ).Label + " (" + typ + ")"
		}
		byType = append(byType, []string{label, itoa(stats.ByType[typ]), fmtFloat(percent(stats.ByType[typ], stats.TotalLogs)) + "%"})
	}
	if err := renderTable(w, []string{"Type", "Logs", "Share"}, byType); err != nil {
		return err
	}

	if err := heading("🗂️  Categories"); err != nil {
		return err
	}
	var categories [][]string
	for _, c := range orderedCategories(stats.Categories) {
		categories = append(categories, []string{string(c), itoa(stats.Categories[c]), fmtFloat(percent(stats.Categories[c], stats.TotalLogs)) + "%"})
	}
	if err := renderTable(w, []string{"Category", "Logs", "Share"}, categories); err != nil {
		return err
	}

	if err := heading("📏 Commit Sizes"); err != nil {
		return err
	}
	var sizes [][]string
	for _, b := range schema.AllSizeBuckets {
		sizes = append(sizes, []string{string(b), itoa(report.Sizes.Counts[b]), fmtFloat(report.Sizes.Percents[b]) + "%"})
	}
	if err := renderTable(w, []string{"Size", "Logs", "Share"}, sizes); err != nil {
		return err
	}

	if err := heading("🕒 Time"); err != nil {
		return err
	}
	ta := report.Time
	timeRows := [][]string{
		{"Peak hour", fmt.Sprintf("%02d:00 (%s)", ta.PeakHour, itoa(ta.PeakHourCount))},
		{"Peak period", ta.PeakPeriod},
		{"Most active day", ta.MostActiveDay},
		{"Weekday / weekend", itoa(ta.WeekdayCommits) + " / " + itoa(ta.WeekendCommits)},
		{"Weekday share", fmtFloat(ta.WeekdayPercent) + "%"},
		{"Balance", ta.Balance},
	}
	if err := renderTable(w, []string{"Metric", "Value"}, timeRows); err != nil {
		return err
	}

	if len(report.Files.Top) > 0 {
		if err := heading("📁 Most Changed Files"); err != nil {
			return err
		}
		var files [][]string
		for i, f := range report.Files.Top {
			files = append(files, []string{strconv.Itoa(i + 1), f.Path, string(f.Category), itoa(f.Count)})
		}
		if err := renderTable(w, []string{"Rank", "Path", "Category", "Changes"}, files); err != nil {
			return err
		}
	}

	if err := heading("🚀 Deployments"); err != nil {
		return err
	}
	var deploys [][]string
	for _, k := range schema.AllDeploymentKinds {
		deploys = append(deploys, []string{string(k), itoa(report.Deployments.Counts[k])})
	}
	if err := renderTable(w, []string{"Kind", "Logs"}, deploys); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Generated at %s, summarized in %v\n", report.GeneratedAt.Format(contract.DateTimeFormat), duration.Round(time.Millisecond))
	return err
}

// renderTable writes a simple left-aligned table.
func renderTable(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(header)
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignLeft
	})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func formatPeriod(first, last string) string {
	if first == "" {
		return "no dated logs"
	}
	return first + " → " + last
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
