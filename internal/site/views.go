package site

import (
	"cmp"
	"maps"
	"slices"

	"github.com/pamout/devlog/core/agg"
	"github.com/pamout/devlog/schema"
)

// Number of busiest days listed under the heatmap.
const topActiveDays = 10

// BarRow is one labelled bar of a horizontal bar chart.
type BarRow struct {
	Label   string
	Count   int
	Percent float64
	Width   float64 // Percent of the largest bar, for CSS widths
	Color   string
}

// KanbanView is the view model of the kanban board.
type KanbanView struct {
	Columns []schema.KanbanColumn
	Logs    []schema.Record
}

// TimelineView is the view model of the timeline.
type TimelineView struct {
	Days []schema.DayGroup
}

// DayCount is one calendar day with its record count.
type DayCount struct {
	Date    string
	Weekday string
	Count   int
}

// HeatmapView is the view model of the activity heatmap.
type HeatmapView struct {
	Heatmap  schema.Heatmap
	Weekdays []string
	TopDays  []DayCount
}

// CategoryFiles lists the changed files of one category.
type CategoryFiles struct {
	Category schema.Category
	Files    []schema.FileChange
}

// FilesView is the view model of the file change history.
type FilesView struct {
	History    schema.FileHistory
	Top        []BarRow
	Categories []BarRow
	ByCategory []CategoryFiles
}

// SizeBucketView is one commit-size bucket with its records.
type SizeBucketView struct {
	Bucket      schema.SizeBucket
	Description string
	Count       int
	Percent     float64
	Entries     []schema.SizeEntry
}

// CommitSizeView is the view model of the commit-size distribution.
type CommitSizeView struct {
	Distribution schema.SizeDistribution
	Buckets      []SizeBucketView
}

// TimeAnalysisView is the view model of the time-of-day analysis.
type TimeAnalysisView struct {
	Analysis schema.TimeAnalysis
	Hours    []BarRow
	Weekdays []BarRow
}

// DeploymentView is the view model of the deployment history.
type DeploymentView struct {
	Report schema.DeploymentReport
	Kinds  []BarRow
}

// StatsView is the view model of the statistics page.
type StatsView struct {
	Statistics schema.Statistics
	Categories []BarRow
	Types      []BarRow
	Frequency  schema.Frequency
	Streak     schema.Streak
	ActiveDays int
}

var sizeDescriptions = map[schema.SizeBucket]string{
	schema.SmallSize:  "under 50 lines",
	schema.MediumSize: "50 to 199 lines",
	schema.LargeSize:  "200 to 499 lines",
	schema.XLargeSize: "500 lines or more",
}

var deploymentColors = map[schema.DeploymentKind]string{
	schema.ReleaseDeploy:        "#10b981",
	schema.HotfixDeploy:         "#ef4444",
	schema.InfrastructureDeploy: "#8b5cf6",
	schema.CIConfigDeploy:       "#06b6d4",
}

var categoryColors = map[schema.Category]string{
	schema.FrontendCategory: "#3b82f6",
	schema.BackendCategory:  "#10b981",
	schema.DocsCategory:     "#f59e0b",
	schema.ConfigCategory:   "#8b5cf6",
	schema.OtherCategory:    "#64748b",
}

func categoryColor(c schema.Category) string {
	if color, ok := categoryColors[c]; ok {
		return color
	}
	return schema.FallbackTypeColor
}

// bars builds bar rows, scaling widths to the largest count.
func bars(labels []string, counts []int, total int, colors []string) []BarRow {
	maxCount := 0
	for _, c := range counts {
		maxCount = max(maxCount, c)
	}
	rows := make([]BarRow, len(labels))
	for i, label := range labels {
		rows[i] = BarRow{
			Label:   label,
			Count:   counts[i],
			Percent: agg.Percent(counts[i], total),
		}
		if maxCount > 0 {
			rows[i].Width = float64(counts[i]) / float64(maxCount) * 100
		}
		if i < len(colors) {
			rows[i].Color = colors[i]
		}
	}
	return rows
}

func newKanbanView(doc schema.Document, _ Options) any {
	return KanbanView{Columns: agg.GroupByType(doc.Logs), Logs: doc.Logs}
}

func newTimelineView(doc schema.Document, _ Options) any {
	return TimelineView{Days: agg.GroupByDay(doc.Logs)}
}

func newHeatmapView(doc schema.Document, _ Options) any {
	counts := agg.CountByDate(doc.Logs)
	days := make([]DayCount, 0, len(counts))
	for day, c := range counts {
		days = append(days, DayCount{Date: day, Weekday: agg.LocalWeekday(day), Count: c})
	}
	slices.SortFunc(days, func(a, b DayCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(b.Date, a.Date)
	})
	return HeatmapView{
		Heatmap:  agg.BuildHeatmap(doc.Logs, doc.GeneratedAt),
		Weekdays: schema.WeekdayNames,
		TopDays:  days[:min(topActiveDays, len(days))],
	}
}

func newFilesView(doc schema.Document, opts Options) any {
	all := agg.FileHistory(doc.Logs, opts.FileCategories, 0)
	top := all.Top[:min(opts.topFiles(), len(all.Top))]

	var topLabels, topColors []string
	var topCounts []int
	for _, f := range top {
		topLabels = append(topLabels, f.Path)
		topCounts = append(topCounts, f.Count)
		topColors = append(topColors, categoryColor(f.Category))
	}

	categories := opts.FileCategories.Categories()
	var catLabels, catColors []string
	var catCounts []int
	byCategory := make([]CategoryFiles, 0, len(categories))
	for _, c := range categories {
		catLabels = append(catLabels, string(c))
		catCounts = append(catCounts, all.Categories[c])
		catColors = append(catColors, categoryColor(c))

		group := CategoryFiles{Category: c}
		for _, f := range all.Top {
			if f.Category == c {
				group.Files = append(group.Files, f)
			}
		}
		if len(group.Files) > 0 {
			byCategory = append(byCategory, group)
		}
	}

	history := all
	history.Top = top
	return FilesView{
		History:    history,
		Top:        bars(topLabels, topCounts, all.TotalFiles, topColors),
		Categories: bars(catLabels, catCounts, all.TotalFiles, catColors),
		ByCategory: byCategory,
	}
}

func newCommitSizeView(doc schema.Document, _ Options) any {
	dist := agg.SizeDistribution(doc.Logs)
	buckets := make([]SizeBucketView, 0, len(schema.AllSizeBuckets))
	for _, b := range schema.AllSizeBuckets {
		buckets = append(buckets, SizeBucketView{
			Bucket:      b,
			Description: sizeDescriptions[b],
			Count:       dist.Counts[b],
			Percent:     dist.Percents[b],
			Entries:     dist.Buckets[b],
		})
	}
	return CommitSizeView{Distribution: dist, Buckets: buckets}
}

func newTimeAnalysisView(doc schema.Document, _ Options) any {
	ta := agg.TimeAnalysis(doc.Logs)

	hourLabels := make([]string, 24)
	hourCounts := make([]int, 24)
	for h := range 24 {
		hourLabels[h] = hourLabel(h)
		hourCounts[h] = ta.Hours[h]
	}
	dayCounts := make([]int, len(schema.WeekdayNames))
	for i, d := range schema.WeekdayNames {
		dayCounts[i] = ta.Weekdays[d]
	}

	return TimeAnalysisView{
		Analysis: ta,
		Hours:    bars(hourLabels, hourCounts, ta.Total, nil),
		Weekdays: bars(schema.WeekdayNames, dayCounts, ta.Total, nil),
	}
}

func newDeploymentView(doc schema.Document, _ Options) any {
	report := agg.Deployments(doc.Logs)
	labels := make([]string, len(schema.AllDeploymentKinds))
	counts := make([]int, len(schema.AllDeploymentKinds))
	colors := make([]string, len(schema.AllDeploymentKinds))
	for i, k := range schema.AllDeploymentKinds {
		labels[i] = string(k)
		counts[i] = report.Counts[k]
		colors[i] = deploymentColors[k]
	}
	return DeploymentView{
		Report: report,
		Kinds:  bars(labels, counts, len(report.Deployments), colors),
	}
}

func newStatsView(doc schema.Document, opts Options) any {
	stats := agg.Summarize(doc.Logs, opts.RecordCategories)

	var catLabels, catColors []string
	var catCounts []int
	for _, c := range opts.RecordCategories.Categories() {
		catLabels = append(catLabels, string(c))
		catCounts = append(catCounts, stats.Categories[c])
		catColors = append(catColors, categoryColor(c))
	}

	var typeLabels, typeColors []string
	var typeCounts []int
	for _, code := range orderedTypes(stats.ByType) {
		info := schema.LookupType(code)
		typeLabels = append(typeLabels, info.Label)
		typeCounts = append(typeCounts, stats.ByType[code])
		typeColors = append(typeColors, info.Color)
	}

	counts := agg.CountByDate(doc.Logs)
	view := StatsView{
		Statistics: stats,
		Categories: bars(catLabels, catCounts, stats.TotalLogs, catColors),
		Types:      bars(typeLabels, typeCounts, stats.TotalLogs, typeColors),
		Frequency:  agg.Frequency(doc.Logs),
		ActiveDays: agg.ActiveDays(counts),
	}
	if _, last, ok := agg.DateRange(doc.Logs); ok {
		view.Streak = agg.Streak(counts, last)
	}
	return view
}

// orderedTypes lists known types in table order, then the rest by name.
func orderedTypes(byType map[string]int) []string {
	var out []string
	for _, code := range schema.KnownTypes() {
		if byType[code] > 0 {
			out = append(out, code)
		}
	}
	for _, code := range slices.Sorted(maps.Keys(byType)) {
		if !schema.IsKnownType(code) {
			out = append(out, code)
		}
	}
	return out
}
