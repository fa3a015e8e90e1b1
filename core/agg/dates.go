package agg

import (
	"slices"
	"time"

	"github.com/pamout/devlog/schema"
)

// StreakWindowDays is how far back from the end date streaks are searched.
const StreakWindowDays = 365

// ParseRecordDate returns the record's date when it is in an accepted layout.
// Records without a usable date are excluded from every date-based aggregate.
func ParseRecordDate(r schema.Record) (time.Time, bool) {
	if r.Date == "" {
		return time.Time{}, false
	}
	return schema.ParseLogDate(r.Date)
}

// Day truncates t to midnight UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayKey formats t as a YYYY-MM-DD key.
func DayKey(t time.Time) string {
	return t.Format(schema.DayLayout)
}

// datedDays returns the day of every record with a usable date.
func datedDays(records []schema.Record) []time.Time {
	var days []time.Time
	for _, r := range records {
		if t, ok := ParseRecordDate(r); ok {
			days = append(days, Day(t))
		}
	}
	return days
}

// CountByDate counts records per calendar day.
func CountByDate(records []schema.Record) map[string]int {
	counts := make(map[string]int)
	for _, d := range datedDays(records) {
		counts[DayKey(d)]++
	}
	return counts
}

// DateRange returns the first and last day among dated records.
func DateRange(records []schema.Record) (first, last time.Time, ok bool) {
	days := datedDays(records)
	if len(days) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return slices.MinFunc(days, time.Time.Compare), slices.MaxFunc(days, time.Time.Compare), true
}

// spanDays is the inclusive number of days from first to last.
func spanDays(first, last time.Time) int {
	return int(Day(last).Sub(Day(first)).Hours()/24) + 1
}

// Frequency computes records per day, week and month over the inclusive span of
// dated records. Fewer than two dated records yields all zeros.
func Frequency(records []schema.Record) schema.Frequency {
	days := datedDays(records)
	if len(days) < 2 {
		return schema.Frequency{}
	}
	first := slices.MinFunc(days, time.Time.Compare)
	last := slices.MaxFunc(days, time.Time.Compare)
	total := spanDays(first, last)
	if total <= 0 {
		return schema.Frequency{}
	}

	n := float64(len(days))
	span := float64(total)
	return schema.Frequency{
		Daily:     round2(n / span),
		Weekly:    round2(n / (span / 7)),
		Monthly:   round2(n / (span / 30)),
		TotalDays: total,
	}
}

// Streak computes streaks within the StreakWindowDays days ending at end.
// Current is the run of active days ending exactly at end, so it is 0 when end
// itself has no activity. Longest is the longest run inside the window.
func Streak(countByDate map[string]int, end time.Time) schema.Streak {
	end = Day(end)
	var s schema.Streak
	run := 0
	counting := true
	for i := range StreakWindowDays {
		day := end.AddDate(0, 0, -i)
		if countByDate[DayKey(day)] > 0 {
			run++
			if counting {
				s.Current = run
			}
			s.Longest = max(s.Longest, run)
			continue
		}
		counting = false
		run = 0
	}
	return s
}

// ActiveDays counts days with at least one record.
func ActiveDays(countByDate map[string]int) int {
	n := 0
	for _, c := range countByDate {
		if c > 0 {
			n++
		}
	}
	return n
}

// IntensityLevel maps a day count to 0..4 relative to the busiest day.
func IntensityLevel(count, maxCount int) int {
	if count <= 0 || maxCount <= 0 {
		return 0
	}
	c, m := float64(count), float64(maxCount)
	switch {
	case c <= m*0.25:
		return 1
	case c <= m*0.5:
		return 2
	case c <= m*0.75:
		return 3
	default:
		return 4
	}
}

// HeatmapGrid lays out Monday-aligned weeks covering first through last.
// Padding cells outside the range are marked as not in range.
func HeatmapGrid(countByDate map[string]int, first, last time.Time) []schema.HeatmapWeek {
	first, last = Day(first), Day(last)
	if last.Before(first) {
		first, last = last, first
	}
	maxCount := 0
	for _, c := range countByDate {
		maxCount = max(maxCount, c)
	}

	start := first.AddDate(0, 0, -mondayOffset(first))
	var weeks []schema.HeatmapWeek
	for weekStart := start; !weekStart.After(last); weekStart = weekStart.AddDate(0, 0, 7) {
		week := schema.HeatmapWeek{Days: make([]schema.HeatmapCell, 0, 7)}
		for d := range 7 {
			day := weekStart.AddDate(0, 0, d)
			key := DayKey(day)
			count := countByDate[key]
			week.Days = append(week.Days, schema.HeatmapCell{
				Date:    key,
				Count:   count,
				Level:   IntensityLevel(count, maxCount),
				InRange: !day.Before(first) && !day.After(last),
			})
		}
		weeks = append(weeks, week)
	}
	return weeks
}

// mondayOffset is the number of days since the most recent Monday.
func mondayOffset(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// BuildHeatmap assembles the heatmap over the dated records. When no record is
// dated, the grid covers the single day now.
func BuildHeatmap(records []schema.Record, now time.Time) schema.Heatmap {
	counts := CountByDate(records)
	first, last, ok := DateRange(records)
	if !ok {
		first, last = Day(now), Day(now)
	}
	maxCount := 0
	for _, c := range counts {
		maxCount = max(maxCount, c)
	}
	return schema.Heatmap{
		Weeks:      HeatmapGrid(counts, first, last),
		StartDate:  DayKey(first),
		EndDate:    DayKey(last),
		MaxCount:   maxCount,
		ActiveDays: ActiveDays(counts),
		Streak:     Streak(counts, last),
	}
}
