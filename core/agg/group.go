package agg

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/pamout/devlog/schema"
)

// KanbanCardDetails is how many detail items a board card shows.
const KanbanCardDetails = 3

// KanbanTypes are the board columns in order. Every other type lands in the chore column.
var KanbanTypes = []string{"feat", "fix", "docs", "ci"}

// KanbanOtherType is the column collecting every type outside KanbanTypes.
const KanbanOtherType = "chore"

var localWeekdays = [...]string{"월", "화", "수", "목", "금", "토", "일"}

// FormatDate shortens a full log date to minutes. Other values are returned as given.
func FormatDate(date string) string {
	t, ok := schema.ParseLogDate(date)
	if !ok {
		return date
	}
	return t.Format(schema.LogDateShortLayout)
}

// DateOnly returns the calendar day of a log date. Unparseable values keep their
// first word.
func DateOnly(date string) string {
	if t, ok := schema.ParseLogDate(date); ok {
		return DayKey(t)
	}
	if before, _, found := strings.Cut(strings.TrimSpace(date), " "); found {
		return before
	}
	return strings.TrimSpace(date)
}

// LocalWeekday returns the short local weekday of a YYYY-MM-DD day, or "" when it does not parse.
func LocalWeekday(day string) string {
	t, err := time.Parse(schema.DayLayout, strings.TrimSpace(day))
	if err != nil {
		return ""
	}
	return localWeekdays[mondayOffset(t)]
}

// GroupByDay groups records by calendar day, newest day first. Records inside a
// day are ordered by date descending.
func GroupByDay(records []schema.Record) []schema.DayGroup {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b schema.Record) int {
		return cmp.Compare(b.Date, a.Date)
	})

	index := make(map[string]int)
	var groups []schema.DayGroup
	for _, r := range sorted {
		day := DateOnly(r.Date)
		i, ok := index[day]
		if !ok {
			i = len(groups)
			index[day] = i
			groups = append(groups, schema.DayGroup{Date: day, Weekday: LocalWeekday(day)})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	slices.SortStableFunc(groups, func(a, b schema.DayGroup) int {
		return cmp.Compare(b.Date, a.Date)
	})
	return groups
}

// GroupByType lays records out in board columns. The four main columns are
// always present; the chore column only when something falls into it.
func GroupByType(records []schema.Record) []schema.KanbanColumn {
	columns := make([]schema.KanbanColumn, 0, len(KanbanTypes)+1)
	for _, t := range KanbanTypes {
		col := schema.KanbanColumn{Type: schema.LookupType(t), Records: []schema.Record{}}
		for _, r := range records {
			if r.Type == t {
				col.Records = append(col.Records, r)
			}
		}
		columns = append(columns, col)
	}

	var other []schema.Record
	for _, r := range records {
		if !slices.Contains(KanbanTypes, r.Type) {
			other = append(other, r)
		}
	}
	if len(other) > 0 {
		columns = append(columns, schema.KanbanColumn{Type: schema.LookupType(KanbanOtherType), Records: other})
	}
	return columns
}

// CardDetails returns a copy of the detail items shown on a board card.
func CardDetails(r schema.Record) []string {
	return slices.Clone(r.Details[:min(KanbanCardDetails, len(r.Details))])
}
