package agg

import (
	"github.com/pamout/devlog/schema"
)

// NoData is the peak period label when there are no dated records.
const NoData = "No data"

// Work-life balance notes.
const (
	GoodBalance = "Good balance maintained"
	RestBalance = "Consider more rest on weekends"
)

// Peak period labels.
const (
	NightPeriod     = "Night (00:00-06:00)"
	MorningPeriod   = "Morning (06:00-12:00)"
	AfternoonPeriod = "Afternoon (12:00-18:00)"
	EveningPeriod   = "Evening (18:00-24:00)"
)

// HourHistogram counts dated records per hour of day. All 24 hours are present.
func HourHistogram(records []schema.Record) map[int]int {
	hours := make(map[int]int, 24)
	for h := range 24 {
		hours[h] = 0
	}
	for _, r := range records {
		if t, ok := ParseRecordDate(r); ok {
			hours[t.Hour()]++
		}
	}
	return hours
}

// WeekdayHistogram counts dated records per weekday keyed Mon..Sun. All seven days are present.
func WeekdayHistogram(records []schema.Record) map[string]int {
	days := make(map[string]int, 7)
	for _, name := range schema.WeekdayNames {
		days[name] = 0
	}
	for _, r := range records {
		if t, ok := ParseRecordDate(r); ok {
			days[schema.WeekdayNames[mondayOffset(t)]]++
		}
	}
	return days
}

// PeakHour returns the busiest hour and its count. Ties go to the earliest hour.
func PeakHour(hours map[int]int) (hour, count int) {
	for h := range 24 {
		if hours[h] > count {
			hour, count = h, hours[h]
		}
	}
	return hour, count
}

// MostActiveDay returns the busiest weekday and its count. Ties go to the earliest day.
// It returns an empty name when every count is zero.
func MostActiveDay(days map[string]int) (name string, count int) {
	for _, d := range schema.WeekdayNames {
		if days[d] > count {
			name, count = d, days[d]
		}
	}
	return name, count
}

// PeakPeriod maps the peak hour into its labeled period of the day.
func PeakPeriod(hours map[int]int) string {
	hour, count := PeakHour(hours)
	if count == 0 {
		return NoData
	}
	switch {
	case hour < 6:
		return NightPeriod
	case hour < 12:
		return MorningPeriod
	case hour < 18:
		return AfternoonPeriod
	default:
		return EveningPeriod
	}
}

// TimeAnalysis bundles the hour and weekday profile of the records.
func TimeAnalysis(records []schema.Record) schema.TimeAnalysis {
	hours := HourHistogram(records)
	days := WeekdayHistogram(records)

	ta := schema.TimeAnalysis{
		Hours:      hours,
		Weekdays:   days,
		PeakPeriod: PeakPeriod(hours),
	}
	ta.PeakHour, ta.PeakHourCount = PeakHour(hours)
	ta.MostActiveDay, ta.MostActiveDayCount = MostActiveDay(days)

	for _, name := range schema.WeekdayNames {
		ta.Total += days[name]
	}
	ta.WeekendCommits = days["Sat"] + days["Sun"]
	ta.WeekdayCommits = ta.Total - ta.WeekendCommits
	ta.WeekdayPercent = Percent(ta.WeekdayCommits, ta.Total)

	switch {
	case ta.Total == 0:
		ta.Balance = NoData
	case float64(ta.WeekendCommits) < float64(ta.WeekdayCommits)*0.3:
		ta.Balance = GoodBalance
	default:
		ta.Balance = RestBalance
	}
	return ta
}
