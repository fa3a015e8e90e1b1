package agg

import (
	"testing"

	"github.com/pamout/devlog/schema"
	"github.com/stretchr/testify/assert"
)

func TestHourHistogram(t *testing.T) {
	hours := HourHistogram(sampleRecords())
	assert.Len(t, hours, 24)
	assert.Equal(t, 1, hours[14])
	assert.Equal(t, 1, hours[23])
	assert.Equal(t, 0, hours[0])

	empty := HourHistogram(nil)
	assert.Len(t, empty, 24)
}

func TestWeekdayHistogram(t *testing.T) {
	// 2025-01-08 is a Wednesday, 2025-01-07 a Tuesday.
	days := WeekdayHistogram(sampleRecords())
	assert.Len(t, days, 7)
	assert.Equal(t, 1, days["Wed"])
	assert.Equal(t, 1, days["Tue"])
	assert.Equal(t, 0, days["Sun"])
}

func TestPeakHour(t *testing.T) {
	hours := map[int]int{3: 2, 9: 2, 22: 1}
	h, c := PeakHour(hours)
	assert.Equal(t, 3, h)
	assert.Equal(t, 2, c)
}

func TestPeakPeriod(t *testing.T) {
	assert.Equal(t, NoData, PeakPeriod(HourHistogram(nil)))
	assert.Equal(t, NightPeriod, PeakPeriod(map[int]int{2: 1}))
	assert.Equal(t, MorningPeriod, PeakPeriod(map[int]int{6: 1}))
	assert.Equal(t, AfternoonPeriod, PeakPeriod(map[int]int{17: 1}))
	assert.Equal(t, EveningPeriod, PeakPeriod(map[int]int{18: 1}))
}

func TestTimeAnalysis(t *testing.T) {
	t.Run("weekday only", func(t *testing.T) {
		ta := TimeAnalysis(sampleRecords())
		assert.Equal(t, 2, ta.Total)
		assert.Equal(t, 2, ta.WeekdayCommits)
		assert.Equal(t, 0, ta.WeekendCommits)
		assert.Equal(t, 100.0, ta.WeekdayPercent)
		assert.Equal(t, GoodBalance, ta.Balance)
		assert.Equal(t, "Tue", ta.MostActiveDay)
	})

	t.Run("heavy weekend", func(t *testing.T) {
		records := []schema.Record{
			{Date: "2025-01-04 10:00:00"}, // Sat
			{Date: "2025-01-05 10:00:00"}, // Sun
			{Date: "2025-01-06 10:00:00"}, // Mon
		}
		ta := TimeAnalysis(records)
		assert.Equal(t, 2, ta.WeekendCommits)
		assert.Equal(t, RestBalance, ta.Balance)
		assert.Equal(t, MorningPeriod, ta.PeakPeriod)
	})

	t.Run("no data", func(t *testing.T) {
		ta := TimeAnalysis(nil)
		assert.Equal(t, NoData, ta.Balance)
		assert.Equal(t, NoData, ta.PeakPeriod)
		assert.Equal(t, "", ta.MostActiveDay)
		assert.Equal(t, 0.0, ta.WeekdayPercent)
	})
}
