package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateFilter_TodayMidnightEdges(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)
	r := DateFilter{Preset: PresetToday}.Resolve(now)

	midnight := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.True(t, r.Contains(midnight), "session at today's midnight belongs to today")
	assert.True(t, r.Contains(now))
	assert.False(t, r.Contains(midnight.Add(-time.Nanosecond)), "just before midnight is yesterday")
	assert.False(t, r.Contains(midnight.AddDate(0, 0, 1)), "tomorrow's midnight is not today")
}

func TestDateFilter_YesterdayMidnightEdges(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)
	r := DateFilter{Preset: PresetYesterday}.Resolve(now)

	yesterdayMidnight := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)
	todayMidnight := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.True(t, r.Contains(yesterdayMidnight))
	assert.True(t, r.Contains(todayMidnight.Add(-time.Nanosecond)))
	assert.False(t, r.Contains(todayMidnight), "today's midnight is excluded from yesterday")
	assert.False(t, r.Contains(yesterdayMidnight.Add(-time.Nanosecond)))
}

func TestDateFilter_WeekInclusiveBounds(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)
	r := DateFilter{Preset: PresetWeek}.Resolve(now)

	assert.True(t, r.Contains(now), "the upper bound itself is included")
	assert.True(t, r.Contains(now.AddDate(0, 0, -7)))
	assert.False(t, r.Contains(now.Add(time.Second)))
	assert.False(t, r.Contains(now.AddDate(0, 0, -8)))
}

func TestDateFilter_ExplicitBounds(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)

	tests := []struct {
		name   string
		filter DateFilter
		in     []time.Time
		out    []time.Time
	}{
		{
			name:   "both bounds",
			filter: DateFilter{From: &from, To: &to},
			in:     []time.Time{from, to, from.AddDate(0, 0, 15)},
			out:    []time.Time{from.Add(-time.Second), to.Add(time.Second)},
		},
		{
			name:   "open end",
			filter: DateFilter{From: &from},
			in:     []time.Time{from, from.AddDate(10, 0, 0)},
			out:    []time.Time{from.Add(-time.Second)},
		},
		{
			name:   "open start",
			filter: DateFilter{To: &to},
			in:     []time.Time{to, to.AddDate(-10, 0, 0)},
			out:    []time.Time{to.Add(time.Second)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.filter.Resolve(time.Now())
			for _, ts := range tt.in {
				assert.True(t, r.Contains(ts), "%s should be in range", ts)
			}
			for _, ts := range tt.out {
				assert.False(t, r.Contains(ts), "%s should be out of range", ts)
			}
		})
	}
}

func TestDateFilter_NoFilterMatchesEverything(t *testing.T) {
	r := DateFilter{}.Resolve(time.Now())
	assert.True(t, r.Contains(time.Time{}))
	assert.True(t, r.Contains(time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, r.Contains(time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)))
}
