package pipeline

import "time"

// DatePreset names a relative date range resolved against "now" at call time.
type DatePreset string

// Supported presets.
const (
	PresetToday     DatePreset = "today"
	PresetYesterday DatePreset = "yesterday"
	PresetWeek      DatePreset = "week"
	PresetMonth     DatePreset = "month"
)

// DateFilter restricts aggregation to sessions whose start time falls in the
// resolved range. Either Preset or the explicit bounds are set, not both.
// Filters are transient: supplied per call, never persisted.
type DateFilter struct {
	Preset DatePreset
	From   *time.Time
	To     *time.Time
}

// DateRange is a resolved filter. A zero bound is unbounded on that side.
// Midnight-aligned presets use a half-open interval: a session starting at
// exactly today's midnight is in "today", one at yesterday's midnight is not.
type DateRange struct {
	From         time.Time
	To           time.Time
	ExclusiveEnd bool
}

// Resolve turns the filter into concrete bounds relative to now.
func (f DateFilter) Resolve(now time.Time) DateRange {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch f.Preset {
	case PresetToday:
		return DateRange{From: midnight, To: midnight.AddDate(0, 0, 1), ExclusiveEnd: true}
	case PresetYesterday:
		return DateRange{From: midnight.AddDate(0, 0, -1), To: midnight, ExclusiveEnd: true}
	case PresetWeek:
		return DateRange{From: now.AddDate(0, 0, -7), To: now}
	case PresetMonth:
		return DateRange{From: now.AddDate(0, 0, -30), To: now}
	}

	var r DateRange
	if f.From != nil {
		r.From = *f.From
	}
	if f.To != nil {
		r.To = *f.To
	}
	return r
}

// Contains reports whether t falls within the range.
func (r DateRange) Contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() {
		if r.ExclusiveEnd {
			if !t.Before(r.To) {
				return false
			}
		} else if t.After(r.To) {
			return false
		}
	}
	return true
}
