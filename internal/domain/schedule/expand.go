package schedule

import (
	"fmt"

	"github.com/medtrack/medtrack/pkg/dateonly"
)

// RepeatType is the closed set of repeat policies. Unknown values are
// rejected at the boundary rather than silently treated as "once".
type RepeatType string

const (
	RepeatOnce   RepeatType = "once"
	RepeatDaily  RepeatType = "daily"
	RepeatWeekly RepeatType = "weekly"
)

const (
	defaultDailySpan  = 7
	defaultWeeklySpan = 30
)

// UnknownRepeatTypeError marks a repeat type outside the closed set.
type UnknownRepeatTypeError struct{ Value string }

func (e *UnknownRepeatTypeError) Error() string {
	return fmt.Sprintf("unknown repeat_type %q, expected once, daily or weekly", e.Value)
}

// ParseRepeatType validates a caller-supplied repeat type.
func ParseRepeatType(s string) (RepeatType, error) {
	switch RepeatType(s) {
	case RepeatOnce, RepeatDaily, RepeatWeekly:
		return RepeatType(s), nil
	default:
		return "", &UnknownRepeatTypeError{Value: s}
	}
}

// Expansion describes one repeat request to be turned into dated entries.
type Expansion struct {
	Start dateonly.Date
	Type  RepeatType
	// Days is the span length in days. Zero or negative falls back to the
	// policy default: 7 for daily, 30 for weekly.
	Days int
	// Weekdays holds Monday-based weekday indices (0=Monday .. 6=Sunday)
	// and is consulted only by the weekly policy.
	Weekdays []int
}

// Expand produces the target dates for an expansion, in generation order.
//
//   - once: the start date alone.
//   - daily: Days consecutive dates beginning at the start date.
//   - weekly: for each of ceil(Days/7) weeks and each selected weekday, the
//     next occurrence of that weekday counted from the start date. Week 0
//     includes the start date itself when its weekday is selected. An empty
//     weekday set expands to nothing.
//
// No date before the start date is ever produced.
func Expand(in Expansion) []dateonly.Date {
	switch in.Type {
	case RepeatOnce:
		return []dateonly.Date{in.Start}

	case RepeatDaily:
		days := in.Days
		if days <= 0 {
			days = defaultDailySpan
		}
		dates := make([]dateonly.Date, 0, days)
		for i := 0; i < days; i++ {
			dates = append(dates, in.Start.AddDays(i))
		}
		return dates

	case RepeatWeekly:
		days := in.Days
		if days <= 0 {
			days = defaultWeeklySpan
		}
		weeks := (days + 6) / 7
		startIdx := in.Start.WeekdayIndex()

		var dates []dateonly.Date
		for week := 0; week < weeks; week++ {
			for _, day := range in.Weekdays {
				daysAhead := (day - startIdx + 7) % 7
				dates = append(dates, in.Start.AddDays(week*7+daysAhead))
			}
		}
		return dates
	}
	return nil
}
