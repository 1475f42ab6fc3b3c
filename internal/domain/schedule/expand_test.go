package schedule

import (
	"testing"
	"time"

	"github.com/medtrack/medtrack/pkg/dateonly"
)

func TestParseRepeatType(t *testing.T) {
	for _, valid := range []string{"once", "daily", "weekly"} {
		if _, err := ParseRepeatType(valid); err != nil {
			t.Errorf("ParseRepeatType(%q) unexpected error: %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "ONCE", "monthly", "every-day"} {
		if _, err := ParseRepeatType(invalid); err == nil {
			t.Errorf("ParseRepeatType(%q) expected error", invalid)
		}
	}
}

func TestExpand_Once(t *testing.T) {
	start := dateonly.New(2026, time.March, 10)
	dates := Expand(Expansion{Start: start, Type: RepeatOnce, Days: 99})
	if len(dates) != 1 || !dates[0].Equal(start.Time) {
		t.Fatalf("expected exactly the start date, got %v", dates)
	}
}

func TestExpand_Daily_DefaultSpan(t *testing.T) {
	start := dateonly.New(2026, time.March, 10)
	dates := Expand(Expansion{Start: start, Type: RepeatDaily})
	if len(dates) != 7 {
		t.Fatalf("expected 7 consecutive dates, got %d", len(dates))
	}
	for i, d := range dates {
		want := start.AddDays(i)
		if !d.Equal(want.Time) {
			t.Errorf("dates[%d] = %s, want %s", i, d, want)
		}
	}
}

func TestExpand_Daily_ExplicitSpan(t *testing.T) {
	start := dateonly.New(2026, time.February, 27)
	dates := Expand(Expansion{Start: start, Type: RepeatDaily, Days: 3})
	want := []string{"2026-02-27", "2026-02-28", "2026-03-01"}
	if len(dates) != len(want) {
		t.Fatalf("expected %d dates, got %d", len(want), len(dates))
	}
	for i := range want {
		if dates[i].String() != want[i] {
			t.Errorf("dates[%d] = %s, want %s", i, dates[i], want[i])
		}
	}
}

func TestExpand_Weekly_MonWedFri(t *testing.T) {
	// 2026-03-02 is a Monday. 30 days spans ceil(30/7) = 5 weeks; three
	// selected weekdays give 15 dates.
	start := dateonly.New(2026, time.March, 2)
	dates := Expand(Expansion{Start: start, Type: RepeatWeekly, Weekdays: []int{0, 2, 4}})
	if len(dates) != 15 {
		t.Fatalf("expected 15 dates, got %d", len(dates))
	}
	if dates[0].String() != "2026-03-02" {
		t.Errorf("week 0 must include the start date, got %s", dates[0])
	}
	for _, d := range dates {
		if d.Before(start.Time) {
			t.Errorf("date %s precedes the start date", d)
		}
		idx := d.WeekdayIndex()
		if idx != 0 && idx != 2 && idx != 4 {
			t.Errorf("date %s falls on weekday %d, not in the selected set", d, idx)
		}
	}
}

func TestExpand_Weekly_StartDayIncluded(t *testing.T) {
	// 2026-03-05 is a Thursday (index 3). Selecting only Thursday must
	// yield the start date itself as the first entry.
	start := dateonly.New(2026, time.March, 5)
	if start.WeekdayIndex() != 3 {
		t.Fatalf("fixture broken: expected Thursday index 3, got %d", start.WeekdayIndex())
	}
	dates := Expand(Expansion{Start: start, Type: RepeatWeekly, Days: 7, Weekdays: []int{3}})
	if len(dates) != 1 {
		t.Fatalf("expected 1 date for a 7-day span, got %d", len(dates))
	}
	if !dates[0].Equal(start.Time) {
		t.Errorf("expected the start date itself, got %s", dates[0])
	}
}

func TestExpand_Weekly_EmptyWeekdays(t *testing.T) {
	start := dateonly.New(2026, time.March, 2)
	if dates := Expand(Expansion{Start: start, Type: RepeatWeekly}); len(dates) != 0 {
		t.Fatalf("expected zero dates for an empty weekday set, got %d", len(dates))
	}
}
