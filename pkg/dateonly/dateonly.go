// Package dateonly provides a calendar-day value serialized as
// "2006-01-02" on the wire and stored as a DATE column.
package dateonly

import (
	"fmt"
	"time"
)

const layout = "2006-01-02"

// Date is a calendar day. The embedded time is always midnight UTC.
type Date struct {
	time.Time
}

func New(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Parse parses a "2006-01-02" string.
func Parse(s string) (Date, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return Date{t}, nil
}

// Today returns the current calendar day for the given clock.
func Today(now func() time.Time) Date {
	y, m, d := now().Date()
	return New(y, m, d)
}

func (d Date) String() string {
	return d.Format(layout)
}

// AddDays returns the date n calendar days later.
func (d Date) AddDays(n int) Date {
	return Date{d.Time.AddDate(0, 0, n)}
}

// WeekdayIndex returns the Monday-based weekday index: 0=Monday .. 6=Sunday.
// Go's time.Weekday is Sunday-based, hence the shift.
func (d Date) WeekdayIndex() int {
	return (int(d.Time.Weekday()) + 6) % 7
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(layout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" || s == `""` {
		*d = Date{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date value %s", s)
	}
	parsed, err := Parse(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
