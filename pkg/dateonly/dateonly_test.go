package dateonly

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	d, err := Parse("2026-03-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "2026-03-02" {
		t.Errorf("round trip mismatch: %s", d)
	}

	for _, bad := range []string{"", "02-03-2026", "2026/03/02", "2026-13-01", "yesterday"} {
		if _, err := Parse(bad); err == nil {
			t.Errorf("Parse(%q) expected error", bad)
		}
	}
}

func TestWeekdayIndex_MondayBased(t *testing.T) {
	// 2026-03-02 is a Monday.
	for i := 0; i < 7; i++ {
		d := New(2026, time.March, 2).AddDays(i)
		if d.WeekdayIndex() != i {
			t.Errorf("%s: WeekdayIndex() = %d, want %d", d, d.WeekdayIndex(), i)
		}
	}
}

func TestAddDays_CrossesMonthBoundary(t *testing.T) {
	d := New(2026, time.February, 27).AddDays(2)
	if d.String() != "2026-03-01" {
		t.Errorf("expected 2026-03-01, got %s", d)
	}
}

func TestJSON(t *testing.T) {
	d := New(2026, time.March, 2)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2026-03-02"` {
		t.Errorf("unexpected encoding: %s", b)
	}

	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Errorf("round trip mismatch: %s", back)
	}

	var zero Date
	if err := json.Unmarshal([]byte(`null`), &zero); err != nil || !zero.IsZero() {
		t.Errorf("null must decode to the zero date, got %s err %v", zero, err)
	}
	if err := json.Unmarshal([]byte(`"03/02/2026"`), &zero); err == nil {
		t.Error("expected error for a malformed date string")
	}
}
