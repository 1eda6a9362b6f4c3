package timesheet

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeEditableWindowMonday(t *testing.T) {
	// 2025-03-10 is a Monday. The window reaches one extra week back.
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	w := ComputeEditableWindow(now)

	if !w.Start.Equal(date(2025, 3, 3)) {
		t.Errorf("Start = %v, want 2025-03-03", w.Start)
	}
	if !w.End.Equal(date(2025, 3, 11)) {
		t.Errorf("End = %v, want 2025-03-11", w.End)
	}
}

func TestComputeEditableWindowNonMonday(t *testing.T) {
	cases := []struct {
		name      string
		now       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{"tuesday", date(2025, 3, 11), date(2025, 3, 10), date(2025, 3, 18)},
		{"wednesday", date(2025, 3, 12), date(2025, 3, 10), date(2025, 3, 18)},
		{"sunday", date(2025, 3, 16), date(2025, 3, 10), date(2025, 3, 18)},
		{"saturday across month boundary", date(2025, 5, 3), date(2025, 4, 28), date(2025, 5, 6)},
	}
	for _, c := range cases {
		w := ComputeEditableWindow(c.now)
		if !w.Start.Equal(c.wantStart) {
			t.Errorf("%s: Start = %v, want %v", c.name, w.Start, c.wantStart)
		}
		if !w.End.Equal(c.wantEnd) {
			t.Errorf("%s: End = %v, want %v", c.name, w.End, c.wantEnd)
		}
	}
}

func TestWindowContains(t *testing.T) {
	w := Window{Start: date(2025, 3, 10), End: date(2025, 3, 18)}

	cases := []struct {
		name string
		date time.Time
		want bool
	}{
		{"before start", date(2025, 3, 9), false},
		{"at start", date(2025, 3, 10), true},
		{"inside", date(2025, 3, 14), true},
		{"last included day", date(2025, 3, 17), true},
		{"at end is excluded", date(2025, 3, 18), false},
		{"time of day is ignored", time.Date(2025, 3, 17, 23, 59, 0, 0, time.UTC), true},
	}
	for _, c := range cases {
		if got := w.Contains(c.date); got != c.want {
			t.Errorf("%s: Contains(%v) = %v, want %v", c.name, c.date, got, c.want)
		}
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2025, 3, 10, 0, 1, 0, 0, time.UTC)
	b := time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)
	if !SameDay(a, b) {
		t.Error("expected same calendar day")
	}
	if SameDay(a, b.AddDate(0, 0, 1)) {
		t.Error("expected different calendar days")
	}
	if SameDay(a, a.AddDate(1, 0, 0)) {
		t.Error("expected different years to differ")
	}
}
