package timesheet

import (
	"testing"
	"time"
)

func TestRefreshClockedIn(t *testing.T) {
	checkOut := time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC)

	day := &DayRecord{Sessions: []Session{
		{ID: "a", CheckOut: &checkOut},
		{ID: "b"},
	}}
	day.RefreshClockedIn()
	if !day.IsClockedIn {
		t.Error("open session should mark the day clocked in")
	}

	day.Sessions[1].CheckOut = &checkOut
	day.RefreshClockedIn()
	if day.IsClockedIn {
		t.Error("all sessions closed should clear the flag")
	}

	day.Sessions = nil
	day.RefreshClockedIn()
	if day.IsClockedIn {
		t.Error("empty day should not be clocked in")
	}
}

func TestDropDayIfEmpty(t *testing.T) {
	rec := NewMonthRecord(time.Now())
	rec.EnsureDay("5")
	rec.DropDayIfEmpty("5")
	if _, ok := rec.Day("5"); ok {
		t.Error("empty day should be removed")
	}

	day := rec.EnsureDay("6")
	day.Sessions = append(day.Sessions, Session{ID: "a"})
	rec.DropDayIfEmpty("6")
	if _, ok := rec.Day("6"); !ok {
		t.Error("day with sessions must survive")
	}
}

func TestDayKeyHasNoLeadingZero(t *testing.T) {
	if got := DayKey(date(2025, 3, 5)); got != "5" {
		t.Errorf("DayKey = %q, want %q", got, "5")
	}
	if got := DayKey(date(2025, 3, 25)); got != "25" {
		t.Errorf("DayKey = %q, want %q", got, "25")
	}
}

func TestSessionRefDate(t *testing.T) {
	ref := SessionRef{YearMonth: "2025-03", Day: "10"}
	d, err := ref.Date()
	if err != nil {
		t.Fatalf("Date() error: %v", err)
	}
	if !d.Equal(date(2025, 3, 10)) {
		t.Errorf("Date() = %v, want 2025-03-10", d)
	}

	for _, bad := range []SessionRef{
		{YearMonth: "not-a-month", Day: "10"},
		{YearMonth: "2025-03", Day: "x"},
		{YearMonth: "2025-03", Day: "0"},
		{YearMonth: "2025-03", Day: "32"},
	} {
		if _, err := bad.Date(); err == nil {
			t.Errorf("Date() on %+v should fail", bad)
		}
	}
}
