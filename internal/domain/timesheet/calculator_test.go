package timesheet

import (
	"testing"
	"time"
)

func ts(hour, min int) *time.Time {
	t := time.Date(2025, 3, 10, hour, min, 0, 0, time.UTC)
	return &t
}

func tsNextDay(hour, min int) *time.Time {
	t := time.Date(2025, 3, 11, hour, min, 0, 0, time.UTC)
	return &t
}

func TestComputeWorkedDuration(t *testing.T) {
	cases := []struct {
		name     string
		checkIn  *time.Time
		checkOut *time.Time
		want     string
	}{
		{"both absent", nil, nil, "Incomplete"},
		{"check-out absent", ts(9, 0), nil, "Incomplete"},
		{"check-in absent", nil, ts(17, 0), "Incomplete"},
		{"check-out before check-in", ts(17, 0), ts(9, 0), "Invalid"},
		{"zero duration", ts(9, 0), ts(9, 0), "0h 0m"},
		{"below short break threshold", ts(9, 0), ts(13, 0), "4h 0m"},
		{"just below short break threshold", ts(9, 0), ts(13, 29), "4h 29m"},
		{"at short break threshold", ts(9, 0), ts(13, 30), "4h 0m"},
		{"eight hour shift", ts(9, 0), ts(17, 0), "7h 30m"},
		{"just below long break threshold", ts(9, 0), ts(21, 29), "11h 59m"},
		{"at long break threshold", ts(9, 0), ts(21, 30), "11h 30m"},
		{"twelve forty shift", ts(9, 0), ts(21, 40), "11h 40m"},
		{"overnight shift", ts(22, 0), tsNextDay(6, 0), "7h 30m"},
		{"clamped to 24h", ts(9, 0), tsNextDay(23, 0), "23h 0m"},
	}
	for _, c := range cases {
		got := ComputeWorkedDuration(c.checkIn, c.checkOut)
		if got != c.want {
			t.Errorf("%s: ComputeWorkedDuration() = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestFormatMinutes(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{0, "0h 0m"},
		{59, "0h 59m"},
		{60, "1h 0m"},
		{450, "7h 30m"},
		{700, "11h 40m"},
	}
	for _, c := range cases {
		got := FormatMinutes(c.minutes)
		if got != c.want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", c.minutes, got, c.want)
		}
	}
}

func TestParseWorkedMinutes(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"7h 30m", 450},
		{"11h 40m", 700},
		{"0h 0m", 0},
		{"N/A", 0},
		{"Incomplete", 0},
		{"Invalid", 0},
		{"", 0},
		{"garbage", 0},
		{"7h30m", 0},
	}
	for _, c := range cases {
		got := ParseWorkedMinutes(c.input)
		if got != c.want {
			t.Errorf("ParseWorkedMinutes(%q) = %d, want %d", c.input, got, c.want)
		}
	}
}

func TestParseWorkedMinutesRoundTrip(t *testing.T) {
	for _, minutes := range []int{0, 1, 59, 60, 450, 700, 1380} {
		if got := ParseWorkedMinutes(FormatMinutes(minutes)); got != minutes {
			t.Errorf("round trip of %d minutes came back as %d", minutes, got)
		}
	}
}
