package timesheet

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Worked-duration sentinels for sessions that cannot be computed.
const (
	WorkedIncomplete = "Incomplete"
	WorkedInvalid    = "Invalid"
)

const (
	maxShift = 24 * time.Hour

	// A shift of 12.5h or more gets a full hour of breaks deducted, one of
	// 4.5h or more gets half an hour.
	longBreakThreshold  = 12*time.Hour + 30*time.Minute
	shortBreakThreshold = 4*time.Hour + 30*time.Minute
	longBreak           = time.Hour
	shortBreak          = 30 * time.Minute
)

// ComputeWorkedDuration derives the break-adjusted worked time for a session.
// The result is cached on the session, so every timing mutation must call
// this again rather than trust the stored string.
func ComputeWorkedDuration(checkIn, checkOut *time.Time) string {
	if checkIn == nil || checkOut == nil {
		return WorkedIncomplete
	}
	if checkOut.Before(*checkIn) {
		return WorkedInvalid
	}

	d := checkOut.Sub(*checkIn)
	if d > maxShift {
		d = maxShift
	}

	switch {
	case d >= longBreakThreshold:
		d -= longBreak
	case d >= shortBreakThreshold:
		d -= shortBreak
	}

	return FormatMinutes(int(d.Minutes()))
}

// FormatMinutes renders a minute total in the "Xh Ym" display form.
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

var workedRegex = regexp.MustCompile(`^(\d+)h (\d+)m$`)

// ParseWorkedMinutes is the inverse of the "Xh Ym" format, used for sorting
// and summation. It is total: "N/A", "Incomplete", "Invalid" and anything
// else unparsable come back as 0.
func ParseWorkedMinutes(s string) int {
	m := workedRegex.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return hours*60 + minutes
}
