package timesheet

import (
	"strconv"
	"time"
)

// Session status values. An open session has no check-out yet.
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Session is one check-in/check-out interval for an employee on a given day.
// Positions inside a day's session list shift on deletion, so ID, assigned
// once at creation, is the only stable way to recognize a session.
type Session struct {
	ID             string     `json:"id"`
	CheckIn        *time.Time `json:"checkIn"`
	CheckOut       *time.Time `json:"checkOut"`
	WorkedDuration string     `json:"worked_hours"`
	EditedBy       string     `json:"editedBy"`
	EditedAt       time.Time  `json:"editedAt"`
	CheckInEdited  bool       `json:"checkInEdited"`
	CheckOutEdited bool       `json:"checkOutEdited"`
	Status         string     `json:"status"`
}

// IsOpen reports whether the session represents an in-progress shift.
func (s *Session) IsOpen() bool {
	return s.CheckOut == nil
}

// DayRecord holds the ordered sessions of a single calendar day.
type DayRecord struct {
	Sessions    []Session `json:"sessions"`
	IsClockedIn bool      `json:"isClockedIn"`
}

// RefreshClockedIn recomputes IsClockedIn from session state. Called on every
// write so the flag cannot drift from the sessions it summarizes.
func (d *DayRecord) RefreshClockedIn() {
	d.IsClockedIn = false
	for i := range d.Sessions {
		if d.Sessions[i].IsOpen() {
			d.IsClockedIn = true
			return
		}
	}
}

// Metadata carries the document timestamps the store tracks per month record.
type Metadata struct {
	Created     time.Time `json:"created"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// MonthRecord is the persisted container for one employee's sessions in one
// calendar month. Days is keyed by day-of-month without a leading zero, and
// holds a key only for days with at least one session.
//
// Version is the optimistic-concurrency token: writes carry the version that
// was read, and the repository rejects the write when the stored version has
// moved in the meantime.
type MonthRecord struct {
	Days     map[string]*DayRecord `json:"days"`
	Metadata Metadata              `json:"metadata"`
	Version  int64                 `json:"-"`
}

// NewMonthRecord returns an empty record stamped with created/lastUpdated.
func NewMonthRecord(now time.Time) *MonthRecord {
	return &MonthRecord{
		Days:     make(map[string]*DayRecord),
		Metadata: Metadata{Created: now, LastUpdated: now},
	}
}

// Day returns the record for the given day key, if present.
func (m *MonthRecord) Day(key string) (*DayRecord, bool) {
	d, ok := m.Days[key]
	return d, ok
}

// EnsureDay returns the day record for key, creating it when absent.
func (m *MonthRecord) EnsureDay(key string) *DayRecord {
	if m.Days == nil {
		m.Days = make(map[string]*DayRecord)
	}
	d, ok := m.Days[key]
	if !ok {
		d = &DayRecord{}
		m.Days[key] = d
	}
	return d
}

// DropDayIfEmpty removes the day key once its session list is empty, keeping
// the invariant that Days never holds dangling empty day records.
func (m *MonthRecord) DropDayIfEmpty(key string) {
	if d, ok := m.Days[key]; ok && len(d.Sessions) == 0 {
		delete(m.Days, key)
	}
}

// YearMonth is the two-part document key suffix, formatted "YYYY-MM".
func YearMonthOf(t time.Time) string {
	return t.Format("2006-01")
}

// DayKey is the day-of-month map key, no leading zero.
func DayKey(t time.Time) string {
	return strconv.Itoa(t.Day())
}

// SessionRef addresses one session inside the nested document structure.
// Index is a display/sort artifact, not a durable identifier: deleting a
// session shifts the indices of later sessions in the same day. SessionID,
// when set, guards a mutation against exactly that shift.
type SessionRef struct {
	EmployeeID string `json:"employee_id"`
	YearMonth  string `json:"year_month"`
	Day        string `json:"day"`
	Index      int    `json:"index"`
	SessionID  string `json:"session_id,omitempty"`
}

// Date resolves the calendar day the ref points at.
func (r SessionRef) Date() (time.Time, error) {
	month, err := time.Parse("2006-01", r.YearMonth)
	if err != nil {
		return time.Time{}, err
	}
	day, err := strconv.Atoi(r.Day)
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, ErrSessionNotFound
	}
	return time.Date(month.Year(), month.Month(), day, 0, 0, 0, 0, time.UTC), nil
}
