package timesheet

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/employee"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/timesheet"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/validator"
)

// rosterEntry pairs a response row with its sort key.
type rosterEntry struct {
	row     timesheet.RosterRow
	checkIn *time.Time
}

// DailyRoster implements timesheet.Service. One month record is fetched per
// employee concurrently with an all-or-nothing join; a roster bounded only by
// employee count is acceptable at current directory sizes.
func (s *TimesheetServiceImpl) DailyRoster(ctx context.Context, date time.Time) (timesheet.RosterResponse, error) {
	c, err := callerFromContext(ctx)
	if err != nil {
		return timesheet.RosterResponse{}, err
	}
	if c.Role == employee.RoleTeamMember {
		// Team members only see their own history.
		return timesheet.RosterResponse{}, timesheet.ErrForbidden
	}

	target := timesheet.TruncateToDay(date.UTC())
	yearMonth := timesheet.YearMonthOf(target)
	dayKey := timesheet.DayKey(target)

	employees, err := s.employees.List(ctx, employee.AllRoles...)
	if err != nil {
		return timesheet.RosterResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	results := make([][]rosterEntry, len(employees))
	g, gCtx := errgroup.WithContext(ctx)
	for i, emp := range employees {
		i, emp := i, emp
		g.Go(func() error {
			rec, err := s.months.GetMonthRecord(gCtx, emp.ID, yearMonth)
			if err != nil {
				return err
			}
			if rec == nil {
				return nil
			}
			day, ok := rec.Day(dayKey)
			if !ok {
				return nil
			}

			entries := make([]rosterEntry, 0, len(day.Sessions))
			for idx, sess := range day.Sessions {
				entries = append(entries, rosterEntry{
					row: timesheet.RosterRow{
						EmployeeID:   emp.ID,
						EmployeeName: emp.FullName,
						CheckIn:      timePtrToString(sess.CheckIn),
						CheckOut:     timePtrToString(sess.CheckOut),
						Worked:       sess.WorkedDuration,
						Ref: timesheet.SessionRef{
							EmployeeID: emp.ID,
							YearMonth:  yearMonth,
							Day:        dayKey,
							Index:      idx,
							SessionID:  sess.ID,
						},
					},
					checkIn: sess.CheckIn,
				})
			}
			results[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return timesheet.RosterResponse{}, fmt.Errorf("failed to load roster: %w", err)
	}

	var entries []rosterEntry
	for _, r := range results {
		entries = append(entries, r...)
	}

	// Latest check-in first; rows without a check-in sort last.
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].checkIn, entries[j].checkIn
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.After(*b)
	})

	rows := make([]timesheet.RosterRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, e.row)
	}

	now := s.now().UTC()
	return timesheet.RosterResponse{
		Date:    target.Format("2006-01-02"),
		Rows:    rows,
		Actions: timesheet.Authorize(c.Role, target, now, timesheet.ComputeEditableWindow(now)),
	}, nil
}

// historyEntry pairs a response row with its sort keys.
type historyEntry struct {
	row      timesheet.HistoryRow
	date     time.Time
	checkIn  time.Time
	checkOut time.Time
	minutes  int
}

// SelfHistory implements timesheet.Service.
func (s *TimesheetServiceImpl) SelfHistory(ctx context.Context, filter timesheet.HistoryFilter) (timesheet.HistoryResponse, error) {
	if err := filter.Validate(); err != nil {
		return timesheet.HistoryResponse{}, err
	}

	c, err := callerFromContext(ctx)
	if err != nil {
		return timesheet.HistoryResponse{}, err
	}

	records, err := s.months.ListMonthRecords(ctx, c.EmployeeID)
	if err != nil {
		return timesheet.HistoryResponse{}, fmt.Errorf("failed to list month records: %w", err)
	}

	var entries []historyEntry
	for _, keyed := range records {
		month, err := time.Parse("2006-01", keyed.YearMonth)
		if err != nil || keyed.Record == nil {
			continue
		}
		for _, dayKey := range sortedDayKeys(keyed.Record.Days) {
			dayNum, _ := strconv.Atoi(dayKey)
			date := time.Date(month.Year(), month.Month(), dayNum, 0, 0, 0, 0, time.UTC)
			for _, sess := range keyed.Record.Days[dayKey].Sessions {
				entries = append(entries, newHistoryEntry(date, sess))
			}
		}
	}

	entries = filterByDateRange(entries, filter.StartDate, filter.EndDate)
	sortHistory(entries, filter.SortBy, filter.SortOrder)

	totalMinutes := 0
	rows := make([]timesheet.HistoryRow, 0, len(entries))
	for _, e := range entries {
		totalMinutes += e.minutes
		rows = append(rows, e.row)
	}

	return timesheet.HistoryResponse{
		Rows:               rows,
		TotalWorked:        timesheet.FormatMinutes(totalMinutes),
		TotalWorkedMinutes: totalMinutes,
	}, nil
}

func newHistoryEntry(date time.Time, sess timesheet.Session) historyEntry {
	e := historyEntry{
		row: timesheet.HistoryRow{
			Date:           date.Format("2006-01-02"),
			CheckIn:        timePtrToString(sess.CheckIn),
			CheckOut:       timePtrToString(sess.CheckOut),
			Worked:         sess.WorkedDuration,
			CheckInEdited:  sess.CheckInEdited,
			CheckOutEdited: sess.CheckOutEdited,
		},
		date:    date,
		minutes: timesheet.ParseWorkedMinutes(sess.WorkedDuration),
	}
	if sess.CheckIn != nil {
		e.checkIn = sess.CheckIn.UTC()
	}
	if sess.CheckOut != nil {
		e.checkOut = sess.CheckOut.UTC()
	}
	return e
}

// sortedDayKeys orders a days map numerically so the flatten order, which is
// also the stable-sort tie-break, is deterministic.
func sortedDayKeys(days map[string]*timesheet.DayRecord) []string {
	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, _ := strconv.Atoi(keys[i])
		b, _ := strconv.Atoi(keys[j])
		return a < b
	})
	return keys
}

// filterByDateRange keeps rows whose check-in date falls within the inclusive
// [start, end] range, comparing calendar days. Rows without a check-in fall
// back to the day they were recorded under.
func filterByDateRange(entries []historyEntry, startDate, endDate *string) []historyEntry {
	if startDate == nil && endDate == nil {
		return entries
	}

	var start, end time.Time
	if startDate != nil {
		start, _ = validator.IsValidDate(*startDate)
	}
	if endDate != nil {
		end, _ = validator.IsValidDate(*endDate)
	}

	kept := entries[:0]
	for _, e := range entries {
		day := e.date
		if !e.checkIn.IsZero() {
			day = timesheet.TruncateToDay(e.checkIn)
		}
		if startDate != nil && day.Before(start) {
			continue
		}
		if endDate != nil && day.After(end) {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}

// sortHistory orders entries by the requested field; ties keep the original
// flatten order. The check-out key compares both rows' own check-out fields.
func sortHistory(entries []historyEntry, sortBy, sortOrder string) {
	asc := sortOrder == "asc"

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		var less bool
		switch sortBy {
		case timesheet.SortByCheckIn:
			less = a.checkIn.Before(b.checkIn)
		case timesheet.SortByCheckOut:
			less = a.checkOut.Before(b.checkOut)
		case timesheet.SortByDuration:
			less = a.minutes < b.minutes
		default:
			less = a.date.Before(b.date)
		}
		if asc {
			return less
		}
		switch sortBy {
		case timesheet.SortByCheckIn:
			return a.checkIn.After(b.checkIn)
		case timesheet.SortByCheckOut:
			return a.checkOut.After(b.checkOut)
		case timesheet.SortByDuration:
			return a.minutes > b.minutes
		default:
			return a.date.After(b.date)
		}
	})
}
