package timesheet

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/timesheet"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/validator"
)

func fieldError(field, message string) validator.ValidationErrors {
	return validator.ValidationErrors{{Field: field, Message: message}}
}

// validateShiftTiming runs the ordered timing checks shared by add and edit:
// neither instant in the future, check-out not before check-in.
func validateShiftTiming(checkIn, checkOut, now time.Time) error {
	if checkOut.After(now) {
		return fieldError("check_out", "check-out must not be in the future")
	}
	if checkIn.After(now) {
		return fieldError("check_in", "check-in must not be in the future")
	}
	if checkOut.Before(checkIn) {
		return fieldError("check_out", "check-out must not precede check-in")
	}
	return nil
}

// AddSession implements timesheet.Service.
func (s *TimesheetServiceImpl) AddSession(ctx context.Context, req timesheet.AddSessionRequest) (timesheet.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.SessionResponse{}, err
	}

	c, err := callerFromContext(ctx)
	if err != nil {
		return timesheet.SessionResponse{}, err
	}

	startDate, _ := validator.IsValidDate(req.StartDate)
	endDate := startDate
	if req.EndDate != "" {
		endDate, _ = validator.IsValidDate(req.EndDate)
	}

	// A shift may cross midnight by at most one day.
	if !endDate.Equal(startDate) && !endDate.Equal(startDate.AddDate(0, 0, 1)) {
		return timesheet.SessionResponse{}, fieldError("end_date",
			"end date must equal the start date or the following day")
	}

	inTime, _ := validator.IsValidClockTime(req.CheckInTime)
	outTime, _ := validator.IsValidClockTime(req.CheckOutTime)
	checkIn := time.Date(startDate.Year(), startDate.Month(), startDate.Day(),
		inTime.Hour(), inTime.Minute(), 0, 0, time.UTC)
	checkOut := time.Date(endDate.Year(), endDate.Month(), endDate.Day(),
		outTime.Hour(), outTime.Minute(), 0, 0, time.UTC)

	now := s.now().UTC()
	if err := validateShiftTiming(checkIn, checkOut, now); err != nil {
		return timesheet.SessionResponse{}, err
	}

	window := timesheet.ComputeEditableWindow(now)
	if !timesheet.Authorize(c.Role, checkIn, now, window).CanAdd {
		return timesheet.SessionResponse{}, timesheet.ErrForbidden
	}

	yearMonth := timesheet.YearMonthOf(checkIn)
	dayKey := timesheet.DayKey(checkIn)

	rec, err := s.months.GetMonthRecord(ctx, req.EmployeeID, yearMonth)
	if err != nil {
		return timesheet.SessionResponse{}, fmt.Errorf("failed to load month record: %w", err)
	}
	if rec == nil {
		rec = timesheet.NewMonthRecord(now)
	}

	sess := timesheet.Session{
		ID:             uuid.NewString(),
		CheckIn:        &checkIn,
		CheckOut:       &checkOut,
		WorkedDuration: timesheet.ComputeWorkedDuration(&checkIn, &checkOut),
		EditedBy:       string(c.Role),
		EditedAt:       now,
		Status:         timesheet.StatusClosed,
	}

	day := rec.EnsureDay(dayKey)
	day.Sessions = append(day.Sessions, sess)
	day.RefreshClockedIn()
	rec.Metadata.LastUpdated = now

	if err := s.months.PutMonthRecord(ctx, req.EmployeeID, yearMonth, rec); err != nil {
		return timesheet.SessionResponse{}, err
	}
	s.notifyChanged(checkIn)

	ref := timesheet.SessionRef{
		EmployeeID: req.EmployeeID,
		YearMonth:  yearMonth,
		Day:        dayKey,
		Index:      len(day.Sessions) - 1,
	}
	return mapSessionResponse(ref, checkIn, sess), nil
}

// locateSession resolves a ref inside a loaded month record. An index that is
// out of range, or a session ID that no longer matches the one at that index
// (a concurrent delete shifted the list), both come back as not found rather
// than silently touching the wrong session.
func locateSession(rec *timesheet.MonthRecord, ref timesheet.SessionRef) (*timesheet.DayRecord, *timesheet.Session, error) {
	if rec == nil {
		return nil, nil, timesheet.ErrSessionNotFound
	}
	day, ok := rec.Day(ref.Day)
	if !ok {
		return nil, nil, timesheet.ErrSessionNotFound
	}
	if ref.Index < 0 || ref.Index >= len(day.Sessions) {
		return nil, nil, timesheet.ErrSessionNotFound
	}
	sess := &day.Sessions[ref.Index]
	if ref.SessionID != "" && ref.SessionID != sess.ID {
		return nil, nil, timesheet.ErrSessionNotFound
	}
	return day, sess, nil
}

// EditSession implements timesheet.Service.
func (s *TimesheetServiceImpl) EditSession(ctx context.Context, req timesheet.EditSessionRequest) (timesheet.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.SessionResponse{}, err
	}

	c, err := callerFromContext(ctx)
	if err != nil {
		return timesheet.SessionResponse{}, err
	}

	refDate, err := req.Ref.Date()
	if err != nil {
		return timesheet.SessionResponse{}, timesheet.ErrSessionNotFound
	}

	newCheckIn, _ := validator.IsValidDateTime(req.CheckIn)
	newCheckOut, _ := validator.IsValidDateTime(req.CheckOut)
	newCheckIn = newCheckIn.UTC()
	newCheckOut = newCheckOut.UTC()

	now := s.now().UTC()
	if err := validateShiftTiming(newCheckIn, newCheckOut, now); err != nil {
		return timesheet.SessionResponse{}, err
	}

	window := timesheet.ComputeEditableWindow(now)
	if !timesheet.Authorize(c.Role, refDate, now, window).CanEdit {
		return timesheet.SessionResponse{}, timesheet.ErrForbidden
	}

	rec, err := s.months.GetMonthRecord(ctx, req.Ref.EmployeeID, req.Ref.YearMonth)
	if err != nil {
		return timesheet.SessionResponse{}, fmt.Errorf("failed to load month record: %w", err)
	}
	day, sess, err := locateSession(rec, req.Ref)
	if err != nil {
		return timesheet.SessionResponse{}, err
	}

	// Edited flags stick once set, and only an actual change sets them.
	checkInChanged := sess.CheckIn == nil || !sess.CheckIn.Equal(newCheckIn)
	checkOutChanged := sess.CheckOut == nil || !sess.CheckOut.Equal(newCheckOut)

	sess.CheckIn = &newCheckIn
	sess.CheckOut = &newCheckOut
	if checkInChanged {
		sess.CheckInEdited = true
	}
	if checkOutChanged {
		sess.CheckOutEdited = true
	}
	sess.WorkedDuration = timesheet.ComputeWorkedDuration(sess.CheckIn, sess.CheckOut)
	sess.Status = timesheet.StatusClosed
	sess.EditedBy = string(c.Role)
	sess.EditedAt = now

	day.RefreshClockedIn()
	rec.Metadata.LastUpdated = now

	if err := s.months.PutMonthRecord(ctx, req.Ref.EmployeeID, req.Ref.YearMonth, rec); err != nil {
		return timesheet.SessionResponse{}, err
	}
	s.notifyChanged(refDate)

	return mapSessionResponse(req.Ref, refDate, *sess), nil
}

// DeleteSession implements timesheet.Service.
func (s *TimesheetServiceImpl) DeleteSession(ctx context.Context, req timesheet.DeleteSessionRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	c, err := callerFromContext(ctx)
	if err != nil {
		return err
	}

	refDate, err := req.Ref.Date()
	if err != nil {
		return timesheet.ErrSessionNotFound
	}

	now := s.now().UTC()
	window := timesheet.ComputeEditableWindow(now)
	if !timesheet.Authorize(c.Role, refDate, now, window).CanDelete {
		return timesheet.ErrForbidden
	}

	rec, err := s.months.GetMonthRecord(ctx, req.Ref.EmployeeID, req.Ref.YearMonth)
	if err != nil {
		return fmt.Errorf("failed to load month record: %w", err)
	}
	day, _, err := locateSession(rec, req.Ref)
	if err != nil {
		return err
	}

	// Remaining sessions shift down one position; any outstanding ref with a
	// higher index is invalid from here on.
	day.Sessions = append(day.Sessions[:req.Ref.Index], day.Sessions[req.Ref.Index+1:]...)
	if len(day.Sessions) == 0 {
		rec.DropDayIfEmpty(req.Ref.Day)
	} else {
		day.RefreshClockedIn()
	}
	rec.Metadata.LastUpdated = now

	if err := s.months.PutMonthRecord(ctx, req.Ref.EmployeeID, req.Ref.YearMonth, rec); err != nil {
		return err
	}
	s.notifyChanged(refDate)

	return nil
}

// findOpenSession looks for an in-progress session on any of the given dates,
// newest first. Dates may span a month boundary, so each is resolved to its
// own month record.
func (s *TimesheetServiceImpl) findOpenSession(ctx context.Context, employeeID string, dates ...time.Time) (*timesheet.MonthRecord, string, *timesheet.DayRecord, *timesheet.Session, time.Time, error) {
	for _, date := range dates {
		yearMonth := timesheet.YearMonthOf(date)
		rec, err := s.months.GetMonthRecord(ctx, employeeID, yearMonth)
		if err != nil {
			return nil, "", nil, nil, time.Time{}, fmt.Errorf("failed to load month record: %w", err)
		}
		if rec == nil {
			continue
		}
		day, ok := rec.Day(timesheet.DayKey(date))
		if !ok {
			continue
		}
		for i := range day.Sessions {
			if day.Sessions[i].IsOpen() {
				return rec, yearMonth, day, &day.Sessions[i], date, nil
			}
		}
	}
	return nil, "", nil, nil, time.Time{}, nil
}

// ClockIn implements timesheet.Service.
func (s *TimesheetServiceImpl) ClockIn(ctx context.Context) (timesheet.SessionResponse, error) {
	c, err := callerFromContext(ctx)
	if err != nil {
		return timesheet.SessionResponse{}, err
	}

	now := s.now().UTC()
	today := timesheet.TruncateToDay(now)
	yesterday := today.AddDate(0, 0, -1)

	// A still-open shift, today's or an overnight one from yesterday, blocks
	// a second check-in.
	_, _, _, open, _, err := s.findOpenSession(ctx, c.EmployeeID, today, yesterday)
	if err != nil {
		return timesheet.SessionResponse{}, err
	}
	if open != nil {
		return timesheet.SessionResponse{}, timesheet.ErrAlreadyClockedIn
	}

	yearMonth := timesheet.YearMonthOf(today)
	dayKey := timesheet.DayKey(today)

	rec, err := s.months.GetMonthRecord(ctx, c.EmployeeID, yearMonth)
	if err != nil {
		return timesheet.SessionResponse{}, fmt.Errorf("failed to load month record: %w", err)
	}
	if rec == nil {
		rec = timesheet.NewMonthRecord(now)
	}

	checkIn := now
	sess := timesheet.Session{
		ID:             uuid.NewString(),
		CheckIn:        &checkIn,
		WorkedDuration: timesheet.WorkedIncomplete,
		EditedBy:       string(c.Role),
		EditedAt:       now,
		Status:         timesheet.StatusOpen,
	}

	day := rec.EnsureDay(dayKey)
	day.Sessions = append(day.Sessions, sess)
	day.RefreshClockedIn()
	rec.Metadata.LastUpdated = now

	if err := s.months.PutMonthRecord(ctx, c.EmployeeID, yearMonth, rec); err != nil {
		return timesheet.SessionResponse{}, err
	}
	s.notifyChanged(today)

	ref := timesheet.SessionRef{
		EmployeeID: c.EmployeeID,
		YearMonth:  yearMonth,
		Day:        dayKey,
		Index:      len(day.Sessions) - 1,
	}
	return mapSessionResponse(ref, today, sess), nil
}

// ClockOut implements timesheet.Service.
func (s *TimesheetServiceImpl) ClockOut(ctx context.Context) (timesheet.SessionResponse, error) {
	c, err := callerFromContext(ctx)
	if err != nil {
		return timesheet.SessionResponse{}, err
	}

	now := s.now().UTC()
	today := timesheet.TruncateToDay(now)
	yesterday := today.AddDate(0, 0, -1)

	rec, yearMonth, day, sess, date, err := s.findOpenSession(ctx, c.EmployeeID, today, yesterday)
	if err != nil {
		return timesheet.SessionResponse{}, err
	}
	if sess == nil {
		return timesheet.SessionResponse{}, timesheet.ErrNotClockedIn
	}

	checkOut := now
	sess.CheckOut = &checkOut
	sess.Status = timesheet.StatusClosed
	sess.WorkedDuration = timesheet.ComputeWorkedDuration(sess.CheckIn, sess.CheckOut)
	sess.EditedBy = string(c.Role)
	sess.EditedAt = now

	day.RefreshClockedIn()
	rec.Metadata.LastUpdated = now

	if err := s.months.PutMonthRecord(ctx, c.EmployeeID, yearMonth, rec); err != nil {
		return timesheet.SessionResponse{}, err
	}
	s.notifyChanged(date)

	index := -1
	for i := range day.Sessions {
		if day.Sessions[i].ID == sess.ID {
			index = i
			break
		}
	}
	ref := timesheet.SessionRef{
		EmployeeID: c.EmployeeID,
		YearMonth:  yearMonth,
		Day:        timesheet.DayKey(date),
		Index:      index,
	}
	return mapSessionResponse(ref, date, *sess), nil
}
