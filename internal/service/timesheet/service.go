package timesheet

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/employee"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/timesheet"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/refresh"
)

type TimesheetServiceImpl struct {
	months    timesheet.MonthRecordRepository
	employees employee.Repository
	hub       *refresh.Hub

	// now is swappable so the window/future validations can be pinned in
	// tests.
	now func() time.Time
}

func NewTimesheetService(
	months timesheet.MonthRecordRepository,
	employees employee.Repository,
	hub *refresh.Hub,
) timesheet.Service {
	return &TimesheetServiceImpl{
		months:    months,
		employees: employees,
		hub:       hub,
		now:       time.Now,
	}
}

// caller is the acting employee extracted from the request token.
type caller struct {
	EmployeeID string
	Name       string
	Role       employee.Role
}

func callerFromContext(ctx context.Context) (caller, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return caller{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return caller{}, fmt.Errorf("employee_id claim is missing or invalid")
	}

	roleStr, ok := claims["role"].(string)
	if !ok {
		return caller{}, fmt.Errorf("role claim is missing or invalid")
	}
	role, err := employee.ParseRole(roleStr)
	if err != nil {
		return caller{}, fmt.Errorf("role claim is invalid: %w", err)
	}

	name, _ := claims["name"].(string)

	return caller{EmployeeID: employeeID, Name: name, Role: role}, nil
}

// notifyChanged tells roster subscribers that sessions on a date changed.
// Advisory: queries stay correct without any subscriber.
func (s *TimesheetServiceImpl) notifyChanged(date time.Time) {
	if s.hub != nil {
		s.hub.Notify(date.Format("2006-01-02"))
	}
}

// timePtrToString safely converts a *time.Time to a display string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format("2006-01-02 15:04:05")
	return &formatted
}

func mapSessionResponse(ref timesheet.SessionRef, date time.Time, sess timesheet.Session) timesheet.SessionResponse {
	ref.SessionID = sess.ID
	return timesheet.SessionResponse{
		Ref:            ref,
		EmployeeID:     ref.EmployeeID,
		Date:           date.Format("2006-01-02"),
		CheckIn:        timePtrToString(sess.CheckIn),
		CheckOut:       timePtrToString(sess.CheckOut),
		Worked:         sess.WorkedDuration,
		Status:         sess.Status,
		EditedBy:       sess.EditedBy,
		EditedAt:       sess.EditedAt.Format("2006-01-02 15:04:05"),
		CheckInEdited:  sess.CheckInEdited,
		CheckOutEdited: sess.CheckOutEdited,
	}
}

// EditContext implements timesheet.Service.
func (s *TimesheetServiceImpl) EditContext(ctx context.Context, date time.Time) (timesheet.EditContextResponse, error) {
	c, err := callerFromContext(ctx)
	if err != nil {
		return timesheet.EditContextResponse{}, err
	}

	now := s.now().UTC()
	window := timesheet.ComputeEditableWindow(now)
	target := timesheet.TruncateToDay(date.UTC())

	return timesheet.EditContextResponse{
		Date:        target.Format("2006-01-02"),
		WindowStart: window.Start.Format("2006-01-02"),
		WindowEnd:   window.End.Format("2006-01-02"),
		Editable:    window.Contains(target),
		Actions:     timesheet.Authorize(c.Role, target, now, window),
	}, nil
}
