package timesheet

import (
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/validator"
)

// ========================================
// TIMESHEET DTOs
// ========================================

// AddSessionRequest creates a closed historical session. The shift may cross
// midnight by at most one day, expressed by EndDate; an empty EndDate means
// the shift ended on its start date.
type AddSessionRequest struct {
	EmployeeID   string `json:"employee_id"`
	StartDate    string `json:"start_date"`     // YYYY-MM-DD
	CheckInTime  string `json:"check_in_time"`  // HH:MM
	EndDate      string `json:"end_date"`       // YYYY-MM-DD, defaults to start_date
	CheckOutTime string `json:"check_out_time"` // HH:MM
}

func (r *AddSessionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.CheckInTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in_time",
			Message: "check-in time is required",
		})
	} else if _, ok := validator.IsValidClockTime(r.CheckInTime); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in_time",
			Message: "check-in time must be HH:MM",
		})
	}

	if validator.IsEmpty(r.CheckOutTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_out_time",
			Message: "check-out time is required",
		})
	} else if _, ok := validator.IsValidClockTime(r.CheckOutTime); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "check_out_time",
			Message: "check-out time must be HH:MM",
		})
	}

	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start date is required",
		})
	} else if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start date must be YYYY-MM-DD",
		})
	}

	if r.EndDate != "" {
		if _, ok := validator.IsValidDate(r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end date must be YYYY-MM-DD",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// EditSessionRequest replaces the timing of the session the ref points at.
// Both instants are ISO8601 timestamps.
type EditSessionRequest struct {
	Ref      SessionRef `json:"ref"`
	CheckIn  string     `json:"check_in"`
	CheckOut string     `json:"check_out"`
}

func (r *EditSessionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Ref.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "ref.employee_id",
			Message: "employee_id is required",
		})
	}
	if _, err := r.Ref.Date(); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "ref",
			Message: "ref must address a valid year-month and day",
		})
	}
	if validator.IsEmpty(r.CheckIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in",
			Message: "check-in is required",
		})
	} else if _, ok := validator.IsValidDateTime(r.CheckIn); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in",
			Message: "check-in must be an ISO8601 timestamp",
		})
	}
	if validator.IsEmpty(r.CheckOut) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_out",
			Message: "check-out is required",
		})
	} else if _, ok := validator.IsValidDateTime(r.CheckOut); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "check_out",
			Message: "check-out must be an ISO8601 timestamp",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DeleteSessionRequest struct {
	Ref SessionRef `json:"ref"`
}

func (r *DeleteSessionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Ref.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "ref.employee_id",
			Message: "employee_id is required",
		})
	}
	if _, err := r.Ref.Date(); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "ref",
			Message: "ref must address a valid year-month and day",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// History sort fields accepted by SelfHistory.
const (
	SortByDate     = "date"
	SortByCheckIn  = "check_in"
	SortByCheckOut = "check_out"
	SortByDuration = "duration"
)

// HistoryFilter narrows and orders an employee's own session history.
type HistoryFilter struct {
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD, inclusive
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD, inclusive

	SortBy    string `json:"sort_by"`    // date, check_in, check_out, duration
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start date must be YYYY-MM-DD",
			})
		}
	}
	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end date must be YYYY-MM-DD",
			})
		}
	}

	if f.SortBy == "" {
		f.SortBy = SortByDate
	}
	if !validator.IsInSlice(f.SortBy, []string{SortByDate, SortByCheckIn, SortByCheckOut, SortByDuration}) {
		errs = append(errs, validator.ValidationError{
			Field:   "sort_by",
			Message: "sort_by must be one of date, check_in, check_out, duration",
		})
	}

	if f.SortOrder == "" {
		f.SortOrder = "desc"
	}
	if !validator.IsInSlice(f.SortOrder, []string{"asc", "desc"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "sort_order",
			Message: "sort_order must be asc or desc",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SessionResponse struct {
	Ref            SessionRef `json:"ref"`
	EmployeeID     string     `json:"employee_id"`
	Date           string     `json:"date"`
	CheckIn        *string    `json:"check_in,omitempty"`
	CheckOut       *string    `json:"check_out,omitempty"`
	Worked         string     `json:"worked"`
	Status         string     `json:"status"`
	EditedBy       string     `json:"edited_by"`
	EditedAt       string     `json:"edited_at"`
	CheckInEdited  bool       `json:"check_in_edited"`
	CheckOutEdited bool       `json:"check_out_edited"`
}

// RosterRow is one flattened session on the daily roster.
type RosterRow struct {
	EmployeeID   string     `json:"employee_id"`
	EmployeeName string     `json:"employee_name"`
	CheckIn      *string    `json:"check_in,omitempty"`
	CheckOut     *string    `json:"check_out,omitempty"`
	Worked       string     `json:"worked"`
	Ref          SessionRef `json:"ref"`
}

type RosterResponse struct {
	Date    string      `json:"date"`
	Rows    []RosterRow `json:"rows"`
	Actions Actions     `json:"actions"`
}

// HistoryRow is one flattened session in the self-service history view.
type HistoryRow struct {
	Date           string  `json:"date"`
	CheckIn        *string `json:"check_in,omitempty"`
	CheckOut       *string `json:"check_out,omitempty"`
	Worked         string  `json:"worked"`
	CheckInEdited  bool    `json:"check_in_edited"`
	CheckOutEdited bool    `json:"check_out_edited"`
}

type HistoryResponse struct {
	Rows               []HistoryRow `json:"rows"`
	TotalWorked        string       `json:"total_worked"`
	TotalWorkedMinutes int          `json:"total_worked_minutes"`
}

// EditContextResponse tells the UI which dates are selectable for mutation
// and what the caller may do on one of them.
type EditContextResponse struct {
	Date        string  `json:"date"`
	WindowStart string  `json:"window_start"`
	WindowEnd   string  `json:"window_end"` // exclusive
	Editable    bool    `json:"editable"`
	Actions     Actions `json:"actions"`
}
