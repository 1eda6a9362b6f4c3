package timesheet

import (
	"time"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/employee"
)

// Actions is the set of session mutations a role may perform against one
// target date. ShowActionsColumn tells the UI whether the actions column is
// worth rendering for that date at all.
type Actions struct {
	CanAdd            bool `json:"can_add"`
	CanEdit           bool `json:"can_edit"`
	CanDelete         bool `json:"can_delete"`
	ShowActionsColumn bool `json:"show_actions_column"`
}

// Authorize evaluates the role/date permission matrix:
//
//	admin       add/edit/delete while targetDate is inside the editable window
//	manager     edit only, and only when targetDate is today
//	teamleader  view only
//	teammember  view only, own records only (enforced by the query service)
func Authorize(role employee.Role, targetDate, today time.Time, window Window) Actions {
	var a Actions
	switch role {
	case employee.RoleAdmin:
		if window.Contains(targetDate) {
			a.CanAdd = true
			a.CanEdit = true
			a.CanDelete = true
		}
	case employee.RoleManager:
		if SameDay(targetDate, today) {
			a.CanEdit = true
		}
	}
	a.ShowActionsColumn = a.CanEdit || a.CanDelete
	return a
}
