package timesheet

import (
	"testing"
	"time"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/employee"
)

func TestAuthorize(t *testing.T) {
	// Tuesday window: [2025-03-10, 2025-03-18)
	today := date(2025, 3, 11)
	window := ComputeEditableWindow(today)

	inWindowPast := date(2025, 3, 10)
	outsideWindow := date(2025, 3, 3)

	cases := []struct {
		name       string
		role       employee.Role
		targetDate time.Time
		want       Actions
	}{
		{"admin today", employee.RoleAdmin, today,
			Actions{CanAdd: true, CanEdit: true, CanDelete: true, ShowActionsColumn: true}},
		{"admin past in window", employee.RoleAdmin, inWindowPast,
			Actions{CanAdd: true, CanEdit: true, CanDelete: true, ShowActionsColumn: true}},
		{"admin outside window", employee.RoleAdmin, outsideWindow,
			Actions{}},
		{"manager today", employee.RoleManager, today,
			Actions{CanEdit: true, ShowActionsColumn: true}},
		{"manager past in window", employee.RoleManager, inWindowPast,
			Actions{}},
		{"manager outside window", employee.RoleManager, outsideWindow,
			Actions{}},
		{"teamleader today", employee.RoleTeamLeader, today,
			Actions{}},
		{"teamleader past in window", employee.RoleTeamLeader, inWindowPast,
			Actions{}},
		{"teammember today", employee.RoleTeamMember, today,
			Actions{}},
		{"teammember past in window", employee.RoleTeamMember, inWindowPast,
			Actions{}},
	}
	for _, c := range cases {
		got := Authorize(c.role, c.targetDate, today, window)
		if got != c.want {
			t.Errorf("%s: Authorize() = %+v, want %+v", c.name, got, c.want)
		}
	}
}

func TestAuthorizeManagerIgnoresTimeOfDay(t *testing.T) {
	now := time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC)
	window := ComputeEditableWindow(now)
	target := time.Date(2025, 3, 11, 23, 30, 0, 0, time.UTC)

	got := Authorize(employee.RoleManager, target, now, window)
	if !got.CanEdit {
		t.Errorf("manager should edit any time on today's date, got %+v", got)
	}
}
