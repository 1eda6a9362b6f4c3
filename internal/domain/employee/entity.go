package employee

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin      Role = "admin"      // full control over the roster
	RoleManager    Role = "manager"    // may correct today's sessions
	RoleTeamLeader Role = "teamleader" // view-only roster access
	RoleTeamMember Role = "teammember" // view-only, own records only
)

// AllRoles lists every role that appears on the daily roster.
var AllRoles = []Role{RoleAdmin, RoleManager, RoleTeamLeader, RoleTeamMember}

// ParseRole normalizes a role string coming from a token or request into the
// canonical lowercase form. Unknown values are rejected at the boundary so the
// rest of the code can treat Role as a closed set.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleManager, RoleTeamLeader, RoleTeamMember:
		return r, nil
	}
	return "", ErrInvalidRole
}

// IsManagement reports whether the role may see other employees' records.
func (r Role) IsManagement() bool {
	return r == RoleAdmin || r == RoleManager
}

type Employee struct {
	ID           string
	EmployeeCode *string
	FullName     string
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
