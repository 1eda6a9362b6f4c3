package employee

import "testing"

func TestParseRole(t *testing.T) {
	cases := []struct {
		input   string
		want    Role
		wantErr bool
	}{
		{"admin", RoleAdmin, false},
		{"Admin", RoleAdmin, false},
		{"MANAGER", RoleManager, false},
		{" teamleader ", RoleTeamLeader, false},
		{"teammember", RoleTeamMember, false},
		{"owner", "", true},
		{"", "", true},
		{"team member", "", true},
	}
	for _, c := range cases {
		got, err := ParseRole(c.input)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseRole(%q) should fail", c.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRole(%q) error: %v", c.input, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseRole(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestIsManagement(t *testing.T) {
	if !RoleAdmin.IsManagement() || !RoleManager.IsManagement() {
		t.Error("admin and manager are management roles")
	}
	if RoleTeamLeader.IsManagement() || RoleTeamMember.IsManagement() {
		t.Error("team leader and team member are not management roles")
	}
}
