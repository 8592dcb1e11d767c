package entity

import "testing"

func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		input string
		want  UserRole
		ok    bool
	}{
		{"ADMIN", RoleAdmin, true},
		{"admin", RoleAdmin, true},
		{"Owner", RoleOwner, true},
		{"user", RoleUser, true},
		{"manager", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := NormalizeRole(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("NormalizeRole(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}
