// name_test.go tests name normalization, initials extraction and script
// classification.

package avatar

import "testing"

// ///////////////////////////////////////////////
// NormalizeName
// ///////////////////////////////////////////////

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"wmstudio", "WMSTUDIO", true},
		{"  alice  ", "ALICE", true},
		{"john.doe_42", "JOHNDOE", true},
		{"Zoë Ørsted", "ZOËØRSTED", true},
		{"李小龙", "李小龙", true},
		{"straße", "STRASSE", true},
		{"a b", "AB", true},
		{"tab\tand\nnewline", "TABANDNEWLINE", true},
		{"", "", false},
		{"   ", "", false},
		{"123 !?", "", false},
		{"☺★€", "", false},
		{"​\u0000", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeName(tt.raw)
		if got != tt.want || ok != tt.ok {
			t.Errorf("NormalizeName(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}

// ///////////////////////////////////////////////
// Initials
// ///////////////////////////////////////////////

func TestInitials(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want string
	}{
		{"WMSTUDIO", 1, "W"},
		{"WMSTUDIO", 2, "WM"},
		{"WMSTUDIO", 0, "W"},
		{"WMSTUDIO", -3, "W"},
		{"AB", 5, "AB"},
		{"李小龙", 2, "李小"},
		{"李小龙", 10, "李小龙"},
		{"李A", 2, "李A"},
		{"", 3, ""},
	}
	for _, tt := range tests {
		if got := Initials(tt.name, tt.n); got != tt.want {
			t.Errorf("Initials(%q, %d) = %q, want %q", tt.name, tt.n, got, tt.want)
		}
	}
}

func TestClampLen(t *testing.T) {
	if got := clampLen("李小龙", 9); got != 3 {
		t.Errorf("clampLen rune count = %d, want 3", got)
	}
	if got := clampLen("", 2); got != 0 {
		t.Errorf("clampLen empty = %d, want 0", got)
	}
}

// ///////////////////////////////////////////////
// IsLatin
// ///////////////////////////////////////////////

func TestIsLatin(t *testing.T) {
	tests := []struct {
		s    string
		want bool
	}{
		{"A", true},
		{"z", true},
		{"李", false},
		{"李A", true},
		{"É", false},
		{"Ж", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsLatin(tt.s); got != tt.want {
			t.Errorf("IsLatin(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}
