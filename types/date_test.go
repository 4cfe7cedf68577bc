package types

import "testing"

func TestIsValidDate(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"2020-09-12", true},
		{"2020-9-12", true},
		{"2020-1-3", true},
		{"2020-01-31", true},
		{"2020-12-01", true},
		{"1999-12-9", true},
		{"2020-02-29", true},

		{"", false},
		{"12-09-2020", false},
		{"2020-13-01", false},
		{"2020-00-10", false},
		{"2020-1-32", false},
		{"2020-01-00", false},
		{"20-01-01", false},
		{"2020/01/01", false},
		{"2020-01-01T00:00:00", false},
		{"yesterday", false},
	}
	for _, tc := range cases {
		if got := IsValidDate(tc.value); got != tc.want {
			t.Errorf("IsValidDate(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestValidateDate(t *testing.T) {
	if err := ValidateDate("2020-09-12"); err != nil {
		t.Errorf("ValidateDate(2020-09-12) = %v, want nil", err)
	}
	if err := ValidateDate("not-a-date"); err == nil {
		t.Error("ValidateDate(not-a-date) = nil, want error")
	}
}
