package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	valid := []string{"123", "0", "9876543210"}
	invalid := []string{"abc", "123a", "", "-123", " 12"}
	for _, s := range valid {
		if !IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = true, want false", s)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2024-03-10", "2000-12-31"}
	invalid := []string{"2024-13-01", "10/03/2024", "", "2024-03-10T08:00:00Z"}
	for _, s := range valid {
		if _, ok := IsValidDate(s); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"entry", "exit"}
	if !IsInSlice("exit", slice) {
		t.Error("IsInSlice should return true for present value")
	}
	if IsInSlice("lunch", slice) {
		t.Error("IsInSlice should return false for missing value")
	}
}

func TestExceedsLength(t *testing.T) {
	if ExceedsLength("gate", 4) {
		t.Error("ExceedsLength should allow strings at the limit")
	}
	if !ExceedsLength("gates", 4) {
		t.Error("ExceedsLength should reject strings over the limit")
	}
	if ExceedsLength("שער", 3) {
		t.Error("ExceedsLength should count runes, not bytes")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "personal_id", Message: "required"},
		{Field: "report_type", Message: "invalid"},
	}
	want := "personal_id: required; report_type: invalid"
	if errs.Error() != want {
		t.Errorf("Error() = %q, want %q", errs.Error(), want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "personal_id", Message: "required"},
		{Field: "work_location", Message: "required for entry reports"},
	}
	m := errs.ToMap()
	if m["personal_id"] != "required" || m["work_location"] != "required for entry reports" {
		t.Errorf("ToMap() = %v", m)
	}
}
