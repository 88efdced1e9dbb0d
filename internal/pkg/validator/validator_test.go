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

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // valid UUIDv7
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B", // valid UUIDv7 (uppercase)
	}
	invalid := []string{
		"123e4567-e89b-12d3-a456-426614174000", // not v7
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",     // missing dashes
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // invalid hex
		"",                                     // empty
	}
	for _, uuid := range valid {
		if !IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = false, want true", uuid)
		}
	}
	for _, uuid := range invalid {
		if IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = true, want false", uuid)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2025-06-02"); !ok {
		t.Error(`IsValidDate("2025-06-02") = false, want true`)
	}
	for _, s := range []string{"2025-13-02", "02-06-2025", "2025-06-02T00:00:00Z", ""} {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidTimeOfDay(t *testing.T) {
	valid := []string{"00:00", "07:30", "23:59"}
	invalid := []string{"24:00", "7:3", "0730", "07:60", ""}
	for _, s := range valid {
		if !IsValidTimeOfDay(s) {
			t.Errorf("IsValidTimeOfDay(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidTimeOfDay(s) {
			t.Errorf("IsValidTimeOfDay(%q) = true, want false", s)
		}
	}
}

func TestIsValidDateTime(t *testing.T) {
	valid := []string{
		"2025-06-02T07:30:00Z",
		"2025-06-02T07:30:00+07:00",
		"2025-06-02T07:30:00.123456789Z",
	}
	invalid := []string{"2025-06-02", "07:30", "not-a-time", ""}
	for _, s := range valid {
		if _, ok := IsValidDateTime(s); !ok {
			t.Errorf("IsValidDateTime(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDateTime(s); ok {
			t.Errorf("IsValidDateTime(%q) = true, want false", s)
		}
	}
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "check_in", Message: "check_in must be an RFC3339 timestamp"},
		{Field: "reason", Message: "reason is required"},
	}
	m := errs.ToMap()
	if len(m) != 2 {
		t.Fatalf("ToMap() returned %d entries, want 2", len(m))
	}
	if m["reason"] != "reason is required" {
		t.Errorf("ToMap()[\"reason\"] = %q", m["reason"])
	}
	if errs.Error() == "" {
		t.Error("Error() should describe the failures")
	}
}
