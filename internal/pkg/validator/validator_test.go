package validator

import (
	"testing"
	"time"
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

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"123e4567-e89b-12d3-a456-426614174000",
		"123E4567-E89B-12D3-A456-426614174000",
	}
	invalid := []string{
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"{123e4567-e89b-12d3-a456-426614174000}",
		"",
	}
	for _, id := range valid {
		if !IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = false, want true", id)
		}
	}
	for _, id := range invalid {
		if IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = true, want false", id)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "01-01-2023", "", "2023/01/01"}
	for _, d := range valid {
		if _, ok := IsValidDate(d); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", d)
		}
	}
	for _, d := range invalid {
		if _, ok := IsValidDate(d); ok {
			t.Errorf("IsValidDate(%q) = true, want false", d)
		}
	}
}

func TestIsValidDateTime(t *testing.T) {
	got, ok := IsValidDateTime("2024-01-15T10:30:00+07:00")
	if !ok {
		t.Fatal("IsValidDateTime with offset = false, want true")
	}
	want := time.Date(2024, 1, 15, 3, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("IsValidDateTime = %v, want %v", got, want)
	}
	if _, ok := IsValidDateTime("2024-01-15T10:30:00.123456Z"); !ok {
		t.Error("IsValidDateTime with fraction = false, want true")
	}
	if _, ok := IsValidDateTime("2024-01-15 10:30:00"); ok {
		t.Error("IsValidDateTime without T = true, want false")
	}
}

func TestCoordinates(t *testing.T) {
	if !IsValidLatitude(-6.2) || IsValidLatitude(90.01) {
		t.Error("IsValidLatitude bounds wrong")
	}
	if !IsValidLongitude(180) || IsValidLongitude(-180.5) {
		t.Error("IsValidLongitude bounds wrong")
	}
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	if errs.Err() != nil {
		t.Fatal("empty ValidationErrors.Err() should be nil")
	}
	errs.Add("name", "is required")
	errs.Add("rate", "must be non-negative")

	if got := errs.Error(); got != "name: is required; rate: must be non-negative" {
		t.Errorf("Error() = %q", got)
	}
	m := errs.ToMap()
	if m["name"] != "is required" || len(m) != 2 {
		t.Errorf("ToMap() = %v", m)
	}
	if errs.Err() == nil {
		t.Error("non-empty ValidationErrors.Err() should not be nil")
	}
}

func TestIsInSlice(t *testing.T) {
	if !IsInSlice("a", []string{"a", "b"}) {
		t.Error("IsInSlice(a) = false")
	}
	if IsInSlice("c", []string{"a", "b"}) {
		t.Error("IsInSlice(c) = true")
	}
}

func TestNormalizePagination(t *testing.T) {
	page, limit := 0, 0
	if errs := NormalizePagination(&page, &limit); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if page != 1 || limit != 20 {
		t.Errorf("defaults = (%d, %d), want (1, 20)", page, limit)
	}

	page, limit = -1, 500
	errs := NormalizePagination(&page, &limit)
	if len(errs) != 2 {
		t.Errorf("NormalizePagination(-1, 500) errors = %v, want 2", errs)
	}
}
