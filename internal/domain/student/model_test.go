package student

import (
	"testing"
	"time"
)

// TestStudent_Validate tests student validation rules.
func TestStudent_Validate(t *testing.T) {
	valid := Student{
		FirstName:   "Noam",
		FathersName: "Cohen",
		Phone:       "050-1234567",
		DateOfBirth: time.Date(2015, 4, 12, 0, 0, 0, 0, time.UTC),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid student, got: %v", err)
	}

	tests := []struct {
		name    string
		modify  func(s *Student)
		wantErr error
	}{
		{"empty first name", func(s *Student) { s.FirstName = "" }, ErrEmptyFirstName},
		{"empty fathers name", func(s *Student) { s.FathersName = " " }, ErrEmptyFathers},
		{"empty phone", func(s *Student) { s.Phone = "" }, ErrEmptyPhone},
		{"missing birth date", func(s *Student) { s.DateOfBirth = time.Time{} }, ErrMissingBirth},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := valid
			tc.modify(&s)
			if err := s.Validate(); err != tc.wantErr {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

// TestStudent_Age tests whole-year age computation around the birthday.
func TestStudent_Age(t *testing.T) {
	s := Student{DateOfBirth: time.Date(2015, 4, 12, 0, 0, 0, 0, time.UTC)}

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"day before birthday", time.Date(2026, 4, 11, 0, 0, 0, 0, time.UTC), 10},
		{"on birthday", time.Date(2026, 4, 12, 0, 0, 0, 0, time.UTC), 11},
		{"later in year", time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC), 11},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.Age(tc.now); got != tc.want {
				t.Fatalf("age = %d, want %d", got, tc.want)
			}
		})
	}
}

// TestStudent_FullName tests display name composition.
func TestStudent_FullName(t *testing.T) {
	s := Student{FirstName: "Noam", FathersName: "Cohen"}
	if got := s.FullName(); got != "Noam Cohen" {
		t.Fatalf("full name = %q", got)
	}
}
