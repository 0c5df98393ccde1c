package student

import (
	"errors"
	"strings"
	"time"
)

// Domain errors
var (
	ErrEmptyFirstName = errors.New("student first name cannot be empty")
	ErrEmptyFathers   = errors.New("student father's name cannot be empty")
	ErrEmptyPhone     = errors.New("student phone cannot be empty")
	ErrMissingBirth   = errors.New("student date of birth is required")
)

// Student is a club member enrolled in zero or more courses.
// INVARIANT: Phone is unique across students; NationalID is unique when set.
type Student struct {
	ID          int
	FirstName   string
	FathersName string
	Phone       string
	DateOfBirth time.Time
	NationalID  string // optional
}

// Validate checks the student's invariants.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (s *Student) Validate() error {
	if strings.TrimSpace(s.FirstName) == "" {
		return ErrEmptyFirstName
	}
	if strings.TrimSpace(s.FathersName) == "" {
		return ErrEmptyFathers
	}
	if strings.TrimSpace(s.Phone) == "" {
		return ErrEmptyPhone
	}
	if s.DateOfBirth.IsZero() {
		return ErrMissingBirth
	}
	return nil
}

// FullName returns the display name used across lists and receipts.
func (s *Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.FathersName)
}

// Age returns the student's age in whole years as of now.
// PRE: DateOfBirth is set
// POST: result is >= 0 for any birth date not in the future
func (s *Student) Age(now time.Time) int {
	age := now.Year() - s.DateOfBirth.Year()
	if now.Month() < s.DateOfBirth.Month() ||
		(now.Month() == s.DateOfBirth.Month() && now.Day() < s.DateOfBirth.Day()) {
		age--
	}
	return age
}
