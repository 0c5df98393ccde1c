package enrollment

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrMissingCourse  = errors.New("enrollment course id is required")
	ErrMissingStudent = errors.New("enrollment student id is required")
)

// Enrollment links a student to a course.
// INVARIANT: a (CourseID, StudentID) pair appears at most once.
type Enrollment struct {
	ID             int
	CourseID       int
	StudentID      int
	EnrollmentDate time.Time
}

// Validate checks the enrollment's invariants.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (e *Enrollment) Validate() error {
	if e.CourseID <= 0 {
		return ErrMissingCourse
	}
	if e.StudentID <= 0 {
		return ErrMissingStudent
	}
	return nil
}
