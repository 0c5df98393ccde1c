package meeting

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrMissingCourse = errors.New("meeting course id is required")
	ErrMissingDate   = errors.New("meeting date is required")
)

// Meeting records that a course session actually took place on a date,
// with optional free-form notes (rendered as markdown on the course page).
type Meeting struct {
	ID       int
	CourseID int
	Date     time.Time
	Notes    string
}

// Validate checks the meeting's invariants.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (m *Meeting) Validate() error {
	if m.CourseID <= 0 {
		return ErrMissingCourse
	}
	if m.Date.IsZero() {
		return ErrMissingDate
	}
	return nil
}

// Attendance marks one student's presence at one meeting.
// INVARIANT: a (MeetingID, StudentID) pair appears at most once.
type Attendance struct {
	ID        int
	MeetingID int
	StudentID int
	Present   bool
}
