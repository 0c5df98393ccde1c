package meeting

import (
	"context"

	domain "clubdesk/internal/domain/meeting"
)

// Store defines the persistence interface for meetings and attendance.
type Store interface {
	Create(ctx context.Context, m domain.Meeting) (int, error)
	GetByID(ctx context.Context, id int) (domain.Meeting, error)
	ListByCourse(ctx context.Context, courseID int) ([]domain.Meeting, error)
	UpdateNotes(ctx context.Context, id int, notes string) error
	Delete(ctx context.Context, id int) error
	DeleteByCourse(ctx context.Context, courseID int) error

	CreateAttendance(ctx context.Context, a domain.Attendance) (int, error)
	ListAttendance(ctx context.Context, meetingID int) ([]domain.Attendance, error)
	SetPresent(ctx context.Context, meetingID, studentID int, present bool) error
	DeleteAttendanceByStudent(ctx context.Context, studentID int) error
}
