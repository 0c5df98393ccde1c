package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"clubdesk/internal/domain/enrollment"
	"clubdesk/internal/domain/meeting"
)

// MeetingStoreForCreate defines the meeting store interface for creation.
type MeetingStoreForCreate interface {
	Create(ctx context.Context, m meeting.Meeting) (int, error)
	CreateAttendance(ctx context.Context, a meeting.Attendance) (int, error)
}

// EnrollmentStoreForCreate defines the enrollment store interface for creation.
type EnrollmentStoreForCreate interface {
	ListByCourse(ctx context.Context, courseID int) ([]enrollment.Enrollment, error)
}

// CreateMeetingInput carries input for the meeting orchestrator.
type CreateMeetingInput struct {
	Meeting meeting.Meeting
	Present map[int]bool // student id -> attended; students missing from the map default to absent
}

// CreateMeetingDeps holds dependencies for CreateMeeting.
type CreateMeetingDeps struct {
	MeetingStore    MeetingStoreForCreate
	EnrollmentStore EnrollmentStoreForCreate
}

// ExecuteCreateMeeting records that a session took place and writes one
// attendance row per enrolled student, marked present or absent.
// PRE: Meeting references an existing course
// POST: meeting and a full set of attendance rows are persisted
func ExecuteCreateMeeting(ctx context.Context, input CreateMeetingInput, deps CreateMeetingDeps) (int, error) {
	m := input.Meeting
	if err := m.Validate(); err != nil {
		return 0, err
	}

	enrollments, err := deps.EnrollmentStore.ListByCourse(ctx, m.CourseID)
	if err != nil {
		return 0, fmt.Errorf("list enrollments for course %d: %w", m.CourseID, err)
	}

	meetingID, err := deps.MeetingStore.Create(ctx, m)
	if err != nil {
		return 0, err
	}

	for _, e := range enrollments {
		a := meeting.Attendance{
			MeetingID: meetingID,
			StudentID: e.StudentID,
			Present:   input.Present[e.StudentID],
		}
		if _, err := deps.MeetingStore.CreateAttendance(ctx, a); err != nil {
			return 0, fmt.Errorf("attendance for student %d: %w", e.StudentID, err)
		}
	}

	slog.Info("meeting_event", "event", "meeting_created",
		"meeting_id", meetingID, "course_id", m.CourseID, "students", len(enrollments))
	return meetingID, nil
}
