package orchestrators

import (
	"context"
	"errors"
	"log/slog"
)

// CourseStoreForDelete defines the course store interface for deletion.
type CourseStoreForDelete interface {
	Delete(ctx context.Context, id int) error
}

// EnrollmentStoreForDelete defines the enrollment store interface for deletion.
type EnrollmentStoreForDelete interface {
	DeleteByCourse(ctx context.Context, courseID int) error
}

// PaymentStoreForDelete defines the payment store interface for deletion.
type PaymentStoreForDelete interface {
	DeleteByCourse(ctx context.Context, courseID int) error
}

// MeetingStoreForDelete defines the meeting store interface for deletion.
type MeetingStoreForDelete interface {
	DeleteByCourse(ctx context.Context, courseID int) error
}

// DeleteCourseInput carries input for the course deletion orchestrator.
type DeleteCourseInput struct {
	CourseID int
}

// DeleteCourseDeps holds dependencies for DeleteCourse.
type DeleteCourseDeps struct {
	CourseStore     CourseStoreForDelete
	EnrollmentStore EnrollmentStoreForDelete
	PaymentStore    PaymentStoreForDelete
	MeetingStore    MeetingStoreForDelete
}

// ExecuteDeleteCourse removes a course and everything hanging off it:
// enrollments, payments, meetings and their attendance rows. Children go
// first so foreign keys never block the course row.
// PRE: CourseID > 0
// POST: no rows reference the course
func ExecuteDeleteCourse(ctx context.Context, input DeleteCourseInput, deps DeleteCourseDeps) error {
	if input.CourseID <= 0 {
		return errors.New("course ID is required")
	}

	if err := deps.MeetingStore.DeleteByCourse(ctx, input.CourseID); err != nil {
		return err
	}
	if err := deps.PaymentStore.DeleteByCourse(ctx, input.CourseID); err != nil {
		return err
	}
	if err := deps.EnrollmentStore.DeleteByCourse(ctx, input.CourseID); err != nil {
		return err
	}
	if err := deps.CourseStore.Delete(ctx, input.CourseID); err != nil {
		return err
	}

	slog.Info("course_event", "event", "course_deleted", "course_id", input.CourseID)
	return nil
}
