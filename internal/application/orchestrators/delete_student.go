package orchestrators

import (
	"context"
	"errors"
	"log/slog"
)

// StudentStoreForDelete defines the student store interface for deletion.
type StudentStoreForDelete interface {
	Delete(ctx context.Context, id int) error
}

// EnrollmentStoreForStudentDelete defines the enrollment store interface for deletion.
type EnrollmentStoreForStudentDelete interface {
	DeleteByStudent(ctx context.Context, studentID int) error
}

// PaymentStoreForStudentDelete defines the payment store interface for deletion.
type PaymentStoreForStudentDelete interface {
	DeleteByStudent(ctx context.Context, studentID int) error
}

// AttendanceStoreForStudentDelete defines the attendance store interface for deletion.
type AttendanceStoreForStudentDelete interface {
	DeleteAttendanceByStudent(ctx context.Context, studentID int) error
}

// DeleteStudentInput carries input for the student deletion orchestrator.
type DeleteStudentInput struct {
	StudentID int
}

// DeleteStudentDeps holds dependencies for DeleteStudent.
type DeleteStudentDeps struct {
	StudentStore    StudentStoreForDelete
	EnrollmentStore EnrollmentStoreForStudentDelete
	PaymentStore    PaymentStoreForStudentDelete
	MeetingStore    AttendanceStoreForStudentDelete
}

// ExecuteDeleteStudent removes a student along with their enrollments,
// payments and attendance marks.
// PRE: StudentID > 0
// POST: no rows reference the student
func ExecuteDeleteStudent(ctx context.Context, input DeleteStudentInput, deps DeleteStudentDeps) error {
	if input.StudentID <= 0 {
		return errors.New("student ID is required")
	}

	if err := deps.MeetingStore.DeleteAttendanceByStudent(ctx, input.StudentID); err != nil {
		return err
	}
	if err := deps.PaymentStore.DeleteByStudent(ctx, input.StudentID); err != nil {
		return err
	}
	if err := deps.EnrollmentStore.DeleteByStudent(ctx, input.StudentID); err != nil {
		return err
	}
	if err := deps.StudentStore.Delete(ctx, input.StudentID); err != nil {
		return err
	}

	slog.Info("student_event", "event", "student_deleted", "student_id", input.StudentID)
	return nil
}
