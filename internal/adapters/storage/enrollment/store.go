package enrollment

import (
	"context"

	domain "clubdesk/internal/domain/enrollment"
)

// Store defines the persistence interface for enrollments.
type Store interface {
	Create(ctx context.Context, e domain.Enrollment) (int, error)
	ListByCourse(ctx context.Context, courseID int) ([]domain.Enrollment, error)
	ListByStudent(ctx context.Context, studentID int) ([]domain.Enrollment, error)
	CountByCourse(ctx context.Context, courseID int) (int, error)
	Delete(ctx context.Context, courseID, studentID int) error
	DeleteByCourse(ctx context.Context, courseID int) error
	DeleteByStudent(ctx context.Context, studentID int) error
}
