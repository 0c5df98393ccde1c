package student

import (
	"context"

	domain "clubdesk/internal/domain/student"
)

// Store defines the persistence interface for students.
type Store interface {
	Create(ctx context.Context, s domain.Student) (int, error)
	Update(ctx context.Context, s domain.Student) error
	GetByID(ctx context.Context, id int) (domain.Student, error)
	List(ctx context.Context) ([]domain.Student, error)
	ListByCourse(ctx context.Context, courseID int) ([]domain.Student, error)
	Delete(ctx context.Context, id int) error
}
