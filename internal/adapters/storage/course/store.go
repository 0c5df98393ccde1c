package course

import (
	"context"

	domain "clubdesk/internal/domain/course"
)

// Store persists Course state.
type Store interface {
	Create(ctx context.Context, c domain.Course) (int, error)
	Update(ctx context.Context, c domain.Course) error
	GetByID(ctx context.Context, id int) (domain.Course, error)
	List(ctx context.Context) ([]domain.Course, error)
	// ListOverlapping returns courses whose [start_date, end_date] window
	// intersects the given inclusive date range.
	ListOverlapping(ctx context.Context, from, to string) ([]domain.Course, error)
	Delete(ctx context.Context, id int) error
}
