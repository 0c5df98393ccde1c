package coach

import (
	"context"

	domain "clubdesk/internal/domain/coach"
)

// Store defines the persistence interface for coaches.
type Store interface {
	Create(ctx context.Context, c domain.Coach) (int, error)
	Update(ctx context.Context, c domain.Coach) error
	GetByID(ctx context.Context, id int) (domain.Coach, error)
	List(ctx context.Context) ([]domain.Coach, error)
	Delete(ctx context.Context, id int) error
}
