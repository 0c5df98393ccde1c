package payment

import (
	"context"
	"time"

	domain "clubdesk/internal/domain/payment"
)

// Store defines the persistence interface for payments.
type Store interface {
	Create(ctx context.Context, p domain.Payment) (int, error)
	GetByID(ctx context.Context, id int) (domain.Payment, error)
	List(ctx context.Context) ([]domain.Payment, error)
	ListSince(ctx context.Context, from time.Time) ([]domain.Payment, error)
	ListByCourse(ctx context.Context, courseID int) ([]domain.Payment, error)
	ListByStudent(ctx context.Context, studentID int) ([]domain.Payment, error)
	Delete(ctx context.Context, id int) error
	DeleteByCourse(ctx context.Context, courseID int) error
	DeleteByStudent(ctx context.Context, studentID int) error
}
