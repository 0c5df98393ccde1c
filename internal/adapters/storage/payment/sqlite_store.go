package payment

import (
	"context"
	"database/sql"
	"time"

	"clubdesk/internal/adapters/storage"
	domain "clubdesk/internal/domain/payment"
)

const dateFormat = "2006-01-02"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const paymentColumns = `id, student_id, course_id, month, amount, payment_date, payment_method`

// Create inserts a payment and returns its assigned id.
// PRE: p is a valid Payment (Validate() returns nil)
func (s *SQLiteStore) Create(ctx context.Context, p domain.Payment) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO payments (student_id, course_id, month, amount, payment_date, payment_method)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.StudentID, p.CourseID, p.Month, p.Amount, p.PaymentDate.Format(dateFormat), p.Method,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

func (s *SQLiteStore) GetByID(ctx context.Context, id int) (domain.Payment, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id = ?`, id)
	return scanPayment(row)
}

// List returns all payments, newest first.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+paymentColumns+` FROM payments ORDER BY payment_date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPayments(rows)
}

// ListSince returns payments dated on or after from, newest first.
func (s *SQLiteStore) ListSince(ctx context.Context, from time.Time) ([]domain.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+paymentColumns+` FROM payments
		 WHERE payment_date >= ? ORDER BY payment_date DESC, id DESC`,
		from.Format(dateFormat))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPayments(rows)
}

func (s *SQLiteStore) ListByCourse(ctx context.Context, courseID int) ([]domain.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+paymentColumns+` FROM payments
		 WHERE course_id = ? ORDER BY payment_date DESC, id DESC`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPayments(rows)
}

func (s *SQLiteStore) ListByStudent(ctx context.Context, studentID int) ([]domain.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+paymentColumns+` FROM payments
		 WHERE student_id = ? ORDER BY payment_date DESC, id DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPayments(rows)
}

func (s *SQLiteStore) Delete(ctx context.Context, id int) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM payments WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) DeleteByCourse(ctx context.Context, courseID int) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM payments WHERE course_id = ?`, courseID)
	return err
}

func (s *SQLiteStore) DeleteByStudent(ctx context.Context, studentID int) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM payments WHERE student_id = ?`, studentID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPayment(row rowScanner) (domain.Payment, error) {
	var p domain.Payment
	var date string
	var method sql.NullString
	err := row.Scan(&p.ID, &p.StudentID, &p.CourseID, &p.Month, &p.Amount, &date, &method)
	if err != nil {
		return p, err
	}
	if t, err := time.Parse(dateFormat, date); err == nil {
		p.PaymentDate = t
	}
	p.Method = method.String
	return p, nil
}

func scanPayments(rows *sql.Rows) ([]domain.Payment, error) {
	var out []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
