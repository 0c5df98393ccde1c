package enrollment

import (
	"context"
	"database/sql"
	"time"

	"clubdesk/internal/adapters/storage"
	domain "clubdesk/internal/domain/enrollment"
)

const dateFormat = "2006-01-02"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Create inserts an enrollment and returns its assigned id.
// POST: fails on a duplicate (course_id, student_id) pair
func (s *SQLiteStore) Create(ctx context.Context, e domain.Enrollment) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO course_enrollments (course_id, student_id, enrollment_date) VALUES (?, ?, ?)`,
		e.CourseID, e.StudentID, e.EnrollmentDate.Format(dateFormat),
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

func (s *SQLiteStore) ListByCourse(ctx context.Context, courseID int) ([]domain.Enrollment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, course_id, student_id, enrollment_date
		 FROM course_enrollments WHERE course_id = ? ORDER BY id ASC`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEnrollments(rows)
}

func (s *SQLiteStore) ListByStudent(ctx context.Context, studentID int) ([]domain.Enrollment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, course_id, student_id, enrollment_date
		 FROM course_enrollments WHERE student_id = ? ORDER BY id ASC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEnrollments(rows)
}

func (s *SQLiteStore) CountByCourse(ctx context.Context, courseID int) (int, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM course_enrollments WHERE course_id = ?`, courseID)
	var n int
	err := row.Scan(&n)
	return n, err
}

func (s *SQLiteStore) Delete(ctx context.Context, courseID, studentID int) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM course_enrollments WHERE course_id = ? AND student_id = ?`, courseID, studentID)
	return err
}

func (s *SQLiteStore) DeleteByCourse(ctx context.Context, courseID int) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM course_enrollments WHERE course_id = ?`, courseID)
	return err
}

func (s *SQLiteStore) DeleteByStudent(ctx context.Context, studentID int) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM course_enrollments WHERE student_id = ?`, studentID)
	return err
}

func scanEnrollments(rows *sql.Rows) ([]domain.Enrollment, error) {
	var out []domain.Enrollment
	for rows.Next() {
		var e domain.Enrollment
		var date string
		if err := rows.Scan(&e.ID, &e.CourseID, &e.StudentID, &date); err != nil {
			return nil, err
		}
		if t, err := time.Parse(dateFormat, date); err == nil {
			e.EnrollmentDate = t
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
