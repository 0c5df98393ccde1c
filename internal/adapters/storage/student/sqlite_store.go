package student

import (
	"context"
	"database/sql"
	"time"

	"clubdesk/internal/adapters/storage"
	domain "clubdesk/internal/domain/student"
)

const dateFormat = "2006-01-02"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const studentColumns = `id, first_name, fathers_name, phone, date_of_birth, national_id`

// Create inserts a student and returns its assigned id.
func (s *SQLiteStore) Create(ctx context.Context, st domain.Student) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO students (first_name, fathers_name, phone, date_of_birth, national_id)
		 VALUES (?, ?, ?, ?, ?)`,
		st.FirstName, st.FathersName, st.Phone, formatDate(st.DateOfBirth), nullIfEmpty(st.NationalID),
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

func (s *SQLiteStore) Update(ctx context.Context, st domain.Student) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE students SET first_name=?, fathers_name=?, phone=?, date_of_birth=?, national_id=? WHERE id=?`,
		st.FirstName, st.FathersName, st.Phone, formatDate(st.DateOfBirth), nullIfEmpty(st.NationalID), st.ID,
	)
	return err
}

func (s *SQLiteStore) GetByID(ctx context.Context, id int) (domain.Student, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+studentColumns+` FROM students WHERE id = ?`, id)
	return scanStudent(row)
}

func (s *SQLiteStore) List(ctx context.Context) ([]domain.Student, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+studentColumns+` FROM students ORDER BY first_name ASC, fathers_name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStudents(rows)
}

// ListByCourse returns students enrolled in the given course.
// POST: ordered by first name, then father's name
func (s *SQLiteStore) ListByCourse(ctx context.Context, courseID int) ([]domain.Student, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.id, s.first_name, s.fathers_name, s.phone, s.date_of_birth, s.national_id
		 FROM students s
		 JOIN course_enrollments e ON e.student_id = s.id
		 WHERE e.course_id = ?
		 ORDER BY s.first_name ASC, s.fathers_name ASC`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStudents(rows)
}

func (s *SQLiteStore) Delete(ctx context.Context, id int) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM students WHERE id = ?`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudent(row rowScanner) (domain.Student, error) {
	var st domain.Student
	var dob string
	var national sql.NullString
	err := row.Scan(&st.ID, &st.FirstName, &st.FathersName, &st.Phone, &dob, &national)
	if err != nil {
		return st, err
	}
	st.DateOfBirth = parseDate(dob)
	st.NationalID = national.String
	return st, nil
}

// nullIfEmpty keeps the unique national_id column NULL when the form left
// the field blank.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func scanStudents(rows *sql.Rows) ([]domain.Student, error) {
	var students []domain.Student
	for rows.Next() {
		st, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, st)
	}
	return students, rows.Err()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateFormat)
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, _ := time.Parse(dateFormat, s)
	return t
}
