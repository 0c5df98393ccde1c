package course

import (
	"context"
	"database/sql"
	"time"

	"clubdesk/internal/adapters/storage"
	domain "clubdesk/internal/domain/course"
)

const dateFormat = "2006-01-02"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
// PRE: db is a valid, open database connection with the schema applied
// POST: store is ready for use
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const courseColumns = `id, name, teacher, start_date, time, duration, sessions_count, sessions_per_week, weekdays, end_date, color`

// Create inserts a course and returns its assigned id.
// PRE: c is a valid Course (Validate() returns nil)
// POST: course is persisted with a fresh id
func (s *SQLiteStore) Create(ctx context.Context, c domain.Course) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO courses (name, teacher, start_date, time, duration, sessions_count, sessions_per_week, weekdays, end_date, color)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Name, c.Teacher, c.StartDate.Format(dateFormat), c.Time, c.Duration,
		c.SessionsCount, c.SessionsPerWeek, c.Weekdays, c.EndDate.Format(dateFormat), c.Color,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

// Update rewrites an existing course.
// PRE: c.ID identifies an existing course
// POST: all mutable columns reflect c
func (s *SQLiteStore) Update(ctx context.Context, c domain.Course) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE courses SET name=?, teacher=?, start_date=?, time=?, duration=?,
		 sessions_count=?, sessions_per_week=?, weekdays=?, end_date=?, color=? WHERE id=?`,
		c.Name, c.Teacher, c.StartDate.Format(dateFormat), c.Time, c.Duration,
		c.SessionsCount, c.SessionsPerWeek, c.Weekdays, c.EndDate.Format(dateFormat), c.Color, c.ID,
	)
	return err
}

// GetByID retrieves a course by id.
// PRE: id > 0
// POST: returns the course or sql.ErrNoRows
func (s *SQLiteStore) GetByID(ctx context.Context, id int) (domain.Course, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE id = ?`, id)
	return scanCourse(row)
}

// List returns all courses ordered by name.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Course, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+courseColumns+` FROM courses ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCourses(rows)
}

// ListOverlapping returns courses intersecting the inclusive date range.
// PRE: from and to are YYYY-MM-DD with from <= to
// POST: ordered by name ascending
func (s *SQLiteStore) ListOverlapping(ctx context.Context, from, to string) ([]domain.Course, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+courseColumns+` FROM courses
		 WHERE start_date <= ? AND end_date >= ?
		 ORDER BY name ASC`, to, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCourses(rows)
}

// Delete removes a course row. Related rows are the caller's concern.
// PRE: id > 0
// POST: course row is gone
func (s *SQLiteStore) Delete(ctx context.Context, id int) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM courses WHERE id = ?`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourse(row rowScanner) (domain.Course, error) {
	var c domain.Course
	var startStr, endStr string
	err := row.Scan(&c.ID, &c.Name, &c.Teacher, &startStr, &c.Time, &c.Duration,
		&c.SessionsCount, &c.SessionsPerWeek, &c.Weekdays, &endStr, &c.Color)
	if err != nil {
		return c, err
	}
	c.StartDate = parseDate(startStr)
	c.EndDate = parseDate(endStr)
	return c, nil
}

func scanCourses(rows *sql.Rows) ([]domain.Course, error) {
	var courses []domain.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, _ := time.Parse(dateFormat, s)
	return t
}
