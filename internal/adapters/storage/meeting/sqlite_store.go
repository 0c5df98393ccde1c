package meeting

import (
	"context"
	"time"

	"clubdesk/internal/adapters/storage"
	domain "clubdesk/internal/domain/meeting"
)

const dateFormat = "2006-01-02"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Create inserts a meeting and returns its assigned id.
// PRE: m is a valid Meeting (Validate() returns nil)
func (s *SQLiteStore) Create(ctx context.Context, m domain.Meeting) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO course_meetings (course_id, date, notes) VALUES (?, ?, ?)`,
		m.CourseID, m.Date.Format(dateFormat), m.Notes,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

func (s *SQLiteStore) GetByID(ctx context.Context, id int) (domain.Meeting, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, course_id, date, notes FROM course_meetings WHERE id = ?`, id)
	return scanMeeting(row)
}

// ListByCourse returns a course's meetings, newest first.
func (s *SQLiteStore) ListByCourse(ctx context.Context, courseID int) ([]domain.Meeting, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, course_id, date, notes FROM course_meetings
		 WHERE course_id = ? ORDER BY date DESC, id DESC`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Meeting
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) UpdateNotes(ctx context.Context, id int, notes string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE course_meetings SET notes = ? WHERE id = ?`, notes, id)
	return err
}

func (s *SQLiteStore) Delete(ctx context.Context, id int) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM attendances WHERE meeting_id = ?`, id); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM course_meetings WHERE id = ?`, id)
	return err
}

// DeleteByCourse removes a course's meetings and their attendance rows.
func (s *SQLiteStore) DeleteByCourse(ctx context.Context, courseID int) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM attendances WHERE meeting_id IN
		 (SELECT id FROM course_meetings WHERE course_id = ?)`, courseID); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM course_meetings WHERE course_id = ?`, courseID)
	return err
}

func (s *SQLiteStore) CreateAttendance(ctx context.Context, a domain.Attendance) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO attendances (meeting_id, student_id, present) VALUES (?, ?, ?)`,
		a.MeetingID, a.StudentID, boolToInt(a.Present),
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

func (s *SQLiteStore) ListAttendance(ctx context.Context, meetingID int) ([]domain.Attendance, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, meeting_id, student_id, present FROM attendances
		 WHERE meeting_id = ? ORDER BY id ASC`, meetingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Attendance
	for rows.Next() {
		var a domain.Attendance
		var present int
		if err := rows.Scan(&a.ID, &a.MeetingID, &a.StudentID, &present); err != nil {
			return nil, err
		}
		a.Present = present != 0
		out = append(out, a)
	}
	return out, rows.Err()
}

// SetPresent upserts one student's presence mark for a meeting.
func (s *SQLiteStore) SetPresent(ctx context.Context, meetingID, studentID int, present bool) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO attendances (meeting_id, student_id, present) VALUES (?, ?, ?)
		 ON CONFLICT (meeting_id, student_id) DO UPDATE SET present = excluded.present`,
		meetingID, studentID, boolToInt(present),
	)
	return err
}

func (s *SQLiteStore) DeleteAttendanceByStudent(ctx context.Context, studentID int) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM attendances WHERE student_id = ?`, studentID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMeeting(row rowScanner) (domain.Meeting, error) {
	var m domain.Meeting
	var date string
	err := row.Scan(&m.ID, &m.CourseID, &date, &m.Notes)
	if err != nil {
		return m, err
	}
	if t, perr := time.Parse(dateFormat, date); perr == nil {
		m.Date = t
	}
	return m, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
