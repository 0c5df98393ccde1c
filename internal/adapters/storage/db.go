package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLDB is the database interface used by all stores.
// Both *sql.DB and *TimedDB satisfy this interface.
type SQLDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Compile-time check that *sql.DB satisfies SQLDB.
var _ SQLDB = (*sql.DB)(nil)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: all tables are created, WAL mode and foreign keys enabled
func InitDB(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS courses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		teacher TEXT NOT NULL,
		start_date TEXT NOT NULL,
		time TEXT NOT NULL,
		duration INTEGER NOT NULL DEFAULT 60,
		sessions_count INTEGER NOT NULL,
		sessions_per_week INTEGER NOT NULL,
		weekdays TEXT NOT NULL,
		end_date TEXT NOT NULL,
		color TEXT NOT NULL DEFAULT '#3B82F6'
	);

	CREATE TABLE IF NOT EXISTS coaches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		phone TEXT NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS students (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		first_name TEXT NOT NULL,
		fathers_name TEXT NOT NULL,
		phone TEXT NOT NULL UNIQUE,
		date_of_birth TEXT NOT NULL,
		national_id TEXT UNIQUE
	);

	CREATE TABLE IF NOT EXISTS course_enrollments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		course_id INTEGER NOT NULL,
		student_id INTEGER NOT NULL,
		enrollment_date TEXT NOT NULL,
		UNIQUE (course_id, student_id),
		FOREIGN KEY (course_id) REFERENCES courses(id),
		FOREIGN KEY (student_id) REFERENCES students(id)
	);

	CREATE TABLE IF NOT EXISTS payments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		student_id INTEGER NOT NULL,
		course_id INTEGER NOT NULL,
		month TEXT NOT NULL,
		amount REAL NOT NULL DEFAULT 0,
		payment_date TEXT NOT NULL,
		payment_method TEXT,
		FOREIGN KEY (student_id) REFERENCES students(id),
		FOREIGN KEY (course_id) REFERENCES courses(id)
	);

	CREATE TABLE IF NOT EXISTS course_meetings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		course_id INTEGER NOT NULL,
		date TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (course_id) REFERENCES courses(id)
	);

	CREATE TABLE IF NOT EXISTS attendances (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		meeting_id INTEGER NOT NULL,
		student_id INTEGER NOT NULL,
		present INTEGER NOT NULL DEFAULT 0,
		UNIQUE (meeting_id, student_id),
		FOREIGN KEY (meeting_id) REFERENCES course_meetings(id),
		FOREIGN KEY (student_id) REFERENCES students(id)
	);

	CREATE INDEX IF NOT EXISTS idx_enrollments_course ON course_enrollments(course_id);
	CREATE INDEX IF NOT EXISTS idx_enrollments_student ON course_enrollments(student_id);
	CREATE INDEX IF NOT EXISTS idx_payments_student ON payments(student_id);
	CREATE INDEX IF NOT EXISTS idx_payments_course ON payments(course_id);
	CREATE INDEX IF NOT EXISTS idx_payments_date ON payments(payment_date);
	CREATE INDEX IF NOT EXISTS idx_meetings_course ON course_meetings(course_id);
	CREATE INDEX IF NOT EXISTS idx_attendances_meeting ON attendances(meeting_id);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// ResetDB drops all application tables and recreates the schema. Used by
// the admin reset endpoint and tests, never during normal operation.
// PRE: db is a valid database connection
// POST: all tables exist and are empty
func ResetDB(db *sql.DB) error {
	drops := []string{
		"DROP TABLE IF EXISTS attendances",
		"DROP TABLE IF EXISTS course_meetings",
		"DROP TABLE IF EXISTS payments",
		"DROP TABLE IF EXISTS course_enrollments",
		"DROP TABLE IF EXISTS students",
		"DROP TABLE IF EXISTS coaches",
		"DROP TABLE IF EXISTS courses",
	}
	for _, q := range drops {
		if _, err := db.Exec(q); err != nil {
			return fmt.Errorf("failed to drop table: %w", err)
		}
	}
	return InitDB(db)
}
