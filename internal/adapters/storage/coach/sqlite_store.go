package coach

import (
	"context"
	"database/sql"

	"clubdesk/internal/adapters/storage"
	domain "clubdesk/internal/domain/coach"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Create inserts a coach and returns its assigned id.
func (s *SQLiteStore) Create(ctx context.Context, c domain.Coach) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO coaches (first_name, last_name, phone) VALUES (?, ?, ?)`,
		c.FirstName, c.LastName, c.Phone,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

func (s *SQLiteStore) Update(ctx context.Context, c domain.Coach) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE coaches SET first_name=?, last_name=?, phone=? WHERE id=?`,
		c.FirstName, c.LastName, c.Phone, c.ID,
	)
	return err
}

func (s *SQLiteStore) GetByID(ctx context.Context, id int) (domain.Coach, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, phone FROM coaches WHERE id = ?`, id)
	var c domain.Coach
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Phone)
	return c, err
}

func (s *SQLiteStore) List(ctx context.Context) ([]domain.Coach, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, first_name, last_name, phone FROM coaches ORDER BY first_name ASC, last_name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCoaches(rows)
}

func (s *SQLiteStore) Delete(ctx context.Context, id int) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM coaches WHERE id = ?`, id)
	return err
}

func scanCoaches(rows *sql.Rows) ([]domain.Coach, error) {
	var coaches []domain.Coach
	for rows.Next() {
		var c domain.Coach
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Phone); err != nil {
			return nil, err
		}
		coaches = append(coaches, c)
	}
	return coaches, rows.Err()
}
