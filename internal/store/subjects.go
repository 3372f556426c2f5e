package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

func (s *Store) CreateSubject(userID int64, name, color string) (*Subject, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO subjects (user_id, name, color, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		userID, name, color, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert subject: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetSubject(userID, id)
}

func (s *Store) GetSubject(userID, id int64) (*Subject, error) {
	sub := &Subject{}
	var createdAt, updatedAt string
	var archived int
	err := s.db.QueryRow(
		`SELECT id, user_id, name, color, archived, created_at, updated_at
		 FROM subjects WHERE id = ? AND user_id = ?`, id, userID,
	).Scan(&sub.ID, &sub.UserID, &sub.Name, &sub.Color, &archived, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get subject %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get subject %d: %w", id, err)
	}
	sub.Archived = archived == 1
	sub.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	sub.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return sub, nil
}

func (s *Store) ListSubjects(userID int64, includeArchived bool) ([]Subject, error) {
	query := `SELECT id, user_id, name, color, archived, created_at, updated_at FROM subjects WHERE user_id = ?`
	if !includeArchived {
		query += ` AND archived = 0`
	}
	query += ` ORDER BY name`

	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	defer rows.Close()

	var subjects []Subject
	for rows.Next() {
		var sub Subject
		var createdAt, updatedAt string
		var archived int
		if err := rows.Scan(&sub.ID, &sub.UserID, &sub.Name, &sub.Color, &archived, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		sub.Archived = archived == 1
		sub.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		sub.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		subjects = append(subjects, sub)
	}
	return subjects, rows.Err()
}

// FindSubject looks a subject up by name, case-insensitively.
func (s *Store) FindSubject(userID int64, name string) (*Subject, error) {
	var id int64
	err := s.db.QueryRow(
		`SELECT id FROM subjects WHERE user_id = ? AND name = ? COLLATE NOCASE`, userID, name,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find subject %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find subject %q: %w", name, err)
	}
	return s.GetSubject(userID, id)
}

func (s *Store) UpdateSubject(userID, id int64, name, color string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE subjects SET name = ?, color = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		name, color, now, id, userID,
	)
	return err
}

func (s *Store) ArchiveSubject(userID, id int64) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE subjects SET archived = 1, updated_at = ? WHERE id = ? AND user_id = ?`, now, id, userID,
	)
	return err
}
