package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sadopc/studytrackr/internal/streak"
)

const taskColumns = `id, user_id, subject_id, title, description, due_date, priority, status, created_at, updated_at`

func (s *Store) CreateTask(userID int64, subjectID *int64, title, description string, due *streak.Date, priority int) (*Task, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	var dueStr any
	if due != nil {
		dueStr = due.String()
	}
	res, err := s.db.Exec(
		`INSERT INTO tasks (user_id, subject_id, title, description, due_date, priority, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, nullableID(subjectID), title, description, dueStr, priority, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetTask(userID, id)
}

func (s *Store) GetTask(userID, id int64) (*Task, error) {
	t, err := scanTask(s.db.QueryRow(
		`SELECT `+taskColumns+` FROM tasks WHERE id = ? AND user_id = ?`, id, userID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get task %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	return t, nil
}

// ListUpcomingTasks returns pending tasks, soonest due first; tasks without
// a due date come last.
func (s *Store) ListUpcomingTasks(userID int64, limit int) ([]Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE user_id = ? AND status = ?
		ORDER BY due_date IS NULL, due_date, priority, id`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, limit)
	}

	rows, err := s.db.Query(query, userID, TaskPending)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (s *Store) CompleteTask(userID, id int64) error {
	return s.setTaskStatus(userID, id, TaskCompleted)
}

func (s *Store) ReopenTask(userID, id int64) error {
	return s.setTaskStatus(userID, id, TaskPending)
}

func (s *Store) setTaskStatus(userID, id int64, status string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`UPDATE tasks SET status = ?, updated_at = ? WHERE id = ? AND user_id = ?`, status, now, id, userID,
	)
	if err != nil {
		return fmt.Errorf("update task %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update task %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteTask(userID, id int64) error {
	_, err := s.db.Exec(`DELETE FROM tasks WHERE id = ? AND user_id = ?`, id, userID)
	return err
}

func scanTask(r rowScanner) (*Task, error) {
	t := &Task{}
	var subjectID sql.NullInt64
	var due sql.NullString
	var createdAt, updatedAt string
	if err := r.Scan(&t.ID, &t.UserID, &subjectID, &t.Title, &t.Description, &due,
		&t.Priority, &t.Status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	t.SubjectID = scanNullID(subjectID)
	if due.Valid {
		if d, err := streak.ParseDate(due.String); err == nil {
			t.DueDate = &d
		}
	}
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return t, nil
}
