package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sadopc/studytrackr/internal/streak"
)

func (s *Store) CreateGoal(userID int64, title string, targetMinutes int, start, end streak.Date) (*Goal, error) {
	if targetMinutes <= 0 {
		return nil, fmt.Errorf("create goal: target must be positive, got %d", targetMinutes)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("create goal: end %s is before start %s", end, start)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO goals (user_id, title, target_minutes, start_date, end_date, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		userID, title, targetMinutes, start.String(), end.String(), GoalInProgress, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert goal: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetGoal(userID, id)
}

func (s *Store) GetGoal(userID, id int64) (*Goal, error) {
	g := &Goal{}
	var start, end, createdAt string
	err := s.db.QueryRow(
		`SELECT id, user_id, title, target_minutes, start_date, end_date, status, created_at
		 FROM goals WHERE id = ? AND user_id = ?`, id, userID,
	).Scan(&g.ID, &g.UserID, &g.Title, &g.TargetMinutes, &start, &end, &g.Status, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get goal %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get goal %d: %w", id, err)
	}
	g.StartDate, _ = streak.ParseDate(start)
	g.EndDate, _ = streak.ParseDate(end)
	g.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return g, nil
}

// ListGoalProgress returns every goal, newest first, with the finished
// minutes logged between its start and end dates.
func (s *Store) ListGoalProgress(userID int64) ([]GoalProgress, error) {
	rows, err := s.db.Query(`
		SELECT g.id, g.user_id, g.title, g.target_minutes, g.start_date, g.end_date, g.status, g.created_at,
		       COALESCE((
		           SELECT SUM(ss.minutes) FROM study_sessions ss
		           WHERE ss.user_id = g.user_id AND ss.end_time IS NOT NULL
		             AND ss.study_date >= g.start_date AND ss.study_date <= g.end_date
		       ), 0)
		FROM goals g
		WHERE g.user_id = ?
		ORDER BY g.created_at DESC, g.id DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var goals []GoalProgress
	for rows.Next() {
		var gp GoalProgress
		var start, end, createdAt string
		if err := rows.Scan(&gp.ID, &gp.UserID, &gp.Title, &gp.TargetMinutes, &start, &end,
			&gp.Status, &createdAt, &gp.Minutes); err != nil {
			return nil, err
		}
		gp.StartDate, _ = streak.ParseDate(start)
		gp.EndDate, _ = streak.ParseDate(end)
		gp.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		goals = append(goals, gp)
	}
	return goals, rows.Err()
}

func (s *Store) SetGoalStatus(userID, id int64, status string) error {
	_, err := s.db.Exec(`UPDATE goals SET status = ? WHERE id = ? AND user_id = ?`, status, id, userID)
	if err != nil {
		return fmt.Errorf("set goal status: %w", err)
	}
	return nil
}

func (s *Store) DeleteGoal(userID, id int64) error {
	_, err := s.db.Exec(`DELETE FROM goals WHERE id = ? AND user_id = ?`, id, userID)
	return err
}

func (s *Store) CountGoals(userID int64, status string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM goals WHERE user_id = ? AND status = ?`, userID, status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count goals: %w", err)
	}
	return n, nil
}
