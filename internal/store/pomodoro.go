package store

import (
	"fmt"
	"time"
)

// RecordPomodoro stores one finished phase of the pomodoro clock.
func (s *Store) RecordPomodoro(userID int64, phase string, durationSecs int) (*PomodoroSession, error) {
	now := time.Now().UTC()
	res, err := s.db.Exec(
		`INSERT INTO pomodoro_sessions (user_id, phase, duration, completed_at) VALUES (?, ?, ?, ?)`,
		userID, phase, durationSecs, now.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("record pomodoro: %w", err)
	}
	id, _ := res.LastInsertId()
	return &PomodoroSession{ID: id, UserID: userID, Phase: phase, Duration: durationSecs, CompletedAt: now.Truncate(time.Second)}, nil
}

// PomodoroStats counts finished phases of the given kind in [from, to) and
// their total seconds.
func (s *Store) PomodoroStats(userID int64, phase string, from, to time.Time) (completed int, totalSecs int64, err error) {
	err = s.db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(duration), 0)
		FROM pomodoro_sessions
		WHERE user_id = ? AND phase = ?
		  AND completed_at >= ? AND completed_at < ?`,
		userID, phase, from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339),
	).Scan(&completed, &totalSecs)
	if err != nil {
		err = fmt.Errorf("pomodoro stats: %w", err)
	}
	return
}

// CountPomodoros counts every finished phase of the given kind.
func (s *Store) CountPomodoros(userID int64, phase string) (int, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM pomodoro_sessions WHERE user_id = ? AND phase = ?`, userID, phase,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count pomodoros: %w", err)
	}
	return n, nil
}
