package store

import (
	"fmt"
	"time"
)

// UnlockAchievement records an achievement once. It reports whether the row
// was new.
func (s *Store) UnlockAchievement(userID int64, code, kind, title, description string) (bool, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT OR IGNORE INTO achievements (user_id, code, kind, title, description, unlocked_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		userID, code, kind, title, description, now,
	)
	if err != nil {
		return false, fmt.Errorf("unlock achievement %q: %w", code, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// ListAchievements returns unlocked achievements, most recent first.
func (s *Store) ListAchievements(userID int64) ([]Achievement, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, code, kind, title, description, unlocked_at
		 FROM achievements WHERE user_id = ? ORDER BY unlocked_at DESC, id DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	defer rows.Close()

	var out []Achievement
	for rows.Next() {
		var a Achievement
		var unlockedAt string
		if err := rows.Scan(&a.ID, &a.UserID, &a.Code, &a.Kind, &a.Title, &a.Description, &unlockedAt); err != nil {
			return nil, err
		}
		a.UnlockedAt, _ = time.Parse(time.RFC3339, unlockedAt)
		out = append(out, a)
	}
	return out, rows.Err()
}
