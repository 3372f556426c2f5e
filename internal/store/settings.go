package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// DefaultSettings apply to any user who has not saved a value.
var DefaultSettings = map[string]string{
	"pomodoro_focus": "1500",
	"pomodoro_break": "300",
	"daily_goal":     "120",
}

// GetSetting returns the user's value for key, or the default when the user
// has not saved one. A key with neither wraps ErrNotFound.
func (s *Store) GetSetting(userID int64, key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE user_id = ? AND key = ?`, userID, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		if def, ok := DefaultSettings[key]; ok {
			return def, nil
		}
		return "", fmt.Errorf("get setting %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(userID int64, key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (user_id, key, value) VALUES (?, ?, ?)
		 ON CONFLICT(user_id, key) DO UPDATE SET value = excluded.value`,
		userID, key, value,
	)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

// GetAllSettings lists the user's saved values merged over the defaults,
// ordered by key.
func (s *Store) GetAllSettings(userID int64) ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	merged := make(map[string]string, len(DefaultSettings))
	for k, v := range DefaultSettings {
		merged[k] = v
	}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		merged[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	settings := make([]Setting, 0, len(merged))
	for k, v := range merged {
		settings = append(settings, Setting{Key: k, Value: v})
	}
	sort.Slice(settings, func(i, j int) bool { return settings[i].Key < settings[j].Key })
	return settings, nil
}

// GetIntSetting reads an integer setting, returning fallback when the key is
// missing or not a number.
func (s *Store) GetIntSetting(userID int64, key string, fallback int) int {
	v, err := s.GetSetting(userID, key)
	if err != nil {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
