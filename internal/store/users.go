package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

func (s *Store) CreateUser(email, passwordHash, displayName string) (*User, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO users (email, password_hash, display_name, created_at) VALUES (?, ?, ?, ?)`,
		email, passwordHash, displayName, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetUser(id)
}

func (s *Store) GetUser(id int64) (*User, error) {
	return s.scanUser(s.db.QueryRow(
		`SELECT id, email, password_hash, display_name, created_at FROM users WHERE id = ?`, id,
	))
}

func (s *Store) GetUserByEmail(email string) (*User, error) {
	return s.scanUser(s.db.QueryRow(
		`SELECT id, email, password_hash, display_name, created_at FROM users WHERE email = ?`, email,
	))
}

func (s *Store) scanUser(row *sql.Row) (*User, error) {
	u := &User{}
	var createdAt string
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return u, nil
}

func (s *Store) CreateAuthSession(token string, userID int64) (*AuthSession, error) {
	now := time.Now().UTC()
	_, err := s.db.Exec(
		`INSERT INTO auth_sessions (token, user_id, created_at) VALUES (?, ?, ?)`,
		token, userID, now.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("insert auth session: %w", err)
	}
	return s.GetAuthSession(token)
}

// GetAuthSession returns the session for token, revoked or not.
func (s *Store) GetAuthSession(token string) (*AuthSession, error) {
	a := &AuthSession{}
	var createdAt string
	var revokedAt sql.NullString
	err := s.db.QueryRow(
		`SELECT token, user_id, created_at, revoked_at FROM auth_sessions WHERE token = ?`, token,
	).Scan(&a.Token, &a.UserID, &createdAt, &revokedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get auth session: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get auth session: %w", err)
	}
	a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if revokedAt.Valid {
		t, _ := time.Parse(time.RFC3339, revokedAt.String)
		a.RevokedAt = &t
	}
	return a, nil
}

func (s *Store) RevokeAuthSession(token string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE auth_sessions SET revoked_at = ? WHERE token = ? AND revoked_at IS NULL`, now, token,
	)
	if err != nil {
		return fmt.Errorf("revoke auth session: %w", err)
	}
	return nil
}
