package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sadopc/studytrackr/internal/streak"
)

const sessionColumns = `id, user_id, subject_id, study_date, start_time, end_time, minutes, source, notes, created_at`

// StartSession opens a timer-driven session. The study date is the local
// calendar day the session starts on.
func (s *Store) StartSession(userID int64, subjectID *int64) (*StudySession, error) {
	now := time.Now()
	nowStr := now.UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO study_sessions (user_id, subject_id, study_date, start_time, source, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		userID, nullableID(subjectID), streak.DateOf(now).String(), nowStr, SourceTimer, nowStr,
	)
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetSession(userID, id)
}

// StopSession closes a running session and records its whole minutes, less
// the time it spent paused.
func (s *Store) StopSession(userID, id int64, paused time.Duration) (*StudySession, error) {
	now := time.Now().UTC()

	var startStr string
	err := s.db.QueryRow(
		`SELECT start_time FROM study_sessions WHERE id = ? AND user_id = ?`, id, userID,
	).Scan(&startStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get session start: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get session start: %w", err)
	}
	start, _ := time.Parse(time.RFC3339, startStr)
	minutes := max(0, int((now.Sub(start) - paused).Minutes()))

	_, err = s.db.Exec(
		`UPDATE study_sessions SET end_time = ?, minutes = ? WHERE id = ? AND user_id = ?`,
		now.Format(time.RFC3339), minutes, id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("stop session: %w", err)
	}
	return s.GetSession(userID, id)
}

// LogSession records a finished session of the given length on date.
func (s *Store) LogSession(userID int64, subjectID *int64, date streak.Date, minutes int, source, notes string) (*StudySession, error) {
	if minutes < 0 {
		return nil, fmt.Errorf("log session: negative minutes %d", minutes)
	}
	now := time.Now()
	start := now.Add(-time.Duration(minutes) * time.Minute)
	if !streak.DateOf(now).Equal(date) {
		start = date.In(time.Local).Add(12 * time.Hour)
	}
	end := start.Add(time.Duration(minutes) * time.Minute)

	res, err := s.db.Exec(
		`INSERT INTO study_sessions (user_id, subject_id, study_date, start_time, end_time, minutes, source, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, nullableID(subjectID), date.String(),
		start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339),
		minutes, source, notes, now.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("log session: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetSession(userID, id)
}

func (s *Store) GetSession(userID, id int64) (*StudySession, error) {
	row := s.db.QueryRow(
		`SELECT `+sessionColumns+` FROM study_sessions WHERE id = ? AND user_id = ?`, id, userID,
	)
	ss, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get session %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get session %d: %w", id, err)
	}
	return ss, nil
}

// GetRunningSession returns the open session, or nil if none is running.
func (s *Store) GetRunningSession(userID int64) (*StudySession, error) {
	row := s.db.QueryRow(
		`SELECT `+sessionColumns+` FROM study_sessions
		 WHERE user_id = ? AND end_time IS NULL ORDER BY id DESC LIMIT 1`, userID,
	)
	ss, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get running session: %w", err)
	}
	return ss, nil
}

func (s *Store) UpdateSessionNotes(userID, id int64, notes string) error {
	_, err := s.db.Exec(`UPDATE study_sessions SET notes = ? WHERE id = ? AND user_id = ?`, notes, id, userID)
	return err
}

func (s *Store) DeleteSession(userID, id int64) error {
	res, err := s.db.Exec(`DELETE FROM study_sessions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete session %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete session %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *Store) ListSessions(userID int64, f SessionFilter) ([]StudySession, error) {
	query := `SELECT ` + sessionColumns + ` FROM study_sessions WHERE user_id = ?`
	args := []any{userID}

	if f.SubjectID != nil {
		query += ` AND subject_id = ?`
		args = append(args, *f.SubjectID)
	}
	if f.From != nil {
		query += ` AND study_date >= ?`
		args = append(args, f.From.String())
	}
	if f.To != nil {
		query += ` AND study_date <= ?`
		args = append(args, f.To.String())
	}
	query += ` ORDER BY start_time DESC, id DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []StudySession
	for rows.Next() {
		ss, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *ss)
	}
	return sessions, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(r rowScanner) (*StudySession, error) {
	ss := &StudySession{}
	var studyDate, startTime, createdAt string
	var endTime sql.NullString
	var subjectID sql.NullInt64
	if err := r.Scan(&ss.ID, &ss.UserID, &subjectID, &studyDate, &startTime, &endTime,
		&ss.Minutes, &ss.Source, &ss.Notes, &createdAt); err != nil {
		return nil, err
	}
	ss.SubjectID = scanNullID(subjectID)
	ss.StudyDate, _ = streak.ParseDate(studyDate)
	ss.StartTime, _ = time.Parse(time.RFC3339, startTime)
	if endTime.Valid {
		t, _ := time.Parse(time.RFC3339, endTime.String)
		ss.EndTime = &t
	}
	ss.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return ss, nil
}
