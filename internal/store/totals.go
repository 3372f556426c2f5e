package store

import (
	"database/sql"
	"fmt"

	"github.com/sadopc/studytrackr/internal/streak"
)

// DailyTotals returns one sample per day with logged study time on or after
// since, ascending by date. Running sessions are not counted.
func (s *Store) DailyTotals(userID int64, since streak.Date) ([]streak.DaySample, error) {
	rows, err := s.db.Query(`
		SELECT study_date, COALESCE(SUM(minutes), 0)
		FROM study_sessions
		WHERE user_id = ? AND end_time IS NOT NULL AND study_date >= ?
		GROUP BY study_date
		ORDER BY study_date`,
		userID, since.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("daily totals: %w", err)
	}
	defer rows.Close()

	var samples []streak.DaySample
	for rows.Next() {
		var day string
		var minutes int
		if err := rows.Scan(&day, &minutes); err != nil {
			return nil, err
		}
		d, err := streak.ParseDate(day)
		if err != nil {
			return nil, fmt.Errorf("daily totals: %w", err)
		}
		samples = append(samples, streak.DaySample{Date: d, TotalMinutes: minutes})
	}
	return samples, rows.Err()
}

// DailySubjectSummary groups finished sessions in [from, to] by day and subject.
func (s *Store) DailySubjectSummary(userID int64, from, to streak.Date) ([]DailySummary, error) {
	rows, err := s.db.Query(`
		SELECT ss.study_date, ss.subject_id,
		       COALESCE(sub.name, 'Uncategorized'), COALESCE(sub.color, '#6B7280'),
		       COALESCE(SUM(ss.minutes), 0), COUNT(*)
		FROM study_sessions ss
		LEFT JOIN subjects sub ON sub.id = ss.subject_id
		WHERE ss.user_id = ? AND ss.end_time IS NOT NULL
		  AND ss.study_date >= ? AND ss.study_date <= ?
		GROUP BY ss.study_date, ss.subject_id
		ORDER BY ss.study_date, 3`,
		userID, from.String(), to.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("daily subject summary: %w", err)
	}
	defer rows.Close()

	var summaries []DailySummary
	for rows.Next() {
		var ds DailySummary
		var subjectID sql.NullInt64
		if err := rows.Scan(&ds.Date, &subjectID, &ds.SubjectName, &ds.SubjectColor, &ds.Minutes, &ds.SessionCount); err != nil {
			return nil, err
		}
		ds.SubjectID = scanNullID(subjectID)
		summaries = append(summaries, ds)
	}
	return summaries, rows.Err()
}

// SubjectTotals returns all-time minutes per subject, largest first.
func (s *Store) SubjectTotals(userID int64) ([]SubjectTotal, error) {
	rows, err := s.db.Query(`
		SELECT ss.subject_id,
		       COALESCE(sub.name, 'Uncategorized'), COALESCE(sub.color, '#6B7280'),
		       COALESCE(SUM(ss.minutes), 0), COUNT(*)
		FROM study_sessions ss
		LEFT JOIN subjects sub ON sub.id = ss.subject_id
		WHERE ss.user_id = ? AND ss.end_time IS NOT NULL
		GROUP BY ss.subject_id
		ORDER BY 4 DESC, 2`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("subject totals: %w", err)
	}
	defer rows.Close()

	var totals []SubjectTotal
	for rows.Next() {
		var st SubjectTotal
		var subjectID sql.NullInt64
		if err := rows.Scan(&subjectID, &st.SubjectName, &st.SubjectColor, &st.Minutes, &st.SessionCount); err != nil {
			return nil, err
		}
		st.SubjectID = scanNullID(subjectID)
		totals = append(totals, st)
	}
	return totals, rows.Err()
}

// TodayTotal returns the minutes finished on day.
func (s *Store) TodayTotal(userID int64, day streak.Date) (int, error) {
	var total int
	err := s.db.QueryRow(`
		SELECT COALESCE(SUM(minutes), 0)
		FROM study_sessions
		WHERE user_id = ? AND study_date = ? AND end_time IS NOT NULL`,
		userID, day.String(),
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("today total: %w", err)
	}
	return total, nil
}

// SessionStats counts finished sessions and their total minutes.
func (s *Store) SessionStats(userID int64) (count, minutes int, err error) {
	err = s.db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(minutes), 0)
		FROM study_sessions
		WHERE user_id = ? AND end_time IS NOT NULL`, userID,
	).Scan(&count, &minutes)
	if err != nil {
		err = fmt.Errorf("session stats: %w", err)
	}
	return
}
