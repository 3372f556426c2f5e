package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/sadopc/studytrackr/internal/store"
	"github.com/sadopc/studytrackr/internal/streak"
)

// ToCSV writes study sessions to a CSV file at path.
func ToCSV(sessions []store.StudySession, subjects map[int64]*store.Subject, path string) error {
	return toFile(path, func(w io.Writer) error { return WriteSessionsCSV(w, sessions, subjects) })
}

func WriteSessionsCSV(out io.Writer, sessions []store.StudySession, subjects map[int64]*store.Subject) error {
	w := csv.NewWriter(out)

	if err := w.Write([]string{"ID", "Date", "Subject", "Start", "End", "Minutes", "Duration", "Source", "Notes"}); err != nil {
		return err
	}
	for _, ss := range sessions {
		endStr := ""
		if ss.EndTime != nil {
			endStr = ss.EndTime.Local().Format(time.RFC3339)
		}
		row := []string{
			strconv.FormatInt(ss.ID, 10),
			ss.StudyDate.String(),
			subjectName(ss.SubjectID, subjects),
			ss.StartTime.Local().Format(time.RFC3339),
			endStr,
			strconv.Itoa(ss.Minutes),
			formatMinutes(ss.Minutes),
			ss.Source,
			ss.Notes,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ContributionsCSV writes one row per day of the dense series with its
// intensity level.
func ContributionsCSV(out io.Writer, series streak.Series, levels streak.Levels) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"Date", "Minutes", "Level"}); err != nil {
		return err
	}
	for _, d := range series {
		row := []string{d.Date.String(), strconv.Itoa(d.TotalMinutes), strconv.Itoa(levels.Level(d.TotalMinutes))}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func toFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func subjectName(id *int64, subjects map[int64]*store.Subject) string {
	if id == nil {
		return "Uncategorized"
	}
	if s, ok := subjects[*id]; ok {
		return s.Name
	}
	return "Unknown"
}

func formatMinutes(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}
