package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/sadopc/studytrackr/internal/store"
)

type jsonExport struct {
	ExportedAt string        `json:"exported_at"`
	Count      int           `json:"count"`
	Sessions   []jsonSession `json:"sessions"`
}

type jsonSession struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	Subject   string `json:"subject"`
	SubjectID *int64 `json:"subject_id,omitempty"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time,omitempty"`
	Minutes   int    `json:"minutes"`
	Duration  string `json:"duration"`
	Source    string `json:"source"`
	Notes     string `json:"notes,omitempty"`
}

// ToJSON writes study sessions to a JSON file at path.
func ToJSON(sessions []store.StudySession, subjects map[int64]*store.Subject, path string) error {
	return toFile(path, func(w io.Writer) error { return WriteSessionsJSON(w, sessions, subjects) })
}

func WriteSessionsJSON(out io.Writer, sessions []store.StudySession, subjects map[int64]*store.Subject) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(sessions),
		Sessions:   []jsonSession{},
	}

	for _, ss := range sessions {
		endStr := ""
		if ss.EndTime != nil {
			endStr = ss.EndTime.Local().Format(time.RFC3339)
		}
		export.Sessions = append(export.Sessions, jsonSession{
			ID:        ss.ID,
			Date:      ss.StudyDate.String(),
			Subject:   subjectName(ss.SubjectID, subjects),
			SubjectID: ss.SubjectID,
			StartTime: ss.StartTime.Local().Format(time.RFC3339),
			EndTime:   endStr,
			Minutes:   ss.Minutes,
			Duration:  formatMinutes(ss.Minutes),
			Source:    ss.Source,
			Notes:     ss.Notes,
		})
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(export); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
