package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sadopc/studytrackr/internal/store"
	"github.com/sadopc/studytrackr/internal/streak"
)

func sampleData() ([]store.StudySession, map[int64]*store.Subject) {
	now := time.Now().UTC()
	end := now
	math := int64(1)
	gone := int64(9)
	day := streak.NewDate(2024, time.March, 4)

	sessions := []store.StudySession{
		{ID: 1, SubjectID: &math, StudyDate: day, StartTime: now.Add(-90 * time.Minute), EndTime: &end,
			Minutes: 90, Source: store.SourceTimer, Notes: "chapter 3"},
		{ID: 2, SubjectID: nil, StudyDate: day, StartTime: now.Add(-25 * time.Minute), EndTime: &end,
			Minutes: 25, Source: store.SourcePomodoro},
		{ID: 3, SubjectID: &gone, StudyDate: day, StartTime: now.Add(-5 * time.Minute),
			Source: store.SourceTimer},
	}
	subjects := map[int64]*store.Subject{
		1: {ID: 1, Name: "Math", Color: "#FF0000"},
	}
	return sessions, subjects
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	sessions, subjects := sampleData()
	path := filepath.Join(t.TempDir(), "sessions.csv")

	if err := ToCSV(sessions, subjects, path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 4 {
		t.Fatalf("expected 4 rows (header + 3), got %d", len(records))
	}
	if records[0][0] != "ID" || records[0][2] != "Subject" {
		t.Fatalf("unexpected header: %v", records[0])
	}

	first := records[1]
	if first[1] != "2024-03-04" || first[2] != "Math" || first[5] != "90" || first[6] != "01:30" || first[8] != "chapter 3" {
		t.Fatalf("unexpected first row: %v", first)
	}
	if records[2][2] != "Uncategorized" || records[2][7] != store.SourcePomodoro {
		t.Fatalf("unexpected second row: %v", records[2])
	}
	if records[3][2] != "Unknown" || records[3][4] != "" {
		t.Fatalf("running session with missing subject: %v", records[3])
	}
}

func TestToCSVBadPath(t *testing.T) {
	sessions, subjects := sampleData()
	if err := ToCSV(sessions, subjects, filepath.Join(t.TempDir(), "missing", "x.csv")); err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestContributionsCSV(t *testing.T) {
	today := streak.NewDate(2024, time.January, 3)
	res := streak.Aggregate([]streak.DaySample{
		{Date: today.AddDays(-1), TotalMinutes: 45},
		{Date: today, TotalMinutes: 300},
	}, 3, today)

	var buf bytes.Buffer
	if err := ContributionsCSV(&buf, res.Series, streak.DefaultLevels); err != nil {
		t.Fatal(err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{
		{"Date", "Minutes", "Level"},
		{"2024-01-01", "0", "0"},
		{"2024-01-02", "45", "1"},
		{"2024-01-03", "300", "4"},
	}
	if len(records) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(records))
	}
	for i := range want {
		for j := range want[i] {
			if records[i][j] != want[i][j] {
				t.Fatalf("row %d col %d: expected %q, got %q", i, j, want[i][j], records[i][j])
			}
		}
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	sessions, subjects := sampleData()
	path := filepath.Join(t.TempDir(), "sessions.json")

	if err := ToJSON(sessions, subjects, path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var got jsonExport
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Count != 3 || len(got.Sessions) != 3 {
		t.Fatalf("expected 3 sessions, got count=%d len=%d", got.Count, len(got.Sessions))
	}
	if got.Sessions[0].Subject != "Math" || got.Sessions[0].Duration != "01:30" {
		t.Fatalf("unexpected first session: %+v", got.Sessions[0])
	}
	if got.Sessions[1].SubjectID != nil || got.Sessions[1].Subject != "Uncategorized" {
		t.Fatalf("unexpected second session: %+v", got.Sessions[1])
	}
	if got.Sessions[2].EndTime != "" {
		t.Fatalf("running session should have no end time: %+v", got.Sessions[2])
	}
	if _, err := time.Parse(time.RFC3339, got.ExportedAt); err != nil {
		t.Fatalf("bad exported_at: %v", err)
	}
}

func TestWriteSessionsJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSessionsJSON(&buf, nil, nil); err != nil {
		t.Fatal(err)
	}
	var got jsonExport
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Count != 0 || got.Sessions == nil {
		t.Fatalf("expected empty non-nil sessions, got %+v", got)
	}
}
