package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/studytrackr/internal/store"
)

const defaultSubjectColor = "#6366F1"

func newLogCmd(app *App) *cobra.Command {
	var minutes int
	var subject, note string
	var date dateValue

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a finished study session",
		RunE: func(cmd *cobra.Command, args []string) error {
			uid, err := app.userID()
			if err != nil {
				return err
			}
			if minutes <= 0 {
				return fmt.Errorf("--minutes must be positive")
			}
			subjectID, err := resolveSubject(app.Store, uid, subject)
			if err != nil {
				return err
			}
			day := date.or(app.today())
			if day.After(app.today()) {
				return fmt.Errorf("cannot log a session in the future (%s)", day)
			}

			ss, err := app.Store.LogSession(uid, subjectID, day, minutes, store.SourceManual, note)
			if err != nil {
				return err
			}
			label := "Uncategorized"
			if subjectID != nil {
				label = strings.TrimSpace(subject)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %d min of %s on %s (#%d)\n", ss.Minutes, label, ss.StudyDate, ss.ID)
			app.syncAchievements(cmd, uid)
			return nil
		},
	}

	cmd.Flags().IntVar(&minutes, "minutes", 0, "Session length in minutes")
	cmd.Flags().StringVar(&subject, "subject", "", "Subject name, created if missing")
	cmd.Flags().StringVar(&note, "note", "", "Session note")
	cmd.Flags().Var(&date, "date", "Study date (YYYY-MM-DD), defaults to today")
	_ = cmd.MarkFlagRequired("minutes")
	return cmd
}

// resolveSubject finds a subject by name, creating it when missing. An empty
// name means no subject.
func resolveSubject(st *store.Store, userID int64, name string) (*int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	sub, err := st.FindSubject(userID, name)
	if errors.Is(err, store.ErrNotFound) {
		sub, err = st.CreateSubject(userID, name, defaultSubjectColor)
	}
	if err != nil {
		return nil, err
	}
	return &sub.ID, nil
}
