package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sadopc/studytrackr/internal/export"
	"github.com/sadopc/studytrackr/internal/store"
)

func newExportCmd(app *App) *cobra.Command {
	format := newEnum("csv", "csv", "json", "contributions")
	var out string
	var from, to dateValue

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export study sessions or the contribution graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			uid, err := app.userID()
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create export file: %w", err)
				}
				defer f.Close()
				w = f
			}

			if format.String() == "contributions" {
				res, err := app.Analytics.Contributions(uid, app.today())
				if err != nil {
					return err
				}
				return export.ContributionsCSV(w, res.Series, app.Analytics.Levels())
			}

			filter := store.SessionFilter{}
			if !from.date.IsZero() {
				filter.From = &from.date
			}
			if !to.date.IsZero() {
				filter.To = &to.date
			}
			sessions, err := app.Store.ListSessions(uid, filter)
			if err != nil {
				return err
			}
			subs, err := app.Store.ListSubjects(uid, true)
			if err != nil {
				return err
			}
			byID := make(map[int64]*store.Subject, len(subs))
			for i := range subs {
				byID[subs[i].ID] = &subs[i]
			}

			if format.String() == "json" {
				err = export.WriteSessionsJSON(w, sessions, byID)
			} else {
				err = export.WriteSessionsCSV(w, sessions, byID)
			}
			if err != nil {
				return err
			}
			if out != "" && out != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d sessions to %s\n", len(sessions), out)
			}
			return nil
		},
	}
	cmd.Flags().VarP(format, "format", "f", "Output format: csv, json or contributions")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	cmd.Flags().Var(&from, "from", "First study date to include")
	cmd.Flags().Var(&to, "to", "Last study date to include")
	return cmd
}
