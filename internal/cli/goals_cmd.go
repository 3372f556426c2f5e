package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newGoalsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Manage study goals",
	}
	cmd.AddCommand(newGoalsAddCmd(app), newGoalsListCmd(app))
	return cmd
}

func newGoalsAddCmd(app *App) *cobra.Command {
	var title string
	var target, days int
	var start dateValue

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a goal of minutes to study within a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			uid, err := app.userID()
			if err != nil {
				return err
			}
			if days < 1 {
				return fmt.Errorf("--days must be at least 1")
			}
			from := start.or(app.today())
			g, err := app.Store.CreateGoal(uid, title, target, from, from.AddDays(days-1))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added goal %q: %s by %s (#%d)\n", g.Title, formatHM(g.TargetMinutes), g.EndDate, g.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Goal title")
	cmd.Flags().IntVar(&target, "target", 0, "Target minutes")
	cmd.Flags().IntVar(&days, "days", 7, "Length of the goal in days")
	cmd.Flags().Var(&start, "start", "First day (YYYY-MM-DD), defaults to today")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}

func newGoalsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List goals with progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			uid, err := app.userID()
			if err != nil {
				return err
			}
			if _, err := app.Analytics.RefreshGoals(uid, app.today()); err != nil {
				return err
			}
			goals, err := app.Store.ListGoalProgress(uid)
			if err != nil {
				return err
			}
			if len(goals) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No goals yet. Add one with `studytrackr goals add`.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tGOAL\tPROGRESS\tWINDOW\tSTATUS")
			for _, g := range goals {
				fmt.Fprintf(tw, "%d\t%s\t%s / %s (%d%%)\t%s → %s\t%s\n",
					g.ID, g.Title, formatHM(g.Minutes), formatHM(g.TargetMinutes), g.Percent(),
					g.StartDate, g.EndDate, g.Status)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			app.syncAchievements(cmd, uid)
			return nil
		},
	}
}
