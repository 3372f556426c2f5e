package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sadopc/studytrackr/internal/achievement"
)

func newAchievementsCmd(app *App) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "achievements",
		Short: "List unlocked achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			uid, err := app.userID()
			if err != nil {
				return err
			}
			app.syncAchievements(cmd, uid)

			list, err := app.Store.ListAchievements(uid)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			unlocked := make(map[string]bool, len(list))
			for _, a := range list {
				unlocked[a.Code] = true
				kind, err := achievement.ParseKind(a.Kind)
				icon := kind.Icon()
				if err != nil {
					icon = achievement.Kind(-1).Icon()
				}
				fmt.Fprintf(out, "%s %-16s %s  (%s)\n", icon, a.Title, a.Description, a.UnlockedAt.Local().Format("2006-01-02"))
			}
			if len(list) == 0 {
				fmt.Fprintln(out, "No achievements yet. Keep studying!")
			}
			if all {
				for _, d := range achievement.Catalog {
					if !unlocked[d.Code] {
						fmt.Fprintf(out, "  %-16s %s  (locked)\n", d.Title, d.Description)
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Also show locked achievements")
	return cmd
}
