package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sadopc/studytrackr/internal/pomodoro"
	"github.com/sadopc/studytrackr/internal/store"
)

func newPomodoroCmd(app *App) *cobra.Command {
	var cycles, focusMins, breakMins int
	var subject string

	cmd := &cobra.Command{
		Use:   "pomodoro",
		Short: "Run focus/break cycles in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			uid, err := app.userID()
			if err != nil {
				return err
			}
			if cycles < 1 {
				return fmt.Errorf("--cycles must be at least 1")
			}
			subjectID, err := resolveSubject(app.Store, uid, subject)
			if err != nil {
				return err
			}

			focusSecs := focusMins * 60
			if focusSecs <= 0 {
				focusSecs = app.Store.GetIntSetting(uid, "pomodoro_focus", pomodoro.FocusDuration)
			}
			breakSecs := breakMins * 60
			if breakSecs <= 0 {
				breakSecs = app.Store.GetIntSetting(uid, "pomodoro_break", pomodoro.BreakDuration)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return app.runPomodoro(ctx, cmd, uid, subjectID, pomodoro.NewClock(focusSecs, breakSecs), cycles)
		},
	}
	cmd.Flags().IntVar(&cycles, "cycles", 1, "Number of focus+break cycles")
	cmd.Flags().IntVar(&focusMins, "focus", 0, "Focus minutes (default from settings)")
	cmd.Flags().IntVar(&breakMins, "break", 0, "Break minutes (default from settings)")
	cmd.Flags().StringVar(&subject, "subject", "", "Subject to log focus time against")
	return cmd
}

// runPomodoro drives the clock through the requested cycles, recording each
// finished phase and logging focus time as a study session.
func (a *App) runPomodoro(ctx context.Context, cmd *cobra.Command, userID int64, subjectID *int64, clock *pomodoro.Clock, cycles int) error {
	out := cmd.OutOrStdout()
	driver := pomodoro.NewDriver(clock).WithInterval(a.TickInterval)
	driver.OnTick = func(s pomodoro.State) {
		fmt.Fprintf(out, "\r%-5s %s", s.Phase, pomodoro.Format(s.Remaining))
	}

	for phases := 0; phases < cycles*2; phases++ {
		fmt.Fprintf(out, "%-5s %s", clock.Phase(), pomodoro.Format(clock.Remaining()))
		tr, err := driver.Run(ctx)
		fmt.Fprintln(out)
		if err != nil {
			fmt.Fprintln(out, "Stopped.")
			return nil
		}
		if _, err := a.Store.RecordPomodoro(userID, tr.From.Key(), tr.Completed); err != nil {
			a.Logger.Warn("record pomodoro", zap.Error(err))
		}
		if tr.From == pomodoro.Focus {
			mins := tr.Completed / 60
			if mins > 0 {
				if _, err := a.Store.LogSession(userID, subjectID, a.today(), mins, store.SourcePomodoro, ""); err != nil {
					return err
				}
			}
			fmt.Fprintf(out, "Focus block done (%d min). Take a break.\n", mins)
		} else {
			fmt.Fprintln(out, "Break over.")
		}
	}
	a.syncAchievements(cmd, userID)
	return nil
}
