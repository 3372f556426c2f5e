// Package cli wires the studytrackr commands. Every command reads the
// signed-in user from App.Session, restored from the token file on first use.
package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sadopc/studytrackr/internal/achievement"
	"github.com/sadopc/studytrackr/internal/analytics"
	"github.com/sadopc/studytrackr/internal/auth"
	"github.com/sadopc/studytrackr/internal/config"
	"github.com/sadopc/studytrackr/internal/store"
	"github.com/sadopc/studytrackr/internal/streak"
)

// App holds everything the commands need.
type App struct {
	Config       *config.Config
	Store        *store.Store
	Auth         *auth.Provider
	Session      *auth.Session
	Tokens       auth.TokenFile
	Analytics    *analytics.Service
	Achievements *achievement.Syncer
	Logger       *zap.Logger

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
	// RunTUI starts the full-screen interface.
	RunTUI func() error
	// Now defaults to time.Now.
	Now func() time.Time
	// TickInterval is the pomodoro tick period, one second unless set.
	TickInterval time.Duration
}

// NewRootCmd creates the top-level "studytrackr" command.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "studytrackr",
		Short:         "Track study time, streaks and pomodoros",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() && app.RunTUI != nil {
				if err := app.RestoreSession(); err != nil {
					return err
				}
				return app.RunTUI()
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newRegisterCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newLogCmd(app),
		newStreakCmd(app),
		newGoalsCmd(app),
		newAchievementsCmd(app),
		newExportCmd(app),
		newPomodoroCmd(app),
	)
	return root
}

// RestoreSession resumes the saved token once. A stale or revoked token is
// cleared and leaves the session signed out.
func (a *App) RestoreSession() error {
	if a.Session.State() != auth.StateInit {
		return nil
	}
	tok, err := a.Tokens.Load()
	if err != nil || tok == "" {
		return err
	}
	err = a.Auth.Resume(a.Session, tok)
	if errors.Is(err, auth.ErrNotSignedIn) || errors.Is(err, auth.ErrSessionRevoked) {
		a.Logger.Debug("discarding saved session", zap.Error(err))
		return a.Tokens.Clear()
	}
	return err
}

func (a *App) userID() (int64, error) {
	if err := a.RestoreSession(); err != nil {
		return 0, err
	}
	id, err := a.Session.UserID()
	if err != nil {
		return 0, fmt.Errorf("%w: run `studytrackr login` first", err)
	}
	return id, nil
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) today() streak.Date {
	return streak.DateOf(a.now())
}

// weekStart prefers the signed-in user's week_start setting saved from the
// TUI and falls back to the config file.
func (a *App) weekStart() time.Weekday {
	uid, err := a.Session.UserID()
	if err != nil {
		return a.Config.WeekStart()
	}
	if v, err := a.Store.GetSetting(uid, "week_start"); err == nil {
		if wd, err := config.ParseWeekStart(v); err == nil {
			return wd
		}
	}
	return a.Config.WeekStart()
}

// syncAchievements unlocks anything newly earned and prints it.
func (a *App) syncAchievements(cmd *cobra.Command, userID int64) {
	res, err := a.Analytics.Contributions(userID, a.today())
	if err != nil {
		return
	}
	stats, err := a.Achievements.Gather(userID, res.Summary)
	if err != nil {
		a.Logger.Warn("gather achievement stats", zap.Error(err))
		return
	}
	unlocked, err := a.Achievements.Sync(userID, stats)
	if err != nil {
		a.Logger.Warn("sync achievements", zap.Error(err))
	}
	for _, d := range unlocked {
		fmt.Fprintf(cmd.OutOrStdout(), "%s Achievement unlocked: %s\n", d.Kind.Icon(), d.Title)
	}
}
