package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/sadopc/studytrackr/internal/achievement"
	"github.com/sadopc/studytrackr/internal/analytics"
	"github.com/sadopc/studytrackr/internal/auth"
	"github.com/sadopc/studytrackr/internal/cli"
	"github.com/sadopc/studytrackr/internal/config"
	"github.com/sadopc/studytrackr/internal/logging"
	"github.com/sadopc/studytrackr/internal/store"
	"github.com/sadopc/studytrackr/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath, err := config.DefaultPath()
	if err != nil {
		return err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer logger.Sync()

	s, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer s.Close()
	logger.Debug("database opened", zap.String("path", cfg.Database.Path))

	tokens, err := auth.DefaultTokenFile()
	if err != nil {
		return err
	}

	app := &cli.App{
		Config:       cfg,
		Store:        s,
		Auth:         auth.NewProvider(s, logger),
		Session:      auth.NewSession(),
		Tokens:       tokens,
		Analytics:    analytics.NewService(s, logger, cfg.Streak.WindowDays),
		Achievements: achievement.NewSyncer(s, logger),
		Logger:       logger,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}
	app.RunTUI = func() error {
		model := tui.NewApp(tui.Deps{
			Store:        app.Store,
			Auth:         app.Auth,
			Session:      app.Session,
			Tokens:       app.Tokens,
			Analytics:    app.Analytics,
			Achievements: app.Achievements,
			Logger:       logger,
			WeekStart:    cfg.WeekStart(),
		})
		_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
		return err
	}

	return cli.NewRootCmd(app).Execute()
}
