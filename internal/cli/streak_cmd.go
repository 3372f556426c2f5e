package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sadopc/studytrackr/internal/streak"
)

// levelGlyphs draws calendar intensity in plain text, one glyph per band.
var levelGlyphs = []string{"·", "░", "▒", "▓", "█"}

func newStreakCmd(app *App) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "streak",
		Short: "Show your study streak and contribution graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			uid, err := app.userID()
			if err != nil {
				return err
			}
			if days < 0 {
				return fmt.Errorf("--days must not be negative")
			}
			if days == 0 {
				days = app.Analytics.Window()
			}

			today := app.today()
			res, err := app.Analytics.ContributionsWindow(uid, days, today)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: could not load study history: %v\n", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Current streak: %d days\n", res.Summary.CurrentStreak)
			fmt.Fprintf(out, "Longest streak: %d days\n", res.Summary.LongestStreak)
			fmt.Fprintf(out, "Total: %s over %d active days\n\n", formatHM(res.Summary.TotalMinutes), res.Series.ActiveDays())
			renderGraph(out, res.Series, app.Analytics.Levels(), app.weekStart())
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "Window length in days (default from config)")
	return cmd
}

// renderGraph prints the calendar with weeks as columns and weekdays as rows.
func renderGraph(out io.Writer, series streak.Series, levels streak.Levels, weekStart time.Weekday) {
	weeks := series.Weeks(weekStart)
	for row := 0; row < 7; row++ {
		var b strings.Builder
		b.WriteString(time.Weekday((int(weekStart)+row)%7).String()[:3])
		b.WriteString(" ")
		for _, week := range weeks {
			if row >= len(week) || week[row].Pad {
				b.WriteString(" ")
				continue
			}
			b.WriteString(glyph(levels.Level(week[row].TotalMinutes)))
		}
		fmt.Fprintln(out, strings.TrimRight(b.String(), " "))
	}
	var legend strings.Builder
	legend.WriteString("\nLess ")
	for i := range levels {
		legend.WriteString(glyph(i))
	}
	legend.WriteString(" More")
	fmt.Fprintln(out, legend.String())
}

func glyph(level int) string {
	if level >= len(levelGlyphs) {
		level = len(levelGlyphs) - 1
	}
	return levelGlyphs[level]
}

func formatHM(mins int) string {
	return fmt.Sprintf("%dh %02dm", mins/60, mins%60)
}
