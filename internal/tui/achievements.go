package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/studytrackr/internal/achievement"
	"github.com/sadopc/studytrackr/internal/store"
)

type achievementsModel struct {
	env    *env
	width  int
	height int

	unlocked map[string]store.Achievement
}

func newAchievementsModel(e *env) achievementsModel {
	return achievementsModel{env: e}
}

func (m *achievementsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type achievementsDataMsg struct {
	unlocked []store.Achievement
	fresh    []achievement.Definition
	err      error
}

// refresh syncs before listing so anything earned offline shows at once.
func (m achievementsModel) refresh() tea.Cmd {
	e := m.env
	return func() tea.Msg {
		uid := e.userID()
		var msg achievementsDataMsg
		if res, err := e.Analytics.Contributions(uid, e.today()); err == nil {
			if stats, err := e.Achievements.Gather(uid, res.Summary); err == nil {
				msg.fresh, _ = e.Achievements.Sync(uid, stats)
			}
		}
		msg.unlocked, msg.err = e.Store.ListAchievements(uid)
		return msg
	}
}

func (m achievementsModel) update(msg tea.Msg) (achievementsModel, tea.Cmd) {
	if msg, ok := msg.(achievementsDataMsg); ok {
		if msg.err != nil {
			return m, errStatus("Load achievements", msg.err)
		}
		m.unlocked = make(map[string]store.Achievement, len(msg.unlocked))
		for _, a := range msg.unlocked {
			m.unlocked[a.Code] = a
		}
		if len(msg.fresh) > 0 {
			fresh := msg.fresh
			return m, func() tea.Msg { return achievementsUnlockedMsg{unlocked: fresh} }
		}
	}
	return m, nil
}

func (m achievementsModel) view() string {
	w := m.width - 4

	rows := []string{
		titleStyle.Render("Achievements") + mutedStyle.Render(fmt.Sprintf("  %d of %d unlocked", len(m.unlocked), len(achievement.Catalog))),
		"",
	}

	for _, kind := range achievement.Kinds() {
		var section []string
		for _, d := range achievement.Catalog {
			if d.Kind != kind {
				continue
			}
			if a, ok := m.unlocked[d.Code]; ok {
				section = append(section, fmt.Sprintf("  %s %s  %s  %s",
					d.Kind.Icon(),
					selectedItemStyle.Render(d.Title),
					normalItemStyle.Render(d.Description),
					mutedStyle.Render(a.UnlockedAt.Local().Format("Jan 02, 2006")),
				))
			} else {
				section = append(section, lockedItemStyle.Render(fmt.Sprintf("  🔒 %s  %s", d.Title, d.Description)))
			}
		}
		if len(section) == 0 {
			continue
		}
		rows = append(rows, subtitleStyle.Render(strings.ToUpper(kind.String())))
		rows = append(rows, section...)
		rows = append(rows, "")
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
