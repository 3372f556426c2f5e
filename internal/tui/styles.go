package tui

import "github.com/charmbracelet/lipgloss"

// Palette. Greens follow the contribution calendar.
var (
	colorPrimary   = lipgloss.Color("#58A6FF")
	colorFocus     = lipgloss.Color("#3FB950")
	colorBreak     = lipgloss.Color("#D29922")
	colorDanger    = lipgloss.Color("#F85149")
	colorStreak    = lipgloss.Color("#FF7B72")
	colorText      = lipgloss.Color("#C9D1D9")
	colorDim       = lipgloss.Color("#8B949E")
	colorSubtle    = lipgloss.Color("#30363D")
	colorHighlight = lipgloss.Color("#A5D6FF")
)

func fg(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

func boxed(border lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 2)
}

func clockFace(c lipgloss.Color) lipgloss.Style {
	return fg(c).Bold(true).Align(lipgloss.Center)
}

var (
	activeTabStyle = fg(colorPrimary).Bold(true).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorPrimary).
			Padding(0, 2)
	inactiveTabStyle = fg(colorDim).Padding(0, 2)

	panelStyle       = boxed(colorSubtle)
	activePanelStyle = boxed(colorPrimary)

	timerStyle        = clockFace(colorPrimary)
	timerRunningStyle = clockFace(colorFocus)
	timerPausedStyle  = clockFace(colorBreak)

	titleStyle     = fg(colorText).Bold(true)
	subtitleStyle  = fg(colorDim)
	accentStyle    = fg(colorStreak)
	successStyle   = fg(colorFocus)
	warningStyle   = fg(colorBreak)
	errorStyle     = fg(colorDanger)
	mutedStyle     = fg(colorDim)
	highlightStyle = fg(colorHighlight)

	headerStyle = lipgloss.NewStyle().Padding(0, 1)
	footerStyle = fg(colorDim).Padding(0, 1)

	selectedItemStyle = fg(colorPrimary).Bold(true)
	normalItemStyle   = fg(colorText)
	lockedItemStyle   = fg(colorSubtle)
)

// levelColors maps a calendar band token to its cell colour.
var levelColors = map[string]lipgloss.Color{
	"none":   lipgloss.Color("#161B22"),
	"low":    lipgloss.Color("#0E4429"),
	"medium": lipgloss.Color("#006D32"),
	"high":   lipgloss.Color("#26A641"),
	"max":    lipgloss.Color("#39D353"),
}

func levelStyle(token string) lipgloss.Style {
	c, ok := levelColors[token]
	if !ok {
		c = colorSubtle
	}
	return fg(c)
}
