package tui

import "github.com/charmbracelet/lipgloss"

type palette struct {
	primary   lipgloss.Color
	secondary lipgloss.Color
	accent    lipgloss.Color
	muted     lipgloss.Color
	success   lipgloss.Color
	warning   lipgloss.Color
	error     lipgloss.Color
	fg        lipgloss.Color
	subtle    lipgloss.Color
	highlight lipgloss.Color
}

var (
	darkPalette = palette{
		primary:   lipgloss.Color("#6C63FF"),
		secondary: lipgloss.Color("#2EC4B6"),
		accent:    lipgloss.Color("#FF6B6B"),
		muted:     lipgloss.Color("#666666"),
		success:   lipgloss.Color("#2ECC71"),
		warning:   lipgloss.Color("#F39C12"),
		error:     lipgloss.Color("#E74C3C"),
		fg:        lipgloss.Color("#C0CAF5"),
		subtle:    lipgloss.Color("#414868"),
		highlight: lipgloss.Color("#7AA2F7"),
	}
	lightPalette = palette{
		primary:   lipgloss.Color("#4B44C9"),
		secondary: lipgloss.Color("#168A80"),
		accent:    lipgloss.Color("#C0392B"),
		muted:     lipgloss.Color("#8A8A8A"),
		success:   lipgloss.Color("#1E8449"),
		warning:   lipgloss.Color("#B9770E"),
		error:     lipgloss.Color("#C0392B"),
		fg:        lipgloss.Color("#1A1B26"),
		subtle:    lipgloss.Color("#C8CCD8"),
		highlight: lipgloss.Color("#2E5CB8"),
	}
)

// Color palette
var (
	colorPrimary   lipgloss.Color
	colorSecondary lipgloss.Color
	colorAccent    lipgloss.Color
	colorMuted     lipgloss.Color
	colorSuccess   lipgloss.Color
	colorWarning   lipgloss.Color
	colorError     lipgloss.Color
	colorFg        lipgloss.Color
	colorSubtle    lipgloss.Color
	colorHighlight lipgloss.Color
)

// Styles
var (
	activeTabStyle   lipgloss.Style
	inactiveTabStyle lipgloss.Style

	panelStyle       lipgloss.Style
	activePanelStyle lipgloss.Style

	timerStyle        lipgloss.Style
	timerRunningStyle lipgloss.Style
	timerPausedStyle  lipgloss.Style

	titleStyle     lipgloss.Style
	subtitleStyle  lipgloss.Style
	accentStyle    lipgloss.Style
	successStyle   lipgloss.Style
	warningStyle   lipgloss.Style
	errorStyle     lipgloss.Style
	mutedStyle     lipgloss.Style
	highlightStyle lipgloss.Style

	headerStyle lipgloss.Style
	footerStyle lipgloss.Style

	selectedItemStyle lipgloss.Style
	normalItemStyle   lipgloss.Style

	// Calendar cells
	dayStyle         lipgloss.Style
	todayStyle       lipgloss.Style
	selectedDayStyle lipgloss.Style
	markedDayStyle   lipgloss.Style
)

func init() {
	applyTheme(true)
}

// applyTheme rebuilds every style from the dark or light palette.
func applyTheme(dark bool) {
	p := lightPalette
	if dark {
		p = darkPalette
	}
	colorPrimary = p.primary
	colorSecondary = p.secondary
	colorAccent = p.accent
	colorMuted = p.muted
	colorSuccess = p.success
	colorWarning = p.warning
	colorError = p.error
	colorFg = p.fg
	colorSubtle = p.subtle
	colorHighlight = p.highlight

	activeTabStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorPrimary).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(colorPrimary).
		Padding(0, 2)
	inactiveTabStyle = lipgloss.NewStyle().
		Foreground(colorMuted).
		Padding(0, 2)

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorSubtle).
		Padding(1, 2)
	activePanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Padding(1, 2)

	timerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorPrimary).
		Align(lipgloss.Center)
	timerRunningStyle = timerStyle.Foreground(colorSuccess)
	timerPausedStyle = timerStyle.Foreground(colorWarning)

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorFg)
	subtitleStyle = lipgloss.NewStyle().Foreground(colorMuted)
	accentStyle = lipgloss.NewStyle().Foreground(colorAccent)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	errorStyle = lipgloss.NewStyle().Foreground(colorError)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	highlightStyle = lipgloss.NewStyle().Foreground(colorHighlight)

	headerStyle = lipgloss.NewStyle().Padding(0, 1)
	footerStyle = lipgloss.NewStyle().
		Foreground(colorMuted).
		Padding(0, 1)

	selectedItemStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)
	normalItemStyle = lipgloss.NewStyle().Foreground(colorFg)

	dayStyle = lipgloss.NewStyle().Width(4).Align(lipgloss.Right).Foreground(colorFg)
	todayStyle = dayStyle.Bold(true).Foreground(colorSecondary)
	selectedDayStyle = dayStyle.Bold(true).Reverse(true).Foreground(colorPrimary)
	markedDayStyle = dayStyle.Foreground(colorHighlight).Underline(true)
}

// activityTypeStyle colors an activity by category.
func activityTypeStyle(typ string) lipgloss.Style {
	switch typ {
	case "work":
		return successStyle
	case "meeting":
		return highlightStyle
	case "break", "lunch":
		return warningStyle
	}
	return mutedStyle
}
