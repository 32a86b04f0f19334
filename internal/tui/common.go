package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/daybook/internal/app"
	"github.com/sadopc/daybook/internal/calendar"
)

// viewState represents the currently active view.
type viewState int

const (
	viewCalendar viewState = iota
	viewTimer
	viewReminders
	viewRecords
	viewStats
	viewSettings
)

var viewNames = []string{"Calendar", "Timer", "Reminders", "Records", "Stats", "Settings"}

// --- Messages ---

// dispatchMsg carries a job from a scheduled task onto the update loop.
type dispatchMsg struct {
	job app.Job
}

type statusMsg struct {
	notice app.Notice
}

func statusCmd(n app.Notice) tea.Cmd {
	if n.Empty() {
		return nil
	}
	return func() tea.Msg { return statusMsg{notice: n} }
}

func warningCmd(text string) tea.Cmd {
	return statusCmd(app.Notice{Text: text, Level: app.LevelWarning})
}

// --- Helpers ---

func formatHours(minutes int) string {
	return fmt.Sprintf("%.1fh", calendar.Hours(minutes))
}

func formatMinutes(minutes int64) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// addMonths moves t by n months, clamping the day to the target month.
func addMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, n, 0)
	last := first.AddDate(0, 1, -1).Day()
	return first.AddDate(0, 0, min(t.Day(), last)-1)
}

func clampCursor(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	return max(cursor, 0)
}

func expandHome(path string) string {
	path = strings.TrimSpace(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func layoutValidator(layout, hint string) func(string) error {
	return func(s string) error {
		if _, err := time.Parse(layout, strings.TrimSpace(s)); err != nil {
			return fmt.Errorf("use %s", hint)
		}
		return nil
	}
}

func cursorPrefix(selected bool) (string, func(...string) string) {
	if selected {
		return "> ", selectedItemStyle.Render
	}
	return "  ", normalItemStyle.Render
}
