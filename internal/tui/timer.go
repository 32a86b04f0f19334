package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/daybook/internal/app"
	"github.com/sadopc/daybook/internal/export"
	"github.com/sadopc/daybook/internal/store"
	"github.com/sadopc/daybook/internal/timer"
)

type timerModel struct {
	ctrl   *app.Controller
	width  int
	height int

	projects     []string
	workMinutes  int64
	sessionCount int
	sessions     []store.Session

	// Project picker state
	picking      bool
	pickerCursor int
}

func newTimerModel(c *app.Controller) timerModel {
	m := timerModel{ctrl: c}
	m.refresh()
	return m
}

func (m *timerModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *timerModel) refresh() {
	m.projects = m.ctrl.ProjectNames()
	m.workMinutes = m.ctrl.TodayWorkMinutes()
	m.sessionCount = m.ctrl.TodaySessionCount()
	m.sessions = m.ctrl.TodaySessions()
	m.pickerCursor = clampCursor(m.pickerCursor, len(m.projects))
}

func (m timerModel) update(msg tea.Msg) (timerModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.picking {
		return m.updatePicker(keyMsg)
	}

	t := m.ctrl.Timer()
	switch {
	case key.Matches(keyMsg, keys.Start):
		if t.Running() {
			return m, nil
		}
		if t.Project() == "" {
			return m.openPicker()
		}
		return m, statusCmd(m.ctrl.StartTimer())

	case key.Matches(keyMsg, keys.Pause):
		return m, statusCmd(m.ctrl.ToggleTimer())

	case key.Matches(keyMsg, keys.Reset):
		n := m.ctrl.ResetTimer()
		m.refresh()
		return m, statusCmd(n)

	case key.Matches(keyMsg, keys.Pick):
		return m.openPicker()
	}
	return m, nil
}

func (m timerModel) openPicker() (timerModel, tea.Cmd) {
	if len(m.projects) == 0 {
		return m, warningCmd("No projects yet. Press 4 to go to Records and create one.")
	}
	if len(m.projects) == 1 {
		m.ctrl.SelectProject(m.projects[0])
		return m, statusCmd(m.ctrl.StartTimer())
	}
	m.picking = true
	m.pickerCursor = 0
	for i, p := range m.projects {
		if p == m.ctrl.Timer().Project() {
			m.pickerCursor = i
		}
	}
	return m, nil
}

func (m timerModel) updatePicker(msg tea.KeyMsg) (timerModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.pickerCursor > 0 {
			m.pickerCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.pickerCursor < len(m.projects)-1 {
			m.pickerCursor++
		}
	case key.Matches(msg, keys.Enter):
		m.picking = false
		m.ctrl.SelectProject(m.projects[m.pickerCursor])
		if m.ctrl.Timer().Running() {
			return m, nil
		}
		return m, statusCmd(m.ctrl.StartTimer())
	case key.Matches(msg, keys.Back):
		m.picking = false
	}
	return m, nil
}

func (m timerModel) view() string {
	if m.width < 20 {
		return "Terminal too small"
	}
	w := m.width - 4

	bottom := m.renderSessions(w)
	if m.picking {
		bottom = m.renderProjectPicker(w)
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderTimerPanel(w), m.renderTodayPanel(w), bottom)
}

func (m timerModel) renderTimerPanel(w int) string {
	t := m.ctrl.Timer()
	timeStr := timer.Format(t.Elapsed())

	project := t.Project()
	projectLine := mutedStyle.Render("No project selected (p to pick)")
	if project != "" {
		projectLine = highlightStyle.Render(project)
	}

	switch t.State() {
	case timer.Running:
		content := lipgloss.JoinVertical(lipgloss.Center,
			timerRunningStyle.Width(w-6).Render(timeStr),
			successStyle.Render("●  RUNNING"),
			projectLine,
		)
		return activePanelStyle.Width(w).Render(content)
	case timer.Paused:
		content := lipgloss.JoinVertical(lipgloss.Center,
			timerPausedStyle.Width(w-6).Render(timeStr),
			warningStyle.Render("⏸  PAUSED"),
			projectLine,
			mutedStyle.Render("space: resume  x: save session"),
		)
		return activePanelStyle.Width(w).Render(content)
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		timerStyle.Width(w-6).Render(timeStr),
		mutedStyle.Render("■  STOPPED"),
		projectLine,
		mutedStyle.Render("Press s to start tracking"),
	)
	return panelStyle.Width(w).Render(content)
}

func (m timerModel) renderTodayPanel(w int) string {
	title := titleStyle.Render("Today")
	work := highlightStyle.Render(formatMinutes(m.workMinutes))
	count := mutedStyle.Render(fmt.Sprintf("%d sessions", m.sessionCount))
	return panelStyle.Width(w).Render(fmt.Sprintf("%s  %s worked  %s", title, work, count))
}

func (m timerModel) renderSessions(w int) string {
	title := titleStyle.Render("Today's Sessions")
	if len(m.sessions) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No sessions yet"),
		)
		return panelStyle.Width(w).Render(content)
	}

	rows := []string{title}
	loc := m.ctrl.Now().Location()
	for i := len(m.sessions) - 1; i >= 0; i-- {
		s := m.sessions[i]
		rows = append(rows, fmt.Sprintf("  ✓ %s  %-18s %s  %s",
			s.Date.In(loc).Format(store.ClockLayout),
			s.Project,
			timer.Format(s.Duration),
			mutedStyle.Render(export.TypeLabel(s.Type)),
		))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m timerModel) renderProjectPicker(w int) string {
	rows := []string{titleStyle.Render("Select Project")}
	for i, p := range m.projects {
		prefix, render := cursorPrefix(i == m.pickerCursor)
		rows = append(rows, render(prefix+p))
	}
	rows = append(rows, "", mutedStyle.Render("  enter: select  esc: cancel"))
	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
