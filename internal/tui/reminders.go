package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/daybook/internal/app"
	"github.com/sadopc/daybook/internal/store"
)

const upcomingLimit = 5

type remindersModel struct {
	ctrl   *app.Controller
	width  int
	height int

	reminders []store.Reminder
	upcoming  []store.Reminder
	missed    map[int64]bool
	cursor    int

	formActive bool
	form       *huh.Form

	formTitle *string
	formDate  *string
	formTime  *string
	formDesc  *string
}

func newRemindersModel(c *app.Controller) remindersModel {
	var title, date, clock, desc string
	m := remindersModel{
		ctrl:      c,
		formTitle: &title,
		formDate:  &date,
		formTime:  &clock,
		formDesc:  &desc,
	}
	m.refresh()
	return m
}

func (m *remindersModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *remindersModel) refresh() {
	st := m.ctrl.State()
	m.reminders = st.Reminders.All()
	m.upcoming = st.Reminders.Upcoming(upcomingLimit)
	m.missed = map[int64]bool{}
	for _, r := range m.ctrl.MissedReminders() {
		m.missed[r.ID] = true
	}
	m.cursor = clampCursor(m.cursor, len(m.reminders))
}

func (m remindersModel) update(msg tea.Msg) (remindersModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if m.cursor < len(m.reminders)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keys.New):
		return m.showForm()
	case key.Matches(keyMsg, keys.Delete):
		if len(m.reminders) > 0 && m.ctrl.DeleteReminder(m.reminders[m.cursor].ID) {
			m.refresh()
			return m, statusCmd(app.Notice{Text: "Reminder deleted"})
		}
	}
	return m, nil
}

func (m remindersModel) showForm() (remindersModel, tea.Cmd) {
	soon := m.ctrl.Now().Add(15 * time.Minute)
	*m.formTitle = ""
	*m.formDate = soon.Format(store.DateLayout)
	*m.formTime = soon.Format(store.ClockLayout)
	*m.formDesc = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(m.formTitle).Validate(required("title")),
			huh.NewInput().Title("Date (YYYY-MM-DD)").Value(m.formDate).Validate(layoutValidator(store.DateLayout, "YYYY-MM-DD")),
			huh.NewInput().Title("Time (HH:MM)").Value(m.formTime).Validate(layoutValidator(store.ClockLayout, "HH:MM")),
			huh.NewText().Title("Description").Value(m.formDesc),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m remindersModel) updateForm(msg tea.Msg) (remindersModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		m.form = nil
		return m, m.submit()
	}
	return m, cmd
}

func (m *remindersModel) submit() tea.Cmd {
	datetime := strings.TrimSpace(*m.formDate) + "T" + strings.TrimSpace(*m.formTime)
	_, notice := m.ctrl.AddReminder(*m.formTitle, datetime, strings.TrimSpace(*m.formDesc))
	m.refresh()
	return statusCmd(notice)
}

func (m remindersModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Reminder")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	var panels []string
	if m.ctrl.AlarmPlaying() {
		banner := errorStyle.Bold(true).Render("🔔 Reminder alarm is ringing. Press a to stop it.")
		panels = append(panels, activePanelStyle.BorderForeground(colorError).Width(w).Render(banner))
	}
	panels = append(panels, m.renderUpcoming(w), m.renderList(w))
	return lipgloss.JoinVertical(lipgloss.Left, panels...)
}

func (m remindersModel) renderUpcoming(w int) string {
	title := titleStyle.Render("Upcoming")
	var pending []string
	for _, r := range m.upcoming {
		if m.missed[r.ID] {
			continue
		}
		pending = append(pending, fmt.Sprintf("  %s  %s", highlightStyle.Render(formatDatetime(r.Datetime)), r.Title))
	}
	if len(pending) == 0 {
		pending = []string{mutedStyle.Render("Nothing scheduled")}
	}
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, append([]string{title}, pending...)...))
}

func (m remindersModel) renderList(w int) string {
	title := titleStyle.Render("All Reminders")
	if len(m.reminders) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No reminders. Press n to create one."),
		))
	}

	rows := []string{title, ""}
	for i, r := range m.reminders {
		prefix, render := cursorPrefix(i == m.cursor)
		status := mutedStyle.Render("pending")
		switch {
		case r.Notified:
			status = successStyle.Render("notified")
		case m.missed[r.ID]:
			status = warningStyle.Render("missed")
		}
		rows = append(rows, render(fmt.Sprintf("%s%-17s %-28s", prefix, formatDatetime(r.Datetime), r.Title))+" "+status)
		if r.Description != "" && i == m.cursor {
			rows = append(rows, mutedStyle.Render("    "+r.Description))
		}
	}
	rows = append(rows, "", mutedStyle.Render("  n: new  d: delete  a: stop alarm"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// formatDatetime shows a stored reminder datetime without the T separator.
func formatDatetime(s string) string {
	return strings.Replace(s, "T", " ", 1)
}
