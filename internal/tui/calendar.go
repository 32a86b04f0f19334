package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/daybook/internal/app"
	"github.com/sadopc/daybook/internal/calendar"
	"github.com/sadopc/daybook/internal/store"
)

var weekdayHeader = []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

type calendarModel struct {
	ctrl   *app.Controller
	width  int
	height int

	date      time.Time
	project   string
	query     textinput.Model
	searching bool
	listFocus bool
	cursor    int

	activities []store.Activity
	hidden     bool
	stats      calendar.DayStats
	week       []weekDay
	marked     map[string]bool

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formTitle   *string
	formType    *string
	formStart   *string
	formEnd     *string
	formProject *string
	formClient  *string
	formTask    *string
	formDesc    *string
}

func newCalendarModel(c *app.Controller) calendarModel {
	q := textinput.New()
	q.Placeholder = "title or description"
	q.Prompt = "/ "
	q.CharLimit = 64

	var title, typ, start, end, project, client, task, desc string
	m := calendarModel{
		ctrl:        c,
		date:        startOfDay(c.Now()),
		query:       q,
		formTitle:   &title,
		formType:    &typ,
		formStart:   &start,
		formEnd:     &end,
		formProject: &project,
		formClient:  &client,
		formTask:    &task,
		formDesc:    &desc,
	}
	m.refresh()
	return m
}

func (m *calendarModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m calendarModel) filter() calendar.Filter {
	return calendar.Filter{Query: m.query.Value(), Project: m.project}
}

// capturing reports whether every key belongs to this view.
func (m calendarModel) capturing() bool {
	return m.formActive || m.searching
}

func (m *calendarModel) refresh() {
	book := m.ctrl.State().Activities
	m.activities = book.ForDate(m.date, m.filter())
	m.hidden = len(m.activities) == 0 && book.HasActivities(m.date)
	m.stats = book.DayStats(m.date)
	m.marked = book.DatesWithActivities(m.date)
	m.week = m.week[:0:0]
	for _, d := range calendar.WeekDays(m.date) {
		m.week = append(m.week, weekDay{date: d, work: book.DayStats(d).Work})
	}
	m.cursor = clampCursor(m.cursor, len(m.activities))
	if len(m.activities) == 0 {
		m.listFocus = false
	}
}

func (m calendarModel) update(msg tea.Msg) (calendarModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}
	if m.searching {
		return m.updateSearch(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.listFocus {
		return m.updateList(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, keys.Left):
		m.date = m.date.AddDate(0, 0, -1)
	case key.Matches(keyMsg, keys.Right):
		m.date = m.date.AddDate(0, 0, 1)
	case key.Matches(keyMsg, keys.Up):
		m.date = m.date.AddDate(0, 0, -7)
	case key.Matches(keyMsg, keys.Down):
		m.date = m.date.AddDate(0, 0, 7)
	case key.Matches(keyMsg, keys.PrevMonth):
		m.date = addMonths(m.date, -1)
	case key.Matches(keyMsg, keys.NextMonth):
		m.date = addMonths(m.date, 1)
	case key.Matches(keyMsg, keys.Today):
		m.date = startOfDay(m.ctrl.Now())
	case key.Matches(keyMsg, keys.Search):
		m.searching = true
		return m, m.query.Focus()
	case key.Matches(keyMsg, keys.Filter):
		m.project = nextProject(m.ctrl.ProjectNames(), m.project)
	case key.Matches(keyMsg, keys.Back):
		m.query.SetValue("")
		m.project = ""
	case key.Matches(keyMsg, keys.Enter):
		if len(m.activities) > 0 {
			m.listFocus = true
		}
	case key.Matches(keyMsg, keys.New):
		return m.showForm()
	default:
		return m, nil
	}
	m.cursor = 0
	m.refresh()
	return m, nil
}

// nextProject cycles the filter through all projects and back to none.
func nextProject(names []string, current string) string {
	if current == "" {
		if len(names) == 0 {
			return ""
		}
		return names[0]
	}
	for i, n := range names {
		if n == current && i+1 < len(names) {
			return names[i+1]
		}
	}
	return ""
}

func (m calendarModel) updateSearch(msg tea.Msg) (calendarModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.searching = false
			m.query.SetValue("")
			m.query.Blur()
			m.refresh()
			return m, nil
		case "enter":
			m.searching = false
			m.query.Blur()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	m.refresh()
	return m, cmd
}

func (m calendarModel) updateList(msg tea.KeyMsg) (calendarModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back), key.Matches(msg, keys.Enter):
		m.listFocus = false
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.activities)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Delete):
		if len(m.activities) > 0 {
			a := m.activities[m.cursor]
			if m.ctrl.DeleteActivity(a.ID) {
				m.refresh()
				return m, statusCmd(app.Notice{Text: "Activity deleted"})
			}
		}
	case key.Matches(msg, keys.New):
		return m.showForm()
	}
	return m, nil
}

func (m calendarModel) showForm() (calendarModel, tea.Cmd) {
	*m.formTitle = ""
	*m.formType = store.ActivityWork
	*m.formStart = "09:00"
	*m.formEnd = "10:00"
	*m.formProject = m.project
	*m.formClient = ""
	*m.formTask = ""
	*m.formDesc = ""

	typeOptions := make([]huh.Option[string], len(store.ActivityTypes))
	for i, t := range store.ActivityTypes {
		typeOptions[i] = huh.NewOption(strings.ToUpper(t[:1])+t[1:], t)
	}
	projectOptions := []huh.Option[string]{huh.NewOption("None", "")}
	for _, name := range m.ctrl.ProjectNames() {
		projectOptions = append(projectOptions, huh.NewOption(name, name))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(m.formTitle).Validate(required("title")),
			huh.NewSelect[string]().Title("Type").Options(typeOptions...).Value(m.formType),
			huh.NewInput().Title("Start (HH:MM)").Value(m.formStart).Validate(layoutValidator(store.ClockLayout, "HH:MM")),
			huh.NewInput().Title("End (HH:MM)").Value(m.formEnd).Validate(layoutValidator(store.ClockLayout, "HH:MM")),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Project").Options(projectOptions...).Value(m.formProject),
			huh.NewInput().Title("Client").Value(m.formClient),
			huh.NewInput().Title("Task").Value(m.formTask),
			huh.NewText().Title("Description").Value(m.formDesc),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m calendarModel) updateForm(msg tea.Msg) (calendarModel, tea.Cmd) {
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

func (m *calendarModel) submit() tea.Cmd {
	_, notice := m.ctrl.AddActivity(store.Activity{
		Title:       *m.formTitle,
		Type:        *m.formType,
		StartTime:   strings.TrimSpace(*m.formStart),
		EndTime:     strings.TrimSpace(*m.formEnd),
		Project:     *m.formProject,
		Client:      strings.TrimSpace(*m.formClient),
		Task:        strings.TrimSpace(*m.formTask),
		Description: strings.TrimSpace(*m.formDesc),
	}, m.date)
	m.refresh()
	return statusCmd(notice)
}

func (m calendarModel) view() string {
	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Activity - " + m.date.Format("Mon, Jan 2 2006"))
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(m.width - 4).Render(content)
	}

	grid := m.renderMonth()
	gridWidth := lipgloss.Width(grid)
	if m.width-gridWidth-4 >= 44 {
		day := m.renderDay(m.width - gridWidth - 2)
		return lipgloss.JoinHorizontal(lipgloss.Top, grid, day)
	}
	return lipgloss.JoinVertical(lipgloss.Left, grid, m.renderDay(m.width))
}

func (m calendarModel) renderMonth() string {
	today := calendar.DateKey(m.ctrl.Now())
	selected := calendar.DateKey(m.date)

	title := titleStyle.Render(m.date.Format("January 2006"))

	var header []string
	for _, d := range weekdayHeader {
		header = append(header, dayStyle.Foreground(colorMuted).Render(d))
	}
	rows := []string{title, "", lipgloss.JoinHorizontal(lipgloss.Top, header...)}

	var week []string
	for _, d := range calendar.MonthGrid(m.date) {
		cell := dayStyle.Render("")
		if d != nil {
			k := calendar.DateKey(*d)
			style := dayStyle
			switch {
			case k == selected:
				style = selectedDayStyle
			case m.marked[k]:
				style = markedDayStyle
			case k == today:
				style = todayStyle
			}
			cell = style.Render(fmt.Sprint(d.Day()))
		}
		week = append(week, cell)
		if len(week) == 7 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, week...))
			week = nil
		}
	}
	if len(week) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, week...))
	}

	rows = append(rows, "", mutedStyle.Render("←→↑↓: day  </>: month  t: today"))
	return panelStyle.Render(strings.Join(rows, "\n"))
}

func (m calendarModel) renderDay(width int) string {
	style := panelStyle
	if m.listFocus {
		style = activePanelStyle
	}

	title := titleStyle.Render(m.date.Format("Monday, January 2 2006"))
	rows := []string{title, m.renderStats(), m.renderWeek(), ""}

	if m.searching || m.query.Value() != "" {
		rows = append(rows, m.query.View())
	}
	if m.project != "" {
		rows = append(rows, mutedStyle.Render("Project: ")+highlightStyle.Render(m.project))
	}

	switch {
	case m.hidden:
		rows = append(rows, mutedStyle.Render("No activities match the current filter."))
	case len(m.activities) == 0:
		rows = append(rows, mutedStyle.Render("No activities. Press n to add one."))
	}
	for i, a := range m.activities {
		prefix, render := cursorPrefix(m.listFocus && i == m.cursor)
		line := render(fmt.Sprintf("%s%s-%s %s", prefix, a.StartTime, a.EndTime, a.Title)) +
			" " + activityTypeStyle(a.Type).Render("["+a.Type+"]")
		if a.Client != "" {
			line += mutedStyle.Render(" " + a.Client)
		}
		rows = append(rows, line)
		if a.Description != "" {
			rows = append(rows, mutedStyle.Render("    "+a.Description))
		}
	}

	hint := "n: new  /: search  f: project  enter: select"
	if m.listFocus {
		hint = "↑↓: move  d: delete  esc: back"
	}
	rows = append(rows, "", mutedStyle.Render(hint))

	return style.Width(max(width-2, 20)).Render(strings.Join(rows, "\n"))
}

// weekDay is one column of the week strip under the day stats.
type weekDay struct {
	date time.Time
	work int
}

func (m calendarModel) renderWeek() string {
	cells := make([]string, 0, len(m.week))
	for _, d := range m.week {
		label := d.date.Format("Mon")[:2] + " " + formatHours(d.work)
		if d.date.Equal(startOfDay(m.date)) {
			cells = append(cells, highlightStyle.Render(label))
			continue
		}
		cells = append(cells, mutedStyle.Render(label))
	}
	return strings.Join(cells, "  ")
}

func (m calendarModel) renderStats() string {
	s := m.stats
	return fmt.Sprintf("%s %s  %s %s  %s %s  %s %s",
		mutedStyle.Render("Work"), successStyle.Render(formatHours(s.Work)),
		mutedStyle.Render("Meetings"), highlightStyle.Render(formatHours(s.Meeting)),
		mutedStyle.Render("Breaks"), warningStyle.Render(formatHours(s.Break)),
		mutedStyle.Render("Productivity"), accentStyle.Render(fmt.Sprintf("%d%%", s.Productivity())),
	)
}
