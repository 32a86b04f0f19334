package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/daybook/internal/app"
	"github.com/sadopc/daybook/internal/store"
)

type recordKind int

const (
	recordProjects recordKind = iota
	recordClients
	recordTasks
	recordNotes
)

var recordNames = []string{"Projects", "Clients", "Tasks", "Notes"}

type recordsModel struct {
	ctrl   *app.Controller
	width  int
	height int

	kind   recordKind
	cursor int

	projects []store.Project
	clients  []store.Client
	tasks    []store.Task
	notes    []store.Note

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies). Fields are reused across
	// record kinds: a is the name or title, b the description or content.
	formA       *string
	formB       *string
	formEmail   *string
	formPhone   *string
	formCompany *string
	formProject *string
}

func newRecordsModel(c *app.Controller) recordsModel {
	var a, b, email, phone, company, project string
	m := recordsModel{
		ctrl:        c,
		formA:       &a,
		formB:       &b,
		formEmail:   &email,
		formPhone:   &phone,
		formCompany: &company,
		formProject: &project,
	}
	m.refresh()
	return m
}

func (m *recordsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *recordsModel) refresh() {
	st := m.ctrl.State()
	m.projects = st.Projects
	m.clients = st.Clients
	m.tasks = st.Tasks
	m.notes = st.Notes
	m.cursor = clampCursor(m.cursor, m.count())
}

func (m recordsModel) count() int {
	switch m.kind {
	case recordProjects:
		return len(m.projects)
	case recordClients:
		return len(m.clients)
	case recordTasks:
		return len(m.tasks)
	case recordNotes:
		return len(m.notes)
	}
	return 0
}

func (m recordsModel) update(msg tea.Msg) (recordsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, keys.Left):
		m.kind = (m.kind + recordKind(len(recordNames)) - 1) % recordKind(len(recordNames))
		m.cursor = 0
	case key.Matches(keyMsg, keys.Right):
		m.kind = (m.kind + 1) % recordKind(len(recordNames))
		m.cursor = 0
	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if m.cursor < m.count()-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keys.Enter):
		if m.kind == recordTasks && len(m.tasks) > 0 {
			m.ctrl.ToggleTask(m.tasks[m.cursor].ID)
			m.refresh()
		}
	case key.Matches(keyMsg, keys.New):
		return m.showForm()
	case key.Matches(keyMsg, keys.Delete):
		if m.count() > 0 && m.deleteSelected() {
			m.refresh()
			return m, statusCmd(app.Notice{Text: strings.TrimSuffix(recordNames[m.kind], "s") + " deleted"})
		}
	}
	return m, nil
}

func (m recordsModel) deleteSelected() bool {
	switch m.kind {
	case recordProjects:
		return m.ctrl.DeleteProject(m.projects[m.cursor].ID)
	case recordClients:
		return m.ctrl.DeleteClient(m.clients[m.cursor].ID)
	case recordTasks:
		return m.ctrl.DeleteTask(m.tasks[m.cursor].ID)
	case recordNotes:
		return m.ctrl.DeleteNote(m.notes[m.cursor].ID)
	}
	return false
}

func (m recordsModel) showForm() (recordsModel, tea.Cmd) {
	*m.formA, *m.formB = "", ""
	*m.formEmail, *m.formPhone, *m.formCompany, *m.formProject = "", "", "", ""

	var group *huh.Group
	switch m.kind {
	case recordProjects:
		group = huh.NewGroup(
			huh.NewInput().Title("Project Name").Value(m.formA).Validate(required("name")),
			huh.NewInput().Title("Description").Value(m.formB),
		)
	case recordClients:
		group = huh.NewGroup(
			huh.NewInput().Title("Client Name").Value(m.formA).Validate(required("name")),
			huh.NewInput().Title("Email").Value(m.formEmail),
			huh.NewInput().Title("Phone").Value(m.formPhone),
			huh.NewInput().Title("Company").Value(m.formCompany),
		)
	case recordTasks:
		options := []huh.Option[string]{huh.NewOption("None", "")}
		for _, name := range m.ctrl.ProjectNames() {
			options = append(options, huh.NewOption(name, name))
		}
		group = huh.NewGroup(
			huh.NewInput().Title("Task Title").Value(m.formA).Validate(required("title")),
			huh.NewInput().Title("Description").Value(m.formB),
			huh.NewSelect[string]().Title("Project").Options(options...).Value(m.formProject),
		)
	case recordNotes:
		group = huh.NewGroup(
			huh.NewInput().Title("Note Title").Value(m.formA).Validate(required("title")),
			huh.NewText().Title("Content").Value(m.formB),
		)
	}

	m.form = huh.NewForm(group).WithShowHelp(true).WithShowErrors(true)
	m.formActive = true
	return m, m.form.Init()
}

func (m recordsModel) updateForm(msg tea.Msg) (recordsModel, tea.Cmd) {
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

func (m *recordsModel) submit() tea.Cmd {
	var notice app.Notice
	switch m.kind {
	case recordProjects:
		_, notice = m.ctrl.AddProject(*m.formA, strings.TrimSpace(*m.formB))
	case recordClients:
		_, notice = m.ctrl.AddClient(store.Client{
			Name:    *m.formA,
			Email:   strings.TrimSpace(*m.formEmail),
			Phone:   strings.TrimSpace(*m.formPhone),
			Company: strings.TrimSpace(*m.formCompany),
		})
	case recordTasks:
		_, notice = m.ctrl.AddTask(store.Task{
			Title:       *m.formA,
			Description: strings.TrimSpace(*m.formB),
			Project:     *m.formProject,
		})
	case recordNotes:
		_, notice = m.ctrl.AddNote(*m.formA, *m.formB)
	}
	m.refresh()
	return statusCmd(notice)
}

func (m recordsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New " + strings.TrimSuffix(recordNames[m.kind], "s"))
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	var tabs []string
	for i, name := range recordNames {
		if recordKind(i) == m.kind {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	rows := []string{lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...), ""}

	lines := m.renderRows()
	if len(lines) == 0 {
		lines = []string{mutedStyle.Render(fmt.Sprintf("No %s yet. Press n to add one.", strings.ToLower(recordNames[m.kind])))}
	}
	rows = append(rows, lines...)

	hint := "  ←/→: section  n: new  d: delete"
	if m.kind == recordTasks {
		hint += "  enter: toggle done"
	}
	rows = append(rows, "", mutedStyle.Render(hint))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m recordsModel) renderRows() []string {
	var rows []string
	switch m.kind {
	case recordProjects:
		for i, p := range m.projects {
			prefix, render := cursorPrefix(i == m.cursor)
			rows = append(rows, render(fmt.Sprintf("%s%-24s", prefix, p.Name))+mutedStyle.Render(p.Description))
		}
	case recordClients:
		for i, c := range m.clients {
			prefix, render := cursorPrefix(i == m.cursor)
			rows = append(rows, render(fmt.Sprintf("%s%-20s", prefix, c.Name))+
				mutedStyle.Render(fmt.Sprintf("%-26s %-14s %s", c.Email, c.Phone, c.Company)))
		}
	case recordTasks:
		for i, t := range m.tasks {
			prefix, render := cursorPrefix(i == m.cursor)
			check := "[ ]"
			if t.Completed {
				check = successStyle.Render("[✓]")
			}
			line := render(prefix) + check + " " + render(t.Title)
			if t.Project != "" {
				line += mutedStyle.Render(" [" + t.Project + "]")
			}
			rows = append(rows, line)
		}
	case recordNotes:
		for i, n := range m.notes {
			prefix, render := cursorPrefix(i == m.cursor)
			rows = append(rows, render(fmt.Sprintf("%s%-28s", prefix, n.Title))+
				mutedStyle.Render(n.CreatedAt.In(m.ctrl.Now().Location()).Format("Jan 2 2006 15:04")))
			if i == m.cursor && n.Content != "" {
				rows = append(rows, mutedStyle.Render("    "+strings.ReplaceAll(n.Content, "\n", "\n    ")))
			}
		}
	}
	return rows
}
