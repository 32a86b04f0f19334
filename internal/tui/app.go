package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/daybook/internal/app"
	"github.com/sadopc/daybook/internal/config"
	"github.com/sadopc/daybook/internal/notify"
	"github.com/sadopc/daybook/internal/timer"
)

var exportFormats = []string{
	"Day schedule (PDF)",
	"Today's sessions (Excel)",
	"Today's sessions (CSV)",
	"Full backup (JSON)",
}

// Deps are the collaborators the TUI drives. Only Controller is required.
type Deps struct {
	Controller *app.Controller
	Desktop    *notify.Desktop
	Config     *config.Config
	ConfigPath string
	Log        *slog.Logger
}

// App is the root Bubble Tea model.
type App struct {
	ctrl   *app.Controller
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	importing  bool
	importForm *huh.Form
	importPath *string

	permissionAsked bool

	calendar  calendarModel
	timer     timerModel
	reminders remindersModel
	records   recordsModel
	stats     statsModel
	settings  settingsModel

	help   help.Model
	status app.Notice
}

func NewApp(d Deps) App {
	h := help.New()
	h.ShowAll = false

	applyTheme(d.Controller.DarkMode())

	path := ""
	return App{
		ctrl:       d.Controller,
		activeView: viewCalendar,
		importPath: &path,
		calendar:   newCalendarModel(d.Controller),
		timer:      newTimerModel(d.Controller),
		reminders:  newRemindersModel(d.Controller),
		records:    newRecordsModel(d.Controller),
		stats:      newStatsModel(d.Controller),
		settings:   newSettingsModel(d),
		help:       h,
	}
}

// Dispatcher returns a dispatch function that runs jobs on p's update loop.
func Dispatcher(p *tea.Program) app.Dispatch {
	return func(job app.Job) {
		p.Send(dispatchMsg{job: job})
	}
}

func (a App) Init() tea.Cmd {
	return tea.SetWindowTitle("daybook")
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.calendar.setSize(a.width, contentHeight)
		a.timer.setSize(a.width, contentHeight)
		a.reminders.setSize(a.width, contentHeight)
		a.records.setSize(a.width, contentHeight)
		a.stats.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case dispatchMsg:
		for _, n := range msg.job() {
			if !n.Empty() {
				a.status = n
			}
		}
		a.refreshCurrentView()
		return a, nil

	case statusMsg:
		a.status = msg.notice
		return a, nil

	case tea.KeyMsg:
		permCmd := a.requestPermission()
		model, cmd := a.handleKey(msg)
		return model, tea.Batch(permCmd, cmd)
	}

	if a.importing {
		return a.updateImport(msg)
	}
	return a.updateActiveView(msg)
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.importing {
		return a.updateImport(msg)
	}
	if a.exportPicking {
		return a.updateExportPicker(msg)
	}

	// If a child view is capturing input (e.g. form), delegate first.
	if a.isFormActive() {
		return a.updateActiveView(msg)
	}

	switch {
	case key.Matches(msg, keys.Export):
		a.exportPicking = true
		a.exportCursor = 0
		return a, nil
	case key.Matches(msg, keys.Import):
		return a.showImport()
	case key.Matches(msg, keys.StopAlarm):
		if a.ctrl.AlarmPlaying() {
			a.ctrl.StopAlarm()
			a.status = app.Notice{Text: "Alarm stopped"}
		}
		return a, nil
	case key.Matches(msg, keys.Theme):
		applyTheme(a.ctrl.ToggleDarkMode())
		a.refreshCurrentView()
		return a, nil
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, keys.Help):
		a.showHelp = !a.showHelp
		a.help.ShowAll = a.showHelp
		return a, nil
	case key.Matches(msg, keys.Tab1):
		return a.switchView(viewCalendar)
	case key.Matches(msg, keys.Tab2):
		return a.switchView(viewTimer)
	case key.Matches(msg, keys.Tab3):
		return a.switchView(viewReminders)
	case key.Matches(msg, keys.Tab4):
		return a.switchView(viewRecords)
	case key.Matches(msg, keys.Tab5):
		return a.switchView(viewStats)
	case key.Matches(msg, keys.Tab6):
		return a.switchView(viewSettings)
	case key.Matches(msg, keys.Tab):
		return a.switchView((a.activeView + 1) % viewState(len(viewNames)))
	}
	return a.updateActiveView(msg)
}

// requestPermission asks for notification permission on the first key press
// and records the answer in the config file.
func (a *App) requestPermission() tea.Cmd {
	if a.permissionAsked || a.settings.desktop == nil {
		return nil
	}
	a.permissionAsked = true
	before := a.settings.desktop.Permission()
	after := a.settings.desktop.RequestPermission()
	if after != before && a.settings.cfg != nil {
		a.settings.cfg.Notifications = string(after)
		return a.settings.persist("")
	}
	return nil
}

func (a App) switchView(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	a.refreshCurrentView()
	return a, nil
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewCalendar:
		a.calendar, cmd = a.calendar.update(msg)
	case viewTimer:
		a.timer, cmd = a.timer.update(msg)
	case viewReminders:
		a.reminders, cmd = a.reminders.update(msg)
	case viewRecords:
		a.records, cmd = a.records.update(msg)
	case viewStats:
		a.stats, cmd = a.stats.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewCalendar:
		return a.calendar.capturing()
	case viewTimer:
		return a.timer.picking
	case viewReminders:
		return a.reminders.formActive
	case viewRecords:
		return a.records.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

// refreshCurrentView reloads the active view from controller state.
func (a *App) refreshCurrentView() {
	switch a.activeView {
	case viewCalendar:
		a.calendar.refresh()
	case viewTimer:
		a.timer.refresh()
	case viewReminders:
		a.reminders.refresh()
	case viewRecords:
		a.records.refresh()
	case viewStats:
		a.stats.refresh()
	}
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewCalendar:
		content = a.calendar.view()
	case viewTimer:
		content = a.timer.view()
	case viewReminders:
		content = a.reminders.view()
	case viewRecords:
		content = a.records.view()
	case viewStats:
		content = a.stats.view()
	case viewSettings:
		content = a.settings.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(a.height-headerHeight-footerHeight, 1)

	switch {
	case a.exportPicking:
		content = a.renderExportPicker()
	case a.importing && a.importForm != nil:
		content = a.renderImport()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("daybook")
	gap := max(a.width-lipgloss.Width(title)-lipgloss.Width(tabRow)-4, 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if !a.status.Empty() {
		style := successStyle
		switch a.status.Level {
		case app.LevelWarning:
			style = warningStyle
		case app.LevelAlarm:
			style = errorStyle.Bold(true)
		}
		status = style.Render(" " + a.status.Text)
	}

	alarm := ""
	if a.ctrl.AlarmPlaying() {
		alarm = errorStyle.Bold(true).Render(" 🔔 a: stop alarm")
	}

	// Timer indicator in footer
	timerInfo := ""
	t := a.ctrl.Timer()
	switch t.State() {
	case timer.Running:
		timerInfo = successStyle.Render(" ● " + timer.Format(t.Elapsed()))
	case timer.Paused:
		timerInfo = warningStyle.Render(" ⏸ " + timer.Format(t.Elapsed()))
	}

	left := footerStyle.Render(helpView)
	right := alarm + timerInfo + status

	gap := max(a.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	rows := []string{titleStyle.Render("Export"), ""}
	for i, f := range exportFormats {
		prefix, render := cursorPrefix(i == a.exportCursor)
		rows = append(rows, render(prefix+f))
	}
	rows = append(rows, "", mutedStyle.Render("  to "+a.ctrl.ExportDir()))
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	return activePanelStyle.Width(a.width - 4).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		a.status = a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) app.Notice {
	var n app.Notice
	switch format {
	case 0:
		_, n = a.ctrl.ExportDayPDF(a.calendar.date, a.calendar.filter())
	case 1:
		_, n = a.ctrl.ExportSessionsXLSX()
	case 2:
		_, n = a.ctrl.ExportSessionsCSV()
	case 3:
		_, n = a.ctrl.ExportJSON()
	}
	return n
}

func (a App) showImport() (tea.Model, tea.Cmd) {
	*a.importPath = ""
	a.importForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Backup file").
				Description("Collections in the file replace the current ones.").
				Placeholder("~/daybook-backup-2024-01-31.json").
				Value(a.importPath).
				Validate(required("path")),
		),
	).WithShowHelp(true).WithShowErrors(true)
	a.importing = true
	return a, a.importForm.Init()
}

func (a App) updateImport(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		a.importing = false
		a.importForm = nil
		return a, nil
	}

	form, cmd := a.importForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.importForm = f
	}

	if a.importForm.State == huh.StateCompleted {
		a.importing = false
		a.importForm = nil
		a.status = a.ctrl.ImportJSON(expandHome(*a.importPath))
		a.refreshCurrentView()
		return a, nil
	}
	return a, cmd
}

func (a App) renderImport() string {
	title := titleStyle.Render("Import Backup")
	return activePanelStyle.Width(a.width - 4).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", a.importForm.View()),
	)
}
