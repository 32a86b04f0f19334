package tui

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/daybook/internal/app"
	"github.com/sadopc/daybook/internal/config"
	"github.com/sadopc/daybook/internal/notify"
)

type settingsForm int

const (
	settingsEdit settingsForm = iota
	settingsReset
)

type settingsModel struct {
	ctrl    *app.Controller
	desktop *notify.Desktop
	cfg     *config.Config
	cfgPath string
	log     *slog.Logger
	width   int
	height  int

	formActive bool
	formKind   settingsForm
	form       *huh.Form

	// Form values as pointers (survive value copies)
	notifications *string
	exportDir     *string
	darkMode      *bool
	confirmReset  *bool
}

func newSettingsModel(d Deps) settingsModel {
	var notifications, exportDir string
	var dark, reset bool
	return settingsModel{
		ctrl:          d.Controller,
		desktop:       d.Desktop,
		cfg:           d.Config,
		cfgPath:       d.ConfigPath,
		log:           d.Log,
		notifications: &notifications,
		exportDir:     &exportDir,
		darkMode:      &dark,
		confirmReset:  &reset,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return s.showForm()
		case key.Matches(msg, keys.ResetData):
			return s.showResetForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.notifications = string(s.permission())
	*s.exportDir = s.ctrl.ExportDir()
	*s.darkMode = s.ctrl.DarkMode()

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Desktop notifications").
				Options(
					huh.NewOption("Ask on first key press", string(notify.PermissionDefault)),
					huh.NewOption("Allowed", string(notify.PermissionGranted)),
					huh.NewOption("Blocked", string(notify.PermissionDenied)),
				).Value(s.notifications),
			huh.NewInput().Title("Export directory").Value(s.exportDir).Validate(required("export directory")),
			huh.NewConfirm().Title("Dark mode").Affirmative("Dark").Negative("Light").Value(s.darkMode),
		).Title("General"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formKind = settingsEdit
	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) showResetForm() (settingsModel, tea.Cmd) {
	*s.confirmReset = false
	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Delete all data?").
				Description("Activities, sessions, reminders and records are removed. This cannot be undone.").
				Affirmative("Delete").
				Negative("Cancel").
				Value(s.confirmReset),
		),
	).WithShowHelp(true)

	s.formKind = settingsReset
	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.form = nil
		if s.formKind == settingsReset {
			if !*s.confirmReset {
				return s, nil
			}
			return s, statusCmd(s.ctrl.ResetAll())
		}
		return s, s.saveSettings()
	}

	return s, cmd
}

func (s settingsModel) saveSettings() tea.Cmd {
	p := notify.ParsePermission(*s.notifications)
	if s.desktop != nil {
		s.desktop.SetPermission(p)
	}
	dir := expandHome(*s.exportDir)
	s.ctrl.SetExportDir(dir)
	if *s.darkMode != s.ctrl.DarkMode() {
		applyTheme(s.ctrl.ToggleDarkMode())
	}

	if s.cfg == nil {
		return statusCmd(app.Notice{Text: "Settings applied"})
	}
	s.cfg.Notifications = string(p)
	s.cfg.ExportDir = dir
	return s.persist("Settings saved")
}

// persist writes the config file and reports the outcome.
func (s settingsModel) persist(done string) tea.Cmd {
	if s.cfg == nil || s.cfgPath == "" {
		return nil
	}
	if err := config.Save(s.cfgPath, *s.cfg); err != nil {
		if s.log != nil {
			s.log.Error("save config", "path", s.cfgPath, "error", err)
		}
		return warningCmd("Could not save settings")
	}
	return statusCmd(app.Notice{Text: done})
}

func (s settingsModel) permission() notify.Permission {
	if s.desktop != nil {
		return s.desktop.Permission()
	}
	if s.cfg != nil {
		return notify.ParsePermission(s.cfg.Notifications)
	}
	return notify.PermissionDefault
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		if s.formKind == settingsReset {
			title = errorStyle.Bold(true).Render("Reset Data")
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	theme := "Light"
	if s.ctrl.DarkMode() {
		theme = "Dark"
	}
	values := [][2]string{
		{"Notifications", formatPermission(s.permission())},
		{"Export directory", s.ctrl.ExportDir()},
		{"Theme", theme},
	}
	if s.cfg != nil {
		values = append(values,
			[2]string{"Database", s.cfg.DBPath},
			[2]string{"Log file", s.cfg.LogPath},
		)
	}
	if s.cfgPath != "" {
		values = append(values, [2]string{"Config file", s.cfgPath})
	}

	rows := []string{titleStyle.Render("Settings"), ""}
	for _, v := range values {
		label := lipgloss.NewStyle().Width(20).Render(v[0])
		rows = append(rows, "  "+label+" "+highlightStyle.Render(v[1]))
	}
	rows = append(rows, "", mutedStyle.Render("enter: edit  R: reset all data  T: toggle theme"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func formatPermission(p notify.Permission) string {
	switch p {
	case notify.PermissionGranted:
		return "allowed"
	case notify.PermissionDenied:
		return "blocked"
	}
	return "not asked yet"
}
