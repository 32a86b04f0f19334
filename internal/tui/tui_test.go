package tui

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadopc/daybook/internal/app"
	"github.com/sadopc/daybook/internal/config"
	"github.com/sadopc/daybook/internal/notify"
	"github.com/sadopc/daybook/internal/store"
)

var testNow = time.Date(2024, 6, 5, 10, 0, 0, 0, time.FixedZone("test", 3600))

type testAlarm struct{ playing bool }

func (a *testAlarm) Start()        { a.playing = true }
func (a *testAlarm) Stop()         { a.playing = false }
func (a *testAlarm) Playing() bool { return a.playing }

type testNotifier struct{}

func (testNotifier) Notify(string, string) bool { return false }

type testEnv struct {
	store *store.Store
	ctrl  *app.Controller
	alarm *testAlarm
	dir   string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	s, err := store.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	env := testEnv{store: s, alarm: &testAlarm{}, dir: t.TempDir()}
	env.ctrl = app.New(s, env.alarm, testNotifier{}, slog.New(slog.DiscardHandler),
		app.WithClock(func() time.Time { return testNow }),
		app.WithExportDir(env.dir),
	)
	env.ctrl.Load()
	return env
}

func newTestApp(t *testing.T) (App, testEnv) {
	t.Helper()
	env := newTestEnv(t)
	a := NewApp(Deps{Controller: env.ctrl})
	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m.(App), env
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, a App, ks ...string) (App, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range ks {
		var m tea.Model
		m, cmd = a.Update(keyMsg(k))
		a = m.(App)
	}
	return a, cmd
}

// statusOf runs cmd and returns the notice it reports.
func statusOf(t *testing.T, cmd tea.Cmd) app.Notice {
	t.Helper()
	require.NotNil(t, cmd, "expected a status command")
	msg := cmd()
	status, ok := msg.(statusMsg)
	require.True(t, ok, "expected statusMsg, got %T", msg)
	return status.notice
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	a, _ := newTestApp(t)

	assert.Equal(t, viewCalendar, a.activeView, "default view should be calendar")
	assert.False(t, a.showHelp, "help should be hidden by default")
	assert.False(t, a.exportPicking, "export picker should be hidden by default")
	assert.False(t, a.isFormActive(), "no forms should be active initially")
}

func TestAppViewStates(t *testing.T) {
	a, env := newTestApp(t)
	env.ctrl.AddProject("Website", "")
	env.ctrl.AddActivity(store.Activity{Title: "Build", Type: store.ActivityWork, StartTime: "09:00", EndTime: "10:00"}, testNow)

	for i := range viewNames {
		a, _ = a.switchViewApp(viewState(i))
		assert.NotEmpty(t, a.View(), "view %d rendered empty", i)
	}
}

func (a App) switchViewApp(v viewState) (App, tea.Cmd) {
	m, cmd := a.switchView(v)
	return m.(App), cmd
}

func TestAppTabKeys(t *testing.T) {
	a, _ := newTestApp(t)

	a, _ = press(t, a, "2")
	assert.Equal(t, viewTimer, a.activeView)
	a, _ = press(t, a, "tab")
	assert.Equal(t, viewReminders, a.activeView)
	a, _ = press(t, a, "6", "tab")
	assert.Equal(t, viewCalendar, a.activeView, "tab should wrap to the first view")
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	a, _ := newTestApp(t)

	header := a.renderHeader()
	for _, name := range viewNames {
		assert.Contains(t, header, name)
	}
}

func TestAppLoadingState(t *testing.T) {
	env := newTestEnv(t)
	a := NewApp(Deps{Controller: env.ctrl})
	// Width 0 means not yet sized
	assert.Equal(t, "Loading...", a.View())
}

func TestAppStatusMessage(t *testing.T) {
	a, _ := newTestApp(t)
	m, _ := a.Update(statusMsg{notice: app.Notice{Text: "test status"}})
	a = m.(App)

	assert.Contains(t, a.renderFooter(), "test status")
}

func TestAppDispatchRunsJob(t *testing.T) {
	a, _ := newTestApp(t)
	ran := false
	m, _ := a.Update(dispatchMsg{job: func() []app.Notice {
		ran = true
		return []app.Notice{{Text: "Reminder: Call", Level: app.LevelAlarm}}
	}})
	a = m.(App)

	assert.True(t, ran, "job should run on update")
	assert.Equal(t, app.Notice{Text: "Reminder: Call", Level: app.LevelAlarm}, a.status)
}

func TestAppStopAlarmKey(t *testing.T) {
	a, env := newTestApp(t)
	env.alarm.Start()

	assert.Contains(t, a.renderFooter(), "stop alarm")
	a, _ = press(t, a, "a")
	assert.False(t, env.alarm.playing, "alarm should stop")
	assert.Equal(t, "Alarm stopped", a.status.Text)
}

func TestAppThemeToggle(t *testing.T) {
	defer applyTheme(true)
	a, env := newTestApp(t)
	before := env.ctrl.DarkMode()

	press(t, a, "T")
	assert.NotEqual(t, before, env.ctrl.DarkMode(), "theme should toggle")
	dark, ok := env.store.DarkMode()
	assert.True(t, ok, "theme should be persisted")
	assert.Equal(t, env.ctrl.DarkMode(), dark)
}

func TestAppExportCSV(t *testing.T) {
	a, env := newTestApp(t)

	a, _ = press(t, a, "e")
	require.True(t, a.exportPicking, "export picker should open")
	a, _ = press(t, a, "down", "down", "enter")
	assert.False(t, a.exportPicking, "export picker should close")
	assert.Equal(t, app.LevelSuccess, a.status.Level, a.status.Text)
	assert.FileExists(t, filepath.Join(env.dir, "sessions-2024-06-05.csv"))
}

func TestAppImportFormOpens(t *testing.T) {
	a, _ := newTestApp(t)
	a, _ = press(t, a, "i")
	require.True(t, a.importing)
	require.NotNil(t, a.importForm)
	a, _ = press(t, a, "esc")
	assert.False(t, a.importing, "esc should cancel import")
}

func TestAppRequestsPermissionOnFirstKey(t *testing.T) {
	env := newTestEnv(t)
	desktop := notify.NewDesktop(slog.New(slog.DiscardHandler), notify.PermissionDefault)
	cfg := config.Default()
	cfgPath := filepath.Join(t.TempDir(), "config.json")

	a := NewApp(Deps{Controller: env.ctrl, Desktop: desktop, Config: &cfg, ConfigPath: cfgPath})
	press(t, a, "j")

	assert.Equal(t, notify.PermissionGranted, desktop.Permission())
	saved, err := config.Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "granted", saved.Notifications)
}

func TestAppReportsPermissionSaveFailure(t *testing.T) {
	env := newTestEnv(t)
	desktop := notify.NewDesktop(slog.New(slog.DiscardHandler), notify.PermissionDefault)
	cfg := config.Default()
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	a := NewApp(Deps{Controller: env.ctrl, Desktop: desktop, Config: &cfg, ConfigPath: filepath.Join(blocker, "config.json")})
	_, cmd := press(t, a, "?")

	n := statusOf(t, cmd)
	assert.Equal(t, app.LevelWarning, n.Level)
	assert.Equal(t, "Could not save settings", n.Text)
}

func TestAppKeepsDeniedPermission(t *testing.T) {
	env := newTestEnv(t)
	desktop := notify.NewDesktop(slog.New(slog.DiscardHandler), notify.PermissionDenied)
	a := NewApp(Deps{Controller: env.ctrl, Desktop: desktop})
	press(t, a, "j")

	assert.Equal(t, notify.PermissionDenied, desktop.Permission(), "denied permission must not change")
}

// ============================================================
// Calendar view
// ============================================================

func TestCalendarNavigation(t *testing.T) {
	env := newTestEnv(t)
	m := newCalendarModel(env.ctrl)
	start := m.date

	m, _ = m.update(keyMsg("right"))
	assert.True(t, m.date.Equal(start.AddDate(0, 0, 1)), "right should move one day, got %s", m.date)
	m, _ = m.update(keyMsg("j"))
	assert.True(t, m.date.Equal(start.AddDate(0, 0, 8)), "down should move one week, got %s", m.date)
	m, _ = m.update(keyMsg("<"))
	assert.Equal(t, time.May, m.date.Month(), "< should move one month back")
	m, _ = m.update(keyMsg("t"))
	assert.True(t, m.date.Equal(start), "t should return to today")
}

func TestCalendarSubmitAddsActivity(t *testing.T) {
	env := newTestEnv(t)
	m := newCalendarModel(env.ctrl)

	*m.formTitle = "Build API"
	*m.formType = store.ActivityWork
	*m.formStart = "09:00"
	*m.formEnd = "11:00"
	*m.formClient = " Acme "
	n := statusOf(t, m.submit())

	assert.Equal(t, app.LevelSuccess, n.Level, n.Text)
	require.Len(t, m.activities, 1)
	assert.Equal(t, "Acme", m.activities[0].Client)
	assert.Equal(t, 120, m.stats.Work)
	assert.True(t, m.marked["2024-06-05"], "day should be marked in the month grid")
}

func TestCalendarSearchAndFilter(t *testing.T) {
	env := newTestEnv(t)
	env.ctrl.AddProject("Web", "")
	env.ctrl.AddActivity(store.Activity{Title: "Build API", Type: store.ActivityWork, StartTime: "09:00", EndTime: "10:00", Project: "Web"}, testNow)
	env.ctrl.AddActivity(store.Activity{Title: "Lunch", Type: store.ActivityLunch, StartTime: "12:00", EndTime: "13:00"}, testNow)

	m := newCalendarModel(env.ctrl)
	require.Len(t, m.activities, 2)

	m.query.SetValue("api")
	m.refresh()
	assert.Len(t, m.activities, 1, "search should match one activity")
	require.Len(t, m.week, 7)
	assert.Equal(t, 60, m.week[3].work, "Wednesday work minutes")

	m.query.SetValue("zzz")
	m.refresh()
	assert.True(t, m.hidden)
	assert.Contains(t, m.renderDay(80), "match the current filter")

	m.query.SetValue("")
	m, _ = m.update(keyMsg("f"))
	assert.Equal(t, "Web", m.project)
	assert.Len(t, m.activities, 1)
	m, _ = m.update(keyMsg("f"))
	assert.Empty(t, m.project, "filter should cycle back to all projects")
}

func TestCalendarDeleteFromList(t *testing.T) {
	env := newTestEnv(t)
	env.ctrl.AddActivity(store.Activity{Title: "Build", Type: store.ActivityWork, StartTime: "09:00", EndTime: "10:00"}, testNow)
	m := newCalendarModel(env.ctrl)

	m, _ = m.update(keyMsg("enter"))
	require.True(t, m.listFocus, "enter should focus the activity list")
	m, _ = m.update(keyMsg("d"))
	assert.Empty(t, m.activities)
	assert.Empty(t, env.ctrl.State().Activities.All())
}

func TestNextProject(t *testing.T) {
	names := []string{"A", "B"}
	got := []string{nextProject(names, ""), nextProject(names, "A"), nextProject(names, "B")}
	assert.Equal(t, []string{"A", "B", ""}, got)
	assert.Empty(t, nextProject(nil, ""), "no projects should keep the filter empty")
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		in   time.Time
		n    int
		want string
	}{
		{time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), 1, "2024-02-29"},
		{time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), -1, "2024-02-29"},
		{time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC), 1, "2025-01-15"},
	}
	for _, tt := range tests {
		got := addMonths(tt.in, tt.n).Format(store.DateLayout)
		assert.Equal(t, tt.want, got, "addMonths(%s, %d)", tt.in.Format(store.DateLayout), tt.n)
	}
}

// ============================================================
// Timer view
// ============================================================

func TestTimerStartWithoutProjects(t *testing.T) {
	env := newTestEnv(t)
	m := newTimerModel(env.ctrl)

	_, cmd := m.update(keyMsg("s"))
	assert.Equal(t, app.LevelWarning, statusOf(t, cmd).Level)
	assert.False(t, env.ctrl.Timer().Running(), "timer must not start without a project")
}

func TestTimerSingleProjectStartsDirectly(t *testing.T) {
	env := newTestEnv(t)
	env.ctrl.AddProject("Website", "")
	m := newTimerModel(env.ctrl)

	m.update(keyMsg("s"))
	assert.True(t, env.ctrl.Timer().Running())
	assert.Equal(t, "Website", env.ctrl.Timer().Project())
	m.update(keyMsg(" "))
	assert.True(t, env.ctrl.Timer().Paused(), "space should pause")
}

func TestTimerPicker(t *testing.T) {
	env := newTestEnv(t)
	env.ctrl.AddProject("Website", "")
	env.ctrl.AddProject("Docs", "")
	m := newTimerModel(env.ctrl)

	m, _ = m.update(keyMsg("s"))
	require.True(t, m.picking, "picker should open with several projects")
	m, _ = m.update(keyMsg("down"))
	m, _ = m.update(keyMsg("enter"))
	assert.False(t, m.picking, "picker should close")
	assert.Equal(t, "Docs", env.ctrl.Timer().Project())
	assert.True(t, env.ctrl.Timer().Running())
	assert.Contains(t, m.view(), "Docs")
}

// ============================================================
// Reminders view
// ============================================================

func TestRemindersSubmit(t *testing.T) {
	env := newTestEnv(t)
	m := newRemindersModel(env.ctrl)

	*m.formTitle = "Call client"
	*m.formDate = "2024-06-05"
	*m.formTime = "15:30"
	n := statusOf(t, m.submit())
	assert.Equal(t, app.LevelSuccess, n.Level, n.Text)
	require.Len(t, m.reminders, 1)
	assert.Equal(t, "2024-06-05T15:30", m.reminders[0].Datetime)
	assert.Len(t, m.upcoming, 1)
}

func TestRemindersMissedShown(t *testing.T) {
	env := newTestEnv(t)
	env.ctrl.AddReminder("Old", "2024-06-05T08:00", "")
	m := newRemindersModel(env.ctrl)
	m.setSize(120, 40)

	require.Len(t, m.reminders, 1)
	assert.True(t, m.missed[m.reminders[0].ID], "past reminder should be missed")
	assert.Contains(t, m.view(), "missed")
}

// ============================================================
// Records view
// ============================================================

func TestRecordsSubmitEachKind(t *testing.T) {
	env := newTestEnv(t)
	m := newRecordsModel(env.ctrl)

	*m.formA, *m.formB = "Website", "client site"
	m.submit()

	m.kind = recordClients
	*m.formA, *m.formEmail = "Acme", "ops@acme.test"
	m.submit()

	m.kind = recordTasks
	*m.formA, *m.formProject = "Draft", "Website"
	m.submit()

	m.kind = recordNotes
	*m.formA, *m.formB = "Idea", "body"
	m.submit()

	st := env.ctrl.State()
	require.Len(t, st.Projects, 1)
	require.Len(t, st.Clients, 1)
	require.Len(t, st.Tasks, 1)
	require.Len(t, st.Notes, 1)
	assert.Equal(t, "ops@acme.test", st.Clients[0].Email)
	assert.Equal(t, "Website", st.Tasks[0].Project)
}

func TestRecordsToggleAndDelete(t *testing.T) {
	env := newTestEnv(t)
	env.ctrl.AddTask(store.Task{Title: "Draft"})
	m := newRecordsModel(env.ctrl)

	m, _ = m.update(keyMsg("left"))
	m, _ = m.update(keyMsg("left"))
	require.Equal(t, recordTasks, m.kind)
	m, _ = m.update(keyMsg("enter"))
	assert.True(t, env.ctrl.State().Tasks[0].Completed, "enter should complete the task")
	m, cmd := m.update(keyMsg("d"))
	assert.Equal(t, "Task deleted", statusOf(t, cmd).Text)
	assert.Empty(t, m.tasks)
}

// ============================================================
// Stats and settings views
// ============================================================

func TestStatsRefresh(t *testing.T) {
	env := newTestEnv(t)
	env.ctrl.AddActivity(store.Activity{Title: "Build", Type: store.ActivityWork, StartTime: "09:00", EndTime: "12:00"}, testNow)
	env.ctrl.AddActivity(store.Activity{Title: "Sync", Type: store.ActivityMeeting, StartTime: "13:00", EndTime: "14:00"}, testNow.AddDate(0, 0, -2))

	m := newStatsModel(env.ctrl)
	m.setSize(120, 40)
	assert.Equal(t, 180, m.week.Work)
	assert.Equal(t, 60, m.week.Meeting)
	assert.Len(t, m.days, 8)

	m, _ = m.update(keyMsg("left"))
	assert.Zero(t, m.week.Activities, "previous week should be empty")
	assert.Contains(t, m.view(), "No activities")
}

func TestSettingsSave(t *testing.T) {
	defer applyTheme(true)
	env := newTestEnv(t)
	desktop := notify.NewDesktop(slog.New(slog.DiscardHandler), notify.PermissionDefault)
	cfg := config.Default()
	cfgPath := filepath.Join(t.TempDir(), "config.json")
	exportDir := t.TempDir()

	s := newSettingsModel(Deps{Controller: env.ctrl, Desktop: desktop, Config: &cfg, ConfigPath: cfgPath})
	*s.notifications = "denied"
	*s.exportDir = exportDir
	*s.darkMode = !env.ctrl.DarkMode()
	wantDark := *s.darkMode

	assert.Equal(t, "Settings saved", statusOf(t, s.saveSettings()).Text)
	assert.Equal(t, notify.PermissionDenied, desktop.Permission())
	assert.Equal(t, exportDir, env.ctrl.ExportDir())
	assert.Equal(t, wantDark, env.ctrl.DarkMode())

	saved, err := config.Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "denied", saved.Notifications)
	assert.Equal(t, exportDir, saved.ExportDir)
}

// ============================================================
// Helpers
// ============================================================

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "1.5h", formatHours(90))
	assert.Equal(t, "42m", formatMinutes(42))
	assert.Equal(t, "2h 05m", formatMinutes(125))
	assert.Equal(t, "2024-06-05 15:30", formatDatetime("2024-06-05T15:30"))
	assert.Equal(t, 2, clampCursor(5, 3))
	assert.Equal(t, 0, clampCursor(0, 0))
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	assert.Equal(t, filepath.Join(home, "backup.json"), expandHome("~/backup.json"))
	assert.Equal(t, "/tmp/x.json", expandHome(" /tmp/x.json "))
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	assert.NotEmpty(t, keys.ShortHelp())
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	require.NotEmpty(t, groups)
	for i, g := range groups {
		assert.NotEmpty(t, g, "full help group %d", i)
	}
}

// ============================================================
// Styles (smoke test, both themes)
// ============================================================

func TestStylesRender(t *testing.T) {
	defer applyTheme(true)

	for _, dark := range []bool{true, false} {
		applyTheme(dark)
		styles := map[string]func() string{
			"activeTab":    func() string { return activeTabStyle.Render("test") },
			"inactiveTab":  func() string { return inactiveTabStyle.Render("test") },
			"panel":        func() string { return panelStyle.Render("test") },
			"activePanel":  func() string { return activePanelStyle.Render("test") },
			"timer":        func() string { return timerStyle.Render("test") },
			"timerRunning": func() string { return timerRunningStyle.Render("test") },
			"timerPaused":  func() string { return timerPausedStyle.Render("test") },
			"title":        func() string { return titleStyle.Render("test") },
			"subtitle":     func() string { return subtitleStyle.Render("test") },
			"accent":       func() string { return accentStyle.Render("test") },
			"error":        func() string { return errorStyle.Render("test") },
			"header":       func() string { return headerStyle.Render("test") },
			"footer":       func() string { return footerStyle.Render("test") },
			"selectedDay":  func() string { return selectedDayStyle.Render("5") },
			"markedDay":    func() string { return markedDayStyle.Render("6") },
			"today":        func() string { return todayStyle.Render("7") },
			"activityType": func() string { return activityTypeStyle("meeting").Render("test") },
		}
		for name, fn := range styles {
			assert.NotEmpty(t, fn(), "style %q (dark=%v)", name, dark)
		}
	}
}
