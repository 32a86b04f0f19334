// Package app holds the application state and the commands that change it.
// Every command updates memory first and then writes the affected collection
// back to the store in full.
package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sadopc/daybook/internal/calendar"
	"github.com/sadopc/daybook/internal/notify"
	"github.com/sadopc/daybook/internal/reminders"
	"github.com/sadopc/daybook/internal/schedule"
	"github.com/sadopc/daybook/internal/sessions"
	"github.com/sadopc/daybook/internal/store"
	"github.com/sadopc/daybook/internal/timer"
)

// ErrInvalid marks rejected user input.
var ErrInvalid = errors.New("invalid input")

// Level classifies a notice for display.
type Level int

const (
	LevelSuccess Level = iota
	LevelWarning
	LevelAlarm
)

// Notice is a user-visible message produced by a command.
type Notice struct {
	Text  string
	Level Level
}

func (n Notice) Empty() bool { return n.Text == "" }

func success(text string) Notice { return Notice{Text: text, Level: LevelSuccess} }
func warning(text string) Notice { return Notice{Text: text, Level: LevelWarning} }

// Job is work a scheduled task hands to the UI goroutine.
type Job func() []Notice

// Dispatch runs a job on the goroutine that owns the state.
type Dispatch func(Job)

// State is every top-level collection. Only the controller mutates it.
type State struct {
	Activities *calendar.Book
	Sessions   *sessions.Log
	Reminders  *reminders.Scheduler
	Projects   []store.Project
	Clients    []store.Client
	Tasks      []store.Task
	Notes      []store.Note
	DarkMode   bool
}

// Controller owns the state, the timer and the scheduled tasks.
type Controller struct {
	store    *store.Store
	state    State
	timer    *timer.Engine
	alarm    notify.Alarm
	notifier notify.Notifier
	log      *slog.Logger

	clock       func() time.Time
	exportDir   string
	defaultDark bool
	lastID      int64

	ctx       context.Context
	dispatch  Dispatch
	sweepTask *schedule.Task
	tickTask  *schedule.Task
	tickGen   int
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces time.Now. The clock's location is the local zone for
// day boundaries and reminder datetimes.
func WithClock(clock func() time.Time) Option {
	return func(c *Controller) { c.clock = clock }
}

// WithExportDir sets where export files are written.
func WithExportDir(dir string) Option {
	return func(c *Controller) { c.exportDir = dir }
}

// WithDefaultDarkMode is used when no theme was ever saved.
func WithDefaultDarkMode(dark bool) Option {
	return func(c *Controller) { c.defaultDark = dark }
}

func New(s *store.Store, alarm notify.Alarm, notifier notify.Notifier, log *slog.Logger, opts ...Option) *Controller {
	c := &Controller{
		store:     s,
		timer:     timer.New(),
		alarm:     alarm,
		notifier:  notifier,
		log:       log,
		clock:     time.Now,
		exportDir: ".",
	}
	for _, opt := range opts {
		opt(c)
	}
	c.replaceState(State{})
	return c
}

func (c *Controller) now() time.Time { return c.clock() }

// Now is the controller's clock; views use it to find today.
func (c *Controller) Now() time.Time { return c.clock() }

// Load reads every collection from the store. Missing or unreadable keys
// leave the collection empty.
func (c *Controller) Load() {
	var (
		st         State
		activities []store.Activity
		sess       []store.Session
		rems       []store.Reminder
	)
	c.store.Get(store.KeyActivities, &activities)
	c.store.Get(store.KeySessions, &sess)
	c.store.Get(store.KeyReminders, &rems)
	c.store.Get(store.KeyProjects, &st.Projects)
	c.store.Get(store.KeyClients, &st.Clients)
	c.store.Get(store.KeyTasks, &st.Tasks)
	c.store.Get(store.KeyNotes, &st.Notes)

	st.Activities = calendar.NewBook(activities)
	st.Sessions = sessions.NewLog(sess)
	st.Reminders = c.newScheduler(rems)

	st.DarkMode = c.defaultDark
	if dark, ok := c.store.DarkMode(); ok {
		st.DarkMode = dark
	}

	c.replaceState(st)
	c.log.Info("state loaded",
		"activities", len(activities),
		"sessions", len(sess),
		"reminders", len(rems),
		"projects", len(st.Projects),
	)
}

func (c *Controller) newScheduler(rems []store.Reminder) *reminders.Scheduler {
	s := reminders.NewScheduler(rems, c.alarm, c.notifier, c.log)
	s.SetLocation(c.now().Location())
	return s
}

// replaceState installs st, filling nil components, and re-seeds the id
// generator so new ids never collide with loaded ones.
func (c *Controller) replaceState(st State) {
	if st.Activities == nil {
		st.Activities = calendar.NewBook(nil)
	}
	if st.Sessions == nil {
		st.Sessions = sessions.NewLog(nil)
	}
	if st.Reminders == nil {
		st.Reminders = c.newScheduler(nil)
	}
	c.state = st
	c.lastID = maxID(st)
}

func maxID(st State) int64 {
	var m int64
	bump := func(id int64) {
		if id > m {
			m = id
		}
	}
	for _, a := range st.Activities.All() {
		bump(a.ID)
	}
	for _, s := range st.Sessions.All() {
		bump(s.ID)
	}
	for _, r := range st.Reminders.All() {
		bump(r.ID)
	}
	for _, p := range st.Projects {
		bump(p.ID)
	}
	for _, cl := range st.Clients {
		bump(cl.ID)
	}
	for _, t := range st.Tasks {
		bump(t.ID)
	}
	for _, n := range st.Notes {
		bump(n.ID)
	}
	return m
}

// nextID returns the creation timestamp in milliseconds, bumped past the
// last id handed out so ids stay unique within a millisecond.
func (c *Controller) nextID() int64 {
	id := c.now().UnixMilli()
	if id <= c.lastID {
		id = c.lastID + 1
	}
	c.lastID = id
	return id
}

// save writes the full collection stored under key.
func (c *Controller) save(key string) bool {
	var v any
	switch key {
	case store.KeyActivities:
		v = c.state.Activities.All()
	case store.KeySessions:
		v = c.state.Sessions.All()
	case store.KeyReminders:
		v = c.state.Reminders.All()
	case store.KeyProjects:
		v = nonNil(c.state.Projects)
	case store.KeyClients:
		v = nonNil(c.state.Clients)
	case store.KeyTasks:
		v = nonNil(c.state.Tasks)
	case store.KeyNotes:
		v = nonNil(c.state.Notes)
	default:
		c.log.Error("save of unknown key", "key", key)
		return false
	}
	return c.store.Set(key, v)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// State returns the current state. Callers must treat it as read-only.
func (c *Controller) State() *State { return &c.state }

func (c *Controller) DarkMode() bool { return c.state.DarkMode }

// ToggleDarkMode flips and persists the theme.
func (c *Controller) ToggleDarkMode() bool {
	c.state.DarkMode = !c.state.DarkMode
	c.store.SetDarkMode(c.state.DarkMode)
	return c.state.DarkMode
}

// ResetAll empties every collection and clears them from the store.
func (c *Controller) ResetAll() Notice {
	dark := c.state.DarkMode
	c.store.Clear()
	c.replaceState(State{DarkMode: dark})
	return success("All data cleared")
}
