package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/daybook/internal/calendar"
	"github.com/sadopc/daybook/internal/store"
	"github.com/sadopc/daybook/internal/timer"
)

// Timer exposes the timer for display.
func (c *Controller) Timer() *timer.Engine { return c.timer }

// SelectProject picks the project the next session is recorded for.
func (c *Controller) SelectProject(project string) {
	c.timer.Select(project)
}

func (c *Controller) StartTimer() Notice {
	if err := c.timer.Start(); err != nil {
		if errors.Is(err, timer.ErrNoProject) {
			return warning("Select a project first")
		}
		return warning(err.Error())
	}
	c.startTicking()
	return Notice{}
}

func (c *Controller) PauseTimer() {
	c.timer.Pause()
	c.stopTicking()
}

// ToggleTimer starts a stopped timer or pauses a running one.
func (c *Controller) ToggleTimer() Notice {
	if c.timer.Running() {
		c.PauseTimer()
		return Notice{}
	}
	return c.StartTimer()
}

// ResetTimer stops the timer and records the elapsed time as a work session.
func (c *Controller) ResetTimer() Notice {
	c.stopTicking()
	s, ok := c.timer.Reset(c.now())
	if !ok {
		return Notice{}
	}
	s.ID = c.nextID()
	c.state.Sessions.Append(*s)
	c.save(store.KeySessions)
	c.log.Info("session recorded", "project", s.Project, "duration", s.Duration)
	return success("Session saved: " + timer.Summary(s.Duration))
}

// TodayWorkMinutes and TodaySessionCount feed the timer view.
func (c *Controller) TodayWorkMinutes() int64 {
	return c.state.Sessions.TodayWorkMinutes(c.now())
}

func (c *Controller) TodaySessionCount() int {
	return c.state.Sessions.TodaySessionCount(c.now())
}

func (c *Controller) TodaySessions() []store.Session {
	return c.state.Sessions.Today(c.now())
}

// AddReminder schedules a reminder. datetime is local "2006-01-02T15:04".
func (c *Controller) AddReminder(title, datetime, description string) (store.Reminder, Notice) {
	title = strings.TrimSpace(title)
	if title == "" {
		return store.Reminder{}, warning("Reminder title is required")
	}
	probe := store.Reminder{Datetime: datetime}
	if _, err := probe.Due(c.now().Location()); err != nil {
		return store.Reminder{}, warning("Invalid reminder date and time")
	}
	r := c.state.Reminders.Create(c.nextID(), title, datetime, description)
	c.save(store.KeyReminders)
	return r, success("Reminder set")
}

func (c *Controller) DeleteReminder(id int64) bool {
	if !c.state.Reminders.Delete(id) {
		return false
	}
	c.save(store.KeyReminders)
	return true
}

func (c *Controller) StopAlarm() {
	c.state.Reminders.StopAlarm()
}

func (c *Controller) AlarmPlaying() bool {
	return c.state.Reminders.AlarmPlaying()
}

// MissedReminders lists reminders whose window passed unseen.
func (c *Controller) MissedReminders() []store.Reminder {
	return c.state.Reminders.Missed(c.now())
}

// AddActivity records a on date after validating it.
func (c *Controller) AddActivity(a store.Activity, date time.Time) (store.Activity, Notice) {
	if err := validateActivity(&a); err != nil {
		return store.Activity{}, warning(err.Error())
	}
	a = c.state.Activities.Add(c.nextID(), a, date)
	c.save(store.KeyActivities)
	return a, success("Activity added")
}

func validateActivity(a *store.Activity) error {
	a.Title = strings.TrimSpace(a.Title)
	if a.Title == "" {
		return fmt.Errorf("%w: activity title is required", ErrInvalid)
	}
	valid := false
	for _, t := range store.ActivityTypes {
		if a.Type == t {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("%w: unknown activity type %q", ErrInvalid, a.Type)
	}
	for _, clock := range []string{a.StartTime, a.EndTime} {
		if _, err := time.Parse(store.ClockLayout, clock); err != nil {
			return fmt.Errorf("%w: time %q is not HH:MM", ErrInvalid, clock)
		}
	}
	return nil
}

func (c *Controller) DeleteActivity(id int64) bool {
	if !c.state.Activities.Delete(id) {
		return false
	}
	c.save(store.KeyActivities)
	return true
}

// Activities lists date's activities matching f.
func (c *Controller) Activities(date time.Time, f calendar.Filter) []store.Activity {
	return c.state.Activities.ForDate(date, f)
}

// ProjectNames returns the names of all projects in insertion order.
func (c *Controller) ProjectNames() []string {
	names := make([]string, 0, len(c.state.Projects))
	for _, p := range c.state.Projects {
		names = append(names, p.Name)
	}
	return names
}
