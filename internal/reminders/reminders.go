// Package reminders fires one-time alerts shortly before they are due.
package reminders

import (
	"log/slog"
	"time"

	"github.com/sadopc/daybook/internal/notify"
	"github.com/sadopc/daybook/internal/store"
)

// Window is how long before its due time a reminder becomes eligible.
const Window = 60 * time.Second

// SweepInterval is the cadence the owner should call Sweep at.
const SweepInterval = 60 * time.Second

// Scheduler owns the reminder collection and its firing state.
type Scheduler struct {
	reminders []store.Reminder
	alarm     notify.Alarm
	notifier  notify.Notifier
	log       *slog.Logger
	loc       *time.Location
	window    time.Duration
}

func NewScheduler(reminders []store.Reminder, alarm notify.Alarm, notifier notify.Notifier, log *slog.Logger) *Scheduler {
	return &Scheduler{
		reminders: append([]store.Reminder(nil), reminders...),
		alarm:     alarm,
		notifier:  notifier,
		log:       log,
		loc:       time.Local,
		window:    Window,
	}
}

// SetLocation sets the zone used for datetimes without an offset.
func (s *Scheduler) SetLocation(loc *time.Location) {
	s.loc = loc
}

// Create appends a reminder that has not fired yet.
func (s *Scheduler) Create(id int64, title, datetime, description string) store.Reminder {
	r := store.Reminder{
		ID:          id,
		Title:       title,
		Datetime:    datetime,
		Description: description,
	}
	s.reminders = append(s.reminders, r)
	return r
}

// Delete removes the reminder with id whether or not it has fired.
func (s *Scheduler) Delete(id int64) bool {
	for i, r := range s.reminders {
		if r.ID == id {
			s.reminders = append(s.reminders[:i], s.reminders[i+1:]...)
			return true
		}
	}
	return false
}

// All returns a copy of the collection in insertion order.
func (s *Scheduler) All() []store.Reminder {
	return append([]store.Reminder{}, s.reminders...)
}

// Upcoming returns up to n reminders that have not fired.
func (s *Scheduler) Upcoming(n int) []store.Reminder {
	var out []store.Reminder
	for _, r := range s.reminders {
		if len(out) == n {
			break
		}
		if !r.Notified {
			out = append(out, r)
		}
	}
	return out
}

// Missed returns reminders whose due window passed without a sweep seeing
// them. They are never fired late.
func (s *Scheduler) Missed(now time.Time) []store.Reminder {
	var out []store.Reminder
	for _, r := range s.reminders {
		if r.Notified {
			continue
		}
		due, err := r.Due(s.loc)
		if err != nil {
			continue
		}
		if !due.After(now) {
			out = append(out, r)
		}
	}
	return out
}

// Sweep fires every reminder that is due within the window after now and
// marks it notified. A notified reminder is never evaluated again. The
// returned slice holds the reminders fired by this sweep.
func (s *Scheduler) Sweep(now time.Time) []store.Reminder {
	var fired []store.Reminder
	for i := range s.reminders {
		r := &s.reminders[i]
		if r.Notified {
			continue
		}
		due, err := r.Due(s.loc)
		if err != nil {
			s.log.Warn("skipping reminder", "id", r.ID, "error", err)
			continue
		}
		delta := due.Sub(now)
		if delta <= 0 || delta > s.window {
			continue
		}

		s.alarm.Start()
		s.notifier.Notify("Reminder", r.Title)
		r.Notified = true
		fired = append(fired, *r)
		s.log.Info("reminder fired", "id", r.ID, "title", r.Title, "due_in", delta)
	}
	return fired
}

// StopAlarm silences the shared alarm.
func (s *Scheduler) StopAlarm() {
	s.alarm.Stop()
}

func (s *Scheduler) AlarmPlaying() bool {
	return s.alarm.Playing()
}
