// Package sessions holds the append-only log of completed timer sessions.
package sessions

import (
	"time"

	"github.com/sadopc/daybook/internal/store"
)

// Log is an ordered, append-only collection of sessions.
type Log struct {
	sessions []store.Session
}

func NewLog(sessions []store.Session) *Log {
	return &Log{sessions: append([]store.Session(nil), sessions...)}
}

// Append adds s at the end. There is no deduplication.
func (l *Log) Append(s store.Session) {
	l.sessions = append(l.sessions, s)
}

// All returns a copy of the log in insertion order.
func (l *Log) All() []store.Session {
	return append([]store.Session{}, l.sessions...)
}

func (l *Log) Len() int { return len(l.sessions) }

// Today returns the sessions whose timestamp falls on now's local date.
func (l *Log) Today(now time.Time) []store.Session {
	var out []store.Session
	for _, s := range l.sessions {
		if sameDay(s.Date, now) {
			out = append(out, s)
		}
	}
	return out
}

// TodayWorkMinutes sums today's work sessions and floors to whole minutes.
func (l *Log) TodayWorkMinutes(now time.Time) int64 {
	var total int64
	for _, s := range l.sessions {
		if s.Type == store.SessionWork && sameDay(s.Date, now) {
			total += s.Duration
		}
	}
	return total / 60
}

// TodaySessionCount counts today's sessions of any type.
func (l *Log) TodaySessionCount(now time.Time) int {
	return len(l.Today(now))
}

// sameDay compares calendar dates in now's location.
func sameDay(t, now time.Time) bool {
	return t.In(now.Location()).Format(store.DateLayout) == now.Format(store.DateLayout)
}
