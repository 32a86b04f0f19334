// Package calendar stores activities by day and derives duration statistics.
package calendar

import (
	"sort"
	"strings"
	"time"

	"github.com/sadopc/daybook/internal/store"
)

// Filter narrows the activities listed for a day.
type Filter struct {
	Query   string // case-insensitive substring of title or description
	Project string // exact project name
}

// Book holds all activities.
type Book struct {
	activities []store.Activity
}

func NewBook(activities []store.Activity) *Book {
	return &Book{activities: append([]store.Activity(nil), activities...)}
}

// Add records a on date, assigning id. Activities are never edited in place.
func (b *Book) Add(id int64, a store.Activity, date time.Time) store.Activity {
	a.ID = id
	a.Date = DateKey(date)
	b.activities = append(b.activities, a)
	return a
}

func (b *Book) Delete(id int64) bool {
	for i, a := range b.activities {
		if a.ID == id {
			b.activities = append(b.activities[:i], b.activities[i+1:]...)
			return true
		}
	}
	return false
}

// All returns a copy in insertion order.
func (b *Book) All() []store.Activity {
	return append([]store.Activity{}, b.activities...)
}

// ForDate lists the activities of date that match f, ordered by start time.
func (b *Book) ForDate(date time.Time, f Filter) []store.Activity {
	key := DateKey(date)
	q := strings.ToLower(f.Query)

	var out []store.Activity
	for _, a := range b.activities {
		if a.Date != key {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(a.Title), q) &&
			!strings.Contains(strings.ToLower(a.Description), q) {
			continue
		}
		if f.Project != "" && a.Project != f.Project {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime < out[j].StartTime
	})
	return out
}

// HasActivities reports whether any activity is stored for date.
func (b *Book) HasActivities(date time.Time) bool {
	key := DateKey(date)
	for _, a := range b.activities {
		if a.Date == key {
			return true
		}
	}
	return false
}

// DateKey formats the day-granularity key of t.
func DateKey(t time.Time) string {
	return t.Format(store.DateLayout)
}

// Duration returns the minutes from start to end, both "HH:MM". It is
// negative when end precedes start and zero when either cannot be parsed.
func Duration(start, end string) int {
	s, err := time.Parse(store.ClockLayout, start)
	if err != nil {
		return 0
	}
	e, err := time.Parse(store.ClockLayout, end)
	if err != nil {
		return 0
	}
	return int(e.Sub(s).Minutes())
}

// DatesWithActivities returns the date keys in month's calendar month that
// hold at least one activity.
func (b *Book) DatesWithActivities(month time.Time) map[string]bool {
	prefix := month.Format("2006-01-")
	out := map[string]bool{}
	for _, a := range b.activities {
		if strings.HasPrefix(a.Date, prefix) {
			out[a.Date] = true
		}
	}
	return out
}
