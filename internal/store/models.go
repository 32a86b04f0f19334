package store

import (
	"fmt"
	"time"
)

// Session types.
const (
	SessionWork  = "work"
	SessionBreak = "break"
)

// Activity types.
const (
	ActivityWork    = "work"
	ActivityMeeting = "meeting"
	ActivityBreak   = "break"
	ActivityLunch   = "lunch"
)

// ActivityTypes lists the accepted activity categories in display order.
var ActivityTypes = []string{ActivityWork, ActivityMeeting, ActivityBreak, ActivityLunch}

// Date and clock layouts used by persisted records.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Session is one completed interval of tracked work time.
type Session struct {
	ID       int64     `json:"id"`
	Project  string    `json:"project"`
	Duration int64     `json:"duration"` // seconds
	Date     time.Time `json:"date"`
	Type     string    `json:"type"`
}

// Reminder is a scheduled one-time alert.
type Reminder struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Datetime    string `json:"datetime"`
	Description string `json:"description,omitempty"`
	Notified    bool   `json:"notified"`
}

var reminderLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// Due parses the reminder datetime. Zone-less values are read in loc.
func (r Reminder) Due(loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, r.Datetime); err == nil {
		return t, nil
	}
	for _, layout := range reminderLayouts {
		if t, err := time.ParseInLocation(layout, r.Datetime, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("reminder %d: bad datetime %q", r.ID, r.Datetime)
}

// Activity is a calendar-scheduled block of time.
type Activity struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Project     string `json:"project,omitempty"`
	Client      string `json:"client,omitempty"`
	Task        string `json:"task,omitempty"`
	Description string `json:"description,omitempty"`
}

type Project struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Client struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
}

type Task struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Project     string `json:"project,omitempty"`
	Completed   bool   `json:"completed"`
}

type Note struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
