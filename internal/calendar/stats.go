package calendar

import (
	"math"
	"time"

	"github.com/sadopc/daybook/internal/store"
)

// Totals holds minutes per activity category.
type Totals struct {
	Work    int
	Break   int // breaks and lunches
	Meeting int
}

func (t Totals) Total() int { return t.Work + t.Break + t.Meeting }

func (t *Totals) add(a store.Activity) {
	d := Duration(a.StartTime, a.EndTime)
	switch a.Type {
	case store.ActivityWork:
		t.Work += d
	case store.ActivityBreak, store.ActivityLunch:
		t.Break += d
	case store.ActivityMeeting:
		t.Meeting += d
	}
}

// DayStats summarises one day.
type DayStats struct {
	Totals
	Activities int
}

// Productivity is the share of work in the day's total, in whole percent.
// It is 0 when nothing was recorded.
func (d DayStats) Productivity() int {
	total := d.Total()
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(d.Work) / float64(total) * 100))
}

func (b *Book) DayStats(date time.Time) DayStats {
	key := DateKey(date)
	var st DayStats
	for _, a := range b.activities {
		if a.Date != key {
			continue
		}
		st.add(a)
		st.Activities++
	}
	return st
}

// WeekStats summarises the seven days up to today.
type WeekStats struct {
	Totals
	Activities int
}

// AvgWorkPerDay is the mean daily work time over the week, in hours.
func (w WeekStats) AvgWorkPerDay() float64 {
	return float64(w.Work) / 7 / 60
}

// WeekStats covers activities dated between today minus seven days and today.
func (b *Book) WeekStats(today time.Time) WeekStats {
	to := DateKey(today)
	from := DateKey(today.AddDate(0, 0, -7))
	var st WeekStats
	for _, a := range b.activities {
		if a.Date < from || a.Date > to {
			continue
		}
		st.add(a)
		st.Activities++
	}
	return st
}

// Hours renders minutes as hours with one decimal.
func Hours(minutes int) float64 {
	return math.Round(float64(minutes)/60*10) / 10
}
