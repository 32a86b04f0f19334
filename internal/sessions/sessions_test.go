package sessions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sadopc/daybook/internal/store"
)

var (
	loc   = time.FixedZone("UTC+2", 2*3600)
	today = time.Date(2024, 6, 3, 14, 0, 0, 0, loc)
)

func sampleLog() *Log {
	return NewLog([]store.Session{
		{ID: 1, Project: "A", Duration: 125, Date: today.Add(-2 * time.Hour).UTC(), Type: store.SessionWork},
		{ID: 2, Project: "A", Duration: 40, Date: today.Add(-time.Hour).UTC(), Type: store.SessionBreak},
		{ID: 3, Project: "B", Duration: 500, Date: today.AddDate(0, 0, -1).UTC(), Type: store.SessionWork},
	})
}

func TestTodayWorkMinutes(t *testing.T) {
	assert.Equal(t, int64(2), sampleLog().TodayWorkMinutes(today))
}

func TestTodaySessionCount(t *testing.T) {
	assert.Equal(t, 2, sampleLog().TodaySessionCount(today))
}

func TestTodayUsesLocalDate(t *testing.T) {
	// 23:30 UTC on June 2nd is already June 3rd at UTC+2.
	late := time.Date(2024, 6, 2, 23, 30, 0, 0, time.UTC)
	l := NewLog([]store.Session{{ID: 1, Duration: 600, Date: late, Type: store.SessionWork}})

	assert.Equal(t, int64(10), l.TodayWorkMinutes(today))
	assert.Equal(t, int64(0), l.TodayWorkMinutes(today.In(time.UTC)))
}

func TestAppendKeepsOrderAndDuplicates(t *testing.T) {
	l := NewLog(nil)
	s := store.Session{ID: 9, Project: "A", Duration: 60, Date: today, Type: store.SessionWork}
	l.Append(s)
	l.Append(s)

	all := l.All()
	assert.Len(t, all, 2)
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, int64(2), l.TodayWorkMinutes(today))
}

func TestAllIsACopy(t *testing.T) {
	l := sampleLog()
	all := l.All()
	all[0].Project = "changed"
	assert.Equal(t, "A", l.All()[0].Project)
}

func TestNewLogCopiesInput(t *testing.T) {
	in := []store.Session{{ID: 1}}
	l := NewLog(in)
	in[0].ID = 99
	assert.Equal(t, int64(1), l.All()[0].ID)
}

func TestEmptyLog(t *testing.T) {
	l := NewLog(nil)
	assert.Zero(t, l.TodayWorkMinutes(today))
	assert.Zero(t, l.TodaySessionCount(today))
	assert.Empty(t, l.Today(today))
	assert.NotNil(t, l.All())
}
