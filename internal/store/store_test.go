package store

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	require.NoError(t, err)
	defer s.Close()

	var version int
	require.NoError(t, s.db.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, 1, version)
}

func TestNewWithPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "daybook.db")
	s, err := New(path)
	require.NoError(t, err)
	require.True(t, s.Set(KeyProjects, []Project{{ID: 1, Name: "Site"}}))
	s.Close()

	// Reopen: data survives and migration is not repeated.
	s2, err := New(path)
	require.NoError(t, err)
	defer s2.Close()

	var got []Project
	require.True(t, s2.Get(KeyProjects, &got), "expected projects after reopen")
	require.Len(t, got, 1)
	assert.Equal(t, "Site", got[0].Name)
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.migrate())
}

// ============================================================
// Get / Set
// ============================================================

func TestGetMissingKey(t *testing.T) {
	s := newTestStore(t)
	var sessions []Session
	assert.False(t, s.Get(KeySessions, &sessions))
	assert.Nil(t, sessions, "dst should be untouched")
}

func TestSetAndGet(t *testing.T) {
	s := newTestStore(t)
	when := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	in := []Session{
		{ID: 1, Project: "Alpha", Duration: 125, Date: when, Type: SessionWork},
		{ID: 2, Project: "Alpha", Duration: 40, Date: when.Add(time.Hour), Type: SessionBreak},
	}
	require.True(t, s.Set(KeySessions, in))

	var out []Session
	require.True(t, s.Get(KeySessions, &out))
	require.Len(t, out, 2)
	for i := range in {
		assert.Equal(t, in[i].ID, out[i].ID)
		assert.Equal(t, in[i].Duration, out[i].Duration)
		assert.True(t, out[i].Date.Equal(in[i].Date), "session %d date = %v", i, out[i].Date)
	}
}

func TestSetOverwritesWholeValue(t *testing.T) {
	s := newTestStore(t)
	s.Set(KeyTasks, []Task{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}})
	s.Set(KeyTasks, []Task{{ID: 3, Title: "c"}})

	var out []Task
	s.Get(KeyTasks, &out)
	require.Len(t, out, 1)
	assert.Equal(t, int64(3), out[0].ID)
}

func TestGetCorruptValueIsLoggedAndAbsent(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))
	s, err := NewMemory(WithLogger(l))
	require.NoError(t, err)
	defer s.Close()

	s.SetString(KeyNotes, "{not json")
	var notes []Note
	assert.False(t, s.Get(KeyNotes, &notes), "corrupt value should report absent")
	assert.Contains(t, buf.String(), "decode stored value")
}

func TestSetUnencodableValue(t *testing.T) {
	s := newTestStore(t)
	assert.False(t, s.Set("bad", make(chan int)))
	_, ok := s.GetString("bad")
	assert.False(t, ok, "nothing should have been written")
}

func TestSetAfterCloseFails(t *testing.T) {
	s, err := NewMemory()
	require.NoError(t, err)
	s.Close()
	assert.False(t, s.Set(KeyProjects, []Project{}))
}

// ============================================================
// Clear / Keys
// ============================================================

func TestClearKeepsDarkMode(t *testing.T) {
	s := newTestStore(t)
	for _, k := range CollectionKeys {
		s.Set(k, []int{1})
	}
	s.SetDarkMode(true)

	s.Clear()

	keys, err := s.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{KeyDarkMode}, keys)
}

func TestKeysOrdered(t *testing.T) {
	s := newTestStore(t)
	s.Set(KeySessions, []int{})
	s.Set(KeyActivities, []int{})
	s.Set(KeyNotes, []int{})

	keys, err := s.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{KeyActivities, KeyNotes, KeySessions}, keys)
}

func TestDeleteMissingKey(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.Delete("nope"))
}

// ============================================================
// Dark mode
// ============================================================

func TestDarkModeUnset(t *testing.T) {
	s := newTestStore(t)
	_, ok := s.DarkMode()
	assert.False(t, ok)
}

func TestDarkModeRoundTrip(t *testing.T) {
	s := newTestStore(t)
	s.SetDarkMode(true)
	dark, ok := s.DarkMode()
	assert.True(t, ok)
	assert.True(t, dark)
	raw, _ := s.GetString(KeyDarkMode)
	assert.Equal(t, "true", raw)

	s.SetDarkMode(false)
	dark, ok = s.DarkMode()
	assert.True(t, ok)
	assert.False(t, dark)
}

func TestDarkModeGarbage(t *testing.T) {
	s := newTestStore(t)
	s.SetString(KeyDarkMode, "maybe")
	_, ok := s.DarkMode()
	assert.False(t, ok, "garbage value should be treated as unset")
}

// ============================================================
// Models
// ============================================================

func TestReminderDue(t *testing.T) {
	loc := time.FixedZone("test", 2*3600)
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-05-01T14:30", time.Date(2024, 5, 1, 14, 30, 0, 0, loc)},
		{"2024-05-01T14:30:15", time.Date(2024, 5, 1, 14, 30, 15, 0, loc)},
		{"2024-05-01 14:30", time.Date(2024, 5, 1, 14, 30, 0, 0, loc)},
		{"2024-05-01T12:30:00Z", time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := Reminder{Datetime: tt.in}.Due(loc)
		require.NoError(t, err, tt.in)
		assert.True(t, got.Equal(tt.want), "Due(%q) = %v, want %v", tt.in, got, tt.want)
	}

	_, err := Reminder{ID: 7, Datetime: "tomorrow"}.Due(loc)
	assert.Error(t, err)
}
