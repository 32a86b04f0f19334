package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Persisted keys.
const (
	KeyActivities = "activities"
	KeyClients    = "clients"
	KeyNotes      = "notes"
	KeyProjects   = "projects"
	KeyTasks      = "tasks"
	KeyReminders  = "reminders"
	KeySessions   = "sessions"
	KeyDarkMode   = "darkMode"
)

// CollectionKeys lists the keys holding JSON arrays, in backup order.
// Clear removes exactly these.
var CollectionKeys = []string{
	KeyActivities,
	KeyClients,
	KeyNotes,
	KeyProjects,
	KeyTasks,
	KeyReminders,
	KeySessions,
}

// Get decodes the value stored under key into dst. It returns false when the
// key is absent or the stored value cannot be decoded; failures are logged.
func (s *Store) Get(key string, dst any) bool {
	raw, ok := s.GetString(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.log.Error("decode stored value", "key", key, "error", err)
		return false
	}
	s.log.Debug("loaded", "key", key)
	return true
}

// Set encodes value as JSON and writes it under key. A failed write is
// logged and reported as false; callers keep their in-memory state.
func (s *Store) Set(key string, value any) bool {
	data, err := json.Marshal(value)
	if err != nil {
		s.log.Error("encode value", "key", key, "error", err)
		return false
	}
	return s.SetString(key, string(data))
}

// GetString returns the raw stored string for key.
func (s *Store) GetString(key string) (string, bool) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		s.log.Debug("no data", "key", key)
		return "", false
	}
	if err != nil {
		s.log.Error("read key", "key", key, "error", err)
		return "", false
	}
	return value, true
}

// SetString writes a raw string under key.
func (s *Store) SetString(key, value string) bool {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, now,
	)
	if err != nil {
		s.log.Error("write key", "key", key, "error", err)
		return false
	}
	s.log.Debug("saved", "key", key, "bytes", len(value))
	return true
}

// Delete removes key. Missing keys are not an error.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Clear removes every collection key. Scalar flags such as darkMode survive.
func (s *Store) Clear() {
	for _, k := range CollectionKeys {
		if err := s.Delete(k); err != nil {
			s.log.Error("clear key", "key", k, "error", err)
		}
	}
	s.log.Info("storage cleared")
}

// Keys returns the stored keys in lexical order.
func (s *Store) Keys() ([]string, error) {
	rows, err := s.db.Query(`SELECT key FROM kv ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
