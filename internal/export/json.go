package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sadopc/daybook/internal/store"
)

// ErrEmptyDocument is returned when a backup holds none of the known collections.
var ErrEmptyDocument = errors.New("backup holds no collections")

// Document is the full backup: every collection plus the export time.
type Document struct {
	Activities []store.Activity `json:"activities"`
	Clients    []store.Client   `json:"clients"`
	Notes      []store.Note     `json:"notes"`
	Projects   []store.Project  `json:"projects"`
	Tasks      []store.Task     `json:"tasks"`
	Reminders  []store.Reminder `json:"reminders"`
	Sessions   []store.Session  `json:"sessions"`
	ExportDate string           `json:"exportDate"`

	present map[string]bool
}

// Has reports whether the decoded document carried key. Documents built in
// code carry every collection.
func (d *Document) Has(key string) bool {
	if d.present == nil {
		return true
	}
	return d.present[key]
}

// NewDocument stamps a document with the export time.
func NewDocument(now time.Time) Document {
	return Document{ExportDate: now.UTC().Format(time.RFC3339)}
}

// WriteJSON writes doc as indented JSON.
func WriteJSON(doc Document, path string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

// ReadJSON loads and validates a backup file.
func ReadJSON(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open backup: %w", err)
	}
	defer f.Close()
	return DecodeDocument(f)
}

// DecodeDocument parses a backup. Either every present collection decodes
// or an error is returned; a partial document is never produced. Null and
// missing collections are reported absent by Has.
func DecodeDocument(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("parse backup: %w", err)
	}

	doc := &Document{present: map[string]bool{}}
	targets := map[string]any{
		store.KeyActivities: &doc.Activities,
		store.KeyClients:    &doc.Clients,
		store.KeyNotes:      &doc.Notes,
		store.KeyProjects:   &doc.Projects,
		store.KeyTasks:      &doc.Tasks,
		store.KeyReminders:  &doc.Reminders,
		store.KeySessions:   &doc.Sessions,
	}
	for _, key := range store.CollectionKeys {
		raw, ok := fields[key]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			continue
		}
		if err := json.Unmarshal(raw, targets[key]); err != nil {
			return nil, fmt.Errorf("parse %s: %w", key, err)
		}
		doc.present[key] = true
	}
	if len(doc.present) == 0 {
		return nil, ErrEmptyDocument
	}

	if raw, ok := fields["exportDate"]; ok {
		if err := json.Unmarshal(raw, &doc.ExportDate); err != nil {
			return nil, fmt.Errorf("parse exportDate: %w", err)
		}
	}
	return doc, nil
}

// BackupName is the default backup file name for date.
func BackupName(date time.Time) string {
	return fmt.Sprintf("daybook-backup-%s.json", date.Format(store.DateLayout))
}

// DayPDFName is the default schedule file name for date.
func DayPDFName(date time.Time) string {
	return fmt.Sprintf("schedule-%s.pdf", date.Format(store.DateLayout))
}

// SessionsName is the default sessions export name for date; ext excludes the dot.
func SessionsName(date time.Time, ext string) string {
	return fmt.Sprintf("sessions-%s.%s", date.Format(store.DateLayout), ext)
}
