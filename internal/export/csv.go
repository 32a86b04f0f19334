package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/daybook/internal/store"
)

var sessionHeader = []string{"Project", "Duration (min)", "Duration", "Type", "Time"}

// SessionsToCSV writes one row per session, timestamps rendered in loc.
func SessionsToCSV(sessions []store.Session, loc *time.Location, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close csv file: %w", cerr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(sessionHeader); err != nil {
		return err
	}

	for _, r := range sessionRows(sessions, loc) {
		row := []string{
			r.project,
			fmt.Sprintf("%d", r.minutes),
			r.duration,
			r.typ,
			r.clock,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

type sessionRow struct {
	project  string
	minutes  int64
	duration string
	typ      string
	clock    string
}

func sessionRows(sessions []store.Session, loc *time.Location) []sessionRow {
	rows := make([]sessionRow, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, sessionRow{
			project:  s.Project,
			minutes:  s.Duration / 60,
			duration: formatDuration(s.Duration),
			typ:      TypeLabel(s.Type),
			clock:    s.Date.In(loc).Format("15:04:05"),
		})
	}
	return rows
}

// TypeLabel is the human label of a session type.
func TypeLabel(typ string) string {
	if typ == store.SessionWork {
		return "Work"
	}
	return "Break"
}

func formatDuration(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
