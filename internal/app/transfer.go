package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sadopc/daybook/internal/calendar"
	"github.com/sadopc/daybook/internal/export"
	"github.com/sadopc/daybook/internal/sessions"
	"github.com/sadopc/daybook/internal/store"
)

// ExportDir is where export files are written.
func (c *Controller) ExportDir() string { return c.exportDir }

func (c *Controller) SetExportDir(dir string) { c.exportDir = dir }

// ExportDocument snapshots every collection.
func (c *Controller) ExportDocument() export.Document {
	doc := export.NewDocument(c.now())
	doc.Activities = c.state.Activities.All()
	doc.Clients = nonNil(c.state.Clients)
	doc.Notes = nonNil(c.state.Notes)
	doc.Projects = nonNil(c.state.Projects)
	doc.Tasks = nonNil(c.state.Tasks)
	doc.Reminders = c.state.Reminders.All()
	doc.Sessions = c.state.Sessions.All()
	return doc
}

// ExportJSON writes a full backup into the export directory.
func (c *Controller) ExportJSON() (string, Notice) {
	path, err := c.exportPath(export.BackupName(c.now()))
	if err == nil {
		err = export.WriteJSON(c.ExportDocument(), path)
	}
	return c.exported("backup", path, err)
}

// ImportJSON replaces every collection present in the backup at path. The
// whole file is decoded before anything changes; on failure state is untouched.
func (c *Controller) ImportJSON(path string) Notice {
	doc, err := export.ReadJSON(path)
	if err != nil {
		c.log.Error("import failed", "path", path, "error", err)
		return warning("Import failed: invalid backup file")
	}
	c.applyDocument(doc)
	c.log.Info("backup imported", "path", path, "export_date", doc.ExportDate)
	return success("Data imported")
}

func (c *Controller) applyDocument(doc *export.Document) {
	st := c.state
	var saved []string
	if doc.Has(store.KeyActivities) {
		st.Activities = calendar.NewBook(doc.Activities)
		saved = append(saved, store.KeyActivities)
	}
	if doc.Has(store.KeyClients) {
		st.Clients = doc.Clients
		saved = append(saved, store.KeyClients)
	}
	if doc.Has(store.KeyNotes) {
		st.Notes = doc.Notes
		saved = append(saved, store.KeyNotes)
	}
	if doc.Has(store.KeyProjects) {
		st.Projects = doc.Projects
		saved = append(saved, store.KeyProjects)
	}
	if doc.Has(store.KeyTasks) {
		st.Tasks = doc.Tasks
		saved = append(saved, store.KeyTasks)
	}
	if doc.Has(store.KeyReminders) {
		st.Reminders = c.newScheduler(doc.Reminders)
		saved = append(saved, store.KeyReminders)
	}
	if doc.Has(store.KeySessions) {
		st.Sessions = sessions.NewLog(doc.Sessions)
		saved = append(saved, store.KeySessions)
	}
	c.replaceState(st)
	for _, key := range saved {
		c.save(key)
	}
}

// ExportDayPDF writes the schedule of date, filtered as the calendar shows it.
func (c *Controller) ExportDayPDF(date time.Time, f calendar.Filter) (string, Notice) {
	path, err := c.exportPath(export.DayPDFName(date))
	if err == nil {
		title := "Schedule - " + calendar.DateKey(date)
		err = export.DayToPDF(title, c.state.Activities.ForDate(date, f), path)
	}
	return c.exported("PDF", path, err)
}

// ExportSessionsXLSX writes today's sessions as a spreadsheet.
func (c *Controller) ExportSessionsXLSX() (string, Notice) {
	now := c.now()
	path, err := c.exportPath(export.SessionsName(now, "xlsx"))
	if err == nil {
		err = export.SessionsToXLSX(c.state.Sessions.Today(now), now.Location(), path)
	}
	return c.exported("Excel", path, err)
}

// ExportSessionsCSV writes today's sessions as CSV.
func (c *Controller) ExportSessionsCSV() (string, Notice) {
	now := c.now()
	path, err := c.exportPath(export.SessionsName(now, "csv"))
	if err == nil {
		err = export.SessionsToCSV(c.state.Sessions.Today(now), now.Location(), path)
	}
	return c.exported("CSV", path, err)
}

func (c *Controller) exportPath(name string) (string, error) {
	if err := os.MkdirAll(c.exportDir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	return filepath.Join(c.exportDir, name), nil
}

func (c *Controller) exported(kind, path string, err error) (string, Notice) {
	if err != nil {
		c.log.Error("export failed", "kind", kind, "path", path, "error", err)
		return "", warning(kind + " export failed")
	}
	c.log.Info("exported", "kind", kind, "path", path)
	return path, success(fmt.Sprintf("%s exported to %s", kind, path))
}
