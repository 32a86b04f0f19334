package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/sadopc/daybook/internal/store"
)

const sessionsSheet = "Sessions"

// SessionsToXLSX writes a workbook with a single "Sessions" sheet.
func SessionsToXLSX(sessions []store.Session, loc *time.Location, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sessionsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := []any{"Project", "Duration (min)", "Type", "Time"}
	if err := setRow(f, 1, header); err != nil {
		return err
	}
	for i, r := range sessionRows(sessions, loc) {
		if err := setRow(f, i+2, []any{r.project, r.minutes, r.typ, r.clock}); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sessionsSheet, cell, v); err != nil {
			return fmt.Errorf("set %s: %w", cell, err)
		}
	}
	return nil
}
