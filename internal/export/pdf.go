package export

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/sadopc/daybook/internal/store"
)

const (
	pdfPageBottom    = 270.0
	descriptionLimit = 60
)

// DayToPDF writes the schedule of one day. Activities are expected in
// display order.
func DayToPDF(title string, activities []store.Activity, path string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 20)
	pdf.Text(20, 20, tr(title))

	pdf.SetFont("Helvetica", "", 12)
	y := 40.0

	if len(activities) == 0 {
		pdf.Text(20, y, "No activities planned")
	}
	for _, a := range activities {
		if y > pdfPageBottom {
			pdf.AddPage()
			y = 20
		}

		pdf.Text(20, y, fmt.Sprintf("%s - %s", a.StartTime, a.EndTime))
		pdf.Text(60, y, tr(a.Title))
		pdf.Text(150, y, "["+a.Type+"]")

		if a.Client != "" {
			y += 7
			pdf.Text(60, y, tr("Client: "+a.Client))
		}
		if a.Description != "" {
			y += 7
			pdf.Text(60, y, tr(Truncate(a.Description, descriptionLimit)))
		}
		y += 12
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// Truncate cuts s to at most n characters.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
