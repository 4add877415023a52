package dashboard

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/iliyamo/table-reservation-web/internal/model"
)

// ExportSheet is the worksheet holding the reservation rows.
const ExportSheet = "Reservations"

var exportHeaders = []any{"ID", "Customer", "Contact", "Date", "Time", "Tables", "Status"}

// WriteWorkbook writes the reservations as an xlsx workbook: a header row,
// one row per reservation in API order, then a summary block with the four
// dashboard counters.
func WriteWorkbook(w io.Writer, rs []model.Reservation, generated time.Time) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("export: close workbook: %v", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(ExportSheet, "A1", &exportHeaders); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
		_ = f.SetCellStyle(ExportSheet, "A1", last, headerStyle)
	}

	row := 2
	for _, r := range rs {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		values := []any{r.ID, r.CustomerName, r.ContactInfo, r.ReservationDate, r.ReservationTime, r.TableLabels(), r.Status.String()}
		if err := f.SetSheetRow(ExportSheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
		row++
	}

	c := CountStatuses(rs)
	row++
	summary := [][]any{
		{"Generated", generated.Format("2006-01-02 15:04")},
		{"All bookings", c.Total},
		{"New bookings", c.Pending},
		{"Accepted", c.Accepted},
		{"Rejected", c.Rejected},
	}
	for _, values := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(ExportSheet, cell, &values); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
		row++
	}
	_ = f.SetColWidth(ExportSheet, "B", "C", 24)
	_ = f.SetColWidth(ExportSheet, "F", "F", 18)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
