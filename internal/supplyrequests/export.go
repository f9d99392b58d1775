package supplyrequests

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ContentTypeXLSX is the media type of WriteWorkbook output.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportSheet is the worksheet name used by WriteWorkbook.
const ExportSheet = "Supply Requests"

var exportHeaders = []any{
	"ID", "Item", "Quantity", "Priority", "Status", "Requested By",
	"Needed By", "Notes", "Preferred Supplier", "Date Requested",
}

// WriteWorkbook renders views as a single-sheet xlsx workbook.
func WriteWorkbook(w io.Writer, views []View) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		return fmt.Errorf("export: rename sheet: %w", err)
	}
	header := exportHeaders
	if err := f.SetSheetRow(ExportSheet, "A1", &header); err != nil {
		return fmt.Errorf("export: header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("export: style: %w", err)
	}
	if err := f.SetRowStyle(ExportSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("export: header style: %w", err)
	}

	for i, v := range views {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			v.ID, v.ItemName, v.QuantityRequested, v.Priority, v.Status, v.RequestedBy,
			deref(v.NeededBy), deref(v.Notes), deref(v.SupplierInfo), v.DateRequested,
		}
		if err := f.SetSheetRow(ExportSheet, cell, &row); err != nil {
			return fmt.Errorf("export: row %d: %w", i+2, err)
		}
	}
	if err := f.SetColWidth(ExportSheet, "B", "B", 30); err != nil {
		return fmt.Errorf("export: column width: %w", err)
	}
	return f.Write(w)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
