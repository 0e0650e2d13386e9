// Package export renders expenses as CSV or XLSX spreadsheets.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"localtrack/internal/models"
	"localtrack/internal/util"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Expenses"

var header = []string{"Date", "Type", "Category", "Amount", "Litres", "Description"}

func row(e *models.Expense) []string {
	litres := ""
	if l := e.FuelLitres(); l > 0 {
		litres = strconv.FormatFloat(l, 'f', -1, 64)
	}
	return []string{
		e.Date,
		string(e.Type),
		string(e.Category),
		util.FormatAmount(e.Amount),
		litres,
		e.Description,
	}
}

// WriteCSV writes a UTF-8 CSV with a byte order mark so spreadsheet apps
// pick the right encoding.
func WriteCSV(w io.Writer, expenses []models.Expense) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := range expenses {
		if err := cw.Write(row(&expenses[i])); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes a single-sheet workbook. Amounts and litres are stored as
// numbers so they can be summed.
func WriteXLSX(w io.Writer, expenses []models.Expense) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("set header: %w", err)
		}
	}

	for idx := range expenses {
		e := &expenses[idx]
		r := idx + 2
		amount, _ := strconv.ParseFloat(util.FormatAmount(e.Amount), 64)
		values := []interface{}{e.Date, string(e.Type), string(e.Category), amount, nil, e.Description}
		if l := e.FuelLitres(); l > 0 {
			values[4] = l
		}
		cell, _ := excelize.CoordinatesToCellName(1, r)
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", r, err)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "C", 14)
	f.SetColWidth(sheetName, "D", "E", 10)
	f.SetColWidth(sheetName, "F", "F", 30)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
