package attendance

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
)

// ExportHeader is the first row of every export.
var ExportHeader = []string{"Employee ID", "Name", "Date", "Time", "Status"}

const exportSheet = "Attendance"

// ExportFilename is the name used when the caller does not choose one,
// e.g. attendance_export_20240101_170000.csv.
func ExportFilename(now time.Time, ext string) string {
	return fmt.Sprintf("attendance_export_%s%s", now.Format("20060102_150405"), ext)
}

func (l *Ledger) exportPath(path string, now time.Time, ext string) string {
	if path != "" {
		return path
	}
	return filepath.Join(l.exportDir, ExportFilename(now, ext))
}

func (l *Ledger) exportRows() [][]string {
	rows := make([][]string, 0, len(l.records)+1)
	rows = append(rows, ExportHeader)
	for _, r := range l.records {
		rows = append(rows, []string{string(r.EmployeeID), r.EmployeeName, r.Date, r.Time, string(r.Status)})
	}
	return rows
}

// ExportCSV writes every record, in append order, under a header row. An
// empty path picks ExportFilename in the export directory. It returns the
// path written. Nothing is written for an empty ledger.
func (l *Ledger) ExportCSV(path string, now time.Time) (string, error) {
	if len(l.records) == 0 {
		return "", ErrEmptyLedger
	}
	path = l.exportPath(path, now, ".csv")

	f, err := os.Create(path)
	if err != nil {
		return "", &PersistenceError{Op: "export", Path: path, Err: err}
	}

	w := csv.NewWriter(f)
	w.UseCRLF = true
	if err := w.WriteAll(l.exportRows()); err != nil {
		f.Close()
		return "", &PersistenceError{Op: "export", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return "", &PersistenceError{Op: "export", Path: path, Err: err}
	}

	l.logger.Debug("ledger exported", "path", path, "records", len(l.records), "format", "csv")
	return path, nil
}

// ExportXLSX writes the same rows as ExportCSV to a workbook with a single
// "Attendance" sheet.
func (l *Ledger) ExportXLSX(path string, now time.Time) (string, error) {
	if len(l.records) == 0 {
		return "", ErrEmptyLedger
	}
	path = l.exportPath(path, now, ".xlsx")

	f := excelize.NewFile()
	defer f.Close()

	if err := writeSheet(f, l.exportRows()); err != nil {
		return "", &PersistenceError{Op: "export", Path: path, Err: err}
	}
	if err := f.SaveAs(path); err != nil {
		return "", &PersistenceError{Op: "export", Path: path, Err: err}
	}

	l.logger.Debug("ledger exported", "path", path, "records", len(l.records), "format", "xlsx")
	return path, nil
}

func writeSheet(f *excelize.File, rows [][]string) error {
	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(exportSheet, 1, 1, bold); err != nil {
		return err
	}
	return f.SetColWidth(exportSheet, "A", "E", 16)
}
