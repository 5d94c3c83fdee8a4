package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/de-tools/analytix/pkg/models/domain"
)

// DefaultSheetName names the worksheet of Excel exports.
const DefaultSheetName = "Analytics"

// WriteExcel writes the report as an Excel workbook with a single worksheet
// holding a header row followed by the data rows.
func WriteExcel(w io.Writer, report *domain.Report, sheet string) error {
	f, err := newWorkbook(report, sheet)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SaveExcel writes the report to path, appending ".xlsx" when missing, and
// returns the final path.
func SaveExcel(path string, report *domain.Report, sheet string) (string, error) {
	path = withExtension(path, ".xlsx")
	err := saveFile(path, func(w io.Writer) error {
		return WriteExcel(w, report, sheet)
	})
	return path, err
}

func newWorkbook(report *domain.Report, sheet string) (*excelize.File, error) {
	if sheet == "" {
		sheet = DefaultSheetName
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("invalid sheet name %q: %w", sheet, err)
	}

	if err := setRow(f, sheet, 1, report.Columns()); err != nil {
		_ = f.Close()
		return nil, err
	}
	for i, row := range report.Rows() {
		if err := setRow(f, sheet, i+2, row); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	return f, nil
}

func setRow[T any](f *excelize.File, sheet string, row int, values []T) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}
