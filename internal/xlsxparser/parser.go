// =============================================================================
// Sales Ledger Report - XLSX Ledger Reader
// =============================================================================
//
// This module reads a sales ledger kept in an XLSX workbook and turns it into
// the same raw rows a CSV ledger would produce, so the normal candidate
// typing and validator apply unchanged.
//
// WORKBOOK STRUCTURE (Expected Columns):
//
//   | Column A   | Column B | Column C   | Column D | Column E    |
//   |------------|----------|------------|----------|-------------|
//   | Date       | SKU      | Unit Price | Quantity | Total Price |
//   | 2019-01-01 | Trilogy  | 160        | 5        | 800         |
//
// The first sheet is read unless a sheet name is given. Empty rows are
// skipped, and row numbers in diagnostics match the spreadsheet row.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/salesreport/internal/types"
)

// Extension is the file extension of ledger workbooks.
const Extension = ".xlsx"

// IsWorkbook reports whether a path names an XLSX workbook.
func IsWorkbook(path string) bool {
	return strings.EqualFold(filepath.Ext(path), Extension)
}

// ReadRows reads a ledger workbook into raw rows. Cells are never joined
// and re-split, so a cell holding the CSV delimiter ("Cake, Fudge" or a
// formatted "1,500") stays one field.
//
// PARAMETERS:
//   - path: The path to the XLSX file.
//   - sheetName: The sheet to read; "" selects the first sheet.
//
// RETURNS:
//   - One RawRow per non-empty spreadsheet row after the header, numbered
//     by spreadsheet row.
//   - An error if the file or sheet cannot be read.
func ReadRows(path, sheetName string) ([]types.RawRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}
	if sheetName == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	result := make([]types.RawRow, 0, len(rows))
	headerSkipped := false

	for i, row := range rows {
		if isRowEmpty(row) {
			continue
		}
		if !headerSkipped {
			headerSkipped = true
			continue
		}
		result = append(result, toRawRow(i+1, row))
	}

	return result, nil
}

// toRawRow trims the first five cells into positional fields. Missing cells
// stay empty so validation reports them.
func toRawRow(rowNumber int, row []string) types.RawRow {
	if len(row) > types.FieldCount {
		row = row[:types.FieldCount]
	}

	raw := types.RawRow{LineNumber: rowNumber}
	cells := make([]string, len(row))
	for i, cell := range row {
		cells[i] = strings.TrimSpace(cell)
		raw.Fields[i] = cells[i]
	}
	raw.Raw = strings.Join(cells, ",")

	return raw
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
