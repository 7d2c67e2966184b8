// =============================================================================
// Sales Ledger Report - XLSX Report Writer
// =============================================================================
//
// This module writes a report.Report to an XLSX workbook, one sheet per
// report section:
//
//   | Sheet        | Columns                                                |
//   |--------------|--------------------------------------------------------|
//   | Summary      | Source, Valid Records, Invalid Records, Total Sales    |
//   | Issues       | Row, Raw, Reasons                                      |
//   | Month Totals | Month, Total                                           |
//   | Most Popular | Month, Item, Qty, Min Orders, Max Orders, Avg Orders   |
//   | Top Revenue  | Month, Item, Revenue                                   |
//   | Growth       | Item, From, To, Growth %                               |
//
// Numeric values are written as numbers; a not-applicable growth is written
// as the text "N/A".
//
// =============================================================================

package xlsxreport

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/salesreport/internal/report"
)

// Sheet names, in workbook order.
const (
	SheetSummary     = "Summary"
	SheetIssues      = "Issues"
	SheetMonthTotals = "Month Totals"
	SheetPopular     = "Most Popular"
	SheetTopRevenue  = "Top Revenue"
	SheetGrowth      = "Growth"
)

// sheetData is the header row and the data rows of one sheet.
type sheetData struct {
	name    string
	headers []interface{}
	rows    [][]interface{}
}

// =============================================================================
// WRITER
// =============================================================================

// Write saves the report as an XLSX workbook at outputPath.
//
// PARAMETERS:
//   - outputPath: The destination file path (should end in .xlsx).
//   - rep: The report to write.
//
// RETURNS:
//   - An error if the workbook cannot be built or saved.
func Write(outputPath string, rep *report.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, sheet := range buildSheets(rep) {
		if i == 0 {
			// A new workbook starts with one default sheet; reuse it.
			if err := f.SetSheetName(f.GetSheetName(0), sheet.name); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet.name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sheet.name, err)
		}

		if err := writeSheet(f, sheet, headerStyle); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}

func writeSheet(f *excelize.File, sheet sheetData, headerStyle int) error {
	if err := f.SetSheetRow(sheet.name, "A1", &sheet.headers); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet.name, err)
	}

	lastHeader, err := excelize.CoordinatesToCellName(len(sheet.headers), 1)
	if err != nil {
		return fmt.Errorf("failed to resolve header range: %w", err)
	}
	if err := f.SetCellStyle(sheet.name, "A1", lastHeader, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet.name, err)
	}

	for i := range sheet.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to resolve cell: %w", err)
		}
		if err := f.SetSheetRow(sheet.name, cell, &sheet.rows[i]); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet.name, i+2, err)
		}
	}

	return nil
}

// =============================================================================
// SHEET CONTENT
// =============================================================================

func buildSheets(rep *report.Report) []sheetData {
	summary := sheetData{
		name:    SheetSummary,
		headers: []interface{}{"Source", "Valid Records", "Invalid Records", "Total Sales"},
		rows: [][]interface{}{{
			rep.Source, rep.ValidRecords, len(rep.ValidationIssues), rep.TotalSales.InexactFloat64(),
		}},
	}

	issues := sheetData{
		name:    SheetIssues,
		headers: []interface{}{"Row", "Raw", "Reasons"},
	}
	for _, inv := range rep.ValidationIssues {
		reasons := make([]string, len(inv.Reasons))
		for i, r := range inv.Reasons {
			reasons[i] = string(r)
		}
		issues.rows = append(issues.rows, []interface{}{inv.RowNumber, inv.Raw, strings.Join(reasons, "; ")})
	}

	months := sheetData{
		name:    SheetMonthTotals,
		headers: []interface{}{"Month", "Total"},
	}
	for _, m := range rep.MonthTotals {
		months.rows = append(months.rows, []interface{}{m.Month, m.Total.InexactFloat64()})
	}

	popular := sheetData{
		name:    SheetPopular,
		headers: []interface{}{"Month", "Item", "Qty", "Min Orders", "Max Orders", "Avg Orders"},
	}
	for _, p := range rep.MostPopular {
		popular.rows = append(popular.rows, []interface{}{
			p.Month, p.Item, p.TotalQuantity.InexactFloat64(), p.Orders.Min, p.Orders.Max, p.Orders.Mean,
		})
	}

	top := sheetData{
		name:    SheetTopRevenue,
		headers: []interface{}{"Month", "Item", "Revenue"},
	}
	for _, r := range rep.TopRevenue {
		top.rows = append(top.rows, []interface{}{r.Month, r.Item, r.Revenue.InexactFloat64()})
	}

	growth := sheetData{
		name:    SheetGrowth,
		headers: []interface{}{"Item", "From", "To", "Growth %"},
	}
	for _, g := range rep.MonthToMonthGrowth {
		for _, step := range g.Steps {
			growth.rows = append(growth.rows, []interface{}{g.Item, step.From, step.To, growthCell(step.Growth)})
		}
	}

	return []sheetData{summary, issues, months, popular, top, growth}
}

func growthCell(g report.Growth) interface{} {
	pct, ok := g.Value()
	if !ok {
		return g.String()
	}
	return pct.Round(2).InexactFloat64()
}
