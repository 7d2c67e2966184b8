// =============================================================================
// Sales Ledger Report - Renderers
// =============================================================================
//
// This package turns a report.Report into bytes. Renderers never compute
// anything; they only lay out values the calculators already produced.
//
// FORMATS:
//   - text:  the classic sectioned console layout
//   - table: the same sections as bordered tables
//   - json:  indented JSON document
//   - yaml:  YAML document
//   - xml:   XML document (see internal/xmlwriter)
//
// The xlsx format lives in internal/xlsxreport because it needs a file path.
//
// =============================================================================

package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/salesreport/internal/report"
	"github.com/ginjaninja78/salesreport/internal/validation"
)

// Section titles, shared by every layout.
const (
	SectionIssues      = "DATA VALIDATION ISSUES"
	SectionTotalSales  = "TOTAL SALES"
	SectionMonthTotals = "MONTH-WISE TOTALS"
	SectionPopular     = "MOST POPULAR ITEM PER MONTH"
	SectionTopRevenue  = "TOP REVENUE ITEM PER MONTH"
	SectionGrowth      = "MONTH-TO-MONTH GROWTH PER ITEM"
)

// =============================================================================
// CLASSIC TEXT LAYOUT
// =============================================================================

// Text writes the classic layout: one "===== TITLE =====" header per section
// followed by its lines and a blank line.
func Text(w io.Writer, rep *report.Report) error {
	var b strings.Builder

	header(&b, SectionIssues)
	b.WriteString(validation.FormatInvalid(rep.ValidationIssues))
	b.WriteString("\n")

	header(&b, SectionTotalSales)
	fmt.Fprintf(&b, "Total Sales: %s\n\n", rep.TotalSales)

	header(&b, SectionMonthTotals)
	for _, m := range rep.MonthTotals {
		fmt.Fprintf(&b, "%s: %s\n", m.Month, m.Total)
	}
	b.WriteString("\n")

	header(&b, SectionPopular)
	for _, p := range rep.MostPopular {
		fmt.Fprintf(&b, "%s: %s (Qty: %s)\n", p.Month, p.Item, p.TotalQuantity)
		fmt.Fprintf(&b, "  Min Orders: %s | Max Orders: %s | Avg Orders: %.2f\n",
			FormatFloat(p.Orders.Min), FormatFloat(p.Orders.Max), p.Orders.Mean)
	}
	b.WriteString("\n")

	header(&b, SectionTopRevenue)
	for _, r := range rep.TopRevenue {
		fmt.Fprintf(&b, "%s: %s (Revenue: %s)\n", r.Month, r.Item, r.Revenue)
	}
	b.WriteString("\n")

	header(&b, SectionGrowth)
	for _, g := range rep.MonthToMonthGrowth {
		fmt.Fprintf(&b, "Item: %s\n", g.Item)
		for _, step := range g.Steps {
			fmt.Fprintf(&b, "  %s -> %s: %s\n", step.From, step.To, step.Growth)
		}
	}
	b.WriteString("\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write text report: %w", err)
	}
	return nil
}

// Issues writes only the validation section and a summary line.
func Issues(w io.Writer, rep *report.Report) error {
	var b strings.Builder

	header(&b, SectionIssues)
	b.WriteString(validation.FormatInvalid(rep.ValidationIssues))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%d valid, %d invalid\n", rep.ValidRecords, len(rep.ValidationIssues))

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write validation report: %w", err)
	}
	return nil
}

func header(b *strings.Builder, title string) {
	fmt.Fprintf(b, "===== %s =====\n", title)
}

// FormatFloat prints a float the shortest way that round-trips, so whole
// numbers have no decimal part.
func FormatFloat(f float64) string {
	return decimal.NewFromFloat(f).String()
}
