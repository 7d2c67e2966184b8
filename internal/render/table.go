package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ginjaninja78/salesreport/internal/report"
)

var titleStyle = lipgloss.NewStyle().Bold(true)

// Table writes every section as a bordered table.
func Table(w io.Writer, rep *report.Report) error {
	sections := []string{
		section(SectionIssues, issuesTable(rep)),
		section(SectionTotalSales, newTable().
			Headers("Valid Records", "Total Sales").
			Row(strconv.Itoa(rep.ValidRecords), rep.TotalSales.String()).
			String()),
		section(SectionMonthTotals, monthTotalsTable(rep)),
		section(SectionPopular, popularTable(rep)),
		section(SectionTopRevenue, topRevenueTable(rep)),
		section(SectionGrowth, growthTable(rep)),
	}

	if _, err := io.WriteString(w, strings.Join(sections, "\n")+"\n"); err != nil {
		return fmt.Errorf("failed to write table report: %w", err)
	}
	return nil
}

func newTable() *table.Table {
	return table.New().Border(lipgloss.NormalBorder())
}

func section(title, body string) string {
	return titleStyle.Render(title) + "\n" + body + "\n"
}

func issuesTable(rep *report.Report) string {
	if len(rep.ValidationIssues) == 0 {
		return "No issues found."
	}

	t := newTable().Headers("Row", "Raw", "Reasons")
	for _, inv := range rep.ValidationIssues {
		reasons := make([]string, len(inv.Reasons))
		for i, r := range inv.Reasons {
			reasons[i] = string(r)
		}
		t.Row(strconv.Itoa(inv.RowNumber), inv.Raw, strings.Join(reasons, "\n"))
	}
	return t.String()
}

func monthTotalsTable(rep *report.Report) string {
	t := newTable().Headers("Month", "Total")
	for _, m := range rep.MonthTotals {
		t.Row(m.Month, m.Total.String())
	}
	return t.String()
}

func popularTable(rep *report.Report) string {
	t := newTable().Headers("Month", "Item", "Qty", "Min Orders", "Max Orders", "Avg Orders")
	for _, p := range rep.MostPopular {
		t.Row(p.Month, p.Item, p.TotalQuantity.String(),
			FormatFloat(p.Orders.Min), FormatFloat(p.Orders.Max),
			strconv.FormatFloat(p.Orders.Mean, 'f', 2, 64))
	}
	return t.String()
}

func topRevenueTable(rep *report.Report) string {
	t := newTable().Headers("Month", "Item", "Revenue")
	for _, r := range rep.TopRevenue {
		t.Row(r.Month, r.Item, r.Revenue.String())
	}
	return t.String()
}

func growthTable(rep *report.Report) string {
	t := newTable().Headers("Item", "From", "To", "Growth")
	for _, g := range rep.MonthToMonthGrowth {
		for _, step := range g.Steps {
			t.Row(g.Item, step.From, step.To, step.Growth.String())
		}
	}
	return t.String()
}
