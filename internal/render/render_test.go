package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/salesreport/internal/config"
	"github.com/ginjaninja78/salesreport/internal/pipeline"
	"github.com/ginjaninja78/salesreport/internal/report"
	"github.com/ginjaninja78/salesreport/internal/sample"
	"github.com/ginjaninja78/salesreport/internal/types"
)

func sampleReport(t *testing.T) *report.Report {
	t.Helper()
	result := pipeline.New(config.DefaultCSVSettings(), zerolog.Nop()).Run(sample.Name, sample.Lines())
	return result.Report
}

func smallReport() *report.Report {
	return &report.Report{
		ValidRecords: 2,
		TotalSales:   decimal.NewFromInt(1080),
		MonthTotals: []report.MonthTotal{
			{Month: "2019-01", Total: decimal.NewFromInt(1080)},
		},
		MostPopular: []report.PopularItem{{
			Month:         "2019-01",
			Item:          "A",
			TotalQuantity: decimal.NewFromInt(6),
			Orders:        report.OrderStats{Min: 1, Max: 5, Mean: 3},
		}},
		TopRevenue: []report.RevenueItem{
			{Month: "2019-01", Item: "A", Revenue: decimal.NewFromInt(1080)},
		},
		MonthToMonthGrowth: []report.ItemGrowth{{
			Item: "A",
			Steps: []report.GrowthStep{
				{From: "2019-01", To: "2019-02", Growth: report.Percent(decimal.NewFromInt(-100))},
				{From: "2019-02", To: "2019-03", Growth: report.NotApplicable()},
			},
		}},
	}
}

func TestText_ClassicLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, smallReport()))

	expected := strings.Join([]string{
		"===== DATA VALIDATION ISSUES =====",
		"No issues found.",
		"",
		"===== TOTAL SALES =====",
		"Total Sales: 1080",
		"",
		"===== MONTH-WISE TOTALS =====",
		"2019-01: 1080",
		"",
		"===== MOST POPULAR ITEM PER MONTH =====",
		"2019-01: A (Qty: 6)",
		"  Min Orders: 1 | Max Orders: 5 | Avg Orders: 3.00",
		"",
		"===== TOP REVENUE ITEM PER MONTH =====",
		"2019-01: A (Revenue: 1080)",
		"",
		"===== MONTH-TO-MONTH GROWTH PER ITEM =====",
		"Item: A",
		"  2019-01 -> 2019-02: -100.00%",
		"  2019-02 -> 2019-03: N/A",
		"",
	}, "\n") + "\n"

	assert.Equal(t, expected, buf.String())
}

func TestText_Sample(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, sampleReport(t)))
	out := buf.String()

	assert.Contains(t, out, "Row 58: 2019-03-01,Vanilla Single Scoop,50,4,100\n  - Unit Price * Quantity !== Total Price\n")
	assert.Contains(t, out, "Row 59: 2019-03-01,Cafe Caramel,160,0,160\n  - Quantity < 1\n  - Unit Price * Quantity !== Total Price\n")
	assert.Contains(t, out, "Total Sales: 18820\n")
	assert.Contains(t, out, "2019-01: 6910\n2019-02: 5530\n2019-03: 6380\n")
	// Butterscotch and Hot Chocolate Fudge tie at 13; Butterscotch appears first.
	assert.Contains(t, out, "2019-01: Butterscotch Single Scoop (Qty: 13)\n  Min Orders: 3 | Max Orders: 5 | Avg Orders: 4.33\n")
	assert.Contains(t, out, "2019-03: Cake Fudge (Qty: 20)\n")
	assert.Contains(t, out, "Item: Almond Fudge\n  2019-01 -> 2019-02: N/A\n  2019-02 -> 2019-03: N/A\n")
}

func TestIssues(t *testing.T) {
	var buf bytes.Buffer
	rep := smallReport()
	rep.ValidationIssues = []types.InvalidRecord{{
		RowNumber: 4,
		Raw:       "bad,row",
		Reasons:   []types.Reason{types.ReasonMalformedDate},
	}}

	require.NoError(t, Issues(&buf, rep))
	assert.Equal(t,
		"===== DATA VALIDATION ISSUES =====\nRow 4: bad,row\n  - Date is malformed\n\n2 valid, 1 invalid\n",
		buf.String())
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Table(&buf, smallReport()))
	out := buf.String()

	for _, title := range []string{SectionIssues, SectionTotalSales, SectionMonthTotals, SectionPopular, SectionTopRevenue, SectionGrowth} {
		assert.Contains(t, out, title)
	}
	assert.Contains(t, out, "No issues found.")
	assert.Contains(t, out, "-100.00%")
	assert.Contains(t, out, "N/A")
	assert.Contains(t, out, "3.00")
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, smallReport()))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "1080", decoded["total_sales"])

	growth := decoded["month_to_month_growth"].([]interface{})[0].(map[string]interface{})
	steps := growth["steps"].([]interface{})
	assert.Equal(t, "-100.00", steps[0].(map[string]interface{})["growth"])
	assert.Equal(t, "N/A", steps[1].(map[string]interface{})["growth"])
}

func TestYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, YAML(&buf, smallReport()))

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 2, decoded["valid_records"])
	assert.Contains(t, buf.String(), "growth: N/A")
	assert.Contains(t, buf.String(), "item: A")
}

func TestRender_Dispatch(t *testing.T) {
	rep := smallReport()

	for _, format := range []string{config.FormatText, config.FormatTable, config.FormatJSON, config.FormatYAML, config.FormatXML} {
		var buf bytes.Buffer
		assert.NoError(t, Render(&buf, format, rep), format)
		assert.NotEmpty(t, buf.String(), format)
	}

	assert.Error(t, Render(&bytes.Buffer{}, config.FormatXLSX, rep))
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".json", Extension(config.FormatJSON))
	assert.Equal(t, ".yaml", Extension(config.FormatYAML))
	assert.Equal(t, ".xlsx", Extension(config.FormatXLSX))
	assert.Equal(t, ".xml", Extension(config.FormatXML))
	assert.Equal(t, ".txt", Extension(config.FormatText))
	assert.Equal(t, ".txt", Extension(config.FormatTable))
}
