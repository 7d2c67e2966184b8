package xmlwriter

import (
	"bytes"
	"encoding/xml"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/salesreport/internal/report"
	"github.com/ginjaninja78/salesreport/internal/types"
)

func testReport() *report.Report {
	return &report.Report{
		Source:       "ledger & co.csv",
		ValidRecords: 2,
		ValidationIssues: []types.InvalidRecord{{
			RowNumber: 58,
			Raw:       "2019-03-01,Vanilla <Single>,50,4,100",
			Reasons:   []types.Reason{types.ReasonProductMismatch},
		}},
		TotalSales: decimal.NewFromInt(1080),
		MonthTotals: []report.MonthTotal{
			{Month: "2019-01", Total: decimal.NewFromInt(1080)},
		},
		MostPopular: []report.PopularItem{{
			Month: "2019-01", Item: "A", TotalQuantity: decimal.NewFromInt(6),
			Orders: report.OrderStats{Min: 1, Max: 5, Mean: 3},
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

func assertWellFormed(t *testing.T, data []byte) {
	t.Helper()
	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		_, err := decoder.Token()
		if err == io.EOF {
			return
		}
		require.NoError(t, err)
	}
}

func TestGenerate(t *testing.T) {
	data, err := Generate(testReport())
	require.NoError(t, err)
	assertWellFormed(t, data)

	out := string(data)
	assert.Contains(t, out, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, out, `<salesReport source="ledger &amp; co.csv" validRecords="2" invalidRecords="1">`)
	assert.Contains(t, out, "<raw>2019-03-01,Vanilla &lt;Single&gt;,50,4,100</raw>")
	assert.Contains(t, out, "<totalSales>1080</totalSales>")
	assert.Contains(t, out, `<month key="2019-01">1080</month>`)
	assert.Contains(t, out, `minOrders="1" maxOrders="5" avgOrders="3.00"/>`)
	assert.Contains(t, out, `<step from="2019-01" to="2019-02" applicable="true">-100.00</step>`)
	assert.Contains(t, out, `<step from="2019-02" to="2019-03" applicable="false">N/A</step>`)
}

func TestGenerateWithOptions(t *testing.T) {
	options := DefaultGenerateOptions()
	options.IncludeXMLDeclaration = false
	options.Indent = "\t"
	options.RootAttributes = map[string]string{"xmlns": "http://example.com/sales", "a": "1"}

	data, err := GenerateWithOptions(&report.Report{TotalSales: decimal.Zero}, options)
	require.NoError(t, err)
	assertWellFormed(t, data)

	out := string(data)
	assert.NotContains(t, out, "<?xml")
	assert.Contains(t, out, `<salesReport a="1" xmlns="http://example.com/sales"`)
	assert.Contains(t, out, "\t<validationIssues/>\n")
}

func TestGenerate_NilReport(t *testing.T) {
	_, err := Generate(nil)
	assert.Error(t, err)
}
