package xlsxreport

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/salesreport/internal/report"
	"github.com/ginjaninja78/salesreport/internal/types"
)

func testReport() *report.Report {
	return &report.Report{
		Source:       "ledger.csv",
		ValidRecords: 2,
		ValidationIssues: []types.InvalidRecord{{
			RowNumber: 5,
			Raw:       "2019-03-01,Cafe Caramel,160,0,160",
			Reasons:   []types.Reason{types.ReasonQuantity, types.ReasonProductMismatch},
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

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, Write(path, testReport()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t,
		[]string{SheetSummary, SheetIssues, SheetMonthTotals, SheetPopular, SheetTopRevenue, SheetGrowth},
		f.GetSheetList())

	summary, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	require.Len(t, summary, 2)
	assert.Equal(t, []string{"ledger.csv", "2", "1", "1080"}, summary[1])

	issues, err := f.GetRows(SheetIssues)
	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.Equal(t, "Quantity < 1; Unit Price * Quantity !== Total Price", issues[1][2])

	growth, err := f.GetRows(SheetGrowth)
	require.NoError(t, err)
	require.Len(t, growth, 3)
	assert.Equal(t, []string{"A", "2019-01", "2019-02", "-100"}, growth[1])
	assert.Equal(t, "N/A", growth[2][3])
}

func TestWrite_EmptyReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, Write(path, &report.Report{}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetMonthTotals)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWrite_BadPath(t *testing.T) {
	err := Write(filepath.Join(t.TempDir(), "missing", "dir", "report.xlsx"), testReport())
	assert.Error(t, err)
}
