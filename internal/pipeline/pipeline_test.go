package pipeline

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/salesreport/internal/config"
	"github.com/ginjaninja78/salesreport/internal/sample"
	"github.com/ginjaninja78/salesreport/internal/types"
)

func newTestPipeline(buf *bytes.Buffer) *Pipeline {
	return New(config.DefaultCSVSettings(), zerolog.New(buf))
}

func TestRun_Sample(t *testing.T) {
	var logs bytes.Buffer
	result := newTestPipeline(&logs).Run(sample.Name, sample.Lines())

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 60, result.Stats.RowsParsed)
	assert.Equal(t, 58, result.Stats.ValidRecords)
	assert.Equal(t, 2, result.Stats.InvalidRecords)
	assert.Equal(t, 3, result.Stats.Months)
	assert.Equal(t, result.Stats.RowsParsed, result.Stats.ValidRecords+result.Stats.InvalidRecords)

	invalid := result.Validation.Invalid
	require.Len(t, invalid, 2)
	assert.Equal(t, 58, invalid[0].RowNumber)
	assert.Equal(t, []types.Reason{types.ReasonProductMismatch}, invalid[0].Reasons)
	assert.Equal(t, 59, invalid[1].RowNumber)
	assert.Equal(t, []types.Reason{types.ReasonQuantity, types.ReasonProductMismatch}, invalid[1].Reasons)

	assert.Equal(t, sample.Name, result.Report.Source)
	assert.Len(t, result.Report.ValidationIssues, 2)
	assert.Contains(t, logs.String(), "Invalid ledger row")
}

func TestRun_ReportTotalsMatchIndex(t *testing.T) {
	result := newTestPipeline(&bytes.Buffer{}).Run("t", sample.Lines())

	sum := decimal.Zero
	for _, m := range result.Report.MonthTotals {
		sum = sum.Add(m.Total)
	}
	assert.True(t, result.Report.TotalSales.Equal(sum))
}

func TestRun_Empty(t *testing.T) {
	result := newTestPipeline(&bytes.Buffer{}).Run("empty", nil)

	assert.Equal(t, 0, result.Stats.RowsParsed)
	assert.True(t, result.Report.TotalSales.IsZero())
	assert.Empty(t, result.Report.MonthTotals)
	assert.Empty(t, result.Report.ValidationIssues)
}

func TestRunRows(t *testing.T) {
	rows := []types.RawRow{
		{LineNumber: 2, Raw: "2019-01-01,Cake, Fudge,150,2,300", Fields: [types.FieldCount]string{"2019-01-01", "Cake, Fudge", "150", "2", "300"}},
		{LineNumber: 3, Raw: "2019-01-02,Cake, Fudge,150,0,0", Fields: [types.FieldCount]string{"2019-01-02", "Cake, Fudge", "150", "0", "0"}},
	}

	result := newTestPipeline(&bytes.Buffer{}).RunRows("book.xlsx", rows)
	assert.Equal(t, "book.xlsx", result.Source)
	assert.Equal(t, 1, result.Stats.ValidRecords)
	assert.True(t, result.Report.TotalSales.Equal(decimal.NewFromInt(300)))
	require.Len(t, result.Report.MostPopular, 1)
	assert.Equal(t, "Cake, Fudge", result.Report.MostPopular[0].Item)
	require.Len(t, result.Validation.Invalid, 1)
	assert.Equal(t, 3, result.Validation.Invalid[0].RowNumber)
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(sample.Lines(), "\n")), 0644))

	p := newTestPipeline(&bytes.Buffer{})
	result, err := p.RunFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, result.Source)
	assert.Equal(t, 60, result.Stats.RowsParsed)

	_, err = p.RunFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestRun_UniqueRunIDs(t *testing.T) {
	p := newTestPipeline(&bytes.Buffer{})
	assert.NotEqual(t, p.Run("a", nil).RunID, p.Run("a", nil).RunID)
}
