package xlsxparser

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/salesreport/internal/csvparser"
	"github.com/ginjaninja78/salesreport/internal/types"
	"github.com/ginjaninja78/salesreport/internal/validation"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &rows[i]))
	}

	path := filepath.Join(t.TempDir(), "ledger.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadRows(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Date", "SKU", "Unit Price", "Quantity", "Total Price"},
		{"2019-01-01", "Trilogy", 160, 5, 800},
		{},
		{" 2019-01-02 ", "Cake Fudge", 150, 1, 150, "note"},
		{"2019-01-03", "Almond Fudge"},
	})

	rows, err := ReadRows(path, "")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, 2, rows[0].LineNumber)
	assert.Equal(t, "2019-01-01,Trilogy,160,5,800", rows[0].Raw)
	assert.Equal(t, [types.FieldCount]string{"2019-01-01", "Trilogy", "160", "5", "800"}, rows[0].Fields)

	assert.Equal(t, 4, rows[1].LineNumber)
	assert.Equal(t, "2019-01-02,Cake Fudge,150,1,150", rows[1].Raw)

	assert.Equal(t, 5, rows[2].LineNumber)
	assert.Equal(t, [types.FieldCount]string{"2019-01-03", "Almond Fudge", "", "", ""}, rows[2].Fields)
}

func TestReadRows_DelimiterInsideCell(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Date", "SKU", "Unit Price", "Quantity", "Total Price"},
		{"2019-01-01", "Cake, Fudge", 150, 2, 300},
	})

	rows, err := ReadRows(path, "")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	record := csvparser.ToCandidate(rows[0])
	assert.Equal(t, "Cake, Fudge", record.Item)
	assert.Equal(t, "300", record.TotalPrice.String())
	assert.Empty(t, validation.ValidateRecord(record))

	result := validation.Validate([]types.CandidateRecord{record})
	assert.Len(t, result.Valid, 1)
	assert.Empty(t, result.Invalid)
}

func TestReadRows_Errors(t *testing.T) {
	_, err := ReadRows(filepath.Join(t.TempDir(), "missing.xlsx"), "")
	assert.Error(t, err)

	path := writeWorkbook(t, [][]interface{}{{"h"}})
	_, err = ReadRows(path, "NoSuchSheet")
	assert.Error(t, err)
}

func TestIsWorkbook(t *testing.T) {
	assert.True(t, IsWorkbook("ledger.xlsx"))
	assert.True(t, IsWorkbook("LEDGER.XLSX"))
	assert.False(t, IsWorkbook("ledger.csv"))
}
