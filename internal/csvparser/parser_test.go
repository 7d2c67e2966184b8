package csvparser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/salesreport/internal/config"
)

func TestParse_SkipsHeaderAndBlankLines(t *testing.T) {
	lines := []string{
		"",
		"Date,SKU,Unit Price,Quantity,Total Price",
		"2019-01-01,Cake Fudge,150,1,150",
		"   ",
		"2019-02-01, Trilogy ,160,5,800",
	}

	records := Parse(lines, config.DefaultCSVSettings())
	require.Len(t, records, 2)

	assert.Equal(t, 3, records[0].RowNumber)
	assert.Equal(t, "2019-01-01", records[0].Date)
	assert.Equal(t, "Cake Fudge", records[0].Item)
	assert.True(t, records[0].Quantity.Decimal().Equal(decimal.NewFromInt(1)))

	assert.Equal(t, 5, records[1].RowNumber, "row numbers count blank lines")
	assert.Equal(t, "Trilogy", records[1].Item)
	assert.Equal(t, "2019-02-01, Trilogy ,160,5,800", records[1].Raw)
}

func TestParse_HeaderIsDiscardedRegardlessOfContent(t *testing.T) {
	lines := []string{
		"2019-01-01,Looks Like Data,1,1,1",
		"2019-01-02,Real,2,1,2",
	}

	records := Parse(lines, config.DefaultCSVSettings())
	require.Len(t, records, 1)
	assert.Equal(t, "Real", records[0].Item)
	assert.Equal(t, 2, records[0].RowNumber)
}

func TestParse_MissingAndMalformedFields(t *testing.T) {
	lines := []string{
		"header",
		"2019-01-01,Only Item",
		"2019-01-01,Bad,abc,,7",
		"2019-01-01,Extra,1,2,2,ignored,fields",
	}

	records := Parse(lines, config.DefaultCSVSettings())
	require.Len(t, records, 3)

	missing := records[0]
	assert.Equal(t, "Only Item", missing.Item)
	assert.False(t, missing.UnitPrice.IsNumber())
	assert.False(t, missing.Quantity.IsNumber())
	assert.False(t, missing.TotalPrice.IsNumber())

	malformed := records[1]
	assert.False(t, malformed.UnitPrice.IsNumber(), "non-numeric text is unparsed")
	assert.False(t, malformed.Quantity.IsNumber(), "empty field is unparsed, not zero")
	assert.True(t, malformed.TotalPrice.IsNumber())

	extra := records[2]
	assert.True(t, extra.TotalPrice.Decimal().Equal(decimal.NewFromInt(2)))
}

func TestParse_NoRowDroppedForMalformation(t *testing.T) {
	lines := []string{"h", "garbage", ",,,,", "x,y,z"}

	records := Parse(lines, config.DefaultCSVSettings())
	assert.Len(t, records, 3)
}

func TestParse_CustomDelimiter(t *testing.T) {
	lines := []string{
		"Date|SKU|Unit Price|Quantity|Total Price",
		"2019-01-01|A, with comma|10|2|20",
	}

	records := Parse(lines, config.CSVSettings{Delimiter: "pipe"})
	require.Len(t, records, 1)
	assert.Equal(t, "A, with comma", records[0].Item)
	assert.True(t, records[0].TotalPrice.IsNumber())
}

func TestParse_EmptyInput(t *testing.T) {
	assert.Empty(t, Parse(nil, config.DefaultCSVSettings()))
	assert.Empty(t, Parse([]string{"", "header only", " "}, config.DefaultCSVSettings()))
}

func TestParseReader_MatchesParse(t *testing.T) {
	input := "Date,SKU,Unit Price,Quantity,Total Price\r\n" +
		"2019-01-01,A,180,5,900\r\n" +
		"\r\n" +
		"2019-01-01,A,180,1,180\r\n" +
		"2019-13-01,B,x,1,1\n"

	streamed, err := ParseReader(strings.NewReader(input), config.DefaultCSVSettings())
	require.NoError(t, err)

	parsed := Parse(strings.Split(input, "\n"), config.DefaultCSVSettings())

	assert.Equal(t, parsed, streamed)
	require.Len(t, streamed, 3)
	assert.Equal(t, []int{2, 4, 5}, []int{streamed[0].RowNumber, streamed[1].RowNumber, streamed[2].RowNumber})
	assert.Equal(t, "2019-01-01,A,180,5,900", streamed[0].Raw)
}

func TestStreamingParser_RowNumbers(t *testing.T) {
	parser := NewStreamingParser(strings.NewReader("h\n\nrow,1,1,1,1\n"), config.DefaultCSVSettings())

	require.True(t, parser.Next())
	assert.Equal(t, 3, parser.Record().RowNumber)
	assert.False(t, parser.Next())
	assert.NoError(t, parser.Err())
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	require.NoError(t, os.WriteFile(path, []byte("h\n\n2019-01-01|A|1|1|1\n"), 0644))

	records, err := ParseFile(path, config.CSVSettings{Delimiter: "pipe"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 3, records[0].RowNumber)
	assert.Equal(t, "A", records[0].Item)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.csv"), config.DefaultCSVSettings())
	assert.Error(t, err)
}
