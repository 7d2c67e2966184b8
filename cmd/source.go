package cmd

import (
	"fmt"

	"github.com/ginjaninja78/salesreport/internal/pipeline"
	"github.com/ginjaninja78/salesreport/internal/sample"
	"github.com/ginjaninja78/salesreport/internal/xlsxparser"
)

// runLedger runs the pipeline over one ledger source. The sample source is
// served from the embedded ledger; .xlsx files are read cell by cell from
// their first sheet; anything else is streamed as delimited text.
func runLedger(p *pipeline.Pipeline, source string, isSample bool) (*pipeline.Result, error) {
	if isSample {
		return p.Run(source, sample.Lines()), nil
	}

	if xlsxparser.IsWorkbook(source) {
		rows, err := xlsxparser.ReadRows(source, "")
		if err != nil {
			return nil, fmt.Errorf("failed to read workbook %s: %w", source, err)
		}
		return p.RunRows(source, rows), nil
	}

	return p.RunFile(source)
}
