// =============================================================================
// Sales Ledger Report - Record Parser Module
// =============================================================================
//
// This module turns raw ledger lines into typed candidate records. It never
// rejects a row: malformed values are carried forward (numbers as "unparsed")
// so the validator can name the exact defect.
//
// PARSING RULES:
//   - Whitespace-only lines are skipped but still count toward line numbers
//   - The first non-blank line is the header and is discarded
//   - Each remaining line is trimmed and split on the delimiter; the first
//     five fields are trimmed, extra fields are ignored, missing trailing
//     fields become "" (strings) or unparsed (numbers)
//   - The row number of a record is the 1-based line position in the input
//
// The delimiter is a literal separator, not RFC 4180: quoting is not part of
// the ledger format, and the raw text of each row must survive untouched for
// diagnostics.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/salesreport/internal/config"
	"github.com/ginjaninja78/salesreport/internal/types"
)

// maxLineSize bounds a single ledger line for the scanner.
const maxLineSize = 1024 * 1024

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse converts an ordered sequence of raw lines into candidate records.
//
// PARAMETERS:
//   - lines: The input lines, header included, in original order.
//   - settings: The CSV settings (only the delimiter is used).
//
// RETURNS:
//   - One CandidateRecord per non-blank, non-header line, in input order.
func Parse(lines []string, settings config.CSVSettings) []types.CandidateRecord {
	rows := SplitRows(lines, settings)

	records := make([]types.CandidateRecord, len(rows))
	for i, row := range rows {
		records[i] = ToCandidate(row)
	}

	return records
}

// SplitRows drops blank lines and the header, and splits the rest into
// RawRows that keep their original line numbers.
func SplitRows(lines []string, settings config.CSVSettings) []types.RawRow {
	sep := settings.Separator()
	rows := make([]types.RawRow, 0, len(lines))
	headerSkipped := false

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if !headerSkipped {
			headerSkipped = true
			continue
		}

		rows = append(rows, splitLine(i+1, trimmed, sep))
	}

	return rows
}

// ToCandidate types the literal fields of a RawRow.
func ToCandidate(row types.RawRow) types.CandidateRecord {
	return types.CandidateRecord{
		RowNumber:  row.LineNumber,
		Raw:        row.Raw,
		Date:       row.Fields[types.FieldDate],
		Item:       row.Fields[types.FieldItem],
		UnitPrice:  types.ParseNumber(row.Fields[types.FieldUnitPrice]),
		Quantity:   types.ParseNumber(row.Fields[types.FieldQuantity]),
		TotalPrice: types.ParseNumber(row.Fields[types.FieldTotalPrice]),
	}
}

// splitLine splits an already-trimmed line into its five positional fields.
func splitLine(lineNumber int, line, sep string) types.RawRow {
	row := types.RawRow{
		LineNumber: lineNumber,
		Raw:        line,
	}

	parts := strings.Split(line, sep)
	for i := 0; i < types.FieldCount && i < len(parts); i++ {
		row.Fields[i] = strings.TrimSpace(parts[i])
	}

	return row
}

// =============================================================================
// INPUT HELPERS
// =============================================================================

// ParseFile streams a ledger file through a StreamingParser.
func ParseFile(filePath string, settings config.CSVSettings) ([]types.CandidateRecord, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseReader(file, settings)
}

// ParseReader drains a StreamingParser over r.
func ParseReader(r io.Reader, settings config.CSVSettings) ([]types.CandidateRecord, error) {
	parser := NewStreamingParser(r, settings)

	var records []types.CandidateRecord
	for parser.Next() {
		records = append(records, parser.Record())
	}
	if err := parser.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// =============================================================================
// STREAMING PARSER
// =============================================================================

// StreamingParser yields candidate records one line at a time, with the same
// rules as Parse.
//
// USAGE:
//   parser := NewStreamingParser(reader, settings)
//   for parser.Next() {
//       record := parser.Record()
//       // ...
//   }
//   if err := parser.Err(); err != nil {
//       return err
//   }
type StreamingParser struct {
	scanner       *bufio.Scanner
	sep           string
	lineNumber    int
	headerSkipped bool
	current       types.CandidateRecord
	err           error
}

// NewStreamingParser creates a streaming parser over r.
func NewStreamingParser(r io.Reader, settings config.CSVSettings) *StreamingParser {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	return &StreamingParser{
		scanner: scanner,
		sep:     settings.Separator(),
	}
}

// Next advances to the next record. Returns false when input is exhausted or
// a read error occurred.
func (p *StreamingParser) Next() bool {
	if p.err != nil {
		return false
	}

	for p.scanner.Scan() {
		p.lineNumber++

		line := strings.TrimSpace(p.scanner.Text())
		if line == "" {
			continue
		}

		if !p.headerSkipped {
			p.headerSkipped = true
			continue
		}

		p.current = ToCandidate(splitLine(p.lineNumber, line, p.sep))
		return true
	}

	if err := p.scanner.Err(); err != nil {
		p.err = fmt.Errorf("error reading line %d: %w", p.lineNumber+1, err)
	}

	return false
}

// Record returns the current record.
func (p *StreamingParser) Record() types.CandidateRecord {
	return p.current
}

// Err returns any error that occurred during parsing.
func (p *StreamingParser) Err() error {
	return p.err
}
