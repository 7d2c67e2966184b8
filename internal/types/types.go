// =============================================================================
// Sales Ledger Report - Shared Types
// =============================================================================
//
// This package contains the record types shared by the parser, the validator,
// the aggregator and the report calculators. Keeping them here avoids import
// cycles between those packages. Types defined here are used by:
//   - csvparser
//   - validation
//   - aggregator
//   - report
//
// RECORD LIFECYCLE:
//   raw line -> RawRow -> CandidateRecord -> ValidRecord | InvalidRecord
//
// =============================================================================

package types

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// FIELD LAYOUT
// =============================================================================

// FieldCount is the number of positional fields in a ledger row.
const FieldCount = 5

// Positional indexes of the ledger fields.
const (
	FieldDate = iota
	FieldItem
	FieldUnitPrice
	FieldQuantity
	FieldTotalPrice
)

// =============================================================================
// NUMERIC FIELD
// =============================================================================

// Number is a numeric ledger field that is either a parsed decimal or
// explicitly unparsed. An unparsed Number never compares as zero: every
// bound check on it fails.
type Number struct {
	value  decimal.Decimal
	parsed bool
}

// ParseNumber parses a trimmed field. Empty or malformed text yields an
// unparsed Number.
func ParseNumber(s string) Number {
	if s == "" {
		return Number{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Number{}
	}
	return Number{value: d, parsed: true}
}

// IsNumber reports whether the field parsed.
func (n Number) IsNumber() bool {
	return n.parsed
}

// Decimal returns the parsed value, or zero when unparsed. Callers must check
// IsNumber first.
func (n Number) Decimal() decimal.Decimal {
	return n.value
}

// AtLeast reports whether the field parsed and is >= min.
func (n Number) AtLeast(min int64) bool {
	return n.parsed && n.value.GreaterThanOrEqual(decimal.NewFromInt(min))
}

// String renders the value, or "NaN" when unparsed.
func (n Number) String() string {
	if !n.parsed {
		return "NaN"
	}
	return n.value.String()
}

// =============================================================================
// ROW TYPES
// =============================================================================

// RawRow is one non-blank, non-header input line split into its literal fields.
type RawRow struct {
	// LineNumber is the 1-based position of the line in the original input,
	// blank lines included.
	LineNumber int

	// Raw is the trimmed line text, kept for diagnostics.
	Raw string

	// Fields holds the five trimmed positional fields. Missing trailing
	// fields are empty strings.
	Fields [FieldCount]string
}

// CandidateRecord is a parsed but not yet validated transaction row.
type CandidateRecord struct {
	RowNumber  int
	Raw        string
	Date       string
	Item       string
	UnitPrice  Number
	Quantity   Number
	TotalPrice Number
}

// ValidRecord is a candidate that passed every validation check. Its numeric
// fields are guaranteed to be parsed.
type ValidRecord struct {
	RowNumber  int
	Raw        string
	Date       string
	Item       string
	UnitPrice  decimal.Decimal
	Quantity   decimal.Decimal
	TotalPrice decimal.Decimal
}

// MonthKey returns the YYYY-MM bucket of the record's date.
func (r ValidRecord) MonthKey() string {
	return MonthKey(r.Date)
}

// MonthKey derives the month bucket from a validated ISO date.
func MonthKey(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}

// =============================================================================
// VALIDATION OUTCOME TYPES
// =============================================================================

// Reason is one entry of the closed set of validation failure reasons.
type Reason string

// Validation reasons, in the order the checks run.
const (
	ReasonMalformedDate   Reason = "Date is malformed"
	ReasonQuantity        Reason = "Quantity < 1"
	ReasonUnitPrice       Reason = "Unit Price < 0"
	ReasonTotalPrice      Reason = "Total Price < 0"
	ReasonProductMismatch Reason = "Unit Price * Quantity !== Total Price"
)

// AllReasons lists every reason in check order.
var AllReasons = []Reason{
	ReasonMalformedDate,
	ReasonQuantity,
	ReasonUnitPrice,
	ReasonTotalPrice,
	ReasonProductMismatch,
}

// InvalidRecord is a candidate that failed one or more checks.
type InvalidRecord struct {
	RowNumber int    `json:"row" yaml:"row"`
	Raw       string `json:"raw" yaml:"raw"`

	// Reasons lists each distinct failure once, in check order.
	Reasons []Reason `json:"reasons" yaml:"reasons"`
}
