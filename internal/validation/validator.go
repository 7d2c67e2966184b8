// =============================================================================
// Sales Ledger Report - Validation Engine
// =============================================================================
//
// This module classifies each candidate record as valid or invalid.
//
// VALIDATION STRATEGY:
//   Every check runs on every record; nothing short-circuits. Each failed
//   check appends one reason, so a record with several defects reports all
//   of them, in this order:
//     1. Date is malformed                      (pattern + real calendar date)
//     2. Quantity < 1                           (unparsed or below 1)
//     3. Unit Price < 0                         (unparsed or negative)
//     4. Total Price < 0                        (unparsed or negative)
//     5. Unit Price * Quantity !== Total Price  (only when all three parsed)
//
// ERROR HANDLING:
//   Invalid rows are data, never errors. The reason set is closed (see
//   types.Reason).
//
// =============================================================================

package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ginjaninja78/salesreport/internal/types"
)

// isoDatePattern is the literal shape a ledger date must have before it is
// checked against the calendar.
var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// isoDateLayout is the Go reference layout for YYYY-MM-DD.
const isoDateLayout = "2006-01-02"

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// Result partitions candidate records.
type Result struct {
	// Valid holds the records that passed every check, in input order.
	Valid []types.ValidRecord

	// Invalid holds the records with at least one reason, in input order.
	Invalid []types.InvalidRecord
}

// ReasonCounts tallies how often each reason occurred.
func (r *Result) ReasonCounts() map[types.Reason]int {
	counts := make(map[types.Reason]int)
	for _, inv := range r.Invalid {
		for _, reason := range inv.Reasons {
			counts[reason]++
		}
	}
	return counts
}

// =============================================================================
// MAIN VALIDATION FUNCTIONS
// =============================================================================

// Validate classifies every candidate exactly once.
//
// PARAMETERS:
//   - records: The parsed candidate records.
//
// RETURNS:
//   - A Result whose Valid and Invalid slices together hold every record.
func Validate(records []types.CandidateRecord) *Result {
	result := &Result{
		Valid:   make([]types.ValidRecord, 0, len(records)),
		Invalid: make([]types.InvalidRecord, 0),
	}

	for _, rec := range records {
		reasons := ValidateRecord(rec)
		if len(reasons) > 0 {
			result.Invalid = append(result.Invalid, types.InvalidRecord{
				RowNumber: rec.RowNumber,
				Raw:       rec.Raw,
				Reasons:   reasons,
			})
			continue
		}

		result.Valid = append(result.Valid, types.ValidRecord{
			RowNumber:  rec.RowNumber,
			Raw:        rec.Raw,
			Date:       rec.Date,
			Item:       rec.Item,
			UnitPrice:  rec.UnitPrice.Decimal(),
			Quantity:   rec.Quantity.Decimal(),
			TotalPrice: rec.TotalPrice.Decimal(),
		})
	}

	return result
}

// ValidateRecord runs every check against one record and returns the
// reasons it failed, in check order. A nil result means the record is valid.
func ValidateRecord(rec types.CandidateRecord) []types.Reason {
	var reasons []types.Reason

	if !IsValidDate(rec.Date) {
		reasons = append(reasons, types.ReasonMalformedDate)
	}

	if !rec.Quantity.AtLeast(1) {
		reasons = append(reasons, types.ReasonQuantity)
	}

	if !rec.UnitPrice.AtLeast(0) {
		reasons = append(reasons, types.ReasonUnitPrice)
	}

	if !rec.TotalPrice.AtLeast(0) {
		reasons = append(reasons, types.ReasonTotalPrice)
	}

	// Skipped when any operand is unparsed; checks 2-4 already name the cause.
	if rec.UnitPrice.IsNumber() && rec.Quantity.IsNumber() && rec.TotalPrice.IsNumber() {
		product := rec.UnitPrice.Decimal().Mul(rec.Quantity.Decimal())
		if !product.Equal(rec.TotalPrice.Decimal()) {
			reasons = append(reasons, types.ReasonProductMismatch)
		}
	}

	return reasons
}

// IsValidDate reports whether s is YYYY-MM-DD and names a real calendar day.
func IsValidDate(s string) bool {
	if !isoDatePattern.MatchString(s) {
		return false
	}
	_, err := time.Parse(isoDateLayout, s)
	return err == nil
}

// =============================================================================
// ERROR FORMATTING
// =============================================================================

// FormatInvalid renders invalid records as "Row N: raw" followed by one
// indented line per reason.
func FormatInvalid(invalid []types.InvalidRecord) string {
	if len(invalid) == 0 {
		return "No issues found.\n"
	}

	var builder strings.Builder
	for _, inv := range invalid {
		builder.WriteString(fmt.Sprintf("Row %d: %s\n", inv.RowNumber, inv.Raw))
		for _, reason := range inv.Reasons {
			builder.WriteString(fmt.Sprintf("  - %s\n", reason))
		}
	}

	return builder.String()
}
