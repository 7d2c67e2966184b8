// =============================================================================
// Sales Ledger Report - Main Entry Point
// =============================================================================
//
// This is the main entry point for the salesreport CLI. It delegates command
// execution to the cmd package.
//
// USAGE:
//   salesreport report      - Validate ledgers and report on them
//   salesreport validate    - List the invalid rows of a ledger
//   salesreport version     - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Parsing, validation, aggregation, reports, renderers
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/salesreport/cmd"
)

func main() {
	cmd.Execute()
}
