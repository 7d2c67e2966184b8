// =============================================================================
// Sales Ledger Report - Pipeline Module
// =============================================================================
//
// This module orchestrates the report pipeline for a single input, from raw
// lines to a finished report value.
//
// PIPELINE:
//   1. Parse the raw lines (or pre-split workbook rows) into candidate records
//   2. Validate every candidate
//   3. Aggregate the valid records into the month x item index
//   4. Run the report calculators
//
// CONCURRENCY:
//   A Pipeline run is synchronous and owns all of its intermediate values, so
//   callers may run one pipeline per input file in separate goroutines.
//
// =============================================================================

package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ginjaninja78/salesreport/internal/aggregator"
	"github.com/ginjaninja78/salesreport/internal/config"
	"github.com/ginjaninja78/salesreport/internal/csvparser"
	"github.com/ginjaninja78/salesreport/internal/report"
	"github.com/ginjaninja78/salesreport/internal/types"
	"github.com/ginjaninja78/salesreport/internal/validation"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result is the outcome of one pipeline run.
type Result struct {
	// RunID uniquely identifies the run in logs and output names.
	RunID string

	// Source names the input (file path or sample label).
	Source string

	// Candidates are the parsed records, valid and invalid, in input order.
	Candidates []types.CandidateRecord

	// Validation partitions Candidates.
	Validation *validation.Result

	// Index is the month x item aggregation of the valid records.
	Index *aggregator.Index

	// Report holds every computed section.
	Report *report.Report

	// Stats contains processing statistics.
	Stats Stats
}

// Stats contains statistics about a run.
type Stats struct {
	RowsParsed     int
	ValidRecords   int
	InvalidRecords int
	Months         int
	Items          int
	ProcessingTime time.Duration
}

// =============================================================================
// PIPELINE STRUCTURE
// =============================================================================

// Pipeline runs parse, validate, aggregate and report for one input.
type Pipeline struct {
	settings config.CSVSettings
	logger   zerolog.Logger
}

// New creates a Pipeline.
//
// PARAMETERS:
//   - settings: The CSV settings (delimiter).
//   - logger: The logger used for stage and row diagnostics.
func New(settings config.CSVSettings, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		settings: settings,
		logger:   logger,
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTIONS
// =============================================================================

// Run executes the pipeline over an ordered sequence of raw lines. It has no
// error path: malformed rows end up in Result.Validation.Invalid.
func (p *Pipeline) Run(source string, lines []string) *Result {
	startTime := time.Now()
	return p.run(source, csvparser.Parse(lines, p.settings), startTime)
}

// RunFile streams a delimited ledger file through the pipeline.
func (p *Pipeline) RunFile(filePath string) (*Result, error) {
	startTime := time.Now()
	candidates, err := csvparser.ParseFile(filePath, p.settings)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger %s: %w", filePath, err)
	}
	return p.run(filePath, candidates, startTime), nil
}

// RunRows runs the pipeline over rows that are already split into fields,
// such as the rows of a workbook.
func (p *Pipeline) RunRows(source string, rows []types.RawRow) *Result {
	startTime := time.Now()
	candidates := make([]types.CandidateRecord, len(rows))
	for i, row := range rows {
		candidates[i] = csvparser.ToCandidate(row)
	}
	return p.run(source, candidates, startTime)
}

func (p *Pipeline) run(source string, candidates []types.CandidateRecord, startTime time.Time) *Result {
	result := &Result{
		RunID:  uuid.New().String(),
		Source: source,
	}

	log := p.logger.With().
		Str("run_id", result.RunID).
		Str("source", source).
		Logger()

	// =========================================================================
	// STEP 1: PARSE
	// =========================================================================

	result.Candidates = candidates
	result.Stats.RowsParsed = len(result.Candidates)
	log.Debug().Int("rows", result.Stats.RowsParsed).Msg("Parsed ledger rows")

	// =========================================================================
	// STEP 2: VALIDATE
	// =========================================================================
	// Invalid rows are reported, never fatal.

	result.Validation = validation.Validate(result.Candidates)
	result.Stats.ValidRecords = len(result.Validation.Valid)
	result.Stats.InvalidRecords = len(result.Validation.Invalid)

	for _, inv := range result.Validation.Invalid {
		reasons := make([]string, len(inv.Reasons))
		for i, r := range inv.Reasons {
			reasons[i] = string(r)
		}
		log.Warn().
			Int("row", inv.RowNumber).
			Strs("reasons", reasons).
			Msg("Invalid ledger row")
	}

	log.Debug().
		Int("valid", result.Stats.ValidRecords).
		Int("invalid", result.Stats.InvalidRecords).
		Msg("Validation complete")

	// =========================================================================
	// STEP 3: AGGREGATE
	// =========================================================================

	result.Index = aggregator.Aggregate(result.Validation.Valid)
	result.Stats.Months = len(result.Index.Months())
	result.Stats.Items = len(result.Index.Items())
	log.Debug().
		Int("records", result.Index.RecordCount()).
		Int("months", result.Stats.Months).
		Int("items", result.Stats.Items).
		Msg("Built aggregation index")

	// =========================================================================
	// STEP 4: REPORT
	// =========================================================================

	result.Report = report.Build(result.Validation.Valid, result.Index)
	result.Report.Source = source
	result.Report.ValidationIssues = append(result.Report.ValidationIssues, result.Validation.Invalid...)

	// =========================================================================
	// COMPLETE
	// =========================================================================

	result.Stats.ProcessingTime = time.Since(startTime)
	log.Info().
		Int("rows", result.Stats.RowsParsed).
		Int("invalid", result.Stats.InvalidRecords).
		Str("total_sales", result.Report.TotalSales.String()).
		Dur("elapsed", result.Stats.ProcessingTime).
		Msg("Report built")

	return result
}
