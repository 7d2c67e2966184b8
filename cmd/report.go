// =============================================================================
// Sales Ledger Report - Report Command
// =============================================================================
//
// This file defines the 'report' command, the main command of the tool. It
// orchestrates the whole pipeline for one or more ledgers.
//
// COMMAND USAGE:
//   salesreport report [flags]
//
// FLAGS:
//   --file     : Report on a single ledger (.csv or .xlsx)
//   --sample   : Report on the embedded sample ledger
//   --format   : text, table, json, yaml, xml or xlsx (default from config)
//   --out      : Output directory (default from config)
//   --dry-run  : Render to stdout only; write and archive nothing
//
// PROCESSING PIPELINE:
//   1. Resolve the ledgers to process
//   2. For each ledger (concurrently, bounded by max_concurrency):
//      a. Read the raw lines
//      b. Parse, validate, aggregate and compute the report
//      c. Write the report file and the invalid-row log (file formats)
//      d. Archive the ledger (discovered ledgers only)
//   3. Print text reports in discovery order
//   4. Write a processing summary when several ledgers were processed
//
// =============================================================================

package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/salesreport/internal/config"
	"github.com/ginjaninja78/salesreport/internal/pipeline"
	"github.com/ginjaninja78/salesreport/internal/render"
	"github.com/ginjaninja78/salesreport/internal/sample"
	"github.com/ginjaninja78/salesreport/internal/xlsxreport"
	"github.com/ginjaninja78/salesreport/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// reportFile is a single ledger to report on.
var reportFile string

// reportSample selects the embedded sample ledger.
var reportSample bool

// reportFormat overrides the configured report format.
var reportFormat string

// reportOutDir overrides the configured output directory.
var reportOutDir string

// dryRun renders to stdout without writing or archiving anything.
var dryRun bool

// =============================================================================
// REPORT COMMAND DEFINITION
// =============================================================================

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Validate ledgers and print or write their sales reports",
	Long: `The report command validates each ledger and computes its sales report.

Without --file or --sample, every *.csv and *.xlsx ledger in the input
directory is processed. Ledgers are processed concurrently; a failure in one
ledger does not stop the others.

Text and table reports are printed to stdout. JSON, YAML, XML and XLSX reports are
written to the output directory, next to a log of the rejected rows.

On success (and unless --dry-run is given):
  - A ledger found in the input directory is moved to the input archive when
    archive_on_success is set. Ledgers given with --file stay where they are.

Report and log names that would collide within a run, or with existing
files, get a numeric suffix.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportFile, "file", "", "Path to a single ledger (.csv or .xlsx)")
	reportCmd.Flags().BoolVar(&reportSample, "sample", false, "Use the embedded sample ledger")
	reportCmd.Flags().StringVar(&reportFormat, "format", "", "Report format: text, table, json, yaml, xml or xlsx")
	reportCmd.Flags().StringVar(&reportOutDir, "out", "", "Output directory for report files")
	reportCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Render to stdout only; write and archive nothing")
}

// =============================================================================
// JOB STRUCTURES
// =============================================================================

// reportJob is one ledger to process. Only discovered ledgers live in the
// input directory and are archived.
type reportJob struct {
	index      int
	source     string
	isSample   bool
	discovered bool
}

// reportResult is the outcome of one job.
type reportResult struct {
	job        reportJob
	result     *pipeline.Result
	rendered   []byte
	outputFile string
	errorLog   string
	archived   string
	err        error
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

func runReport(stdout io.Writer) error {
	startTime := time.Now()

	// =========================================================================
	// STEP 1: RESOLVE OPTIONS AND LEDGERS
	// =========================================================================

	format := appConfig.ReportFormat
	if reportFormat != "" {
		format = reportFormat
	}
	if err := config.ValidateFormat(format); err != nil {
		return err
	}

	outDir := appConfig.OutputDir
	if reportOutDir != "" {
		outDir = reportOutDir
	}

	fm := utils.NewFileManager(appConfig.InputDir, outDir, appConfig.InputArchiveDir)
	fm.ArchiveOnSuccess = appConfig.ArchiveOnSuccess && !dryRun
	fm.UseTimestampSubdirs = appConfig.ArchiveTimestampSubdirs

	jobs, err := resolveJobs(fm, reportFile, reportSample)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		log.Info().Str("input_dir", fm.InputDir).Msg("No ledgers found in the input directory")
		return nil
	}

	if !dryRun && isFileFormat(format) {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	log.Info().Int("ledgers", len(jobs)).Str("format", format).Bool("dry_run", dryRun).Msg("Processing ledgers")

	// =========================================================================
	// STEP 2: PROCESS LEDGERS CONCURRENTLY
	// =========================================================================

	var wg sync.WaitGroup
	results := make(chan reportResult, len(jobs))
	sem := make(chan struct{}, appConfig.MaxConcurrency)

	for _, job := range jobs {
		wg.Add(1)

		go func(job reportJob) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results <- processLedger(job, format, fm)
		}(job)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	// =========================================================================
	// STEP 3: COLLECT RESULTS IN DISCOVERY ORDER
	// =========================================================================

	ordered := make([]reportResult, len(jobs))
	for r := range results {
		ordered[r.job.index] = r
	}

	summary := utils.ProcessingSummary{
		StartTime:  startTime,
		TotalFiles: len(jobs),
	}

	for i, r := range ordered {
		if r.err != nil {
			summary.FailedFiles++
			summary.FailedFilesList = append(summary.FailedFilesList, utils.FailedFileInfo{
				InputFile:    r.job.source,
				ErrorMessage: r.err.Error(),
			})
			log.Error().Err(r.err).Str("source", r.job.source).Msg("Ledger failed")
			continue
		}

		if len(r.rendered) > 0 {
			if len(jobs) > 1 {
				if i > 0 {
					fmt.Fprintln(stdout)
				}
				fmt.Fprintf(stdout, "##### %s #####\n", r.job.source)
			}
			if _, err := stdout.Write(r.rendered); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
		}

		stats := r.result.Stats
		summary.SuccessfulFiles++
		summary.TotalRows += stats.RowsParsed
		summary.InvalidRows += stats.InvalidRecords
		summary.ProcessedFiles = append(summary.ProcessedFiles, utils.ProcessedFileInfo{
			InputFile:   r.job.source,
			OutputFile:  r.outputFile,
			ErrorLog:    r.errorLog,
			ArchivePath: r.archived,
			Rows:        stats.RowsParsed,
			InvalidRows: stats.InvalidRecords,
			TotalSales:  r.result.Report.TotalSales.String(),
			ProcessTime: stats.ProcessingTime,
		})
	}

	// =========================================================================
	// STEP 4: SUMMARY
	// =========================================================================

	summary.EndTime = time.Now()
	log.Info().
		Int("total", summary.TotalFiles).
		Int("successful", summary.SuccessfulFiles).
		Int("failed", summary.FailedFiles).
		Dur("elapsed", summary.EndTime.Sub(startTime)).
		Msg("Processing complete")

	if len(jobs) > 1 && !dryRun {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		summaryPath, err := utils.WriteSummaryLog(summary, outDir)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to write processing summary")
		} else {
			log.Info().Str("path", summaryPath).Msg("Wrote processing summary")
		}
	}

	if summary.FailedFiles > 0 {
		return fmt.Errorf("%d of %d ledger(s) failed", summary.FailedFiles, summary.TotalFiles)
	}

	return nil
}

// resolveJobs turns the flags into the list of ledgers to process.
func resolveJobs(fm *utils.FileManager, file string, useSample bool) ([]reportJob, error) {
	switch {
	case useSample && file != "":
		return nil, fmt.Errorf("--file and --sample are mutually exclusive")
	case useSample:
		return []reportJob{{source: sample.Name, isSample: true}}, nil
	case file != "":
		return []reportJob{{source: file}}, nil
	}

	if err := fm.EnsureDirectories(); err != nil {
		return nil, err
	}

	files, err := fm.DiscoverInputFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to discover input files: %w", err)
	}

	jobs := make([]reportJob, len(files))
	for i, f := range files {
		jobs[i] = reportJob{index: i, source: f, discovered: true}
	}
	return jobs, nil
}

// processLedger runs the pipeline for one ledger and writes its outputs.
func processLedger(job reportJob, format string, fm *utils.FileManager) reportResult {
	out := reportResult{job: job}

	result, err := runLedger(pipeline.New(appConfig.CSVSettings, log), job.source, job.isSample)
	if err != nil {
		out.err = err
		return out
	}

	out.result = result
	rep := result.Report

	switch {
	case dryRun && format == config.FormatXLSX:
		log.Info().Str("source", job.source).Msg("Dry run: workbook not written")
	case dryRun || !isFileFormat(format):
		// Stream formats, and every format in dry-run mode, go to stdout.
		var buf bytes.Buffer
		if err := render.Render(&buf, format, rep); err != nil {
			out.err = err
			return out
		}
		out.rendered = buf.Bytes()
	default:
		if err := writeOutputs(&out, format, fm); err != nil {
			out.err = err
			return out
		}
	}

	if job.discovered && !dryRun {
		archived, err := fm.ArchiveInputFile(job.source)
		if err != nil {
			// The report exists; a failed archive is not fatal.
			log.Warn().Err(err).Str("source", job.source).Msg("Failed to archive ledger")
		} else if archived != job.source {
			out.archived = archived
			log.Debug().Str("archive", archived).Msg("Archived ledger")
		}
	}

	return out
}

// writeOutputs writes the report file and the invalid-row log.
func writeOutputs(out *reportResult, format string, fm *utils.FileManager) error {
	rep := out.result.Report

	name := utils.GenerateOutputFileName(
		appConfig.OutputNameFormat,
		map[string]string{"original": utils.BaseName(out.job.source)},
		render.Extension(format),
	)
	out.outputFile = fm.ReserveOutputPath(name)

	if format == config.FormatXLSX {
		if err := xlsxreport.Write(out.outputFile, rep); err != nil {
			return err
		}
	} else {
		file, err := utils.CreateExclusive(out.outputFile)
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		if err := render.Render(file, format, rep); err != nil {
			file.Close()
			return err
		}
		if err := file.Close(); err != nil {
			return fmt.Errorf("failed to close report file: %w", err)
		}
	}
	log.Info().Str("source", out.job.source).Str("output", out.outputFile).Msg("Wrote report")

	errorLog, err := fm.WriteErrorLog(out.job.source, rep.ValidationIssues)
	if err != nil {
		log.Warn().Err(err).Str("source", out.job.source).Msg("Failed to write invalid-row log")
	}
	out.errorLog = errorLog

	return nil
}

// isFileFormat reports whether a format is written to a file.
func isFileFormat(format string) bool {
	switch format {
	case config.FormatJSON, config.FormatYAML, config.FormatXML, config.FormatXLSX:
		return true
	default:
		return false
	}
}
