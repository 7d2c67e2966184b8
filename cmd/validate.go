// =============================================================================
// Sales Ledger Report - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which checks a single ledger and
// lists the rows it would reject, without computing or writing a report.
//
// COMMAND USAGE:
//   salesreport validate --file ledger.csv
//   salesreport validate --sample
//   salesreport validate --file ledger.csv --strict   # exit 1 on any issue
//
// OUTPUT:
//   The DATA VALIDATION ISSUES section, an "N valid, M invalid" line and,
//   when anything was rejected, how often each reason occurred.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/salesreport/internal/pipeline"
	"github.com/ginjaninja78/salesreport/internal/render"
	"github.com/ginjaninja78/salesreport/internal/sample"
	"github.com/ginjaninja78/salesreport/internal/types"
	"github.com/ginjaninja78/salesreport/internal/validation"
)

var (
	validateFile   string
	validateSample bool
	validateStrict bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "List the invalid rows of a ledger",
	Long: `The validate command parses and validates one ledger and prints every
rejected row with all the reasons it was rejected, followed by a count of
valid and invalid rows. Nothing is written or archived.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		source := validateFile
		switch {
		case validateSample && validateFile != "":
			return fmt.Errorf("--file and --sample are mutually exclusive")
		case validateSample:
			source = sample.Name
		case validateFile == "":
			return fmt.Errorf("one of --file or --sample is required")
		}

		result, err := runLedger(pipeline.New(appConfig.CSVSettings, log), source, validateSample)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if err := render.Issues(out, result.Report); err != nil {
			return err
		}
		writeReasonCounts(out, result.Validation)

		if validateStrict && result.Stats.InvalidRecords > 0 {
			return fmt.Errorf("%d invalid row(s) in %s", result.Stats.InvalidRecords, source)
		}
		return nil
	},
}

// writeReasonCounts prints one line per reason that occurred, in check order.
func writeReasonCounts(w io.Writer, result *validation.Result) {
	counts := result.ReasonCounts()
	if len(counts) == 0 {
		return
	}

	fmt.Fprintln(w, "By reason:")
	for _, reason := range types.AllReasons {
		if n := counts[reason]; n > 0 {
			fmt.Fprintf(w, "  %s: %d\n", reason, n)
		}
	}
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateFile, "file", "", "Path to the ledger (.csv or .xlsx)")
	validateCmd.Flags().BoolVar(&validateSample, "sample", false, "Use the embedded sample ledger")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Exit with an error when any row is invalid")
}
