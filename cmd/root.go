// =============================================================================
// Sales Ledger Report - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Every other command
// (report, validate, version) is attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (salesreport)
//   ├── reportCmd   (salesreport report)
//   ├── validateCmd (salesreport validate)
//   └── versionCmd  (salesreport version)
//
// CONFIGURATION:
//   Before any subcommand runs, the root command:
//   1. Loads the configuration (defaults, YAML file, .env, environment)
//   2. Applies the --log-level and --verbose overrides
//   3. Builds the structured logger (written to stderr)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/salesreport/internal/config"
	"github.com/ginjaninja78/salesreport/internal/logger"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file. When empty,
// $HOME/.salesreport.yaml and ./.salesreport.yaml are tried.
var cfgFile string

// verbose forces debug logging.
var verbose bool

// logLevel overrides the configured log level.
var logLevel string

// appConfig is the loaded configuration, available to every subcommand.
var appConfig *config.MainConfig

// log is the application logger, available to every subcommand.
var log = zerolog.Nop()

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "salesreport",
	Short: "Sales Ledger Report - validate point-of-sale ledgers and report on them",
	Long: `Sales Ledger Report reads point-of-sale ledgers (date, item, unit price,
quantity, total price), validates every row and reports on the valid ones.

Reports include:
  - Data validation issues, with every reason a row was rejected
  - Total sales and month-wise totals
  - The most popular item per month, with min/max/average order size
  - The top revenue item per month
  - Month-to-month revenue growth per item

Example Usage:
  salesreport report --sample                  # Report on the built-in ledger
  salesreport report --file ledger.csv         # Report on one ledger
  salesreport report --format xlsx             # Every ledger in input_dir, as workbooks
  salesreport validate --file ledger.csv       # Only list the invalid rows`,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"Path to the configuration file (default is $HOME/.salesreport.yaml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	rootCmd.PersistentFlags().StringVar(
		&logLevel,
		"log-level",
		"",
		"Log level: debug, info, warn or error (overrides the config file)",
	)
}

// initConfig loads the configuration and builds the logger.
func initConfig() error {
	cfg, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	appConfig = cfg
	log = logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
	})

	if cfg.Source != "" {
		log.Debug().Str("config", cfg.Source).Msg("Loaded configuration")
	}

	return nil
}
