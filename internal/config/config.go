// =============================================================================
// Sales Ledger Report - Configuration Module
// =============================================================================
//
// This module is responsible for loading the application configuration.
//
// CONFIGURATION SOURCES (later sources override earlier ones):
//   1. Built-in defaults (applyMainConfigDefaults)
//   2. YAML config file (--config, or .salesreport.yaml in $HOME or ".")
//   3. A .env file in the working directory
//   4. Environment variables prefixed with SALESREPORT_
//      e.g. SALESREPORT_OUTPUT_DIR, SALESREPORT_CSV_SETTINGS_DELIMITER
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "SALESREPORT"

// Supported report formats.
const (
	FormatText  = "text"
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatXLSX  = "xlsx"
	FormatXML   = "xml"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is scanned for *.csv and *.xlsx ledgers when no --file is given.
	// Default: "./input"
	InputDir string `mapstructure:"input_dir" yaml:"input_dir"`

	// OutputDir receives rendered reports and invalid-row logs.
	// Default: "./output"
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`

	// InputArchiveDir receives processed ledgers when ArchiveOnSuccess is set.
	// Default: "./input_archive"
	InputArchiveDir string `mapstructure:"input_archive_dir" yaml:"input_archive_dir"`

	// ArchiveOnSuccess moves each processed ledger out of InputDir.
	// Default: false
	ArchiveOnSuccess bool `mapstructure:"archive_on_success" yaml:"archive_on_success"`

	// ArchiveTimestampSubdirs files archived ledgers under YYYY/MM/DD.
	// Default: false
	ArchiveTimestampSubdirs bool `mapstructure:"archive_timestamp_subdirs" yaml:"archive_timestamp_subdirs"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	// LogPretty switches from JSON log lines to human-readable console output.
	LogPretty bool `mapstructure:"log_pretty" yaml:"log_pretty"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputNameFormat defines report file names.
	// Placeholders:
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {original}  - Input file name without extension
	// Default: "{original}_{timestamp}"
	OutputNameFormat string `mapstructure:"output_name_format" yaml:"output_name_format"`

	// ReportFormat is the default rendering: text, table, json, yaml, xml or xlsx.
	// Default: "text"
	ReportFormat string `mapstructure:"report_format" yaml:"report_format"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// MaxConcurrency is the maximum number of ledgers processed at once.
	// Set to 1 for sequential processing.
	// Default: 4
	MaxConcurrency int `mapstructure:"max_concurrency" yaml:"max_concurrency"`

	// CSVSettings contains settings for splitting ledger lines.
	CSVSettings CSVSettings `mapstructure:"csv_settings" yaml:"csv_settings"`

	// Source is the config file that was read, empty when none was found.
	Source string `mapstructure:"-" yaml:"-"`
}

// =============================================================================
// CSV SETTINGS STRUCTURE
// =============================================================================

// CSVSettings contains settings for parsing ledger lines.
type CSVSettings struct {
	// Delimiter separates the five fields of a ledger line.
	// Accepted values: "," (default), "|" or "pipe", ";" or "semicolon",
	// "\t" or "tab".
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// DefaultCSVSettings returns comma-separated settings.
func DefaultCSVSettings() CSVSettings {
	return CSVSettings{Delimiter: ","}
}

// Separator resolves the configured delimiter to the literal separator string.
func (s CSVSettings) Separator() string {
	switch s.Delimiter {
	case "\\t", "\t", "tab", "TAB":
		return "\t"
	case "|", "pipe", "PIPE":
		return "|"
	case ";", "semicolon":
		return ";"
	case "":
		return ","
	default:
		return s.Delimiter
	}
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// LoadMainConfig loads the configuration.
//
// PARAMETERS:
//   - configPath: Explicit config file. When empty, .salesreport.yaml is
//     looked up in the home directory and the working directory, and a
//     missing file is not an error.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read or parsed, or the result is invalid.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	// A missing .env is normal.
	_ = godotenv.Load()

	v := viper.New()
	setViperDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(".salesreport")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config MainConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	config.Source = v.ConfigFileUsed()

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the configuration used when nothing is configured.
func Default() *MainConfig {
	var config MainConfig
	applyMainConfigDefaults(&config)
	return &config
}

// setViperDefaults registers every key so environment overrides are picked up
// by Unmarshal even when the key is absent from the file.
func setViperDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("input_dir", d.InputDir)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("input_archive_dir", d.InputArchiveDir)
	v.SetDefault("archive_on_success", d.ArchiveOnSuccess)
	v.SetDefault("archive_timestamp_subdirs", d.ArchiveTimestampSubdirs)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_pretty", d.LogPretty)
	v.SetDefault("output_name_format", d.OutputNameFormat)
	v.SetDefault("report_format", d.ReportFormat)
	v.SetDefault("max_concurrency", d.MaxConcurrency)
	v.SetDefault("csv_settings.delimiter", d.CSVSettings.Delimiter)
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.InputArchiveDir == "" {
		config.InputArchiveDir = "./input_archive"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = "{original}_{timestamp}"
	}
	if config.ReportFormat == "" {
		config.ReportFormat = FormatText
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 4
	}
	if config.CSVSettings.Delimiter == "" {
		config.CSVSettings.Delimiter = ","
	}
}

// validateMainConfig validates the main configuration.
func validateMainConfig(config *MainConfig) error {
	if err := ValidateFormat(config.ReportFormat); err != nil {
		return err
	}

	if config.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be at least 1, got %d", config.MaxConcurrency)
	}

	switch strings.ToLower(config.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log_level %q", config.LogLevel)
	}

	return nil
}

// ValidateFormat checks a report format name.
func ValidateFormat(format string) error {
	switch format {
	case FormatText, FormatTable, FormatJSON, FormatYAML, FormatXML, FormatXLSX:
		return nil
	default:
		return fmt.Errorf("unknown report format %q (want text, table, json, yaml, xml or xlsx)", format)
	}
}
