// =============================================================================
// Sales Ledger Report - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the report command:
//   - Directory management
//   - Ledger discovery
//   - Input archival (moving processed ledgers)
//   - Output file naming
//   - Invalid-row logs and run summaries
//
// ARCHIVAL STRATEGY:
//   - Ledgers are moved to input_archive after a successful report
//   - Failed ledgers remain in their original location
//   - Invalid-row logs and summaries are created in the output directory
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ginjaninja78/salesreport/internal/types"
)

// DefaultPatterns are the ledger file patterns scanned in the input directory.
var DefaultPatterns = []string{"*.csv", "*.xlsx"}

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for the report command.
type FileManager struct {
	// InputDir is the directory where ledgers are placed.
	InputDir string

	// OutputDir is the directory where reports and logs are written.
	OutputDir string

	// InputArchiveDir is the directory for archived ledgers.
	InputArchiveDir string

	// UseTimestampSubdirs creates date-based subdirectories in the archive.
	// Example: input_archive/2024/01/15/ledger.csv
	UseTimestampSubdirs bool

	// ArchiveOnSuccess determines whether ledgers are archived after a report.
	ArchiveOnSuccess bool

	// reserved holds the output paths already handed out in this run.
	mu       sync.Mutex
	reserved map[string]bool
}

// NewFileManager creates a new FileManager with the specified directories.
func NewFileManager(inputDir, outputDir, inputArchiveDir string) *FileManager {
	return &FileManager{
		InputDir:         inputDir,
		OutputDir:        outputDir,
		InputArchiveDir:  inputArchiveDir,
		ArchiveOnSuccess: true,
		reserved:         make(map[string]bool),
	}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectories creates all required directories if they don't exist.
func (fm *FileManager) EnsureDirectories() error {
	dirs := []string{
		fm.InputDir,
		fm.OutputDir,
		fm.InputArchiveDir,
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverInputFiles scans the input directory for ledgers.
//
// PARAMETERS:
//   - patterns: Glob patterns to match (e.g., "*.csv"). If none are given,
//     DefaultPatterns is used.
//
// RETURNS:
//   - The matching file paths, sorted and without duplicates.
//   - An error if a pattern is malformed.
func (fm *FileManager) DiscoverInputFiles(patterns ...string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	seen := make(map[string]bool)
	var result []string

	for _, pattern := range patterns {
		files, err := filepath.Glob(filepath.Join(fm.InputDir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to scan input directory: %w", err)
		}

		for _, file := range files {
			info, err := os.Stat(file)
			if err != nil || info.IsDir() || seen[file] {
				continue
			}
			seen[file] = true
			result = append(result, file)
		}
	}

	sort.Strings(result)
	return result, nil
}

// =============================================================================
// FILE ARCHIVAL
// =============================================================================

// ArchiveInputFile moves a ledger to the archive directory.
//
// RETURNS:
//   - The path to the archived file (the original path when archival is off).
//   - An error if archival fails.
func (fm *FileManager) ArchiveInputFile(filePath string) (string, error) {
	if !fm.ArchiveOnSuccess {
		return filePath, nil
	}

	archivePath := fm.getArchivePath(fm.InputArchiveDir, filePath)

	if err := os.MkdirAll(filepath.Dir(archivePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	if err := os.Rename(filePath, archivePath); err != nil {
		// Cross-device moves fall back to copy and delete.
		if err := copyFile(filePath, archivePath); err != nil {
			return "", fmt.Errorf("failed to copy file to archive: %w", err)
		}
		if err := os.Remove(filePath); err != nil {
			return "", fmt.Errorf("failed to remove original file: %w", err)
		}
	}

	return archivePath, nil
}

// getArchivePath constructs the archive path for a file.
func (fm *FileManager) getArchivePath(archiveDir, filePath string) string {
	fileName := filepath.Base(filePath)

	if fm.UseTimestampSubdirs {
		now := time.Now()
		return filepath.Join(
			archiveDir,
			fmt.Sprintf("%d", now.Year()),
			fmt.Sprintf("%02d", now.Month()),
			fmt.Sprintf("%02d", now.Day()),
			fileName,
		)
	}

	return filepath.Join(archiveDir, fileName)
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName generates a report file name.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {uuid}      - A random UUID
//               {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//               {date}      - Current date (YYYYMMDD)
//               {time}      - Current time (HHMMSS)
//               {original}  - Ledger file name without extension
//   - params: Extra placeholder values, keyed without braces.
//   - extension: The extension to ensure, including the dot (e.g., ".json").
//
// EXAMPLE:
//   format: "{original}_{timestamp}"
//   params: {"original": "january"}
//   output: "january_20240115_143022.json"
func GenerateOutputFileName(format string, params map[string]string, extension string) string {
	now := time.Now()

	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}

	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if extension != "" && !strings.HasSuffix(strings.ToLower(result), strings.ToLower(extension)) {
		result += extension
	}

	return result
}

// BaseName returns a file name without directory and extension.
func BaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ReserveOutputPath claims a path in the output directory for name. A path
// already claimed in this run, or already on disk, gets a numeric suffix
// before the extension: a_20240115_143022.json, a_20240115_143022_2.json.
// Safe for concurrent use.
func (fm *FileManager) ReserveOutputPath(name string) string {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	if fm.reserved == nil {
		fm.reserved = make(map[string]bool)
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	path := filepath.Join(fm.OutputDir, name)
	for n := 2; fm.reserved[path] || FileExists(path); n++ {
		path = filepath.Join(fm.OutputDir, fmt.Sprintf("%s_%d%s", stem, n, ext))
	}

	fm.reserved[path] = true
	return path
}

// CreateExclusive creates a new file and fails if it already exists.
func CreateExclusive(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
}

// =============================================================================
// INVALID ROW LOG
// =============================================================================

// WriteErrorLog writes the invalid rows of one ledger to a log file in the
// output directory.
//
// PARAMETERS:
//   - source: The ledger the rows came from.
//   - invalid: The rejected rows with their reasons.
//
// RETURNS:
//   - The path to the log file, or "" when there is nothing to log.
//   - An error if writing fails.
func (fm *FileManager) WriteErrorLog(source string, invalid []types.InvalidRecord) (string, error) {
	if len(invalid) == 0 {
		return "", nil
	}

	timestamp := time.Now().Format("20060102_150405")
	logPath := fm.ReserveOutputPath(fmt.Sprintf("invalid_rows_%s_%s.txt", BaseName(source), timestamp))

	file, err := CreateExclusive(logPath)
	if err != nil {
		return "", fmt.Errorf("failed to create error log: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	fmt.Fprintf(writer, "Sales Ledger Report - Invalid Rows\n"+
		"Source: %s\n"+
		"Generated: %s\n"+
		"Invalid Rows: %d\n"+
		"================================================================================\n\n",
		source,
		time.Now().Format("2006-01-02 15:04:05"),
		len(invalid))

	for _, inv := range invalid {
		fmt.Fprintf(writer, "Row %d: %s\n", inv.RowNumber, inv.Raw)
		for _, reason := range inv.Reasons {
			fmt.Fprintf(writer, "  - %s\n", reason)
		}
		writer.WriteString("\n")
	}

	writer.WriteString("================================================================================\n" +
		"End of Log\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush error log: %w", err)
	}

	return logPath, nil
}

// =============================================================================
// PROCESSING SUMMARY
// =============================================================================

// ProcessingSummary contains summary information about a report run.
type ProcessingSummary struct {
	StartTime       time.Time
	EndTime         time.Time
	TotalFiles      int
	SuccessfulFiles int
	FailedFiles     int
	TotalRows       int
	InvalidRows     int
	ProcessedFiles  []ProcessedFileInfo
	FailedFilesList []FailedFileInfo
}

// ProcessedFileInfo describes a ledger that produced a report.
type ProcessedFileInfo struct {
	InputFile   string
	OutputFile  string
	ErrorLog    string
	ArchivePath string
	Rows        int
	InvalidRows int
	TotalSales  string
	ProcessTime time.Duration
}

// FailedFileInfo describes a ledger that could not be processed.
type FailedFileInfo struct {
	InputFile    string
	ErrorMessage string
}

// WriteSummaryLog writes a run summary to a file in outputDir.
func WriteSummaryLog(summary ProcessingSummary, outputDir string) (string, error) {
	timestamp := time.Now().Format("20060102_150405")
	summaryPath := filepath.Join(outputDir, fmt.Sprintf("processing_summary_%s.txt", timestamp))

	file, err := os.Create(summaryPath)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	fmt.Fprintf(writer, "Sales Ledger Report - Processing Summary\n"+
		"================================================================================\n\n"+
		"Run Information:\n"+
		"  Start Time:   %s\n"+
		"  End Time:     %s\n"+
		"  Duration:     %s\n\n"+
		"Statistics:\n"+
		"  Total Files:  %d\n"+
		"  Successful:   %d\n"+
		"  Failed:       %d\n"+
		"  Total Rows:   %d\n"+
		"  Invalid Rows: %d\n\n",
		summary.StartTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Sub(summary.StartTime).String(),
		summary.TotalFiles,
		summary.SuccessfulFiles,
		summary.FailedFiles,
		summary.TotalRows,
		summary.InvalidRows)

	if len(summary.ProcessedFiles) > 0 {
		writer.WriteString("Successful Files:\n")
		writer.WriteString("--------------------------------------------------------------------------------\n")
		for _, pf := range summary.ProcessedFiles {
			fmt.Fprintf(writer, "  Input:        %s\n", pf.InputFile)
			if pf.OutputFile != "" {
				fmt.Fprintf(writer, "  Output:       %s\n", pf.OutputFile)
			}
			if pf.ErrorLog != "" {
				fmt.Fprintf(writer, "  Error Log:    %s\n", pf.ErrorLog)
			}
			if pf.ArchivePath != "" {
				fmt.Fprintf(writer, "  Archive:      %s\n", pf.ArchivePath)
			}
			fmt.Fprintf(writer, "  Rows:         %d\n", pf.Rows)
			fmt.Fprintf(writer, "  Invalid Rows: %d\n", pf.InvalidRows)
			fmt.Fprintf(writer, "  Total Sales:  %s\n", pf.TotalSales)
			fmt.Fprintf(writer, "  Process Time: %s\n\n", pf.ProcessTime.String())
		}
	}

	if len(summary.FailedFilesList) > 0 {
		writer.WriteString("Failed Files:\n")
		writer.WriteString("--------------------------------------------------------------------------------\n")
		for _, ff := range summary.FailedFilesList {
			fmt.Fprintf(writer, "  File:  %s\n", ff.InputFile)
			fmt.Fprintf(writer, "  Error: %s\n\n", ff.ErrorMessage)
		}
	}

	writer.WriteString("================================================================================\n" +
		"End of Summary\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush summary file: %w", err)
	}

	return summaryPath, nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	return destFile.Sync()
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
