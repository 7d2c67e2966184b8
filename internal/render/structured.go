package render

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/salesreport/internal/config"
	"github.com/ginjaninja78/salesreport/internal/report"
	"github.com/ginjaninja78/salesreport/internal/xmlwriter"
)

// JSON writes the report as an indented JSON document. Money values are
// strings so no precision is lost.
func JSON(w io.Writer, rep *report.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(rep); err != nil {
		return fmt.Errorf("failed to encode JSON report: %w", err)
	}
	return nil
}

// YAML writes the report as a YAML document.
func YAML(w io.Writer, rep *report.Report) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(rep); err != nil {
		return fmt.Errorf("failed to encode YAML report: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to flush YAML report: %w", err)
	}
	return nil
}

// XML writes the report as an XML document.
func XML(w io.Writer, rep *report.Report) error {
	data, err := xmlwriter.Generate(rep)
	if err != nil {
		return fmt.Errorf("failed to generate XML report: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write XML report: %w", err)
	}
	return nil
}

// Render dispatches on a stream format. The xlsx format is not a stream and
// is rejected here.
func Render(w io.Writer, format string, rep *report.Report) error {
	switch format {
	case config.FormatText:
		return Text(w, rep)
	case config.FormatTable:
		return Table(w, rep)
	case config.FormatJSON:
		return JSON(w, rep)
	case config.FormatYAML:
		return YAML(w, rep)
	case config.FormatXML:
		return XML(w, rep)
	default:
		return fmt.Errorf("format %q cannot be rendered to a stream", format)
	}
}

// Extension returns the file extension for a format.
func Extension(format string) string {
	switch format {
	case config.FormatJSON:
		return ".json"
	case config.FormatYAML:
		return ".yaml"
	case config.FormatXML:
		return ".xml"
	case config.FormatXLSX:
		return ".xlsx"
	default:
		return ".txt"
	}
}
