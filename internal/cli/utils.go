// Package cli provides CLI output formatting for Bogoseo.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hyperjump/bogoseo/internal/models"
	"github.com/hyperjump/bogoseo/pkg/utils"
)

// OutputFormat is the format for CLI output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputCompact is one record per line.
	OutputCompact OutputFormat = "compact"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseFormat maps a flag value to an OutputFormat.
func ParseFormat(s string) (OutputFormat, error) {
	switch s {
	case "text", "":
		return OutputText, nil
	case "compact":
		return OutputCompact, nil
	case "json":
		return OutputJSON, nil
	}
	return "", fmt.Errorf("unknown output format %q; use text, compact, or json", s)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteTemplates writes a template listing to w in the given format.
func WriteTemplates(w io.Writer, templates []*models.Template, format OutputFormat) error {
	switch format {
	case OutputJSON:
		return writeJSON(w, templates)
	case OutputCompact:
		for _, t := range templates {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d sections\n", t.ID, t.Type, t.Filename, len(t.Sections))
		}
		return nil
	default:
		fmt.Fprintf(w, "\n%d template(s)\n\n", len(templates))
		for _, t := range templates {
			fmt.Fprintf(w, "ID: %s\n", t.ID)
			fmt.Fprintf(w, "File: %s (%s)\n", t.Filename, t.Type)
			fmt.Fprintf(w, "Created: %s\n", t.CreatedAt.Format("2006-01-02 15:04:05"))
			writeSectionsText(w, t.Sections)
			fmt.Fprintln(w)
		}
		return nil
	}
}

// WriteSections writes a section listing to w in the given format.
// Used by the segment subcommand to show detection results.
func WriteSections(w io.Writer, sections []models.Section, format OutputFormat) error {
	switch format {
	case OutputJSON:
		return writeJSON(w, sections)
	case OutputCompact:
		for _, sec := range sections {
			fmt.Fprintf(w, "%d\t%s\t%s\n", sec.Order, sec.Type, sec.Title)
		}
		return nil
	default:
		fmt.Fprintf(w, "\n%d section(s)\n", len(sections))
		writeSectionsText(w, sections)
		return nil
	}
}

func writeSectionsText(w io.Writer, sections []models.Section) {
	for _, sec := range sections {
		fmt.Fprintf(w, "  [%d] (%s) %s\n", sec.Order, sec.Type, sec.Title)
		if sec.Placeholder != "" {
			fmt.Fprintf(w, "      %s\n", utils.Truncate(sec.Placeholder, 80))
		}
	}
}

// WriteReports writes a report listing to w in the given format.
func WriteReports(w io.Writer, reports []*models.Report, format OutputFormat) error {
	switch format {
	case OutputJSON:
		return writeJSON(w, reports)
	case OutputCompact:
		for _, r := range reports {
			fmt.Fprintf(w, "%s\t%s\t%s\n", r.ID, r.Status, r.Title)
		}
		return nil
	default:
		fmt.Fprintf(w, "\n%d report(s)\n\n", len(reports))
		for _, r := range reports {
			fmt.Fprintf(w, "ID: %s\n", r.ID)
			fmt.Fprintf(w, "Title: %s\n", r.Title)
			fmt.Fprintf(w, "Status: %s\n", r.Status)
			if r.Template != nil {
				fmt.Fprintf(w, "Template: %s (%s)\n", r.Template.Filename, r.Template.ID)
			}
			fmt.Fprintln(w)
		}
		return nil
	}
}

// WriteReport writes one full report to w in the given format.
func WriteReport(w io.Writer, report *models.Report, format OutputFormat) error {
	switch format {
	case OutputJSON:
		return writeJSON(w, report)
	default:
		fmt.Fprintf(w, "# %s\n\n", report.Title)
		fmt.Fprintf(w, "%s\n", report.Content)
		return nil
	}
}
