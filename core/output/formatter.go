// Package output provides output formatting for calculator outcomes.
// This package produces human and machine-readable outputs.
package output

import (
	"fmt"
	"io"
	"strings"

	"barodeal/core/fee"
	"barodeal/core/schedule"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable summary box
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// ParseFormat accepts a format name in any case
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCLI, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want cli or json)", s)
	}
}

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes one calculator outcome
	Render(w io.Writer, outcome fee.Outcome) error

	// RenderSchedules writes a fee table
	RenderSchedules(w io.Writer, table *schedule.Table) error
}

// For returns the formatter for format
func For(format Format) (Formatter, error) {
	switch format {
	case FormatCLI:
		return CLIFormatter{}, nil
	case FormatJSON:
		return JSONFormatter{Indent: "  "}, nil
	default:
		return nil, fmt.Errorf("no formatter for %q", format)
	}
}
