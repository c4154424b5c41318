package output

import (
	"encoding/json"
	"io"

	"barodeal/core/fee"
	"barodeal/core/schedule"
	"barodeal/core/types"
)

// JSONFormatter writes outcomes as JSON documents
type JSONFormatter struct {
	Indent string
}

// Format implements Formatter
func (JSONFormatter) Format() Format { return FormatJSON }

// Render implements Formatter
func (f JSONFormatter) Render(w io.Writer, outcome fee.Outcome) error {
	return f.encode(w, outcome)
}

type scheduleDocument struct {
	Regions     []types.Region      `json:"regions"`
	Fingerprint string              `json:"fingerprint"`
	Schedules   []schedule.Schedule `json:"schedules"`
}

// RenderSchedules implements Formatter
func (f JSONFormatter) RenderSchedules(w io.Writer, table *schedule.Table) error {
	return f.encode(w, scheduleDocument{
		Regions:     table.Regions(),
		Fingerprint: table.Fingerprint().Hex(),
		Schedules:   table.Schedules(),
	})
}

func (f JSONFormatter) encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if f.Indent != "" {
		enc.SetIndent("", f.Indent)
	}
	return enc.Encode(v)
}
