package output

import (
	"fmt"
	"io"

	"barodeal/core/fee"
	"barodeal/core/schedule"
)

const rule = "────────────────────────────────────────────────────────────"

// CLIFormatter writes a human-readable summary
type CLIFormatter struct{}

// Format implements Formatter
func (CLIFormatter) Format() Format { return FormatCLI }

// Render implements Formatter
func (CLIFormatter) Render(w io.Writer, outcome fee.Outcome) error {
	p := &linePrinter{w: w}

	switch outcome.State {
	case fee.StatePending:
		p.println("Enter a deal type, property type and amount to see the fee.")
		return p.err

	case fee.StateFailed:
		p.printf("Calculation failed [%s]", outcome.Err.Type)
		if outcome.Err.Field != "" {
			p.printf(" %s", outcome.Err.Field)
		}
		p.printf(": %s\n", outcome.Err.Message)
		return p.err
	}

	r := outcome.Result
	p.println("┌" + rule)
	p.println("│ BROKERAGE FEE")
	p.println("├" + rule)
	p.row("Deal", fmt.Sprintf("%s (%s)", r.Deal.Label(), r.Deal))
	p.row("Property", fmt.Sprintf("%s → %s", r.Property, r.Category))
	p.row("Transaction amount", fee.FormatManwon(r.TransactionAmount))
	p.row("Max rate", fee.FormatRate(r.AppliedRateCap))
	if r.NegotiatedRate != nil {
		p.row("Negotiated rate", fee.FormatRate(*r.NegotiatedRate))
	}
	p.row("Applied rate", fee.FormatRate(r.UsedRate))
	if r.Capped {
		p.row("Cap applied", fee.FormatWon(*r.Tier.Cap))
	}
	p.println("├" + rule)
	p.row("Commission", fee.FormatWon(r.Commission))
	p.row("VAT", fee.FormatWon(r.VAT))
	p.row("Total", fee.FormatWon(r.CommissionWithVAT))

	if c := outcome.Comparison; c != nil {
		p.println("├" + rule)
		p.row("With discount", fee.FormatWon(c.Discounted))
		p.row("You save", fee.FormatWon(c.Savings))
	}
	p.println("└" + rule)
	p.println(r.Note)

	if r.PropertyDefaulted {
		p.printf("Note: unknown property type %q was priced as %s\n", r.Property, r.Category)
	}
	if r.TierFallback {
		p.println("Note: no tier contained the amount; the last tier was used")
	}
	return p.err
}

// RenderSchedules implements Formatter
func (CLIFormatter) RenderSchedules(w io.Writer, table *schedule.Table) error {
	p := &linePrinter{w: w}
	for _, s := range table.Schedules() {
		p.printf("%s  (%s, effective %s)\n", s.Key, s.Provenance.Source, s.Provenance.EffectiveFrom)
		for _, t := range s.Tiers {
			p.printf("  %-32s %6s", fee.Window(s, t), fee.FormatRate(t.Rate))
			if t.HasCap() {
				p.printf("  cap %s", fee.FormatWon(*t.Cap))
			}
			p.println("")
		}
	}
	p.printf("fingerprint %s\n", table.Fingerprint().Short())
	return p.err
}

// linePrinter keeps the first write error so callers check once.
type linePrinter struct {
	w   io.Writer
	err error
}

func (p *linePrinter) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *linePrinter) println(s string) {
	p.printf("%s\n", s)
}

func (p *linePrinter) row(label, value string) {
	p.printf("│ %-20s %s\n", label, value)
}
