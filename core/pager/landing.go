package pager

import "time"

// Landing page section indices
const (
	SectionHero = iota
	SectionProblem
	SectionBenefits
	SectionProcess
	SectionNetwork
	SectionCalculator
	SectionTestimonial
	SectionFAQ
)

// LandingSections names the landing page sections in order. The footer is
// revealed inside the FAQ section and has no index of its own.
var LandingSections = []string{
	"hero",
	"problem",
	"benefits",
	"process",
	"network",
	"calculator",
	"testimonial",
	"faq",
}

const (
	// ProcessSteps is the number of steps in the process walkthrough
	ProcessSteps = 6

	// footerSteps covers FAQ shown and footer revealed
	footerSteps = 2
)

// Landing builds a pager for the landing page. The process walkthrough
// advances one step per input with stepCooldown between steps; the footer
// reveal uses the page cool-down and is hidden again whenever the FAQ
// section is left.
func Landing(cfg Config, stepCooldown time.Duration, opts ...Option) (*Pager, error) {
	cfg.Sections = len(LandingSections)
	p, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	if err := p.Attach(SectionProcess, NewStepper(ProcessSteps, stepCooldown)); err != nil {
		return nil, err
	}
	if err := p.Attach(SectionFAQ, NewStepper(footerSteps, cfg.Cooldown).ResetOnLeave()); err != nil {
		return nil, err
	}
	return p, nil
}
