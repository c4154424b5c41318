// Package pager tracks which full-page section is on screen.
//
// The pager is a small state machine. Raw wheel, key and swipe events are
// classified into inputs, the current state is resolved (a running cool-down
// means Animating; an active section whose stepper can move means
// SubsectionActive; otherwise Idle) and the transitions table decides the
// effect. Inputs that arrive while Animating are dropped, never queued.
package pager

import (
	"fmt"
	"sync"
	"time"
)

// State is a pager state
type State string

const (
	StateIdle             State = "idle"
	StateAnimating        State = "animating"
	StateSubsectionActive State = "subsection-active"
)

// Effect is what a transition does
type Effect string

const (
	EffectNone     Effect = "none"
	EffectMovePage Effect = "move-page"
	EffectJumpPage Effect = "jump-page"
	EffectMoveStep Effect = "move-step"
	EffectDrop     Effect = "drop"
)

type rule struct {
	next   State
	effect Effect
}

type ruleKey struct {
	state State
	input Input
}

// transitions is the full (state, input) table. Pairs that are absent do nothing.
var transitions = map[ruleKey]rule{
	{StateIdle, InputNext}:  {StateAnimating, EffectMovePage},
	{StateIdle, InputPrev}:  {StateAnimating, EffectMovePage},
	{StateIdle, InputFirst}: {StateAnimating, EffectJumpPage},
	{StateIdle, InputLast}:  {StateAnimating, EffectJumpPage},

	{StateSubsectionActive, InputNext}: {StateAnimating, EffectMoveStep},
	{StateSubsectionActive, InputPrev}: {StateAnimating, EffectMoveStep},

	{StateAnimating, InputNext}:  {StateAnimating, EffectDrop},
	{StateAnimating, InputPrev}:  {StateAnimating, EffectDrop},
	{StateAnimating, InputFirst}: {StateAnimating, EffectDrop},
	{StateAnimating, InputLast}:  {StateAnimating, EffectDrop},
}

// Config tunes input classification and the cool-down
type Config struct {
	// Sections is the number of full-page sections
	Sections int

	// WheelThreshold is the |deltaY| a wheel event must exceed
	WheelThreshold float64

	// SwipeThreshold is the distance a swipe must exceed
	SwipeThreshold float64

	// Cooldown is how long the pager stays Animating after a page move
	Cooldown time.Duration
}

// DefaultConfig matches the landing page: eight sections, a 10px wheel
// threshold, a 50px swipe threshold and a one second lock.
func DefaultConfig() Config {
	return Config{
		Sections:       8,
		WheelThreshold: 10,
		SwipeThreshold: 50,
		Cooldown:       time.Second,
	}
}

// Transition reports what one input did
type Transition struct {
	Input   Input  `json:"input"`
	From    State  `json:"from"`
	To      State  `json:"to"`
	Effect  Effect `json:"effect"`
	Section int    `json:"section"`
	Step    int    `json:"step"`
	Changed bool   `json:"changed"`
}

// Status is a point-in-time view of the pager
type Status struct {
	Section int   `json:"section"`
	State   State `json:"state"`

	// Step is the active section's stepper index, or -1 when it has none
	Step int `json:"step"`
}

// Pager is the section state machine. It is safe for concurrent use.
type Pager struct {
	mu          sync.Mutex
	cfg         Config
	now         func() time.Time
	current     int
	animating   bool
	lockedUntil time.Time
	steppers    map[int]*Stepper
}

// Option configures a Pager
type Option func(*Pager)

// WithClock replaces time.Now, for tests and replays
func WithClock(now func() time.Time) Option {
	return func(p *Pager) {
		p.now = now
	}
}

// New creates a pager positioned on section 0.
func New(cfg Config, opts ...Option) (*Pager, error) {
	if cfg.Sections < 1 {
		return nil, fmt.Errorf("pager needs at least one section, got %d", cfg.Sections)
	}
	p := &Pager{
		cfg:      cfg,
		now:      time.Now,
		steppers: make(map[int]*Stepper),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Attach gives section its own stepper.
func (p *Pager) Attach(section int, s *Stepper) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if section < 0 || section >= p.cfg.Sections {
		return fmt.Errorf("section %d out of range [0, %d)", section, p.cfg.Sections)
	}
	p.steppers[section] = s
	return nil
}

// Handle classifies a raw event and applies it.
func (p *Pager) Handle(ev Event) Transition {
	return p.Apply(ev.Classify(p.cfg))
}

// Apply runs one input through the transitions table.
func (p *Pager) Apply(in Input) Transition {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	from := p.resolve(now, in)
	t := Transition{Input: in, From: from, To: from, Effect: EffectNone, Section: p.current, Step: p.stepOf(p.current)}

	r, ok := transitions[ruleKey{from, in}]
	if !ok {
		return t
	}

	switch r.effect {
	case EffectDrop:
		t.Effect = EffectDrop
		return t

	case EffectMoveStep:
		s := p.steppers[p.current]
		s.move(in)
		p.lock(now, s.cooldown)

	case EffectMovePage:
		if !p.goTo(p.current + in.direction()) {
			return t
		}
		p.lock(now, p.cfg.Cooldown)

	case EffectJumpPage:
		target := 0
		if in == InputLast {
			target = p.cfg.Sections - 1
		}
		if !p.goTo(target) {
			return t
		}
		p.lock(now, p.cfg.Cooldown)
	}

	t.To = r.next
	t.Effect = r.effect
	t.Section = p.current
	t.Step = p.stepOf(p.current)
	t.Changed = true
	return t
}

// Goto jumps straight to section, as the navigation bar does. It is dropped
// while animating or when section is out of range.
func (p *Pager) Goto(section int) Transition {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	from := p.resolve(now, InputNone)
	t := Transition{From: from, To: from, Effect: EffectNone, Section: p.current, Step: p.stepOf(p.current)}
	if from == StateAnimating {
		t.Effect = EffectDrop
		return t
	}
	if !p.goTo(section) {
		return t
	}
	p.lock(now, p.cfg.Cooldown)

	t.To = StateAnimating
	t.Effect = EffectJumpPage
	t.Section = p.current
	t.Step = p.stepOf(p.current)
	t.Changed = true
	return t
}

// Settle ends the cool-down if it has run out and reports the resulting status.
func (p *Pager) Settle() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status(p.now())
}

// Status reports the current section and state without side effects beyond
// expiring a finished cool-down. Outside a cool-down the state is
// SubsectionActive when the active section's stepper can still move.
func (p *Pager) Status() Status {
	return p.Settle()
}

func (p *Pager) status(now time.Time) Status {
	state := StateIdle
	switch {
	case p.expire(now):
		state = StateAnimating
	case p.stepperActive():
		state = StateSubsectionActive
	}
	return Status{Section: p.current, State: state, Step: p.stepOf(p.current)}
}

// stepperActive reports whether the active section's stepper would claim a
// move in either direction.
func (p *Pager) stepperActive() bool {
	s, ok := p.steppers[p.current]
	return ok && (s.Claims(InputNext) || s.Claims(InputPrev))
}

// resolve derives the state an input is judged in.
func (p *Pager) resolve(now time.Time, in Input) State {
	if p.expire(now) {
		return StateAnimating
	}
	if s, ok := p.steppers[p.current]; ok && s.Claims(in) {
		return StateSubsectionActive
	}
	return StateIdle
}

// expire clears a finished cool-down and reports whether one is still running.
func (p *Pager) expire(now time.Time) bool {
	if p.animating && !now.Before(p.lockedUntil) {
		p.animating = false
	}
	return p.animating
}

func (p *Pager) lock(now time.Time, d time.Duration) {
	p.animating = true
	p.lockedUntil = now.Add(d)
}

// goTo moves to section if it is in range and different, resetting the
// stepper being left when it asks for that.
func (p *Pager) goTo(section int) bool {
	if section < 0 || section >= p.cfg.Sections || section == p.current {
		return false
	}
	if s, ok := p.steppers[p.current]; ok {
		s.leave()
	}
	p.current = section
	return true
}

func (p *Pager) stepOf(section int) int {
	if s, ok := p.steppers[section]; ok {
		return s.step
	}
	return -1
}
