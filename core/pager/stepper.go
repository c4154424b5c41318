package pager

import "time"

// Stepper is a bounded step index owned by one section. While it can move in
// an input's direction it claims the input; at its bounds the input falls
// through to the pager.
type Stepper struct {
	step         int
	count        int
	cooldown     time.Duration
	resetOnLeave bool
}

// NewStepper creates a stepper with count steps and its own cool-down.
func NewStepper(count int, cooldown time.Duration) *Stepper {
	if count < 1 {
		count = 1
	}
	return &Stepper{count: count, cooldown: cooldown}
}

// ResetOnLeave makes the stepper return to step 0 whenever the pager leaves its section.
func (s *Stepper) ResetOnLeave() *Stepper {
	s.resetOnLeave = true
	return s
}

// Step returns the current step index
func (s *Stepper) Step() int {
	return s.step
}

// Count returns the number of steps
func (s *Stepper) Count() int {
	return s.count
}

// Claims reports whether the stepper takes in instead of the pager.
func (s *Stepper) Claims(in Input) bool {
	next := s.step + in.direction()
	return in.direction() != 0 && next >= 0 && next < s.count
}

func (s *Stepper) move(in Input) {
	s.step += in.direction()
}

func (s *Stepper) leave() {
	if s.resetOnLeave {
		s.step = 0
	}
}
