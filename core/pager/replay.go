package pager

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ManualClock is a clock that only moves when told to
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock starts a clock at start
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the clock's time
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Action is one entry of a replay script
type Action struct {
	// Event is fed through Handle when set
	Event Event

	// Goto is a navigation-bar jump, used when Event is nil and Wait is zero
	Goto int

	// Wait advances the clock without any input
	Wait time.Duration
}

func (a Action) String() string {
	switch ev := a.Event.(type) {
	case Wheel:
		return fmt.Sprintf("wheel:%g", ev.DeltaY)
	case Key:
		return "key:" + ev.Name
	case Swipe:
		return fmt.Sprintf("swipe:%g>%g", ev.StartY, ev.EndY)
	}
	if a.Wait > 0 {
		return fmt.Sprintf("wait:%d", a.Wait.Milliseconds())
	}
	return fmt.Sprintf("goto:%d", a.Goto)
}

// ParseScript reads a comma separated list of actions:
//
//	wheel:<deltaY>  key:<name>  swipe:<startY>><endY>  goto:<section>  wait:<ms>
func ParseScript(script string) ([]Action, error) {
	var actions []Action
	for _, tok := range strings.Split(script, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		kind, arg, ok := strings.Cut(tok, ":")
		if !ok {
			return nil, fmt.Errorf("action %q: expected kind:value", tok)
		}

		switch strings.ToLower(kind) {
		case "wheel":
			dy, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				return nil, fmt.Errorf("action %q: %w", tok, err)
			}
			actions = append(actions, Action{Event: Wheel{DeltaY: dy}})

		case "key":
			if arg == "" {
				return nil, fmt.Errorf("action %q: missing key name", tok)
			}
			actions = append(actions, Action{Event: Key{Name: arg}})

		case "swipe":
			from, to, ok := strings.Cut(arg, ">")
			if !ok {
				return nil, fmt.Errorf("action %q: expected swipe:<startY>><endY>", tok)
			}
			start, err := strconv.ParseFloat(from, 64)
			if err != nil {
				return nil, fmt.Errorf("action %q: %w", tok, err)
			}
			end, err := strconv.ParseFloat(to, 64)
			if err != nil {
				return nil, fmt.Errorf("action %q: %w", tok, err)
			}
			actions = append(actions, Action{Event: Swipe{StartY: start, EndY: end}})

		case "goto":
			n, err := strconv.Atoi(arg)
			if err != nil {
				return nil, fmt.Errorf("action %q: %w", tok, err)
			}
			actions = append(actions, Action{Goto: n})

		case "wait":
			ms, err := strconv.Atoi(arg)
			if err != nil || ms <= 0 {
				return nil, fmt.Errorf("action %q: wait needs a positive number of milliseconds", tok)
			}
			actions = append(actions, Action{Wait: time.Duration(ms) * time.Millisecond})

		default:
			return nil, fmt.Errorf("action %q: unknown kind %q", tok, kind)
		}
	}
	return actions, nil
}

// ReplayStep is the outcome of one replayed action
type ReplayStep struct {
	At         time.Duration `json:"at"`
	Action     string        `json:"action"`
	Transition *Transition   `json:"transition,omitempty"`
	Status     Status        `json:"status"`
}

// Replay feeds actions to p, advancing clock by interval after each input.
// clock must be the one p was created with.
func Replay(p *Pager, clock *ManualClock, actions []Action, interval time.Duration) []ReplayStep {
	start := clock.Now()
	steps := make([]ReplayStep, 0, len(actions))
	for _, a := range actions {
		step := ReplayStep{At: clock.Now().Sub(start), Action: a.String()}

		switch {
		case a.Event != nil:
			t := p.Handle(a.Event)
			step.Transition = &t
		case a.Wait > 0:
			clock.Advance(a.Wait)
		default:
			t := p.Goto(a.Goto)
			step.Transition = &t
		}

		step.Status = p.Settle()
		steps = append(steps, step)
		if a.Wait == 0 {
			clock.Advance(interval)
		}
	}
	return steps
}
