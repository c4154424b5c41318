package pager

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestPager(t *testing.T) (*Pager, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	p, err := New(DefaultConfig(), WithClock(clock.Now))
	require.NoError(t, err)
	return p, clock
}

func newTestLanding(t *testing.T) (*Pager, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	p, err := Landing(DefaultConfig(), 300*time.Millisecond, WithClock(clock.Now))
	require.NoError(t, err)
	return p, clock
}

func TestClassify(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name string
		ev   Event
		want Input
	}{
		{"wheel at threshold", Wheel{DeltaY: 10}, InputNone},
		{"wheel below threshold up", Wheel{DeltaY: -9}, InputNone},
		{"wheel down", Wheel{DeltaY: 10.5}, InputNext},
		{"wheel up", Wheel{DeltaY: -120}, InputPrev},
		{"arrow down", Key{Name: "ArrowDown"}, InputNext},
		{"page down", Key{Name: "PageDown"}, InputNext},
		{"arrow up", Key{Name: "ArrowUp"}, InputPrev},
		{"page up", Key{Name: "PageUp"}, InputPrev},
		{"home", Key{Name: "Home"}, InputFirst},
		{"end", Key{Name: "End"}, InputLast},
		{"other key", Key{Name: "Enter"}, InputNone},
		{"short swipe", Swipe{StartY: 300, EndY: 250}, InputNone},
		{"swipe up", Swipe{StartY: 300, EndY: 200}, InputNext},
		{"swipe down", Swipe{StartY: 200, EndY: 300}, InputPrev},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ev.Classify(cfg))
		})
	}
}

func TestNewRejectsEmptyPager(t *testing.T) {
	_, err := New(Config{Sections: 0})
	assert.Error(t, err)
}

func TestAttachRange(t *testing.T) {
	p, _ := newTestPager(t)
	assert.Error(t, p.Attach(-1, NewStepper(2, 0)))
	assert.Error(t, p.Attach(8, NewStepper(2, 0)))
	assert.NoError(t, p.Attach(7, NewStepper(2, 0)))
}

// TestInputDroppedWhileAnimating proves inputs during the cool-down are
// ignored rather than queued.
func TestInputDroppedWhileAnimating(t *testing.T) {
	p, clock := newTestPager(t)

	tr := p.Handle(Wheel{DeltaY: 100})
	assert.True(t, tr.Changed)
	assert.Equal(t, StateIdle, tr.From)
	assert.Equal(t, StateAnimating, tr.To)
	assert.Equal(t, EffectMovePage, tr.Effect)
	assert.Equal(t, 1, tr.Section)

	clock.Advance(500 * time.Millisecond)
	for i := 0; i < 5; i++ {
		tr = p.Handle(Key{Name: "ArrowDown"})
		assert.False(t, tr.Changed)
		assert.Equal(t, EffectDrop, tr.Effect)
	}
	assert.Equal(t, 1, p.Status().Section)

	clock.Advance(499 * time.Millisecond)
	assert.Equal(t, EffectDrop, p.Apply(InputNext).Effect)

	clock.Advance(time.Millisecond)
	tr = p.Apply(InputNext)
	assert.True(t, tr.Changed)
	assert.Equal(t, 2, tr.Section)
}

func TestBelowThresholdInputIsIgnored(t *testing.T) {
	p, _ := newTestPager(t)
	tr := p.Handle(Wheel{DeltaY: 5})
	assert.False(t, tr.Changed)
	assert.Equal(t, EffectNone, tr.Effect)
	assert.Equal(t, Status{Section: 0, State: StateIdle, Step: -1}, p.Status())
}

// TestClampedMoveDoesNotLock proves a move past either end is a no-op and
// does not start the cool-down.
func TestClampedMoveDoesNotLock(t *testing.T) {
	p, clock := newTestPager(t)

	tr := p.Apply(InputPrev)
	assert.False(t, tr.Changed)
	assert.Equal(t, 0, tr.Section)
	assert.Equal(t, StateIdle, p.Status().State)

	assert.True(t, p.Apply(InputNext).Changed)

	clock.Advance(time.Second)
	assert.True(t, p.Apply(InputLast).Changed)
	assert.Equal(t, 7, p.Status().Section)

	clock.Advance(time.Second)
	tr = p.Apply(InputNext)
	assert.False(t, tr.Changed)
	assert.Equal(t, 7, tr.Section)
	tr = p.Apply(InputLast)
	assert.False(t, tr.Changed)
	assert.Equal(t, StateIdle, p.Status().State)
}

func TestHomeAndEnd(t *testing.T) {
	p, clock := newTestPager(t)

	tr := p.Handle(Key{Name: "End"})
	assert.Equal(t, EffectJumpPage, tr.Effect)
	assert.Equal(t, 7, tr.Section)

	clock.Advance(time.Second)
	tr = p.Handle(Key{Name: "Home"})
	assert.Equal(t, EffectJumpPage, tr.Effect)
	assert.Equal(t, 0, tr.Section)
}

func TestSettle(t *testing.T) {
	p, clock := newTestPager(t)
	p.Apply(InputNext)
	assert.Equal(t, StateAnimating, p.Settle().State)

	clock.Advance(time.Second)
	st := p.Settle()
	assert.Equal(t, StateIdle, st.State)
	assert.Equal(t, 1, st.Section)
}

func TestGoto(t *testing.T) {
	p, clock := newTestPager(t)

	assert.False(t, p.Goto(8).Changed)
	assert.False(t, p.Goto(-1).Changed)
	assert.False(t, p.Goto(0).Changed)

	tr := p.Goto(SectionCalculator)
	assert.True(t, tr.Changed)
	assert.Equal(t, SectionCalculator, tr.Section)

	tr = p.Goto(SectionHero)
	assert.Equal(t, EffectDrop, tr.Effect)
	assert.Equal(t, SectionCalculator, tr.Section)

	clock.Advance(time.Second)
	assert.True(t, p.Goto(SectionHero).Changed)
}

// TestProcessStepperClaimsInput proves the process walkthrough consumes
// inputs until it reaches a bound and then hands them to the pager.
func TestProcessStepperClaimsInput(t *testing.T) {
	p, clock := newTestLanding(t)
	require.True(t, p.Goto(SectionProcess).Changed)
	clock.Advance(time.Second)

	for want := 1; want < ProcessSteps; want++ {
		tr := p.Apply(InputNext)
		require.Equal(t, StateSubsectionActive, tr.From)
		require.Equal(t, EffectMoveStep, tr.Effect)
		require.Equal(t, SectionProcess, tr.Section)
		require.Equal(t, want, tr.Step)

		clock.Advance(299 * time.Millisecond)
		require.Equal(t, EffectDrop, p.Apply(InputNext).Effect)
		clock.Advance(time.Millisecond)
	}

	tr := p.Apply(InputNext)
	assert.Equal(t, StateIdle, tr.From)
	assert.Equal(t, EffectMovePage, tr.Effect)
	assert.Equal(t, SectionNetwork, tr.Section)

	// The walkthrough keeps its position when the section is left.
	clock.Advance(time.Second)
	tr = p.Apply(InputPrev)
	assert.Equal(t, SectionProcess, tr.Section)
	assert.Equal(t, ProcessSteps-1, tr.Step)

	clock.Advance(time.Second)
	tr = p.Apply(InputPrev)
	assert.Equal(t, EffectMoveStep, tr.Effect)
	assert.Equal(t, ProcessSteps-2, tr.Step)
}

func TestStatusReportsActiveStepper(t *testing.T) {
	tests := []struct {
		name    string
		section int
		want    State
	}{
		{"plain section", SectionHero, StateIdle},
		{"process walkthrough", SectionProcess, StateSubsectionActive},
		{"faq footer", SectionFAQ, StateSubsectionActive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, clock := newTestLanding(t)
			p.Goto(tt.section)
			clock.Advance(time.Second)

			st := p.Status()
			assert.Equal(t, tt.section, st.Section)
			assert.Equal(t, tt.want, st.State)
			assert.Equal(t, tt.want, p.Apply(InputNext).From)
		})
	}
}

func TestStepperLetsJumpsThrough(t *testing.T) {
	p, clock := newTestLanding(t)
	p.Goto(SectionProcess)
	clock.Advance(time.Second)

	tr := p.Apply(InputLast)
	assert.Equal(t, StateIdle, tr.From)
	assert.Equal(t, EffectJumpPage, tr.Effect)
	assert.Equal(t, SectionFAQ, tr.Section)
}

// TestFooterReveal proves the FAQ section's footer behaves as a two-step
// stepper that hides again once the section is left.
func TestFooterReveal(t *testing.T) {
	p, clock := newTestLanding(t)
	require.True(t, p.Apply(InputLast).Changed)
	assert.Equal(t, 0, p.Status().Step)
	clock.Advance(time.Second)

	tr := p.Handle(Wheel{DeltaY: 50})
	assert.Equal(t, EffectMoveStep, tr.Effect)
	assert.Equal(t, 1, tr.Step)

	clock.Advance(time.Second)
	tr = p.Apply(InputNext)
	assert.False(t, tr.Changed)
	assert.Equal(t, SectionFAQ, tr.Section)
	assert.Equal(t, 1, tr.Step)

	tr = p.Apply(InputPrev)
	assert.Equal(t, EffectMoveStep, tr.Effect)
	assert.Equal(t, 0, tr.Step)

	clock.Advance(time.Second)
	p.Apply(InputNext)
	clock.Advance(time.Second)
	tr = p.Apply(InputFirst)
	assert.Equal(t, SectionHero, tr.Section)

	clock.Advance(time.Second)
	tr = p.Apply(InputLast)
	assert.Equal(t, SectionFAQ, tr.Section)
	assert.Equal(t, 0, tr.Step)
}

func TestTransitionTableCoversAnimatingState(t *testing.T) {
	for _, in := range []Input{InputNext, InputPrev, InputFirst, InputLast} {
		r, ok := transitions[ruleKey{StateAnimating, in}]
		require.True(t, ok, in.String())
		assert.Equal(t, EffectDrop, r.effect)
		assert.Equal(t, StateAnimating, r.next)
	}
	_, ok := transitions[ruleKey{StateIdle, InputNone}]
	assert.False(t, ok)
}

func TestConcurrentInputsMoveOnce(t *testing.T) {
	p, _ := newTestPager(t)

	var moved atomic.Int32
	var g errgroup.Group
	for i := 0; i < 32; i++ {
		g.Go(func() error {
			if p.Apply(InputNext).Changed {
				moved.Add(1)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, int32(1), moved.Load())
	assert.Equal(t, 1, p.Status().Section)
}
