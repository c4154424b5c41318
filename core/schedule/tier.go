// Package schedule holds the statutory brokerage fee tables.
//
// A Table maps (region, property category, deal type) to a Schedule, an
// ordered list of half-open rate tiers. Tables are parsed from HCL once at
// startup and are immutable afterwards; callers reach them only through
// Table.Lookup.
package schedule

import (
	"fmt"

	"github.com/shopspring/decimal"

	"barodeal/core/types"
)

// RateTier is one row of a schedule
type RateTier struct {
	// Min is the inclusive lower bound in won
	Min decimal.Decimal `json:"min"`

	// Max is the exclusive upper bound in won (nil = unbounded)
	Max *decimal.Decimal `json:"max,omitempty"`

	// Rate is the fractional commission rate (0.004 = 0.4%)
	Rate decimal.Decimal `json:"rate"`

	// Cap is an absolute ceiling on the commission (nil = no cap)
	Cap *decimal.Decimal `json:"cap,omitempty"`
}

// Contains reports whether amount falls in [Min, Max).
func (t RateTier) Contains(amount decimal.Decimal) bool {
	if amount.LessThan(t.Min) {
		return false
	}
	return t.Max == nil || amount.LessThan(*t.Max)
}

// Bounded reports whether the tier has an upper bound
func (t RateTier) Bounded() bool {
	return t.Max != nil
}

// HasCap reports whether the tier carries an absolute cap
func (t RateTier) HasCap() bool {
	return t.Cap != nil
}

func (t RateTier) String() string {
	upper := "∞"
	if t.Max != nil {
		upper = t.Max.String()
	}
	s := fmt.Sprintf("[%s, %s) rate %s", t.Min.String(), upper, t.Rate.String())
	if t.Cap != nil {
		s += " cap " + t.Cap.String()
	}
	return s
}

// Key addresses one schedule inside a table
type Key struct {
	Region   types.Region           `json:"region"`
	Category types.PropertyCategory `json:"category"`
	Deal     types.DealType         `json:"deal"`
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s/%s", k.Region, k.Category, k.Deal)
}

// Provenance records where a region's table came from
type Provenance struct {
	// Source names the ordinance or document the rates are taken from
	Source string `json:"source"`

	// EffectiveFrom is the date the rates took effect (YYYY-MM-DD)
	EffectiveFrom string `json:"effective_from"`
}

// Schedule is an ordered, contiguous tier list for one key
type Schedule struct {
	Key        Key        `json:"key"`
	Tiers      []RateTier `json:"tiers"`
	Provenance Provenance `json:"provenance"`
}

// Flat reports whether the schedule is a single unbounded tier, i.e. one
// rate for every amount.
func (s Schedule) Flat() bool {
	return len(s.Tiers) == 1 && !s.Tiers[0].Bounded()
}

// Match returns the first tier containing amount. If none does, it returns
// the last tier and false. Validate guarantees coverage of [0, ∞), so the
// fallback only triggers for amounts below zero; it is a guard, not a rule.
func (s Schedule) Match(amount decimal.Decimal) (RateTier, bool) {
	for _, tier := range s.Tiers {
		if tier.Contains(amount) {
			return tier, true
		}
	}
	return s.Tiers[len(s.Tiers)-1], false
}

// Validate checks that the tiers partition [0, ∞): sorted, contiguous, first
// tier starting at zero, only the last tier unbounded, positive rates and caps.
func (s Schedule) Validate() error {
	if len(s.Tiers) == 0 {
		return fmt.Errorf("schedule %s: no tiers", s.Key)
	}
	if !s.Tiers[0].Min.IsZero() {
		return fmt.Errorf("schedule %s: first tier starts at %s, want 0", s.Key, s.Tiers[0].Min)
	}

	last := len(s.Tiers) - 1
	for i, tier := range s.Tiers {
		if !tier.Rate.IsPositive() {
			return fmt.Errorf("schedule %s tier %d: rate %s must be positive", s.Key, i, tier.Rate)
		}
		if tier.Cap != nil && !tier.Cap.IsPositive() {
			return fmt.Errorf("schedule %s tier %d: cap %s must be positive", s.Key, i, tier.Cap)
		}
		if i == last {
			if tier.Max != nil {
				return fmt.Errorf("schedule %s: last tier must be unbounded", s.Key)
			}
			break
		}
		if tier.Max == nil {
			return fmt.Errorf("schedule %s tier %d: only the last tier may be unbounded", s.Key, i)
		}
		if !tier.Max.GreaterThan(tier.Min) {
			return fmt.Errorf("schedule %s tier %d: empty window [%s, %s)", s.Key, i, tier.Min, tier.Max)
		}
		if next := s.Tiers[i+1].Min; !next.Equal(*tier.Max) {
			return fmt.Errorf("schedule %s tier %d: ends at %s but next tier starts at %s", s.Key, i, tier.Max, next)
		}
	}
	return nil
}
