package schedule

import (
	_ "embed"
	"fmt"
	"sync"

	"barodeal/core/determinism"
	"barodeal/core/types"
	apperrors "barodeal/internal/errors"
)

//go:embed data/seoul.hcl
var seoulHCL []byte

// Table is an immutable set of schedules keyed by region, category and deal type
type Table struct {
	schedules   map[Key]Schedule
	fingerprint determinism.ContentHash
}

// NewTable validates every schedule and rejects duplicate keys.
func NewTable(schedules []Schedule) (*Table, error) {
	t := &Table{schedules: make(map[Key]Schedule, len(schedules))}
	for _, s := range schedules {
		if _, dup := t.schedules[s.Key]; dup {
			return nil, apperrors.Config(fmt.Sprintf("duplicate schedule %s", s.Key), nil)
		}
		if err := s.Validate(); err != nil {
			return nil, apperrors.Config("invalid schedule", err)
		}
		tiers := make([]RateTier, len(s.Tiers))
		copy(tiers, s.Tiers)
		s.Tiers = tiers
		t.schedules[s.Key] = s
	}
	t.fingerprint = t.computeFingerprint()
	return t, nil
}

// Lookup returns the schedule for a combination. A miss is a computation
// error: with a complete table it cannot happen for valid enums.
func (t *Table) Lookup(region types.Region, category types.PropertyCategory, deal types.DealType) (Schedule, error) {
	key := Key{Region: region, Category: category, Deal: deal}
	s, ok := t.schedules[key]
	if !ok {
		return Schedule{}, apperrors.Computation(fmt.Sprintf("no fee schedule for %s", key), nil).
			WithContext("key", key.String())
	}
	return s, nil
}

// Schedules returns every schedule in a stable order
func (t *Table) Schedules() []Schedule {
	keys := determinism.SortedKeysFunc(t.schedules, Key.String)
	out := make([]Schedule, 0, len(keys))
	for _, k := range keys {
		out = append(out, t.schedules[k])
	}
	return out
}

// Regions returns the regions the table covers
func (t *Table) Regions() []types.Region {
	seen := make(map[types.Region]struct{})
	for k := range t.schedules {
		seen[k.Region] = struct{}{}
	}
	return determinism.SortedKeys(seen)
}

// Fingerprint identifies the table contents; two tables with equal
// fingerprints price every request identically.
func (t *Table) Fingerprint() determinism.ContentHash {
	return t.fingerprint
}

func (t *Table) computeFingerprint() determinism.ContentHash {
	var parts []string
	for _, s := range t.Schedules() {
		parts = append(parts, s.Key.String(), s.Provenance.Source, s.Provenance.EffectiveFrom)
		for _, tier := range s.Tiers {
			parts = append(parts, tier.String())
		}
	}
	return determinism.HashParts(parts...)
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
	defaultErr   error
)

// Default returns the embedded Seoul table, parsed on first use.
func Default() (*Table, error) {
	defaultOnce.Do(func() {
		var schedules []Schedule
		schedules, defaultErr = Parse(seoulHCL, "data/seoul.hcl")
		if defaultErr != nil {
			return
		}
		defaultTable, defaultErr = NewTable(schedules)
	})
	return defaultTable, defaultErr
}
