package ranges

import (
	"errors"
	"fmt"

	"github.com/w0uf/rangetrainer/internal/hands"
)

// PrimaryRangeKey is the range key that always denotes the primary,
// initial range of a situation.
const PrimaryRangeKey = "1"

// Primary action kinds carried by situation metadata.
const (
	PrimaryOpen      = "open"
	PrimaryDefense   = "defense"
	PrimarySqueeze   = "squeeze"
	PrimaryVsLimpers = "vs_limpers"
	PrimaryCheck     = "check"
	Primary3Bet      = "3bet"
)

// Range is a named, labeled set of hands belonging to one situation.
// An empty hand set is meaningful: it says "nobody continues here",
// not "undefined".
type Range struct {
	Key   string
	Name  string
	Label Label
	Hands hands.Set
}

// ActionSequence carries the parsed pre-decision action history of a
// situation: who opened, who called, who limped.
type ActionSequence struct {
	Opener  string   `json:"opener,omitempty"`
	Callers []string `json:"callers,omitempty"`
	Limpers []string `json:"limpers,omitempty"`
}

// Situation is the decision node a question is about. Situations are
// read-only inputs to the engine and are never mutated by it.
type Situation struct {
	ID            int64
	Name          string
	DisplayName   string
	TableFormat   string
	HeroPosition  string
	VsPosition    string
	StackDepth    string
	PrimaryAction string
	Sequence      *ActionSequence
	Ranges        []Range
}

// ErrMalformedSituation reports a situation whose metadata or range
// labels cannot support question generation. Callers should skip the
// situation entirely rather than retry hand selection.
var ErrMalformedSituation = errors.New("malformed situation")

// Primary returns the situation's primary range (range key "1"), or
// nil when none exists.
func (s *Situation) Primary() *Range {
	for i := range s.Ranges {
		if s.Ranges[i].Key == PrimaryRangeKey {
			return &s.Ranges[i]
		}
	}
	return nil
}

// Subranges returns the non-primary ranges in declaration order.
func (s *Situation) Subranges() []Range {
	var out []Range
	for _, r := range s.Ranges {
		if r.Key != PrimaryRangeKey {
			out = append(out, r)
		}
	}
	return out
}

// FirstRange returns the first range (by declaration order) carrying
// the given label, or nil.
func (s *Situation) FirstRange(l Label) *Range {
	for i := range s.Ranges {
		if s.Ranges[i].Label == l {
			return &s.Ranges[i]
		}
	}
	return nil
}

// SubrangeAction resolves the real action for a hand whose primary
// label is the DEFENSE container: the first non-primary range, by
// declaration order, whose hand set contains the hand.
func (s *Situation) SubrangeAction(h hands.Hand) (Action, bool) {
	for _, r := range s.Subranges() {
		if !r.Hands.Contains(h) {
			continue
		}
		if a, ok := Normalize(r.Label); ok {
			return a, true
		}
	}
	return "", false
}

// AllHands returns the union of hands across every range of the
// situation.
func (s *Situation) AllHands() hands.Set {
	out := make(hands.Set)
	for _, r := range s.Ranges {
		for h := range r.Hands {
			out[h] = true
		}
	}
	return out
}

// Validate checks the metadata the engine depends on. Label problems
// on non-primary ranges are tolerated here; the analyzer treats them
// as dead ends.
func (s *Situation) Validate() error {
	if s.TableFormat == "" || s.HeroPosition == "" || s.PrimaryAction == "" {
		return fmt.Errorf("%w: situation %d missing required metadata", ErrMalformedSituation, s.ID)
	}
	if len(s.Ranges) == 0 {
		return fmt.Errorf("%w: situation %d has no ranges", ErrMalformedSituation, s.ID)
	}
	return nil
}
