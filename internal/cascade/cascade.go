// Package cascade walks the range structure graph to derive, for one
// hand within one situation, the full ordered chain of decisions the
// range data implies — including a synthesized implicit fold where the
// data says a continuation exists but the hand is not part of it.
package cascade

import (
	"github.com/w0uf/rangetrainer/internal/hands"
	"github.com/w0uf/rangetrainer/internal/ranges"
)

// Step is one decision level of a cascade. Range is nil for the
// synthetic implicit-fold step.
type Step struct {
	Label        ranges.Label
	Villain      string
	Hero         ranges.Action
	Range        *ranges.Range
	ImplicitFold bool
}

// Cascade is the ordered chain of steps computed for one hand within
// one situation. An implicit-fold step, if present, is always last.
type Cascade []Step

// HasValueLabel reports whether any step is backed by a value-type
// label.
func (c Cascade) HasValueLabel() bool {
	for _, s := range c {
		if s.Label == ranges.LabelR3Value || s.Label == ranges.LabelR4Value ||
			s.Label == ranges.LabelIsoValue {
			return true
		}
	}
	return false
}

// EndsInImplicitFold reports whether the cascade terminates in a
// synthesized fold.
func (c Cascade) EndsInImplicitFold() bool {
	return len(c) > 0 && c[len(c)-1].ImplicitFold
}

// Analyze computes the cascade for hand h in situation s. A nil or
// empty result means the hand is not addressed by the situation at
// all; that is a normal outcome, not an error. The walk is
// deterministic and treats a revisited label as a dead end.
func Analyze(h hands.Hand, s *ranges.Situation) Cascade {
	cur := entryRange(h, s)
	if cur == nil {
		return nil
	}

	var out Cascade
	visited := make(map[ranges.Label]bool)

	for {
		if visited[cur.Label] {
			break
		}
		visited[cur.Label] = true

		entry, err := ranges.StructureFor(cur.Label)
		if err != nil {
			// Label outside the graph: upstream data is allowed to be
			// imperfect, treat as a dead end.
			break
		}

		// Entries carry the full chain from level 0; append only the
		// pairs beyond what previous levels already emitted.
		if len(out) > len(entry.Actions) {
			break
		}
		for _, p := range entry.Actions[len(out):] {
			out = append(out, Step{
				Label:   cur.Label,
				Villain: p.Villain,
				Hero:    p.Hero,
				Range:   cur,
			})
		}

		if len(entry.Next) == 0 {
			break
		}

		next, foldOn := continuation(h, s, entry.Next, len(out), visited)
		if next != nil {
			cur = next
			continue
		}
		if foldOn != nil {
			foldEntry, _ := ranges.StructureFor(foldOn.Label)
			out = append(out, Step{
				Label:        foldOn.Label,
				Villain:      foldEntry.Actions[len(out)].Villain,
				Hero:         ranges.Fold,
				ImplicitFold: true,
			})
		}
		break
	}

	return out
}

// entryRange finds the situation's entry range for a hand: the first
// range, in the fixed entry-label search order, whose hand set
// contains h.
func entryRange(h hands.Hand, s *ranges.Situation) *ranges.Range {
	for _, lbl := range ranges.EntryLabels {
		for i := range s.Ranges {
			r := &s.Ranges[i]
			if r.Label == lbl && r.Hands.Contains(h) {
				return r
			}
		}
	}
	return nil
}

// continuation searches nextLabels in declared order. It returns the
// first range containing h, or (nil, foldOn) where foldOn is the first
// next-label range that exists in the situation and whose structure
// chain extends past depth — the basis for an implicit fold. Both nil
// means the situation holds no data to model a continuation.
func continuation(h hands.Hand, s *ranges.Situation, nextLabels []ranges.Label, depth int, visited map[ranges.Label]bool) (next, foldOn *ranges.Range) {
	for _, nl := range nextLabels {
		if visited[nl] {
			// Cycle guard: a revisited label is a dead end.
			continue
		}
		r := s.FirstRange(nl)
		if r == nil {
			continue
		}
		if r.Hands.Contains(h) {
			return r, nil
		}
		if foldOn == nil {
			if e, err := ranges.StructureFor(nl); err == nil && len(e.Actions) > depth {
				foldOn = r
			}
		}
	}
	return nil, foldOn
}
