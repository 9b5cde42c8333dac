// Package selector chooses hands for quiz questions. It implements a
// configurable random/borderline mix for single-level questions and a
// cascade-depth-weighted choice for multi-level questions. All
// randomness flows through an injected source so tests can pin seeds.
package selector

import (
	rand "math/rand/v2"
	"sort"

	"github.com/w0uf/rangetrainer/internal/hands"
)

// Defaults for the selection tuning knobs.
const (
	DefaultRandomRatio        = 0.70
	DefaultProximityThreshold = 12
	DefaultGapThreshold       = 5
)

// Selector picks quiz hands. It holds no per-question state; the
// caller owns the used-hands set.
type Selector struct {
	rng       *rand.Rand
	ratio     float64
	proximity int
	gap       int
}

// Option tunes a Selector.
type Option func(*Selector)

// WithRandomRatio sets the probability of a purely random pick versus
// a borderline pick.
func WithRandomRatio(r float64) Option {
	return func(s *Selector) { s.ratio = r }
}

// WithProximityThreshold sets the max strength distance for a hand to
// count as borderline-OUT.
func WithProximityThreshold(p int) Option {
	return func(s *Selector) { s.proximity = p }
}

// WithGapThreshold sets the strength gap that marks a frontier inside
// the in-range set.
func WithGapThreshold(g int) Option {
	return func(s *Selector) { s.gap = g }
}

// New creates a Selector drawing from rng.
func New(rng *rand.Rand, opts ...Option) *Selector {
	s := &Selector{
		rng:       rng,
		ratio:     DefaultRandomRatio,
		proximity: DefaultProximityThreshold,
		gap:       DefaultGapThreshold,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Available filters both sides of a hand split down to hands not yet
// used this session. When every hand has been exhausted both sides
// reset to their unfiltered contents.
func Available(in, out, used hands.Set) (availIn, availOut hands.Set) {
	availIn = in.Diff(used)
	availOut = out.Diff(used)
	if len(availIn) == 0 && len(availOut) == 0 {
		return in.Clone(), out.Clone()
	}
	return availIn, availOut
}

// Smart chooses a hand from the target side of an in/out split: with
// probability ratio a uniform pick, otherwise a pick from the
// borderline subset of that side (uniform fallback when the subset is
// empty). Returns false when the target side itself is empty.
func (s *Selector) Smart(in, out hands.Set, wantIn bool) (hands.Hand, bool) {
	target := in
	if !wantIn {
		target = out
	}
	if len(target) == 0 {
		return "", false
	}

	if s.rng.Float64() < s.ratio {
		return s.uniform(target), true
	}

	bIn, bOut := s.Borderline(in, out)
	border := bIn
	if !wantIn {
		border = bOut
	}
	if len(border) == 0 {
		return s.uniform(target), true
	}
	return border[s.rng.IntN(len(border))], true
}

// uniform picks uniformly from a set, going through the sorted slice
// so identical seeds give identical picks.
func (s *Selector) uniform(set hands.Set) hands.Hand {
	sl := set.Slice()
	return sl[s.rng.IntN(len(sl))]
}

// Borderline computes the pedagogically interesting frontier of an
// in/out split.
//
// A hand is borderline-IN when it sits at a strength frontier of the
// range: it is the globally weakest in-range hand, or the gap to the
// next-weaker in-range hand exceeds the gap threshold, or an
// out-of-range hand lies strictly weaker within the proximity
// threshold with no in-range hand in between.
//
// A hand is borderline-OUT when its strength distance to the nearest
// in-range hand is within the proximity threshold.
//
// Empty results fall back to the bottom (IN) or top (OUT) fifth of
// that side, so neither return is empty when its source is non-empty.
func (s *Selector) Borderline(in, out hands.Set) (borderIn, borderOut []hands.Hand) {
	if len(in) == 0 || len(out) == 0 {
		return in.Slice(), out.Slice()
	}

	sortedIn := in.Slice() // descending strength

	for i, h := range sortedIn {
		cur := hands.Strength(h)
		isBorder := false

		if i == len(sortedIn)-1 {
			// Weakest hand of the range is always a frontier.
			isBorder = true
		} else if cur-hands.Strength(sortedIn[i+1]) > s.gap {
			isBorder = true
		}

		if !isBorder {
			if o, dist, ok := closestOutBelow(cur, out); ok && dist <= s.proximity {
				if !hasInBetween(cur, hands.Strength(o), in) {
					isBorder = true
				}
			}
		}

		if isBorder {
			borderIn = append(borderIn, h)
		}
	}

	for h := range out {
		st := hands.Strength(h)
		best := -1
		for ih := range in {
			d := abs(st - hands.Strength(ih))
			if best < 0 || d < best {
				best = d
			}
		}
		if best >= 0 && best <= s.proximity {
			borderOut = append(borderOut, h)
		}
	}
	sortDescending(borderOut)

	if len(borderIn) == 0 {
		asc := sortedIn
		reverse(asc)
		borderIn = asc[:fifth(len(asc))]
	}
	if len(borderOut) == 0 {
		borderOut = out.Slice()[:fifth(len(out))]
	}
	return borderIn, borderOut
}

// closestOutBelow finds the nearest out-of-range hand strictly weaker
// than strength.
func closestOutBelow(strength int, out hands.Set) (hands.Hand, int, bool) {
	var best hands.Hand
	bestDist := -1
	for h := range out {
		st := hands.Strength(h)
		if st >= strength {
			continue
		}
		d := strength - st
		if bestDist < 0 || d < bestDist || (d == bestDist && h < best) {
			best, bestDist = h, d
		}
	}
	return best, bestDist, bestDist >= 0
}

// hasInBetween reports whether any in-range hand sits strictly between
// the two strengths.
func hasInBetween(upper, lower int, in hands.Set) bool {
	for h := range in {
		st := hands.Strength(h)
		if st > lower && st < upper {
			return true
		}
	}
	return false
}

func fifth(n int) int {
	f := n / 5
	if f < 1 {
		f = 1
	}
	return f
}

func sortDescending(hs []hands.Hand) {
	sort.Slice(hs, func(i, j int) bool {
		si, sj := hands.Strength(hs[i]), hands.Strength(hs[j])
		if si != sj {
			return si > sj
		}
		return hs[i] < hs[j]
	})
}

func reverse(hs []hands.Hand) {
	for i, j := 0, len(hs)-1; i < j; i, j = i+1, j-1 {
		hs[i], hs[j] = hs[j], hs[i]
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
