package selector

import (
	"sort"

	"github.com/w0uf/rangetrainer/internal/hands"
)

// DrillCandidate is a hand eligible for a multi-level question, with
// the shape of its computed cascade.
type DrillCandidate struct {
	Hand     hands.Hand
	Steps    int
	HasValue bool
}

// score biases selection toward longer cascades, with a bonus for
// value lines.
func (c DrillCandidate) score() int {
	s := c.Steps
	if c.HasValue {
		s++
	}
	return s
}

// DrillDown picks a hand for a multi-level question. Candidates must
// already be restricted to cascades of at least two steps; the pick is
// uniform over the top-scoring half (minimum one) so longer and
// value-heavy lines dominate without killing variety.
func (s *Selector) DrillDown(cands []DrillCandidate) (hands.Hand, bool) {
	var pool []DrillCandidate
	for _, c := range cands {
		if c.Steps >= 2 {
			pool = append(pool, c)
		}
	}
	if len(pool) == 0 {
		return "", false
	}

	sort.SliceStable(pool, func(i, j int) bool {
		si, sj := pool[i].score(), pool[j].score()
		if si != sj {
			return si > sj
		}
		return pool[i].Hand < pool[j].Hand
	})

	top := len(pool) / 2
	if top < 1 {
		top = 1
	}
	return pool[s.rng.IntN(top)].Hand, true
}
