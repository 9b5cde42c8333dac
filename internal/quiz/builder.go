package quiz

import (
	"fmt"
	rand "math/rand/v2"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/w0uf/rangetrainer/internal/hands"
	"github.com/w0uf/rangetrainer/internal/ranges"
	"github.com/w0uf/rangetrainer/internal/selector"
)

// Builder generates quiz questions from situations. It is safe to
// invoke concurrently with independent inputs: all state lives in the
// arguments and the shared random source.
type Builder struct {
	sel    *selector.Selector
	rng    *rand.Rand
	logger *log.Logger
}

// NewBuilder creates a Builder drawing randomness from rng. Selector
// options tune the borderline mix.
func NewBuilder(rng *rand.Rand, logger *log.Logger, opts ...selector.Option) *Builder {
	return &Builder{
		sel:    selector.New(rng, opts...),
		rng:    rng,
		logger: logger.WithPrefix("quiz"),
	}
}

// Rand exposes the builder's random source so callers can share it
// for situation picking.
func (b *Builder) Rand() *rand.Rand { return b.rng }

// Simple builds a single-level question about the situation's primary
// action. Returns ErrNoQuestion when no eligible hand or answer
// exists, and ErrMalformedSituation-wrapped errors for broken data.
func (b *Builder) Simple(s *ranges.Situation, sess *Session) (*Question, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	primary := s.Primary()
	if primary == nil {
		return nil, fmt.Errorf("%w: situation %d has no primary range", ranges.ErrMalformedSituation, s.ID)
	}
	norm, ok := ranges.Normalize(primary.Label)
	if !ok {
		return nil, fmt.Errorf("%w: situation %d primary range has no usable label", ranges.ErrMalformedSituation, s.ID)
	}
	if len(primary.Hands) == 0 {
		return nil, fmt.Errorf("%w: primary range is empty", ErrNoQuestion)
	}

	in := primary.Hands
	out := hands.Complement(in)
	availIn, availOut := selector.Available(in, out, sess.Used())

	wantIn := b.rng.Float64() >= 0.5
	if wantIn && len(availIn) == 0 {
		wantIn = false
	} else if !wantIn && len(availOut) == 0 {
		wantIn = true
	}

	h, picked := b.sel.Smart(availIn, availOut, wantIn)
	if !picked {
		return nil, fmt.Errorf("%w: no hand eligible", ErrNoQuestion)
	}

	var correct ranges.Action
	if wantIn {
		if norm == ranges.Defense {
			sub, found := s.SubrangeAction(h)
			if !found {
				b.logger.Debug("hand in defense range without subrange action", "hand", h, "situation", s.ID)
				return nil, fmt.Errorf("%w: %s has no subrange action", ErrNoQuestion, h)
			}
			correct = ranges.DisplayAction(sub)
		} else {
			correct = ranges.DisplayAction(norm)
		}
	} else {
		correct = ranges.Fold
	}

	options := b.buildOptions(correct, norm, s)
	if len(options) < 2 {
		return nil, fmt.Errorf("%w: not enough valid options", ErrNoQuestion)
	}

	q := &Question{
		Type:          TypeSimple,
		SituationID:   s.ID,
		SituationName: s.DisplayName,
		Hand:          h,
		InRange:       wantIn,
		Text:          b.formatQuestion(s, h),
		Options:       options,
		CorrectAnswer: correct,
	}
	b.logger.Debug("built simple question", "situation", s.ID, "hand", h, "answer", correct)
	return q, nil
}

// buildOptions assembles the option list: correct answer, the
// converted primary action when different, FOLD (or CHECK for the big
// blind in an unraised pot), then contextual distractors until at
// least three options exist, deduplicated and canonically ordered.
func (b *Builder) buildOptions(correct, primaryNorm ranges.Action, s *ranges.Situation) []ranges.Action {
	options := []ranges.Action{correct}

	if primaryNorm != ranges.Defense {
		if pd := ranges.DisplayAction(primaryNorm); pd != correct {
			options = append(options, pd)
		}
	}

	if s.HeroPosition == "BB" && strings.Contains(s.PrimaryAction, "check") {
		options = appendOption(options, ranges.Check)
	} else {
		options = appendOption(options, ranges.Fold)
	}

	if len(options) < 3 {
		for _, d := range contextualDistractors(s.PrimaryAction) {
			options = appendOption(options, d)
			if len(options) >= 3 {
				break
			}
		}
	}

	return ranges.SortActions(dedupe(options))
}

// contextualDistractors returns plausible wrong answers for the given
// primary action, at most two so the option list stays at three.
func contextualDistractors(primaryAction string) []ranges.Action {
	switch {
	case strings.Contains(primaryAction, "defense"):
		return []ranges.Action{ranges.Call, ranges.Raise}
	case strings.Contains(primaryAction, "open"):
		return []ranges.Action{ranges.Call}
	case strings.Contains(primaryAction, "squeeze"):
		return []ranges.Action{ranges.Call}
	case strings.Contains(primaryAction, "vs_limpers"), strings.Contains(primaryAction, "iso"):
		return []ranges.Action{ranges.Call, ranges.Iso}
	case strings.Contains(primaryAction, "check"):
		return []ranges.Action{ranges.Raise}
	case strings.Contains(primaryAction, "3bet"):
		return []ranges.Action{ranges.Call}
	default:
		return []ranges.Action{ranges.Call}
	}
}

func appendOption(options []ranges.Action, a ranges.Action) []ranges.Action {
	for _, o := range options {
		if o == a {
			return options
		}
	}
	return append(options, a)
}

func dedupe(options []ranges.Action) []ranges.Action {
	seen := make(map[ranges.Action]bool, len(options))
	out := options[:0]
	for _, o := range options {
		if !seen[o] {
			seen[o] = true
			out = append(out, o)
		}
	}
	return out
}
