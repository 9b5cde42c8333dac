package quiz

import (
	"fmt"
	"strings"

	"github.com/w0uf/rangetrainer/internal/cascade"
	"github.com/w0uf/rangetrainer/internal/ranges"
	"github.com/w0uf/rangetrainer/internal/selector"
)

// DrillDown builds a multi-level question from a cascade of at least
// two steps. Each step becomes one level whose text accumulates the
// narrative of every prior decision.
func (b *Builder) DrillDown(s *ranges.Situation, sess *Session) (*Question, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	universe := s.AllHands()
	if len(universe) == 0 {
		return nil, fmt.Errorf("%w: situation has no hands", ErrNoQuestion)
	}
	avail := universe.Diff(sess.Used())
	if len(avail) == 0 {
		avail = universe
	}

	var cands []selector.DrillCandidate
	for h := range avail {
		c := cascade.Analyze(h, s)
		if len(c) >= 2 {
			cands = append(cands, selector.DrillCandidate{
				Hand:     h,
				Steps:    len(c),
				HasValue: c.HasValueLabel(),
			})
		}
	}

	h, picked := b.sel.DrillDown(cands)
	if !picked {
		return nil, fmt.Errorf("%w: no cascade deep enough", ErrNoQuestion)
	}
	casc := cascade.Analyze(h, s)

	villainPos := b.villainPosition(s)
	intro := b.formatQuestion(s, h)

	levels := make([]Level, 0, len(casc))
	for i, step := range casc {
		lv := Level{
			CorrectAnswer: step.Hero,
			Options:       levelOptions(step.Villain),
			ImplicitFold:  step.ImplicitFold,
		}
		if i == 0 {
			lv.Text = intro
		} else {
			lv.VillainText = villainText(villainPos, step.Villain, i)
			lv.Text = drillLevelText(villainPos, casc, i)
		}
		levels = append(levels, lv)
	}

	primary := s.Primary()
	inRange := primary != nil && primary.Hands.Contains(h)

	q := &Question{
		Type:            TypeDrillDown,
		SituationID:     s.ID,
		SituationName:   s.DisplayName,
		Hand:            h,
		InRange:         inRange,
		Text:            intro,
		Options:         levels[0].Options,
		CorrectAnswer:   levels[0].CorrectAnswer,
		Levels:          levels,
		VillainPosition: villainPos,
	}
	b.logger.Debug("built drill-down question",
		"situation", s.ID, "hand", h, "levels", len(levels), "implicit_fold", casc.EndsInImplicitFold())
	return q, nil
}

// levelOptions narrows the legal options at a level: facing an all-in
// only FOLD and CALL remain.
func levelOptions(villainToken string) []ranges.Action {
	if villainToken == ranges.VsAllIn {
		return []ranges.Action{ranges.Fold, ranges.Call}
	}
	return []ranges.Action{ranges.Fold, ranges.Call, ranges.Raise}
}

// drillLevelText builds the cumulative narrative for level i: one line
// per prior villain/hero exchange, then the current villain action and
// the prompt.
func drillLevelText(villainPos string, casc cascade.Cascade, i int) string {
	var lines []string
	for j := 1; j <= i; j++ {
		vt := villainText(villainPos, casc[j].Villain, j)
		if j < i {
			lines = append(lines, fmt.Sprintf("%s, you %s", vt, actionVerb(casc[j].Hero)))
		} else {
			lines = append(lines, vt)
		}
	}
	return strings.Join(lines, ". ") + ". What do you do?"
}
