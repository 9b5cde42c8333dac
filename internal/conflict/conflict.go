// Package conflict cross-checks situations that present the same
// decision to the player and reports hands whose recommended action
// differs between them.
package conflict

import (
	"fmt"
	"sort"
	"strings"

	"github.com/w0uf/rangetrainer/internal/hands"
	"github.com/w0uf/rangetrainer/internal/ranges"
)

// Entry is one disagreement: at a given decision level, the same hand
// resolves to different actions in two or more situations.
type Entry struct {
	Level   int                     `json:"level"`
	Hand    hands.Hand              `json:"hand"`
	Actions map[int64]ranges.Action `json:"actions"`
}

// Report lists every disagreement found, ordered by level, then by
// hand strength descending.
type Report struct {
	Entries []Entry `json:"entries"`
}

// Empty reports whether no conflicts were found.
func (r Report) Empty() bool { return len(r.Entries) == 0 }

// AtLevel returns the entries of one decision level.
func (r Report) AtLevel(level int) []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// Detect compares situations that render as the same decision and
// reports hands whose action disagrees. Fewer than two situations can
// never conflict. Situations with different identity keys are never
// compared.
func Detect(situations []*ranges.Situation) Report {
	if len(situations) < 2 {
		return Report{}
	}

	groups := make(map[string][]*ranges.Situation)
	for _, s := range situations {
		k := identityKey(s)
		groups[k] = append(groups[k], s)
	}

	var entries []Entry
	for _, members := range groups {
		if len(members) < 2 {
			continue
		}
		entries = append(entries, detectGroup(members)...)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Level != entries[j].Level {
			return entries[i].Level < entries[j].Level
		}
		si, sj := hands.Strength(entries[i].Hand), hands.Strength(entries[j].Hand)
		if si != sj {
			return si > sj
		}
		return entries[i].Hand < entries[j].Hand
	})
	return Report{Entries: entries}
}

// identityKey reduces a situation to the fields a player actually sees
// in the question text. Two situations with equal keys present the
// same decision.
func identityKey(s *ranges.Situation) string {
	return strings.Join([]string{
		s.TableFormat,
		s.HeroPosition,
		s.StackDepth,
		s.PrimaryAction,
		reducedSequence(s),
	}, "|")
}

// reducedSequence keeps only the sequence parts rendered for the
// situation's primary action kind.
func reducedSequence(s *ranges.Situation) string {
	seq := s.Sequence
	if seq == nil {
		return "GENERIC"
	}
	switch {
	case strings.Contains(s.PrimaryAction, ranges.PrimarySqueeze):
		callers := append([]string(nil), seq.Callers...)
		sort.Strings(callers)
		return seq.Opener + "+" + strings.Join(callers, ",")
	case strings.Contains(s.PrimaryAction, ranges.PrimaryVsLimpers):
		limpers := append([]string(nil), seq.Limpers...)
		sort.Strings(limpers)
		return strings.Join(limpers, ",")
	case strings.Contains(s.PrimaryAction, ranges.PrimaryDefense):
		if seq.Opener == "" {
			return "GENERIC"
		}
		return seq.Opener
	default:
		return "GENERIC"
	}
}

// detectGroup runs the level-by-level comparison for one identity
// group.
func detectGroup(members []*ranges.Situation) []Entry {
	var entries []Entry
	type levelHand struct {
		level int
		hand  hands.Hand
	}
	seen := make(map[levelHand]bool)
	for _, seq := range groupSequences(members) {
		level := len(seq) - 1
		for _, h := range sequenceHands(members, seq).Slice() {
			if seen[levelHand{level, h}] {
				continue
			}
			seen[levelHand{level, h}] = true
			actions := make(map[int64]ranges.Action, len(members))
			distinct := make(map[ranges.Action]bool)
			for _, m := range members {
				a := resolveAction(m, h, seq, level)
				actions[m.ID] = a
				distinct[a] = true
			}
			if len(distinct) >= 2 {
				entries = append(entries, Entry{Level: level, Hand: h, Actions: actions})
			}
		}
	}
	return entries
}

// groupSequences enumerates every decision sequence reachable in the
// group: level 0 is always the fixed initial raise, deeper levels come
// from unrolling each range label's action chain progressively.
func groupSequences(members []*ranges.Situation) [][]ranges.ActionPair {
	seen := make(map[string]bool)
	var out [][]ranges.ActionPair

	add := func(seq []ranges.ActionPair) {
		k := sequenceKey(seq)
		if !seen[k] {
			seen[k] = true
			out = append(out, seq)
		}
	}

	add(ranges.InitialSequence())
	for _, m := range members {
		for _, r := range m.Ranges {
			entry, err := ranges.StructureFor(r.Label)
			if err != nil {
				continue
			}
			for n := 1; n <= len(entry.Actions); n++ {
				add(entry.Actions[:n])
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) < len(out[j])
		}
		return sequenceKey(out[i]) < sequenceKey(out[j])
	})
	return out
}

func sequenceKey(seq []ranges.ActionPair) string {
	parts := make([]string, len(seq))
	for i, p := range seq {
		parts[i] = fmt.Sprintf("%s:%s", p.Villain, p.Hero)
	}
	return strings.Join(parts, ">")
}

// sequenceHands collects the union of hands across every member range
// that structurally matches the sequence.
func sequenceHands(members []*ranges.Situation, seq []ranges.ActionPair) hands.Set {
	out := make(hands.Set)
	for _, m := range members {
		for _, r := range m.Ranges {
			if !rangeMatches(r, seq) {
				continue
			}
			for h := range r.Hands {
				out[h] = true
			}
		}
	}
	return out
}

// rangeMatches reports whether the range's label answers the sequence:
// its declared action chain starts with exactly these pairs.
func rangeMatches(r ranges.Range, seq []ranges.ActionPair) bool {
	entry, err := ranges.StructureFor(r.Label)
	if err != nil {
		return false
	}
	if len(entry.Actions) < len(seq) {
		return false
	}
	for i, p := range seq {
		if entry.Actions[i] != p {
			return false
		}
	}
	return true
}

// resolveAction computes the hero action one situation recommends for
// a hand at a decision level. Absence from every matching range means
// fold.
func resolveAction(s *ranges.Situation, h hands.Hand, seq []ranges.ActionPair, level int) ranges.Action {
	if level == 0 {
		return resolveInitial(s, h)
	}
	for _, r := range s.Ranges {
		if rangeMatches(r, seq) && r.Hands.Contains(h) {
			return ranges.DisplayAction(seq[len(seq)-1].Hero)
		}
	}
	return ranges.Fold
}

// resolveInitial applies the simple-question resolution rule: the
// first range, by declaration order, containing the hand decides, with
// the DEFENSE container deferring to its subranges.
func resolveInitial(s *ranges.Situation, h hands.Hand) ranges.Action {
	for _, r := range s.Ranges {
		if !r.Hands.Contains(h) {
			continue
		}
		a, ok := ranges.Normalize(r.Label)
		if !ok {
			continue
		}
		if a == ranges.Defense {
			sub, found := s.SubrangeAction(h)
			if !found {
				continue
			}
			return ranges.DisplayAction(sub)
		}
		return ranges.DisplayAction(a)
	}
	return ranges.Fold
}
