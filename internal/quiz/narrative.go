package quiz

import (
	"fmt"
	"strings"

	"github.com/w0uf/rangetrainer/internal/hands"
	"github.com/w0uf/rangetrainer/internal/ranges"
)

// positionsByFormat lists seat names in acting order for each table
// format.
var positionsByFormat = map[string][]string{
	"5max": {"UTG", "CO", "BTN", "SB", "BB"},
	"6max": {"UTG", "MP", "CO", "BTN", "SB", "BB"},
	"9max": {"UTG", "UTG+1", "MP", "MP+1", "LJ", "HJ", "CO", "BTN", "SB", "BB"},
	"HU":   {"BTN", "BB"},
}

var lateFallbackPositions = []string{"CO", "BTN", "SB", "BB"}

func formatPositions(format string) []string {
	if p, ok := positionsByFormat[format]; ok {
		return p
	}
	return positionsByFormat["6max"]
}

// formatQuestion builds the situation narrative for a hand: table
// format, hero seat and stack, then the action that led to the
// decision, inventing narrative details the data leaves out.
func (b *Builder) formatQuestion(s *ranges.Situation, h hands.Hand) string {
	stack := s.StackDepth
	if stack == "" {
		stack = "100bb"
	}

	parts := []string{fmt.Sprintf("%s table, you are %s with %s", s.TableFormat, s.HeroPosition, stack)}

	switch s.PrimaryAction {
	case ranges.PrimaryOpen:
		// Folded to the hero; nothing to narrate.
	case ranges.PrimaryDefense, ranges.Primary3Bet:
		parts = append(parts, fmt.Sprintf("%s opens", b.opener(s)))
	case ranges.PrimarySqueeze:
		opener := b.opener(s)
		parts = append(parts, fmt.Sprintf("%s opens", opener))
		parts = append(parts, callersLine(b.callers(s, opener)))
	case ranges.PrimaryVsLimpers:
		parts = append(parts, limpersLine(b.limpers(s)))
	case ranges.PrimaryCheck:
		parts = append(parts, "nobody has opened")
	}

	return strings.Join(parts, ". ") + fmt.Sprintf(". You have %s. What do you do?", h)
}

// opener resolves the villain who opened: explicit sequence data
// first, then the stored vs-position, then an invented seat acting
// before the hero.
func (b *Builder) opener(s *ranges.Situation) string {
	if s.Sequence != nil && s.Sequence.Opener != "" {
		return s.Sequence.Opener
	}
	if s.VsPosition != "" && s.VsPosition != "N/A" {
		return s.VsPosition
	}
	positions := formatPositions(s.TableFormat)
	idx := indexOf(positions, s.HeroPosition)
	if idx > 0 {
		return positions[b.rng.IntN(idx)]
	}
	return "UTG"
}

func (b *Builder) callers(s *ranges.Situation, opener string) []string {
	if s.Sequence != nil && len(s.Sequence.Callers) > 0 {
		return s.Sequence.Callers
	}
	// Invent a single caller seated between the opener and the hero.
	positions := formatPositions(s.TableFormat)
	var pool []string
	for _, p := range positions {
		if p != opener && p != s.HeroPosition {
			pool = append(pool, p)
		}
	}
	if len(pool) == 0 {
		return []string{"MP"}
	}
	return []string{pool[b.rng.IntN(len(pool))]}
}

func (b *Builder) limpers(s *ranges.Situation) []string {
	if s.Sequence != nil && len(s.Sequence.Limpers) > 0 {
		return s.Sequence.Limpers
	}
	positions := formatPositions(s.TableFormat)
	idx := indexOf(positions, s.HeroPosition)
	if idx > 0 {
		return []string{positions[b.rng.IntN(idx)]}
	}
	return []string{"UTG"}
}

func callersLine(callers []string) string {
	if len(callers) == 1 {
		return callers[0] + " calls"
	}
	return joinSeats(callers) + " call"
}

func limpersLine(limpers []string) string {
	if len(limpers) == 1 {
		return limpers[0] + " limps"
	}
	return joinSeats(limpers) + " limp"
}

func joinSeats(seats []string) string {
	if len(seats) <= 1 {
		return strings.Join(seats, "")
	}
	return strings.Join(seats[:len(seats)-1], ", ") + " and " + seats[len(seats)-1]
}

// villainPosition fixes the villain's seat once for a whole drill-down
// so every level of the sequence stays coherent.
func (b *Builder) villainPosition(s *ranges.Situation) string {
	switch s.PrimaryAction {
	case ranges.PrimaryDefense, ranges.PrimarySqueeze, ranges.Primary3Bet:
		return b.opener(s)
	}
	if s.VsPosition != "" && s.VsPosition != "N/A" {
		return s.VsPosition
	}
	positions := formatPositions(s.TableFormat)
	idx := indexOf(positions, s.HeroPosition)
	if idx >= 0 && idx+1 < len(positions) {
		later := positions[idx+1:]
		return later[b.rng.IntN(len(later))]
	}
	return lateFallbackPositions[b.rng.IntN(len(lateFallbackPositions))]
}

// villainText renders the villain's escalation at a drill-down level.
func villainText(villainPos, villainToken string, level int) string {
	if villainToken == ranges.VsAllIn {
		return villainPos + " shoves all-in"
	}
	switch level {
	case 1:
		return villainPos + " 3-bets"
	case 2:
		return villainPos + " 5-bets"
	default:
		return villainPos + " raises again"
	}
}

func actionVerb(a ranges.Action) string {
	switch a {
	case ranges.Raise, ranges.Open, ranges.Iso, ranges.ThreeB, ranges.Squeeze, ranges.FourB:
		return "raise"
	case ranges.Call:
		return "call"
	case ranges.Check:
		return "check"
	case ranges.AllIn:
		return "shove"
	default:
		return "fold"
	}
}

func indexOf(ss []string, s string) int {
	for i, v := range ss {
		if v == s {
			return i
		}
	}
	return -1
}
