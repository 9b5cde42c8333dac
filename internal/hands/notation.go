package hands

import (
	"fmt"
	"strings"
)

// ParseRange expands standard preflop range notation into a Set of
// canonical hand classes.
// Examples: "AA,KK", "AKs,AKo", "TT+", "A5s-A2s", "KTs+", "22-66".
func ParseRange(notation string) (Set, error) {
	out := make(Set)
	for _, part := range strings.Split(notation, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if err := addRangePart(out, part); err != nil {
			return nil, fmt.Errorf("invalid range part %q: %w", part, err)
		}
	}
	return out, nil
}

func addRangePart(out Set, part string) error {
	if strings.HasSuffix(part, "+") {
		return addPlusRange(out, strings.TrimSuffix(part, "+"))
	}
	if strings.Contains(part, "-") {
		return addDashRange(out, part)
	}
	return addSingleHand(out, part)
}

// addSingleHand adds one notation class. A bare unpaired notation like
// "AK" means both the suited and offsuit classes.
func addSingleHand(out Set, notation string) error {
	if len(notation) < 2 || len(notation) > 3 {
		return fmt.Errorf("bad notation length")
	}
	r1, r2 := rankIndex(notation[0]), rankIndex(notation[1])
	if r1 < 0 || r2 < 0 {
		return fmt.Errorf("bad rank")
	}

	if r1 == r2 {
		if len(notation) == 3 {
			return fmt.Errorf("pairs take no suited modifier")
		}
		out[makePair(r1)] = true
		return nil
	}

	if len(notation) == 2 {
		out[makeHand(r1, r2, "s")] = true
		out[makeHand(r1, r2, "o")] = true
		return nil
	}
	switch notation[2] {
	case 's', 'o':
		out[makeHand(r1, r2, string(notation[2]))] = true
		return nil
	default:
		return fmt.Errorf("bad modifier %q", notation[2])
	}
}

// addPlusRange handles "TT+" (this pair and every higher pair) and
// "KTs+" (this kicker and every higher kicker below the high card).
func addPlusRange(out Set, base string) error {
	if len(base) < 2 || len(base) > 3 {
		return fmt.Errorf("bad base notation")
	}
	r1, r2 := rankIndex(base[0]), rankIndex(base[1])
	if r1 < 0 || r2 < 0 {
		return fmt.Errorf("bad rank")
	}

	if r1 == r2 {
		if len(base) == 3 {
			return fmt.Errorf("pairs take no suited modifier")
		}
		for i := r1; i >= 0; i-- {
			out[makePair(i)] = true
		}
		return nil
	}

	suited, offsuit, err := modifiers(base)
	if err != nil {
		return err
	}
	for i := r2; i > r1; i-- {
		if suited {
			out[makeHand(r1, i, "s")] = true
		}
		if offsuit {
			out[makeHand(r1, i, "o")] = true
		}
	}
	return nil
}

// addDashRange handles "22-66" and "A5s-A2s" spans.
func addDashRange(out Set, notation string) error {
	parts := strings.SplitN(notation, "-", 2)
	start, end := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if len(start) < 2 || len(end) < 2 {
		return fmt.Errorf("bad span endpoints")
	}
	s1, s2 := rankIndex(start[0]), rankIndex(start[1])
	e1, e2 := rankIndex(end[0]), rankIndex(end[1])
	if s1 < 0 || s2 < 0 || e1 < 0 || e2 < 0 {
		return fmt.Errorf("bad rank")
	}

	if s1 == s2 && e1 == e2 {
		for i := min(s1, e1); i <= max(s1, e1); i++ {
			out[makePair(i)] = true
		}
		return nil
	}

	if s1 != e1 {
		return fmt.Errorf("unsupported span")
	}
	suited, offsuit, err := modifiers(start)
	if err != nil {
		return err
	}
	for i := min(s2, e2); i <= max(s2, e2); i++ {
		if suited {
			out[makeHand(s1, i, "s")] = true
		}
		if offsuit {
			out[makeHand(s1, i, "o")] = true
		}
	}
	return nil
}

func modifiers(notation string) (suited, offsuit bool, err error) {
	switch {
	case len(notation) == 2:
		return true, true, nil
	case notation[2] == 's':
		return true, false, nil
	case notation[2] == 'o':
		return false, true, nil
	default:
		return false, false, fmt.Errorf("bad modifier %q", notation[2])
	}
}

// rankIndex maps a rank character to its index in ranks, -1 when the
// character is not a rank. Lower index means higher rank.
func rankIndex(c byte) int {
	return strings.IndexByte(ranks, c)
}

func makePair(i int) Hand {
	return Hand(string(ranks[i]) + string(ranks[i]))
}

// makeHand orders the two ranks high card first regardless of input
// order.
func makeHand(i, j int, suffix string) Hand {
	if i > j {
		i, j = j, i
	}
	return Hand(string(ranks[i]) + string(ranks[j]) + suffix)
}
