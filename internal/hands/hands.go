// Package hands models the fixed universe of 169 canonical two-card
// starting hands (13 pairs, 78 suited, 78 offsuit) and a curated
// strength ordering over them.
package hands

import (
	"fmt"
	"sort"
)

// Hand is one of the 169 canonical starting-hand classes, written in
// standard notation: "AA", "AKs", "T9o".
type Hand string

// Set is an unordered collection of hands.
type Set map[Hand]bool

// NewSet builds a Set from the given hands.
func NewSet(hs ...Hand) Set {
	s := make(Set, len(hs))
	for _, h := range hs {
		s[h] = true
	}
	return s
}

// Contains reports whether h is in the set.
func (s Set) Contains(h Hand) bool { return s[h] }

// Clone returns a shallow copy of the set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for h := range s {
		out[h] = true
	}
	return out
}

// Slice returns the hands sorted by descending strength, ties broken
// alphabetically so the order is stable.
func (s Set) Slice() []Hand {
	out := make([]Hand, 0, len(s))
	for h := range s {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool {
		si, sj := Strength(out[i]), Strength(out[j])
		if si != sj {
			return si > sj
		}
		return out[i] < out[j]
	})
	return out
}

// Diff returns the hands in s that are not in other.
func (s Set) Diff(other Set) Set {
	out := make(Set)
	for h := range s {
		if !other[h] {
			out[h] = true
		}
	}
	return out
}

const ranks = "AKQJT98765432"

// all holds the full 169-hand universe, pairs first, then suited, then
// offsuit, strongest kicker first within each block.
var all = buildUniverse()

func buildUniverse() []Hand {
	out := make([]Hand, 0, 169)
	for i := 0; i < len(ranks); i++ {
		out = append(out, Hand(string(ranks[i])+string(ranks[i])))
	}
	for _, suffix := range []string{"s", "o"} {
		for i := 0; i < len(ranks); i++ {
			for j := i + 1; j < len(ranks); j++ {
				out = append(out, Hand(string(ranks[i])+string(ranks[j])+suffix))
			}
		}
	}
	return out
}

// All returns the full universe of 169 hands. The returned slice is
// shared; callers must not mutate it.
func All() []Hand { return all }

var valid = func() map[Hand]bool {
	m := make(map[Hand]bool, len(all))
	for _, h := range all {
		m[h] = true
	}
	return m
}()

// Parse validates a hand string and returns it as a Hand.
func Parse(s string) (Hand, error) {
	if valid[Hand(s)] {
		return Hand(s), nil
	}
	return "", fmt.Errorf("invalid hand %q", s)
}

// IsValid reports whether h names one of the 169 canonical hands.
func IsValid(h Hand) bool { return valid[h] }

// Complement returns every hand in the universe that is not in the
// given set.
func Complement(in Set) Set {
	out := make(Set, len(all)-len(in))
	for _, h := range all {
		if !in[h] {
			out[h] = true
		}
	}
	return out
}
