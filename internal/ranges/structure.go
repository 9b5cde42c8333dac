package ranges

import (
	"errors"
	"fmt"
)

// Villain action tokens used by the structure graph. These are
// open-centric bookkeeping names; question narrative is rendered from
// the decision level, never from these tokens.
const (
	VsInitial = "initial"
	VsOpen    = "open"
	Vs3Bet    = "3bet"
	VsAllIn   = "allin"
	VsCheck   = "check"
)

// ActionPair is one step of meaning for a range label: what the
// opponent did and what playing this range answers with.
type ActionPair struct {
	Villain string
	Hero    Action
}

// StructureEntry describes a label in the range structure graph: the
// full chain of action pairs from the initial decision, and the labels
// that can represent the next decision point if the hero continues.
type StructureEntry struct {
	Actions []ActionPair
	Next    []Label
}

// ErrUnknownLabel reports a label present in range data but absent
// from the structure graph.
var ErrUnknownLabel = errors.New("unknown range label")

// structure is the static range structure graph. Entries carry the
// complete action chain from level 0 so that progressive prefixes of
// Actions are exactly the decision sequences a label answers.
var structure = map[Label]StructureEntry{
	LabelOpen: {
		Actions: []ActionPair{{VsInitial, Raise}},
		Next:    []Label{LabelR4Value, LabelR4Bluff},
	},
	LabelSqueeze: {
		Actions: []ActionPair{{VsInitial, Raise}},
		Next:    []Label{LabelR4Value, LabelR4Bluff},
	},
	LabelIsoValue: {
		Actions: []ActionPair{{VsInitial, Raise}},
		Next:    []Label{LabelR4Value, LabelR4Bluff},
	},
	LabelIsoBluff: {
		Actions: []ActionPair{{VsInitial, Raise}},
	},
	LabelIsoRaise: {
		Actions: []ActionPair{{VsInitial, Raise}},
		Next:    []Label{LabelR4Value, LabelR4Bluff},
	},
	LabelR3Value: {
		Actions: []ActionPair{{VsInitial, Raise}},
		Next:    []Label{LabelR5AllIn},
	},
	LabelR3Bluff: {
		Actions: []ActionPair{{VsInitial, Raise}},
	},
	LabelR4Value: {
		Actions: []ActionPair{{VsInitial, Raise}, {Vs3Bet, Raise}},
		Next:    []Label{LabelR5AllIn},
	},
	LabelR4Bluff: {
		Actions: []ActionPair{{VsInitial, Raise}, {Vs3Bet, Raise}},
	},
	LabelR5AllIn: {
		Actions: []ActionPair{{VsInitial, Raise}, {Vs3Bet, Raise}, {VsAllIn, Call}},
	},
	LabelCall: {
		Actions: []ActionPair{{VsOpen, Call}},
	},
	LabelCheck: {
		Actions: []ActionPair{{VsCheck, Check}},
	},
	LabelFold: {
		Actions: []ActionPair{{VsOpen, Fold}},
	},
	// DEFENSE is a container: it has no actions of its own, the real
	// decision lives in its subranges.
	LabelDefense: {
		Next: []Label{LabelR3Value, LabelR3Bluff, LabelCall},
	},
}

// EntryLabels is the fixed search order for a situation's entry label:
// the primary open-type labels first, then the value/bluff 3-bet
// labels of defense-type situations, then everything else that can
// start a cascade.
var EntryLabels = []Label{
	LabelOpen,
	LabelR3Value,
	LabelR3Bluff,
	LabelSqueeze,
	LabelIsoValue,
	LabelIsoBluff,
	LabelIsoRaise,
	LabelR4Value,
	LabelR4Bluff,
	LabelR5AllIn,
	LabelCall,
	LabelCheck,
}

// StructureFor returns the structure entry for a label, or
// ErrUnknownLabel when the label has no entry in the graph.
func StructureFor(l Label) (StructureEntry, error) {
	e, ok := structure[l]
	if !ok {
		return StructureEntry{}, fmt.Errorf("%w: %q", ErrUnknownLabel, l)
	}
	return e, nil
}

// KnownLabel reports whether the label has a structure entry.
func KnownLabel(l Label) bool {
	_, ok := structure[l]
	return ok
}

// InitialSequence is the fixed level-0 decision sequence every
// situation shares: the hero's first raise.
func InitialSequence() []ActionPair {
	return []ActionPair{{VsInitial, Raise}}
}
