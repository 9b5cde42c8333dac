// Package ranges models the strategic vocabulary of preflop training
// data: table actions, canonical range labels, the static range
// structure graph, and the Situation/Range data model the engine
// consumes.
package ranges

import "sort"

// Action is a table action as displayed to the player.
type Action string

const (
	Fold    Action = "FOLD"
	Check   Action = "CHECK"
	Call    Action = "CALL"
	Raise   Action = "RAISE"
	Open    Action = "OPEN"
	Iso     Action = "ISO"
	ThreeB  Action = "3BET"
	Squeeze Action = "SQUEEZE"
	FourB   Action = "4BET"
	AllIn   Action = "ALLIN"

	// Defense is not a playable action. Normalize returns it for the
	// DEFENSE container label; the question builder must resolve the
	// real action from a subrange before showing anything.
	Defense Action = "DEFENSE"
)

// actionOrder fixes the display ordering of actions in option lists.
// SQUEEZE deliberately shares a slot with 3BET.
var actionOrder = map[Action]int{
	Fold:    1,
	Check:   2,
	Call:    3,
	Raise:   4,
	Open:    5,
	Iso:     6,
	ThreeB:  7,
	Squeeze: 7,
	FourB:   8,
	AllIn:   9,
}

const unknownOrder = 999

// SortActions sorts actions into the fixed canonical display order.
// Unknown actions sort last. The sort is stable and idempotent.
func SortActions(actions []Action) []Action {
	if len(actions) == 0 {
		return nil
	}
	out := make([]Action, len(actions))
	copy(out, actions)
	sort.SliceStable(out, func(i, j int) bool {
		return orderOf(out[i]) < orderOf(out[j])
	})
	return out
}

func orderOf(a Action) int {
	if o, ok := actionOrder[a]; ok {
		return o
	}
	return unknownOrder
}

// DisplayAction converts engine actions into what the player is shown:
// an open and a defense 3-bet both read as RAISE at the table.
func DisplayAction(a Action) Action {
	switch a {
	case Open, ThreeB:
		return Raise
	default:
		return a
	}
}
