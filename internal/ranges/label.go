package ranges

// Label is the canonical tag identifying the strategic role of a range
// within a situation. Labels arrive from external data, so the set
// stays open: unknown labels are a reportable data error, not a panic.
type Label string

const (
	LabelOpen     Label = "OPEN"
	LabelDefense  Label = "DEFENSE"
	LabelCall     Label = "CALL"
	LabelFold     Label = "FOLD"
	LabelCheck    Label = "CHECK"
	LabelSqueeze  Label = "SQUEEZE"
	LabelR3Value  Label = "R3_VALUE"
	LabelR3Bluff  Label = "R3_BLUFF"
	LabelR4Value  Label = "R4_VALUE"
	LabelR4Bluff  Label = "R4_BLUFF"
	LabelR5AllIn  Label = "R5_ALLIN"
	LabelIsoValue Label = "ISO_VALUE"
	LabelIsoBluff Label = "ISO_BLUFF"
	LabelIsoRaise Label = "ISO_RAISE"
)

// normalization merges value/bluff variants of a label into the single
// action shown to the player.
var normalization = map[Label]Action{
	LabelR3Value:  ThreeB,
	LabelR3Bluff:  ThreeB,
	LabelR4Value:  FourB,
	LabelR4Bluff:  FourB,
	LabelR5AllIn:  AllIn,
	LabelIsoValue: Iso,
	LabelIsoBluff: Iso,
	LabelIsoRaise: Iso,
	LabelSqueeze:  Raise,
}

// Normalize resolves a label to its displayed action, merging
// value/bluff variants. The second return is false for empty or
// null-ish labels.
func Normalize(l Label) (Action, bool) {
	if l == "" || l == "None" || l == "null" {
		return "", false
	}
	if a, ok := normalization[l]; ok {
		return a, true
	}
	return Action(l), true
}
