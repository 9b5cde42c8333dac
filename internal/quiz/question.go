// Package quiz turns cascades and single-level decisions into
// questions: text, ordered answer options, and the correct action.
// No-result conditions are signalled with ErrNoQuestion and are
// normal; callers retry with another hand or situation.
package quiz

import (
	"errors"

	"github.com/w0uf/rangetrainer/internal/hands"
	"github.com/w0uf/rangetrainer/internal/ranges"
)

// Question kinds.
const (
	TypeSimple    = "simple"
	TypeDrillDown = "drill_down"
)

// ErrNoQuestion signals that no question can be built for the current
// inputs. It is an expected outcome, distinct from malformed data:
// the caller should retry with a different hand or situation.
var ErrNoQuestion = errors.New("no question available")

// Level is one decision step of a drill-down question.
type Level struct {
	Text          string          `json:"question"`
	Options       []ranges.Action `json:"options"`
	CorrectAnswer ranges.Action   `json:"correct_answer"`
	VillainText   string          `json:"villain_reaction,omitempty"`
	ImplicitFold  bool            `json:"implicit_fold,omitempty"`
}

// Question is a fully assembled quiz question. It is plain data with
// no behavior, safe to serialize as-is.
type Question struct {
	Type            string          `json:"type"`
	SituationID     int64           `json:"context_id"`
	SituationName   string          `json:"context_name,omitempty"`
	Hand            hands.Hand      `json:"hand"`
	InRange         bool            `json:"is_in_range"`
	Text            string          `json:"question"`
	Options         []ranges.Action `json:"options"`
	CorrectAnswer   ranges.Action   `json:"correct_answer"`
	Levels          []Level         `json:"levels,omitempty"`
	VillainPosition string          `json:"villain_position,omitempty"`
}
