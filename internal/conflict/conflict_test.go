package conflict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/w0uf/rangetrainer/internal/hands"
	"github.com/w0uf/rangetrainer/internal/ranges"
)

func situation(id int64, hero string, rs ...ranges.Range) *ranges.Situation {
	return &ranges.Situation{
		ID:            id,
		TableFormat:   "6max",
		HeroPosition:  hero,
		StackDepth:    "100bb",
		PrimaryAction: "open",
		Ranges:        rs,
	}
}

func TestDetect(t *testing.T) {
	t.Run("fewer than two situations", func(t *testing.T) {
		assert.True(t, Detect(nil).Empty())
		s := situation(1, "CO", ranges.Range{Key: "1", Label: ranges.LabelOpen, Hands: hands.NewSet("AA")})
		assert.True(t, Detect([]*ranges.Situation{s}).Empty())
	})

	t.Run("different identities never compared", func(t *testing.T) {
		a := situation(1, "CO", ranges.Range{Key: "1", Label: ranges.LabelOpen, Hands: hands.NewSet("AKo")})
		b := situation(2, "BTN", ranges.Range{Key: "1", Label: ranges.LabelCall, Hands: hands.NewSet("AKo")})
		assert.True(t, Detect([]*ranges.Situation{a, b}).Empty())
	})

	t.Run("level zero disagreement", func(t *testing.T) {
		// Same displayed decision, one source raises AKo, the other
		// calls it.
		a := situation(1, "CO", ranges.Range{Key: "1", Label: ranges.LabelOpen, Hands: hands.NewSet("AKo", "AA")})
		b := situation(2, "CO",
			ranges.Range{Key: "1", Label: ranges.LabelOpen, Hands: hands.NewSet("AA")},
			ranges.Range{Key: "2", Label: ranges.LabelCall, Hands: hands.NewSet("AKo")},
		)

		report := Detect([]*ranges.Situation{a, b})
		require.False(t, report.Empty())

		level0 := report.AtLevel(0)
		require.Len(t, level0, 1)
		e := level0[0]
		assert.Equal(t, hands.Hand("AKo"), e.Hand)
		assert.Equal(t, ranges.Raise, e.Actions[1])
		assert.Equal(t, ranges.Call, e.Actions[2])
	})

	t.Run("agreement is not a conflict", func(t *testing.T) {
		a := situation(1, "CO", ranges.Range{Key: "1", Label: ranges.LabelOpen, Hands: hands.NewSet("AA", "KK")})
		b := situation(2, "CO", ranges.Range{Key: "1", Label: ranges.LabelOpen, Hands: hands.NewSet("AA", "KK")})
		assert.True(t, Detect([]*ranges.Situation{a, b}).Empty())
	})

	t.Run("fold default when hand absent", func(t *testing.T) {
		a := situation(1, "CO", ranges.Range{Key: "1", Label: ranges.LabelOpen, Hands: hands.NewSet("AA", "QQ")})
		b := situation(2, "CO", ranges.Range{Key: "1", Label: ranges.LabelOpen, Hands: hands.NewSet("AA")})

		report := Detect([]*ranges.Situation{a, b})
		level0 := report.AtLevel(0)
		require.Len(t, level0, 1)
		assert.Equal(t, hands.Hand("QQ"), level0[0].Hand)
		assert.Equal(t, ranges.Raise, level0[0].Actions[1])
		assert.Equal(t, ranges.Fold, level0[0].Actions[2])
	})

	t.Run("deeper level disagreement", func(t *testing.T) {
		a := situation(1, "CO",
			ranges.Range{Key: "1", Label: ranges.LabelOpen, Hands: hands.NewSet("AA", "KK")},
			ranges.Range{Key: "2", Label: ranges.LabelR4Value, Hands: hands.NewSet("AA", "KK")},
		)
		b := situation(2, "CO",
			ranges.Range{Key: "1", Label: ranges.LabelOpen, Hands: hands.NewSet("AA", "KK")},
			ranges.Range{Key: "2", Label: ranges.LabelR4Value, Hands: hands.NewSet("AA")},
		)

		report := Detect([]*ranges.Situation{a, b})
		assert.Empty(t, report.AtLevel(0), "level 0 agrees")

		level1 := report.AtLevel(1)
		require.Len(t, level1, 1)
		e := level1[0]
		assert.Equal(t, hands.Hand("KK"), e.Hand)
		assert.Equal(t, ranges.Raise, e.Actions[1])
		assert.Equal(t, ranges.Fold, e.Actions[2])
	})

	t.Run("entries sorted by level then strength", func(t *testing.T) {
		a := situation(1, "CO", ranges.Range{Key: "1", Label: ranges.LabelOpen, Hands: hands.NewSet("AA", "KK", "72o")})
		b := situation(2, "CO", ranges.Range{Key: "1", Label: ranges.LabelOpen, Hands: hands.NewSet("AA")})

		report := Detect([]*ranges.Situation{a, b})
		require.Len(t, report.Entries, 2)
		assert.Equal(t, hands.Hand("KK"), report.Entries[0].Hand)
		assert.Equal(t, hands.Hand("72o"), report.Entries[1].Hand)
	})

	t.Run("defense subrange drives the comparison", func(t *testing.T) {
		def := func(id int64, aqAction ranges.Label) *ranges.Situation {
			return &ranges.Situation{
				ID:            id,
				TableFormat:   "6max",
				HeroPosition:  "BB",
				StackDepth:    "100bb",
				PrimaryAction: "defense",
				Sequence:      &ranges.ActionSequence{Opener: "CO"},
				Ranges: []ranges.Range{
					{Key: "1", Label: ranges.LabelDefense, Hands: hands.NewSet("AQs")},
					{Key: "2", Label: aqAction, Hands: hands.NewSet("AQs")},
				},
			}
		}
		a := def(1, ranges.LabelR3Value)
		b := def(2, ranges.LabelCall)

		report := Detect([]*ranges.Situation{a, b})
		level0 := report.AtLevel(0)
		require.Len(t, level0, 1)
		assert.Equal(t, hands.Hand("AQs"), level0[0].Hand)
		assert.Equal(t, ranges.Raise, level0[0].Actions[1])
		assert.Equal(t, ranges.Call, level0[0].Actions[2])
	})

	t.Run("defense without opener groups with nil sequence", func(t *testing.T) {
		// A sequence struct with no opener carries the same identity as
		// no sequence at all; the two sources must still be compared.
		a := &ranges.Situation{
			ID:            1,
			TableFormat:   "6max",
			HeroPosition:  "BB",
			StackDepth:    "100bb",
			PrimaryAction: "defense",
			Sequence:      &ranges.ActionSequence{},
			Ranges: []ranges.Range{
				{Key: "1", Label: ranges.LabelDefense, Hands: hands.NewSet("AQs")},
				{Key: "2", Label: ranges.LabelR3Value, Hands: hands.NewSet("AQs")},
			},
		}
		b := &ranges.Situation{
			ID:            2,
			TableFormat:   "6max",
			HeroPosition:  "BB",
			StackDepth:    "100bb",
			PrimaryAction: "defense",
			Ranges: []ranges.Range{
				{Key: "1", Label: ranges.LabelDefense, Hands: hands.NewSet("AQs")},
				{Key: "2", Label: ranges.LabelCall, Hands: hands.NewSet("AQs")},
			},
		}

		report := Detect([]*ranges.Situation{a, b})
		level0 := report.AtLevel(0)
		require.Len(t, level0, 1)
		assert.Equal(t, ranges.Raise, level0[0].Actions[1])
		assert.Equal(t, ranges.Call, level0[0].Actions[2])
	})
}
