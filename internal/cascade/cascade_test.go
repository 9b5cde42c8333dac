package cascade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/w0uf/rangetrainer/internal/hands"
	"github.com/w0uf/rangetrainer/internal/ranges"
)

func openSituation(openHands, fourBetHands, allInHands hands.Set) *ranges.Situation {
	s := &ranges.Situation{
		ID:            1,
		TableFormat:   "6max",
		HeroPosition:  "CO",
		PrimaryAction: "open",
		Ranges: []ranges.Range{
			{Key: "1", Label: ranges.LabelOpen, Hands: openHands},
		},
	}
	if fourBetHands != nil {
		s.Ranges = append(s.Ranges, ranges.Range{Key: "2", Label: ranges.LabelR4Value, Hands: fourBetHands})
	}
	if allInHands != nil {
		s.Ranges = append(s.Ranges, ranges.Range{Key: "3", Label: ranges.LabelR5AllIn, Hands: allInHands})
	}
	return s
}

func TestAnalyze(t *testing.T) {
	t.Run("hand outside every range", func(t *testing.T) {
		s := openSituation(hands.NewSet("AA"), nil, nil)
		assert.Empty(t, Analyze("72o", s))
	})

	t.Run("terminal open without continuation data", func(t *testing.T) {
		s := openSituation(hands.NewSet("AA"), nil, nil)
		c := Analyze("AA", s)
		require.Len(t, c, 1)
		assert.Equal(t, ranges.Raise, c[0].Hero)
		assert.Equal(t, ranges.VsInitial, c[0].Villain)
		assert.False(t, c.EndsInImplicitFold())
	})

	t.Run("full chain through all-in", func(t *testing.T) {
		s := openSituation(hands.NewSet("AA", "KK"), hands.NewSet("AA", "KK"), hands.NewSet("AA"))
		c := Analyze("AA", s)
		require.Len(t, c, 3)
		assert.Equal(t, ranges.Raise, c[0].Hero)
		assert.Equal(t, ranges.Raise, c[1].Hero)
		assert.Equal(t, ranges.Call, c[2].Hero)
		assert.Equal(t, ranges.VsAllIn, c[2].Villain)
		assert.True(t, c.HasValueLabel())
		assert.False(t, c.EndsInImplicitFold())
	})

	t.Run("implicit fold when continuation excludes hand", func(t *testing.T) {
		// KK four-bets but is absent from the existing all-in range:
		// three steps, the last a synthesized fold.
		s := openSituation(hands.NewSet("AA", "KK"), hands.NewSet("AA", "KK"), hands.NewSet("AA"))
		c := Analyze("KK", s)
		require.Len(t, c, 3)
		assert.Equal(t, ranges.Raise, c[0].Hero)
		assert.Equal(t, ranges.Raise, c[1].Hero)
		assert.Equal(t, ranges.Fold, c[2].Hero)
		assert.Equal(t, ranges.VsAllIn, c[2].Villain)
		assert.True(t, c[2].ImplicitFold)
		assert.True(t, c.EndsInImplicitFold())
	})

	t.Run("no implicit fold without continuation range", func(t *testing.T) {
		// The situation holds no all-in range at all: nothing to fold
		// against, the cascade just ends.
		s := openSituation(hands.NewSet("AA"), hands.NewSet("AA"), nil)
		c := Analyze("AA", s)
		require.Len(t, c, 2)
		assert.False(t, c.EndsInImplicitFold())
	})

	t.Run("direct entry at deep label matches chained entry", func(t *testing.T) {
		// A hand only present in the four-bet range still gets the
		// full chain from level 0.
		s := openSituation(hands.NewSet("AA"), hands.NewSet("QQ"), nil)
		c := Analyze("QQ", s)
		require.Len(t, c, 2)
		assert.Equal(t, ranges.Raise, c[0].Hero)
		assert.Equal(t, ranges.Raise, c[1].Hero)
		assert.Equal(t, ranges.Vs3Bet, c[1].Villain)
	})

	t.Run("deterministic", func(t *testing.T) {
		s := openSituation(hands.NewSet("AA", "KK"), hands.NewSet("AA", "KK"), hands.NewSet("AA"))
		first := Analyze("KK", s)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, Analyze("KK", s))
		}
	})

	t.Run("unknown entry label is skipped", func(t *testing.T) {
		s := &ranges.Situation{
			ID:            2,
			TableFormat:   "6max",
			HeroPosition:  "BTN",
			PrimaryAction: "open",
			Ranges: []ranges.Range{
				{Key: "1", Label: ranges.Label("MYSTERY"), Hands: hands.NewSet("AA")},
			},
		}
		assert.Empty(t, Analyze("AA", s))
	})

	t.Run("defense subrange cascade", func(t *testing.T) {
		s := &ranges.Situation{
			ID:            3,
			TableFormat:   "6max",
			HeroPosition:  "BB",
			PrimaryAction: "defense",
			Ranges: []ranges.Range{
				{Key: "1", Label: ranges.LabelDefense, Hands: hands.NewSet("AA", "AQs")},
				{Key: "2", Label: ranges.LabelR3Value, Hands: hands.NewSet("AA")},
				{Key: "3", Label: ranges.LabelR5AllIn, Hands: hands.NewSet("AA")},
				{Key: "4", Label: ranges.LabelCall, Hands: hands.NewSet("AQs")},
			},
		}

		c := Analyze("AA", s)
		require.Len(t, c, 3)
		assert.Equal(t, ranges.LabelR3Value, c[0].Label)
		assert.Equal(t, []ranges.Action{ranges.Raise, ranges.Raise, ranges.Call},
			[]ranges.Action{c[0].Hero, c[1].Hero, c[2].Hero})

		c = Analyze("AQs", s)
		require.Len(t, c, 1)
		assert.Equal(t, ranges.Call, c[0].Hero)
		assert.Equal(t, ranges.VsOpen, c[0].Villain)
	})
}

func TestHasValueLabel(t *testing.T) {
	assert.False(t, Cascade{}.HasValueLabel())
	assert.True(t, Cascade{{Label: ranges.LabelR3Value}}.HasValueLabel())
	assert.True(t, Cascade{{Label: ranges.LabelR4Value}}.HasValueLabel())
	assert.False(t, Cascade{{Label: ranges.LabelR3Bluff}}.HasValueLabel())
	// An all-in label alone is not a value label; only a chain that
	// passed through a value range qualifies.
	assert.False(t, Cascade{{Label: ranges.LabelR5AllIn}}.HasValueLabel())
}
