package ranges

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/w0uf/rangetrainer/internal/hands"
)

func TestSortActions(t *testing.T) {
	t.Run("canonical order", func(t *testing.T) {
		got := SortActions([]Action{AllIn, Raise, Fold, Call, Check})
		assert.Equal(t, []Action{Fold, Check, Call, Raise, AllIn}, got)
	})

	t.Run("idempotent", func(t *testing.T) {
		once := SortActions([]Action{FourB, Fold, ThreeB})
		twice := SortActions(once)
		assert.Equal(t, once, twice)
	})

	t.Run("squeeze shares slot with 3bet", func(t *testing.T) {
		// Stable sort keeps declaration order within the shared slot.
		got := SortActions([]Action{Squeeze, ThreeB, Fold})
		assert.Equal(t, []Action{Fold, Squeeze, ThreeB}, got)
	})

	t.Run("unknown actions sort last", func(t *testing.T) {
		got := SortActions([]Action{Action("WAT"), Fold})
		assert.Equal(t, []Action{Fold, Action("WAT")}, got)
	})

	t.Run("does not mutate input", func(t *testing.T) {
		in := []Action{Raise, Fold}
		SortActions(in)
		assert.Equal(t, []Action{Raise, Fold}, in)
	})
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		label Label
		want  Action
	}{
		{LabelR3Value, ThreeB},
		{LabelR3Bluff, ThreeB},
		{LabelR4Value, FourB},
		{LabelR4Bluff, FourB},
		{LabelR5AllIn, AllIn},
		{LabelIsoValue, Iso},
		{LabelIsoBluff, Iso},
		{LabelIsoRaise, Iso},
		{LabelSqueeze, Raise},
		{LabelOpen, Open},
		{LabelDefense, Defense},
		{LabelCall, Call},
	}
	for _, tc := range cases {
		got, ok := Normalize(tc.label)
		require.True(t, ok, "label %s", tc.label)
		assert.Equal(t, tc.want, got, "label %s", tc.label)
	}

	t.Run("rejects null-ish labels", func(t *testing.T) {
		for _, l := range []Label{"", "None", "null"} {
			_, ok := Normalize(l)
			assert.False(t, ok, "label %q", l)
		}
	})
}

func TestDisplayAction(t *testing.T) {
	assert.Equal(t, Raise, DisplayAction(Open))
	assert.Equal(t, Raise, DisplayAction(ThreeB))
	assert.Equal(t, Call, DisplayAction(Call))
	assert.Equal(t, AllIn, DisplayAction(AllIn))
}

func TestStructure(t *testing.T) {
	t.Run("entries carry full chains", func(t *testing.T) {
		e, err := StructureFor(LabelR4Value)
		require.NoError(t, err)
		assert.Equal(t, []ActionPair{{VsInitial, Raise}, {Vs3Bet, Raise}}, e.Actions)
		assert.Equal(t, []Label{LabelR5AllIn}, e.Next)
	})

	t.Run("all-in chain is three deep", func(t *testing.T) {
		e, err := StructureFor(LabelR5AllIn)
		require.NoError(t, err)
		assert.Len(t, e.Actions, 3)
		assert.Equal(t, Call, e.Actions[2].Hero)
	})

	t.Run("unknown label", func(t *testing.T) {
		_, err := StructureFor(Label("NOPE"))
		assert.ErrorIs(t, err, ErrUnknownLabel)
		assert.False(t, KnownLabel("NOPE"))
	})

	t.Run("every entry label has a structure entry", func(t *testing.T) {
		for _, l := range EntryLabels {
			assert.True(t, KnownLabel(l), "label %s", l)
		}
	})

	t.Run("next labels resolve", func(t *testing.T) {
		for _, l := range EntryLabels {
			e, err := StructureFor(l)
			require.NoError(t, err)
			for _, nl := range e.Next {
				assert.True(t, KnownLabel(nl), "label %s next %s", l, nl)
			}
		}
	})

	t.Run("next chains extend the parent chain", func(t *testing.T) {
		for _, l := range EntryLabels {
			e, err := StructureFor(l)
			require.NoError(t, err)
			for _, nl := range e.Next {
				ne, err := StructureFor(nl)
				require.NoError(t, err)
				assert.Greater(t, len(ne.Actions), len(e.Actions),
					"label %s next %s", l, nl)
			}
		}
	})
}

func TestSituation(t *testing.T) {
	sit := &Situation{
		ID:            7,
		TableFormat:   "6max",
		HeroPosition:  "CO",
		PrimaryAction: "defense",
		Ranges: []Range{
			{Key: "1", Label: LabelDefense, Hands: hands.NewSet("AA", "KK", "AQs")},
			{Key: "2", Label: LabelR3Value, Hands: hands.NewSet("AA", "KK")},
			{Key: "3", Label: LabelCall, Hands: hands.NewSet("AQs")},
		},
	}
	require.NoError(t, sit.Validate())

	t.Run("primary", func(t *testing.T) {
		p := sit.Primary()
		require.NotNil(t, p)
		assert.Equal(t, LabelDefense, p.Label)
	})

	t.Run("subranges preserve order", func(t *testing.T) {
		subs := sit.Subranges()
		require.Len(t, subs, 2)
		assert.Equal(t, LabelR3Value, subs[0].Label)
	})

	t.Run("first range by label", func(t *testing.T) {
		r := sit.FirstRange(LabelCall)
		require.NotNil(t, r)
		assert.Equal(t, "3", r.Key)
		assert.Nil(t, sit.FirstRange(LabelOpen))
	})

	t.Run("subrange action", func(t *testing.T) {
		a, ok := sit.SubrangeAction("AA")
		require.True(t, ok)
		assert.Equal(t, ThreeB, a)

		a, ok = sit.SubrangeAction("AQs")
		require.True(t, ok)
		assert.Equal(t, Call, a)

		_, ok = sit.SubrangeAction("72o")
		assert.False(t, ok)
	})

	t.Run("all hands", func(t *testing.T) {
		assert.Equal(t, hands.NewSet("AA", "KK", "AQs"), sit.AllHands())
	})

	t.Run("validate rejects missing metadata", func(t *testing.T) {
		bad := &Situation{TableFormat: "6max"}
		assert.ErrorIs(t, bad.Validate(), ErrMalformedSituation)
	})
}
