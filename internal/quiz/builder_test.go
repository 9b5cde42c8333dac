package quiz

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/w0uf/rangetrainer/internal/hands"
	"github.com/w0uf/rangetrainer/internal/ranges"
	"github.com/w0uf/rangetrainer/internal/selector"
)

func testBuilder(seed int64) *Builder {
	return NewBuilder(selector.NewRand(seed), log.New(io.Discard))
}

func testSession(t *testing.T) *Session {
	t.Helper()
	return NewSession(quartz.NewMock(t))
}

func openSituation() *ranges.Situation {
	return &ranges.Situation{
		ID:            1,
		Name:          "co_open_100bb",
		DisplayName:   "CO open 100bb",
		TableFormat:   "6max",
		HeroPosition:  "CO",
		StackDepth:    "100bb",
		PrimaryAction: "open",
		Ranges: []ranges.Range{
			{Key: "1", Label: ranges.LabelOpen, Hands: hands.NewSet("AA", "KK")},
		},
	}
}

func TestSimple(t *testing.T) {
	t.Run("open primary with in-range hand answers raise", func(t *testing.T) {
		b := testBuilder(1)
		sess := testSession(t)
		s := openSituation()

		// Draw until an in-range hand comes up; both sides are
		// reachable from any seed.
		var q *Question
		for i := 0; i < 50; i++ {
			got, err := b.Simple(s, sess)
			require.NoError(t, err)
			if got.InRange {
				q = got
				break
			}
		}
		require.NotNil(t, q, "no in-range question in 50 draws")

		assert.Equal(t, ranges.Raise, q.CorrectAnswer)
		assert.Contains(t, q.Options, ranges.Fold)
		assert.Contains(t, q.Options, ranges.Raise)
		assert.True(t, s.Primary().Hands.Contains(q.Hand))
	})

	t.Run("out-of-range hand answers fold", func(t *testing.T) {
		b := testBuilder(2)
		sess := testSession(t)
		s := openSituation()

		for i := 0; i < 50; i++ {
			q, err := b.Simple(s, sess)
			require.NoError(t, err)
			if !q.InRange {
				assert.Equal(t, ranges.Fold, q.CorrectAnswer)
				assert.False(t, s.Primary().Hands.Contains(q.Hand))
				return
			}
		}
		t.Fatal("no out-of-range question in 50 draws")
	})

	t.Run("options are canonically ordered and unique", func(t *testing.T) {
		b := testBuilder(3)
		sess := testSession(t)
		for i := 0; i < 30; i++ {
			q, err := b.Simple(openSituation(), sess)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, len(q.Options), 2)
			assert.Equal(t, ranges.SortActions(q.Options), q.Options)
			seen := make(map[ranges.Action]bool)
			for _, o := range q.Options {
				assert.False(t, seen[o], "duplicate option %s", o)
				seen[o] = true
			}
		}
	})

	t.Run("defense resolves through subrange", func(t *testing.T) {
		s := &ranges.Situation{
			ID:            2,
			TableFormat:   "6max",
			HeroPosition:  "BB",
			VsPosition:    "CO",
			PrimaryAction: "defense",
			Ranges: []ranges.Range{
				{Key: "1", Label: ranges.LabelDefense, Hands: hands.NewSet("AA", "AQs")},
				{Key: "2", Label: ranges.LabelR3Value, Hands: hands.NewSet("AA")},
				{Key: "3", Label: ranges.LabelCall, Hands: hands.NewSet("AQs")},
			},
		}
		b := testBuilder(4)
		sess := testSession(t)

		sawRaise, sawCall := false, false
		for i := 0; i < 100 && !(sawRaise && sawCall); i++ {
			q, err := b.Simple(s, sess)
			if errors.Is(err, ErrNoQuestion) {
				continue
			}
			require.NoError(t, err)
			if !q.InRange {
				continue
			}
			switch q.Hand {
			case "AA":
				assert.Equal(t, ranges.Raise, q.CorrectAnswer)
				sawRaise = true
			case "AQs":
				assert.Equal(t, ranges.Call, q.CorrectAnswer)
				sawCall = true
			}
		}
		assert.True(t, sawRaise, "never drew the 3-bet hand")
		assert.True(t, sawCall, "never drew the calling hand")
	})

	t.Run("missing primary range is malformed", func(t *testing.T) {
		s := openSituation()
		s.Ranges[0].Key = "2"
		_, err := testBuilder(5).Simple(s, testSession(t))
		assert.ErrorIs(t, err, ranges.ErrMalformedSituation)
	})

	t.Run("null primary label is malformed", func(t *testing.T) {
		s := openSituation()
		s.Ranges[0].Label = "None"
		_, err := testBuilder(6).Simple(s, testSession(t))
		assert.ErrorIs(t, err, ranges.ErrMalformedSituation)
	})

	t.Run("empty primary range skips", func(t *testing.T) {
		s := openSituation()
		s.Ranges[0].Hands = hands.NewSet()
		_, err := testBuilder(7).Simple(s, testSession(t))
		assert.ErrorIs(t, err, ErrNoQuestion)
	})

	t.Run("missing metadata is malformed", func(t *testing.T) {
		s := openSituation()
		s.TableFormat = ""
		_, err := testBuilder(8).Simple(s, testSession(t))
		assert.ErrorIs(t, err, ranges.ErrMalformedSituation)
	})

	t.Run("question text names table and hand", func(t *testing.T) {
		b := testBuilder(9)
		q, err := b.Simple(openSituation(), testSession(t))
		require.NoError(t, err)
		assert.Contains(t, q.Text, "6max table")
		assert.Contains(t, q.Text, "you are CO")
		assert.Contains(t, q.Text, string(q.Hand))
		assert.Contains(t, q.Text, "What do you do?")
	})
}

func TestSession(t *testing.T) {
	sess := testSession(t)

	t.Run("tracks used hands", func(t *testing.T) {
		assert.Empty(t, sess.Used())
		sess.MarkUsed("AA")
		assert.True(t, sess.Used().Contains("AA"))
		sess.ResetUsed()
		assert.Empty(t, sess.Used())
	})

	t.Run("scores answers", func(t *testing.T) {
		assert.Equal(t, 0.0, sess.Score())
		sess.Record(true)
		sess.Record(true)
		sess.Record(false)
		assert.Equal(t, 3, sess.Total)
		assert.Equal(t, 2, sess.Correct)
		assert.InDelta(t, 66.7, sess.Score(), 0.1)
	})
}
