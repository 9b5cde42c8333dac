package hands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	t.Run("single hands", func(t *testing.T) {
		set, err := ParseRange("AA, AKs, T9o")
		require.NoError(t, err)
		assert.Equal(t, NewSet("AA", "AKs", "T9o"), set)
	})

	t.Run("bare unpaired means both", func(t *testing.T) {
		set, err := ParseRange("AK")
		require.NoError(t, err)
		assert.Equal(t, NewSet("AKs", "AKo"), set)
	})

	t.Run("pair plus", func(t *testing.T) {
		set, err := ParseRange("TT+")
		require.NoError(t, err)
		assert.Equal(t, NewSet("TT", "JJ", "QQ", "KK", "AA"), set)
	})

	t.Run("kicker plus", func(t *testing.T) {
		set, err := ParseRange("KTs+")
		require.NoError(t, err)
		assert.Equal(t, NewSet("KTs", "KJs", "KQs"), set)
	})

	t.Run("pair span", func(t *testing.T) {
		set, err := ParseRange("22-66")
		require.NoError(t, err)
		assert.Equal(t, NewSet("22", "33", "44", "55", "66"), set)
	})

	t.Run("kicker span", func(t *testing.T) {
		set, err := ParseRange("A5s-A2s")
		require.NoError(t, err)
		assert.Equal(t, NewSet("A5s", "A4s", "A3s", "A2s"), set)
	})

	t.Run("span direction does not matter", func(t *testing.T) {
		a, err := ParseRange("A2s-A5s")
		require.NoError(t, err)
		b, err := ParseRange("A5s-A2s")
		require.NoError(t, err)
		assert.Equal(t, b, a)
	})

	t.Run("combined notation", func(t *testing.T) {
		set, err := ParseRange("QQ+,AKs,AKo")
		require.NoError(t, err)
		assert.Equal(t, NewSet("QQ", "KK", "AA", "AKs", "AKo"), set)
	})

	t.Run("invalid notation", func(t *testing.T) {
		for _, s := range []string{"XX", "AAs", "A", "AKx", "AKs-QJs", "AAs+"} {
			_, err := ParseRange(s)
			assert.Error(t, err, "expected error for %q", s)
		}
	})

	t.Run("empty parts ignored", func(t *testing.T) {
		set, err := ParseRange("AA,, KK ,")
		require.NoError(t, err)
		assert.Equal(t, NewSet("AA", "KK"), set)
	})
}
