package combos

import (
	"sort"
	"testing"

	"github.com/insightout11/cracked-ice/internal/roster"
	"github.com/insightout11/cracked-ice/internal/schedtest"
	"github.com/insightout11/cracked-ice/internal/schedule"
	"github.com/insightout11/cracked-ice/internal/setmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tinyStore() *schedule.Store {
	// 2024-01-01 is a Monday.
	return schedule.New("test", "", map[string][]string{
		"BOS": {"2024-01-01", "2024-01-02", "2024-01-03"},
		"TOR": {"2024-01-01", "2024-01-04"},
		"MTL": {"2024-01-01", "2024-01-05", "2024-01-06"},
		"OTT": {"2024-01-02"},
	})
}

func TestEachCombination(t *testing.T) {
	binomial := func(n, k int) int {
		r := 1
		for i := 1; i <= k; i++ {
			r = r * (n - k + i) / i
		}
		return r
	}

	for _, k := range []int{1, 2, 3, 4} {
		seen := make(map[[4]int]bool)
		count := 0
		eachCombination(32, k, func(c []int) {
			count++
			var key [4]int
			for i, v := range c {
				key[i] = v
				if i > 0 {
					require.Less(t, c[i-1], v, "subsets must be strictly increasing")
				}
			}
			require.False(t, seen[key], "duplicate subset %v", c)
			seen[key] = true
		})
		assert.Equal(t, binomial(32, k), count, "k=%d", k)
	}
	assert.Equal(t, 35960, binomial(32, 4))

	t.Run("k larger than n", func(t *testing.T) {
		called := false
		eachCombination(2, 3, func([]int) { called = true })
		assert.False(t, called)
	})
}

func TestScoreCapsAtSlots(t *testing.T) {
	s := tinyStore()
	c, err := Precompute(s, 2)
	require.NoError(t, err)

	trios, err := c.Top(3)
	require.NoError(t, err)
	require.Len(t, trios, 4)

	byKey := make(map[string]Entry)
	for _, e := range trios {
		byKey[e.Key()] = e
	}

	// BOS, MTL, TOR all play 2024-01-01: three teams, two slots.
	e := byKey["BOS-MTL-TOR"]
	assert.Equal(t, 7, e.UsableStarts)
	assert.Equal(t, 6, e.UniqueDays)
	// Union Mon..Sat: Mon, Wed, Fri are off-nights.
	assert.Equal(t, 0.5, e.OffNightPct)
}

func TestPrecomputeMatchesBruteForce(t *testing.T) {
	s := tinyStore()
	c, err := Precompute(s, 1)
	require.NoError(t, err)

	pairs, err := c.Top(2)
	require.NoError(t, err)
	require.Len(t, pairs, 6)

	for _, e := range pairs {
		union := setmath.NewDateSet()
		for _, code := range e.Teams {
			for d := range s.Dates(code) {
				union[d] = struct{}{}
			}
		}
		// With one slot every union day yields exactly one start.
		assert.Equal(t, union.Len(), e.UsableStarts, e.Key())
		assert.Equal(t, union.Len(), e.UniqueDays, e.Key())
	}

	assert.True(t, sort.SliceIsSorted(pairs, func(i, j int) bool {
		if pairs[i].UsableStarts != pairs[j].UsableStarts {
			return pairs[i].UsableStarts > pairs[j].UsableStarts
		}
		return pairs[i].OffNightPct > pairs[j].OffNightPct
	}))
}

func TestPrecomputeFullLeague(t *testing.T) {
	store := schedtest.League(21, 160)
	c, err := Precompute(store, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Slots())

	for _, k := range Sizes {
		top, err := c.Top(k)
		require.NoError(t, err)
		require.Len(t, top, TopN, "k=%d", k)

		for i, e := range top {
			require.Len(t, e.Teams, k)
			require.True(t, sort.StringsAreSorted(e.Teams))
			require.LessOrEqual(t, e.UsableStarts, 2*e.UniqueDays)
			if i > 0 {
				prev := top[i-1]
				require.True(t, prev.UsableStarts > e.UsableStarts ||
					(prev.UsableStarts == e.UsableStarts && prev.OffNightPct >= e.OffNightPct))
			}
		}

		t.Run("rescoring the full season reproduces the cache", func(t *testing.T) {
			again, err := c.Rescore(store, k, setmath.Window{}, 2)
			require.NoError(t, err)
			assert.Equal(t, top, again)
		})

		t.Run("windowed rescoring keeps the cached subsets", func(t *testing.T) {
			w := setmath.Window{Start: "2024-12-01", End: "2024-12-31"}
			windowed, err := c.Rescore(store, k, w, 2)
			require.NoError(t, err)
			require.Len(t, windowed, TopN)

			cached := make(map[string]bool)
			for _, e := range top {
				cached[e.Key()] = true
			}
			for _, e := range windowed {
				assert.True(t, cached[e.Key()], e.Key())
				assert.LessOrEqual(t, e.UniqueDays, 31)
			}
		})
	}
}

func TestTopReturnsCopy(t *testing.T) {
	c, err := Precompute(tinyStore(), 2)
	require.NoError(t, err)

	first, _ := c.Top(2)
	first[0].Teams[0] = "XXX"
	first[0].UsableStarts = -1

	second, _ := c.Top(2)
	assert.NotEqual(t, "XXX", second[0].Teams[0])
	assert.NotEqual(t, -1, second[0].UsableStarts)
}

func TestErrors(t *testing.T) {
	s := tinyStore()
	_, err := Precompute(s, 0)
	assert.ErrorIs(t, err, roster.ErrInvalidSlots)

	c, err := Precompute(s, 2)
	require.NoError(t, err)

	_, err = c.Top(5)
	assert.ErrorIs(t, err, ErrInvalidSize)
	_, err = c.Rescore(s, 1, setmath.Window{}, 2)
	assert.ErrorIs(t, err, ErrInvalidSize)
	_, err = c.Rescore(s, 2, setmath.Window{}, 0)
	assert.ErrorIs(t, err, roster.ErrInvalidSlots)
	_, err = c.Rescore(s, 2, setmath.Window{}, -1)
	assert.ErrorIs(t, err, roster.ErrInvalidSlots)

	other := schedule.New("other", "", map[string][]string{"BOS": {"2024-01-01"}})
	_, err = c.Rescore(other, 2, setmath.Window{}, 2)
	assert.ErrorIs(t, err, schedule.ErrUnknownTeam)
}
