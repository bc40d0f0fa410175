package combos

import (
	"github.com/insightout11/cracked-ice/internal/schedule"
	"github.com/insightout11/cracked-ice/internal/setmath"
)

// index maps the league calendar inside a window to dense integers so a
// combination can be scored with slice counters instead of map lookups.
type index struct {
	codes    []string
	dates    []string
	offNight []bool
	games    [][]int // per team, indexes into dates
}

func newIndex(store *schedule.Store, w setmath.Window) *index {
	idx := &index{codes: store.Codes()}
	pos := make(map[string]int)
	for _, d := range store.LeagueDates() {
		if !w.Contains(d) {
			continue
		}
		pos[d] = len(idx.dates)
		idx.dates = append(idx.dates, d)
		idx.offNight = append(idx.offNight, setmath.IsOffNightWeekday(d))
	}
	idx.games = make([][]int, len(idx.codes))
	for i, code := range idx.codes {
		for d := range store.Filtered(code, w) {
			idx.games[i] = append(idx.games[i], pos[d])
		}
	}
	return idx
}

// score computes the entry for the teams at members. counts is a scratch
// buffer sized to the calendar; it is left zeroed on return.
func (idx *index) score(members []int, slots int, counts []int) Entry {
	var touched []int
	for _, m := range members {
		for _, d := range idx.games[m] {
			if counts[d] == 0 {
				touched = append(touched, d)
			}
			counts[d]++
		}
	}

	e := Entry{Teams: make([]string, len(members))}
	for i, m := range members {
		e.Teams[i] = idx.codes[m]
	}
	off := 0
	for _, d := range touched {
		e.UsableStarts += min(slots, counts[d])
		if idx.offNight[d] {
			off++
		}
		counts[d] = 0
	}
	e.UniqueDays = len(touched)
	if e.UniqueDays > 0 {
		e.OffNightPct = setmath.Round(float64(off)/float64(e.UniqueDays), 3)
	}
	return e
}

// eachCombination calls fn with every sorted k-subset of [0, n) in
// lexicographic order. The slice passed to fn is reused between calls.
func eachCombination(n, k int, fn func([]int)) {
	if k <= 0 || k > n {
		return
	}
	c := make([]int, k)
	for i := range c {
		c[i] = i
	}
	for {
		fn(c)
		// Find the rightmost position that can still advance.
		i := k - 1
		for i >= 0 && c[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		c[i]++
		for j := i + 1; j < k; j++ {
			c[j] = c[j-1] + 1
		}
	}
}
