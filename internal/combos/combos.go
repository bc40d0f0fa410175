// Package combos finds the k-team combinations whose schedules produce the
// most usable lineup starts.
package combos

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/insightout11/cracked-ice/internal/roster"
	"github.com/insightout11/cracked-ice/internal/schedule"
	"github.com/insightout11/cracked-ice/internal/setmath"
)

// TopN is the number of combinations kept per size.
const TopN = 50

// Sizes are the combination sizes that get precomputed.
var Sizes = []int{2, 3, 4}

var ErrInvalidSize = errors.New("combination size must be 2, 3 or 4")

// Entry scores one team combination.
type Entry struct {
	Teams        []string `json:"teams"`
	UsableStarts int      `json:"usableStarts"`
	OffNightPct  float64  `json:"offNightPct"`
	UniqueDays   int      `json:"uniqueDays"`
}

// Key joins the team codes, e.g. "BOS-TOR".
func (e Entry) Key() string {
	return strings.Join(e.Teams, "-")
}

// Cache holds the precomputed top combinations for each size.
type Cache struct {
	slots int
	top   map[int][]Entry
}

// Precompute enumerates every combination of each size over the full season
// and keeps the best TopN.
func Precompute(store *schedule.Store, slots int) (*Cache, error) {
	if slots < 1 {
		return nil, fmt.Errorf("precomputing combinations: %w: got %d", roster.ErrInvalidSlots, slots)
	}
	idx := newIndex(store, setmath.Window{})
	c := &Cache{slots: slots, top: make(map[int][]Entry, len(Sizes))}
	for _, k := range Sizes {
		var entries []Entry
		counts := make([]int, len(idx.dates))
		eachCombination(len(idx.codes), k, func(members []int) {
			entries = append(entries, idx.score(members, slots, counts))
		})
		c.top[k] = rank(entries)
	}
	return c, nil
}

// Slots returns the lineup slots the cache was computed with.
func (c *Cache) Slots() int {
	return c.slots
}

// Top returns a copy of the cached list for size k.
func (c *Cache) Top(k int) ([]Entry, error) {
	if err := checkSize(k); err != nil {
		return nil, err
	}
	return clone(c.top[k]), nil
}

// Rescore recomputes the cached combinations of size k against w and slots
// and re-sorts them. Only the cached combinations are considered, so a
// narrow window never surfaces a combination outside the season-wide top list.
func (c *Cache) Rescore(store *schedule.Store, k int, w setmath.Window, slots int) ([]Entry, error) {
	if err := checkSize(k); err != nil {
		return nil, err
	}
	if slots < 1 {
		return nil, fmt.Errorf("rescoring combinations: %w: got %d", roster.ErrInvalidSlots, slots)
	}
	idx := newIndex(store, w)
	pos := make(map[string]int, len(idx.codes))
	for i, code := range idx.codes {
		pos[code] = i
	}

	counts := make([]int, len(idx.dates))
	entries := make([]Entry, 0, len(c.top[k]))
	for _, cached := range c.top[k] {
		members := make([]int, 0, len(cached.Teams))
		for _, code := range cached.Teams {
			i, ok := pos[code]
			if !ok {
				return nil, &schedule.UnknownTeamError{Code: code}
			}
			members = append(members, i)
		}
		entries = append(entries, idx.score(members, slots, counts))
	}
	return rank(entries), nil
}

func checkSize(k int) error {
	for _, s := range Sizes {
		if s == k {
			return nil
		}
	}
	return fmt.Errorf("%w: got %d", ErrInvalidSize, k)
}

// rank sorts by usable starts, then off-night share, then team codes, and
// truncates to TopN.
func rank(entries []Entry) []Entry {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.UsableStarts != b.UsableStarts {
			return a.UsableStarts > b.UsableStarts
		}
		if a.OffNightPct != b.OffNightPct {
			return a.OffNightPct > b.OffNightPct
		}
		return a.Key() < b.Key()
	})
	if len(entries) > TopN {
		entries = entries[:TopN]
	}
	return entries
}

func clone(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		e.Teams = append([]string(nil), e.Teams...)
		out[i] = e
	}
	return out
}
