// Package complement ranks teams by how well their schedule fills the gaps in
// a seed team's schedule.
package complement

import (
	"errors"
	"fmt"
	"sort"

	"github.com/insightout11/cracked-ice/internal/schedule"
	"github.com/insightout11/cracked-ice/internal/setmath"
)

// ErrEmptySeedWindow means the window removed every seed date.
var ErrEmptySeedWindow = errors.New("seed has no games in window")

// EmptySeedWindowError names the seed and window that produced no dates.
type EmptySeedWindowError struct {
	Seed   string
	Window setmath.Window
}

func (e *EmptySeedWindowError) Error() string {
	return fmt.Sprintf("%s has no games in window %s", e.Seed, e.Window)
}

func (e *EmptySeedWindowError) Unwrap() error {
	return ErrEmptySeedWindow
}

// Result scores one candidate against the seed.
type Result struct {
	TeamCode        string   `json:"teamCode"`
	TeamName        string   `json:"teamName"`
	Conflicts       int      `json:"conflicts"`
	NonOverlap      int      `json:"nonOverlap"`
	OffNightShare   float64  `json:"offNightShare"`
	ComplementDates []string `json:"complementDates"`
}

// Rank scores every other team against seed inside w and orders them by
// fewest conflicts, then most non-overlapping games, then the highest
// off-night share of those games.
func Rank(store *schedule.Store, seed string, w setmath.Window) ([]Result, error) {
	code, err := store.Require(seed)
	if err != nil {
		return nil, err
	}
	seedDates := store.Filtered(code, w)
	if seedDates.Len() == 0 {
		return nil, &EmptySeedWindowError{Seed: code, Window: w}
	}

	var results []Result
	for _, other := range store.Codes() {
		if other == code {
			continue
		}
		otherDates := store.Filtered(other, w)
		complementDates := setmath.Difference(otherDates, seedDates)
		if complementDates == nil {
			complementDates = []string{}
		}
		results = append(results, Result{
			TeamCode:        other,
			TeamName:        store.DisplayName(other),
			Conflicts:       setmath.CountIntersect(seedDates, otherDates),
			NonOverlap:      setmath.CountDifference(otherDates, seedDates),
			OffNightShare:   setmath.Round(setmath.OffNightShareOfDifference(seedDates, otherDates), 3),
			ComplementDates: complementDates,
		})
	}
	Sort(results)
	return results, nil
}

// Sort applies the ranking order in place. The team code is a last key so
// the order is total.
func Sort(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		return Less(results[i], results[j])
	})
}

// Less reports whether a ranks ahead of b.
func Less(a, b Result) bool {
	if a.Conflicts != b.Conflicts {
		return a.Conflicts < b.Conflicts
	}
	if a.NonOverlap != b.NonOverlap {
		return a.NonOverlap > b.NonOverlap
	}
	if a.OffNightShare != b.OffNightShare {
		return a.OffNightShare > b.OffNightShare
	}
	return a.TeamCode < b.TeamCode
}
