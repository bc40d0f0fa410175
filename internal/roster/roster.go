// Package roster counts how many extra lineup starts a candidate team adds to
// an existing fantasy roster.
package roster

import (
	"errors"
	"fmt"
	"sort"

	"github.com/insightout11/cracked-ice/internal/schedule"
	"github.com/insightout11/cracked-ice/internal/setmath"
)

const (
	// DefaultSlotsPerDay is the number of daily lineup slots when none is given.
	DefaultSlotsPerDay = 2

	// MaxSize is the largest roster accepted.
	MaxSize = 5
)

var (
	ErrInvalidRoster = errors.New("invalid roster")
	ErrInvalidSlots  = errors.New("slots per day must be at least 1")
)

// Occupancy counts rostered teams playing on each date.
type Occupancy map[string]int

// Free reports whether date still has an open lineup slot.
func (o Occupancy) Free(date string, slots int) bool {
	return o[date] < slots
}

// Result is the added-starts answer for one candidate.
type Result struct {
	TeamCode               string   `json:"teamCode"`
	AddedStarts            int      `json:"addedStarts"`
	Dates                  []string `json:"dates"`
	CandidateGamesInWindow int      `json:"candidateGamesInWindow"`
}

// Row is one candidate in a bulk answer.
type Row struct {
	Result
	TeamName string `json:"teamName"`
}

// BuildOccupancy adds one per date for every roster team playing inside w.
func BuildOccupancy(store *schedule.Store, roster []string, w setmath.Window) Occupancy {
	occ := make(Occupancy)
	for _, code := range roster {
		for d := range store.Filtered(code, w) {
			occ[d]++
		}
	}
	return occ
}

// Usable returns the candidate dates that land on a day with a free slot,
// sorted.
func Usable(occ Occupancy, candidate setmath.DateSet, slots int) []string {
	dates := []string{}
	for d := range candidate {
		if occ.Free(d, slots) {
			dates = append(dates, d)
		}
	}
	sort.Strings(dates)
	return dates
}

// AddedStarts counts the candidate's games inside w that fall on days where
// the roster leaves a lineup slot open.
func AddedStarts(store *schedule.Store, roster []string, candidate string, w setmath.Window, slots int) (*Result, error) {
	codes, err := validate(store, roster, slots)
	if err != nil {
		return nil, err
	}
	cand, err := store.Require(candidate)
	if err != nil {
		return nil, err
	}
	occ := BuildOccupancy(store, codes, w)
	r := score(store, occ, cand, w, slots)
	return &r, nil
}

// AddedStartsBulk scores every team outside the roster against one shared
// occupancy map. Each row matches what AddedStarts returns for that team.
// Rows are ordered by added starts, most first.
func AddedStartsBulk(store *schedule.Store, roster []string, w setmath.Window, slots int) ([]Row, error) {
	codes, err := validate(store, roster, slots)
	if err != nil {
		return nil, err
	}
	onRoster := make(map[string]bool, len(codes))
	for _, c := range codes {
		onRoster[c] = true
	}

	occ := BuildOccupancy(store, codes, w)
	var rows []Row
	for _, cand := range store.Codes() {
		if onRoster[cand] {
			continue
		}
		rows = append(rows, Row{Result: score(store, occ, cand, w, slots), TeamName: store.DisplayName(cand)})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].AddedStarts != rows[j].AddedStarts {
			return rows[i].AddedStarts > rows[j].AddedStarts
		}
		return rows[i].TeamCode < rows[j].TeamCode
	})
	return rows, nil
}

func score(store *schedule.Store, occ Occupancy, cand string, w setmath.Window, slots int) Result {
	dates := store.Filtered(cand, w)
	usable := Usable(occ, dates, slots)
	return Result{
		TeamCode:               cand,
		AddedStarts:            len(usable),
		Dates:                  usable,
		CandidateGamesInWindow: dates.Len(),
	}
}

func validate(store *schedule.Store, roster []string, slots int) ([]string, error) {
	if slots < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSlots, slots)
	}
	if len(roster) == 0 {
		return nil, fmt.Errorf("%w: roster must hold 1 to %d teams, got 0", ErrInvalidRoster, MaxSize)
	}
	// Unknown codes are named before the size is judged.
	codes, err := store.RequireRoster(roster)
	if err != nil {
		return nil, err
	}
	if len(codes) > MaxSize {
		return nil, fmt.Errorf("%w: roster must hold 1 to %d teams, got %d", ErrInvalidRoster, MaxSize, len(codes))
	}
	seen := make(map[string]bool, len(codes))
	for _, c := range codes {
		if seen[c] {
			return nil, fmt.Errorf("%w: %s appears twice", ErrInvalidRoster, c)
		}
		seen[c] = true
	}
	return codes, nil
}
