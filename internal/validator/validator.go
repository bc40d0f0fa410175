package validator

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/insightout11/cracked-ice/internal/schedule"
	"github.com/insightout11/cracked-ice/internal/setmath"
)

// Violation types.
const (
	Error   = "error"
	Warning = "warning"
)

// MaxGamesPerDate is the most games the league can play on one date.
const MaxGamesPerDate = schedule.LeagueSize / 2

// LowVolumeRatio flags a team whose game count falls below this share of the
// league median.
const LowVolumeRatio = 0.75

// Violation represents a problem found in a schedule artifact.
type Violation struct {
	Check   string
	Type    string // "error" or "warning"
	Message string
	Team    string
	Date    string
}

// ValidateFile reads the artifact at path and checks it.
func ValidateFile(path string) ([]Violation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schedule artifact: %w", err)
	}
	var a schedule.Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parsing schedule artifact: %w", err)
	}
	return ValidateArtifact(a), nil
}

// ValidateArtifact checks the raw artifact, including problems that collapse
// away once the dates are loaded into sets.
func ValidateArtifact(a schedule.Artifact) []Violation {
	if len(a.Teams) == 0 {
		return []Violation{{Check: "teams", Type: Error, Message: "artifact lists no teams"}}
	}

	var violations []Violation
	violations = append(violations, checkDuplicateDates(a.Teams)...)
	violations = append(violations, Validate(schedule.New(a.Season, a.LastRefreshed, a.Teams))...)
	return violations
}

// Validate checks a loaded store. Errors make the data unusable for some
// team; warnings point at a suspicious artifact.
func Validate(store *schedule.Store) []Violation {
	var violations []Violation

	// Rules
	violations = append(violations, checkDateFormat(store)...)
	violations = append(violations, checkEmptyTeams(store)...)

	// Guidelines
	violations = append(violations, checkVocabulary(store)...)
	violations = append(violations, checkTeamCount(store)...)
	violations = append(violations, checkParticipants(store)...)
	violations = append(violations, checkGameVolume(store)...)

	return violations
}

// HasErrors reports whether any violation is an error.
func HasErrors(violations []Violation) bool {
	for _, v := range violations {
		if v.Type == Error {
			return true
		}
	}
	return false
}

func checkDuplicateDates(teams map[string][]string) []Violation {
	var violations []Violation
	for _, code := range sortedKeys(teams) {
		seen := make(map[string]bool)
		for _, d := range teams[code] {
			if seen[d] {
				violations = append(violations, Violation{
					Check:   "duplicate_date",
					Type:    Error,
					Team:    schedule.NormalizeCode(code),
					Date:    d,
					Message: fmt.Sprintf("%s lists %s more than once", schedule.NormalizeCode(code), d),
				})
			}
			seen[d] = true
		}
	}
	return violations
}

func checkDateFormat(store *schedule.Store) []Violation {
	var violations []Violation
	for _, code := range store.Codes() {
		for _, d := range store.Dates(code).Sorted() {
			if _, err := time.Parse(setmath.DateLayout, d); err != nil {
				violations = append(violations, Violation{
					Check:   "date_format",
					Type:    Error,
					Team:    code,
					Date:    d,
					Message: fmt.Sprintf("%s has malformed date %q (want YYYY-MM-DD)", code, d),
				})
			}
		}
	}
	return violations
}

func checkEmptyTeams(store *schedule.Store) []Violation {
	var violations []Violation
	for _, code := range store.Codes() {
		if store.Dates(code).Len() == 0 {
			violations = append(violations, Violation{
				Check:   "empty_team",
				Type:    Error,
				Team:    code,
				Message: fmt.Sprintf("%s has no games scheduled", code),
			})
		}
	}
	return violations
}

func checkVocabulary(store *schedule.Store) []Violation {
	var violations []Violation
	for _, code := range store.Codes() {
		if _, ok := schedule.Vocabulary[code]; !ok {
			violations = append(violations, Violation{
				Check:   "vocabulary",
				Type:    Warning,
				Team:    code,
				Message: fmt.Sprintf("%s is not a known team code", code),
			})
		}
	}
	return violations
}

func checkTeamCount(store *schedule.Store) []Violation {
	n := store.Meta().TeamCount
	if n == schedule.LeagueSize {
		return nil
	}
	return []Violation{{
		Check:   "team_count",
		Type:    Warning,
		Message: fmt.Sprintf("artifact lists %d teams (expected %d)", n, schedule.LeagueSize),
	}}
}

// checkParticipants flags dates where the teams playing cannot pair up into
// games, or where more games are listed than the league can hold.
func checkParticipants(store *schedule.Store) []Violation {
	playing := store.TeamsPlaying()
	var violations []Violation
	for _, d := range store.LeagueDates() {
		n := playing[d]
		if n%2 != 0 {
			violations = append(violations, Violation{
				Check:   "odd_participants",
				Type:    Warning,
				Date:    d,
				Message: fmt.Sprintf("%d teams play on %s, which cannot pair into games", n, d),
			})
		}
		if n/2 > MaxGamesPerDate {
			violations = append(violations, Violation{
				Check:   "games_per_date",
				Type:    Warning,
				Date:    d,
				Message: fmt.Sprintf("%d games on %s (max %d)", n/2, d, MaxGamesPerDate),
			})
		}
	}
	return violations
}

func checkGameVolume(store *schedule.Store) []Violation {
	codes := store.Codes()
	if len(codes) < 2 {
		return nil
	}
	counts := make([]int, len(codes))
	for i, c := range codes {
		counts[i] = store.Dates(c).Len()
	}
	sorted := append([]int(nil), counts...)
	sort.Ints(sorted)
	var median float64
	if mid := len(sorted) / 2; len(sorted)%2 == 1 {
		median = float64(sorted[mid])
	} else {
		median = float64(sorted[mid-1]+sorted[mid]) / 2
	}

	var violations []Violation
	for i, c := range codes {
		// Empty teams are already reported as errors.
		if counts[i] == 0 {
			continue
		}
		if float64(counts[i]) < median*LowVolumeRatio {
			violations = append(violations, Violation{
				Check:   "game_volume",
				Type:    Warning,
				Team:    c,
				Message: fmt.Sprintf("%s has %d games, well below the league median of %.1f", c, counts[i], median),
			})
		}
	}
	return violations
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
