package schedule

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/insightout11/cracked-ice/internal/setmath"
)

// Artifact is the JSON document written by the offline schedule fetch job.
type Artifact struct {
	Season        string              `json:"season"`
	Teams         map[string][]string `json:"teams"`
	LastRefreshed string              `json:"lastRefreshed"`
}

// Meta describes the loaded season.
type Meta struct {
	Season        string `json:"season"`
	LastRefreshed string `json:"lastRefreshed"`
	TeamCount     int    `json:"teamCount"`
}

// Store holds every team's game dates. It is never mutated after construction,
// so one instance can be shared by concurrent callers.
type Store struct {
	meta  Meta
	codes []string
	dates map[string]setmath.DateSet
}

// Load reads the schedule artifact at path. A missing file is reported as
// ErrDataMissing.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDataMissing, path)
		}
		return nil, fmt.Errorf("reading schedule artifact: %w", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses an artifact document into a Store.
func LoadFromBytes(data []byte) (*Store, error) {
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parsing schedule artifact: %w", err)
	}
	if len(a.Teams) == 0 {
		return nil, fmt.Errorf("%w: artifact lists no teams", ErrDataMissing)
	}
	return New(a.Season, a.LastRefreshed, a.Teams), nil
}

// New builds a Store from raw team date lists. Codes are normalized and
// duplicate dates collapse.
func New(season, lastRefreshed string, teams map[string][]string) *Store {
	s := &Store{dates: make(map[string]setmath.DateSet, len(teams))}
	for code, dates := range teams {
		code = NormalizeCode(code)
		set, ok := s.dates[code]
		if !ok {
			set = make(setmath.DateSet, len(dates))
			s.dates[code] = set
			s.codes = append(s.codes, code)
		}
		for _, d := range dates {
			set[d] = struct{}{}
		}
	}
	sort.Strings(s.codes)
	s.meta = Meta{Season: season, LastRefreshed: lastRefreshed, TeamCount: len(s.codes)}
	return s
}

// NormalizeCode trims and upper-cases a team code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *Store) Meta() Meta {
	return s.meta
}

// Codes returns every loaded team code in ascending order.
func (s *Store) Codes() []string {
	out := make([]string, len(s.codes))
	copy(out, s.codes)
	return out
}

func (s *Store) Has(code string) bool {
	_, ok := s.dates[NormalizeCode(code)]
	return ok
}

// Dates returns a team's full-season date set, or nil for an unknown code.
// Callers must not modify the returned set.
func (s *Store) Dates(code string) setmath.DateSet {
	return s.dates[NormalizeCode(code)]
}

// Filtered returns a team's dates inside w.
func (s *Store) Filtered(code string, w setmath.Window) setmath.DateSet {
	return setmath.FilterByRange(s.Dates(code), w)
}

// DisplayName returns the team's full name, falling back to the code.
func (s *Store) DisplayName(code string) string {
	code = NormalizeCode(code)
	if name, ok := Vocabulary[code]; ok {
		return name
	}
	return code
}

// DisplayNames maps every loaded code to its display name.
func (s *Store) DisplayNames() map[string]string {
	names := make(map[string]string, len(s.codes))
	for _, c := range s.codes {
		names[c] = s.DisplayName(c)
	}
	return names
}

// Require returns the normalized code, or an UnknownTeamError.
func (s *Store) Require(code string) (string, error) {
	n := NormalizeCode(code)
	if _, ok := s.dates[n]; !ok {
		return "", &UnknownTeamError{Code: code}
	}
	return n, nil
}

// RequireRoster validates every roster code, naming the first unknown one.
func (s *Store) RequireRoster(codes []string) ([]string, error) {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		n := NormalizeCode(c)
		if _, ok := s.dates[n]; !ok {
			return nil, &UnknownTeamError{Code: c, Roster: true}
		}
		out = append(out, n)
	}
	return out, nil
}

// LeagueDates returns the sorted union of every team's dates.
func (s *Store) LeagueDates() []string {
	union := make(setmath.DateSet)
	for _, set := range s.dates {
		for d := range set {
			union[d] = struct{}{}
		}
	}
	return union.Sorted()
}

// TeamsPlaying returns how many teams play on each date across the league.
func (s *Store) TeamsPlaying() map[string]int {
	counts := make(map[string]int)
	for _, set := range s.dates {
		for d := range set {
			counts[d]++
		}
	}
	return counts
}
