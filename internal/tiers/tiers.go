// Package tiers sorts teams into schedule-quality tiers for the regular season
// and the fantasy playoff window.
package tiers

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/insightout11/cracked-ice/internal/schedule"
	"github.com/insightout11/cracked-ice/internal/setmath"
)

// Tier is a schedule-quality bucket.
type Tier string

const (
	Cyan  Tier = "cyan"  // elite
	Blue  Tier = "blue"  // playoff specialist
	Green Tier = "green" // regular-season strong
	Red   Tier = "red"   // below average
)

// All lists the tiers from best to worst.
var All = []Tier{Cyan, Blue, Green, Red}

// Label describes the tier.
func (t Tier) Label() string {
	switch t {
	case Cyan:
		return "elite"
	case Blue:
		return "playoff strong"
	case Green:
		return "regular-season strong"
	default:
		return "below average"
	}
}

func (t Tier) rank() int {
	for i, x := range All {
		if x == t {
			return i
		}
	}
	return len(All)
}

const (
	// OffNightMaxGames is the most league games a date can hold and still be
	// an off-night.
	OffNightMaxGames = 8

	HighPercentile         = 0.65
	AboveAveragePercentile = 0.50
)

var ErrInvalidPlayoffStart = errors.New("invalid playoff start")

// Segment holds one team's numbers for the regular season or playoff window.
type Segment struct {
	Games           int     `json:"games"`
	OffNights       int     `json:"offNights"`
	OffNightPct     float64 `json:"offNightPct"`
	NormalizedGames float64 `json:"normalizedGames"`
	Score           float64 `json:"score"`
	ZScore          float64 `json:"zScore"`
	High            bool    `json:"high"`
	AboveAverage    bool    `json:"aboveAverage"`
}

// TeamTier is the tier record for one team.
type TeamTier struct {
	TeamCode string  `json:"teamCode"`
	TeamName string  `json:"teamName"`
	Tier     Tier    `json:"tier"`
	Label    string  `json:"label"`
	Regular  Segment `json:"regular"`
	Playoff  Segment `json:"playoff"`
}

// SegmentStats summarizes the league distribution of composite scores.
type SegmentStats struct {
	Mean         float64 `json:"mean"`
	StdDev       float64 `json:"stdDev"`
	High         float64 `json:"highThreshold"`
	AboveAverage float64 `json:"aboveAverageThreshold"`
}

// Report is the full tier answer.
type Report struct {
	PlayoffStart  string       `json:"playoffStart"`
	Weights       Weights      `json:"weights"`
	OffNightDates int          `json:"offNightDates"`
	Regular       SegmentStats `json:"regular"`
	Playoff       SegmentStats `json:"playoff"`
	TierCounts    map[Tier]int `json:"tierCounts"`
	Teams         []TeamTier   `json:"teams"`
}

// Score classifies every team. Tiers always use full-season dates so they do
// not move with whatever window a caller is viewing.
func Score(store *schedule.Store, playoffStart string, weights Weights) (*Report, error) {
	if _, err := time.Parse(setmath.DateLayout, playoffStart); err != nil {
		return nil, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrInvalidPlayoffStart, playoffStart)
	}

	offNights := OffNightDates(store)
	codes := store.Codes()
	teams := make([]TeamTier, len(codes))
	for i, code := range codes {
		teams[i] = TeamTier{TeamCode: code, TeamName: store.DisplayName(code)}
		for d := range store.Dates(code) {
			seg := &teams[i].Regular
			if d >= playoffStart {
				seg = &teams[i].Playoff
			}
			seg.Games++
			if offNights.Has(d) {
				seg.OffNights++
			}
		}
	}

	regular := scoreSegment(teams, func(t *TeamTier) *Segment { return &t.Regular }, weights)
	playoff := scoreSegment(teams, func(t *TeamTier) *Segment { return &t.Playoff }, weights)

	counts := make(map[Tier]int, len(All))
	for _, tier := range All {
		counts[tier] = 0
	}
	for i := range teams {
		t := &teams[i]
		t.Tier = Classify(t.Regular.High, t.Regular.AboveAverage, t.Playoff.High, t.Playoff.AboveAverage)
		t.Label = t.Tier.Label()
		counts[t.Tier]++
	}

	sort.SliceStable(teams, func(i, j int) bool {
		a, b := teams[i], teams[j]
		if a.Tier != b.Tier {
			return a.Tier.rank() < b.Tier.rank()
		}
		if sa, sb := a.Regular.Score+a.Playoff.Score, b.Regular.Score+b.Playoff.Score; sa != sb {
			return sa > sb
		}
		return a.TeamCode < b.TeamCode
	})

	return &Report{
		PlayoffStart:  playoffStart,
		Weights:       weights,
		OffNightDates: offNights.Len(),
		Regular:       regular,
		Playoff:       playoff,
		TierCounts:    counts,
		Teams:         teams,
	}, nil
}

// Classify applies the tier rules. A team is cyan when it is high in one
// segment and at least above average in the other.
func Classify(highReg, aboveAvgReg, highPO, aboveAvgPO bool) Tier {
	switch {
	case (highReg && aboveAvgPO) || (highPO && aboveAvgReg):
		return Cyan
	case highPO && !highReg:
		return Blue
	case highReg && !highPO:
		return Green
	default:
		return Red
	}
}

// OffNightDates returns the dates where the league plays at most
// OffNightMaxGames games. Each game shows up in two teams' schedules.
func OffNightDates(store *schedule.Store) setmath.DateSet {
	out := make(setmath.DateSet)
	for d, teams := range store.TeamsPlaying() {
		if teams/2 <= OffNightMaxGames {
			out[d] = struct{}{}
		}
	}
	return out
}

func scoreSegment(teams []TeamTier, pick func(*TeamTier) *Segment, w Weights) SegmentStats {
	games := make([]float64, len(teams))
	for i := range teams {
		games[i] = float64(pick(&teams[i]).Games)
	}
	normalized := zScores(games)

	scores := make([]float64, len(teams))
	for i := range teams {
		seg := pick(&teams[i])
		if seg.Games > 0 {
			seg.OffNightPct = float64(seg.OffNights) / float64(seg.Games)
		}
		seg.NormalizedGames = normalized[i]
		seg.Score = w.GameVolume*seg.NormalizedGames + w.OffNight*seg.OffNightPct
		scores[i] = seg.Score
	}

	z := zScores(scores)
	mean, sd := meanStdDev(scores)
	stats := SegmentStats{
		Mean:         mean,
		StdDev:       sd,
		High:         percentile(scores, HighPercentile),
		AboveAverage: percentile(scores, AboveAveragePercentile),
	}
	for i := range teams {
		seg := pick(&teams[i])
		seg.ZScore = z[i]
		seg.High = seg.Score >= stats.High
		seg.AboveAverage = seg.Score >= stats.AboveAverage
	}
	return stats
}

func meanStdDev(xs []float64) (mean, sd float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	for _, x := range xs {
		sd += (x - mean) * (x - mean)
	}
	return mean, math.Sqrt(sd / float64(len(xs)))
}

// zScores standardizes xs with the population standard deviation. A flat
// distribution maps to all zeros.
func zScores(xs []float64) []float64 {
	mean, sd := meanStdDev(xs)
	out := make([]float64, len(xs))
	if sd == 0 {
		return out
	}
	for i, x := range xs {
		out[i] = (x - mean) / sd
	}
	return out
}

// percentile interpolates linearly between the closest ranks.
func percentile(xs []float64, p float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	return sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo))
}
