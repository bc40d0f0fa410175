package tiers

import (
	"fmt"
	"time"

	"github.com/insightout11/cracked-ice/internal/setmath"
)

// Recognized weight keys.
const (
	OffNightWeightKey   = "offNightWeight"
	GameVolumeWeightKey = "gameVolumeWeight"
)

// Weights balances game volume against off-night share in the composite score.
type Weights struct {
	OffNight   float64 `json:"offNightWeight" yaml:"off_night"`
	GameVolume float64 `json:"gameVolumeWeight" yaml:"game_volume"`
}

func DefaultWeights() Weights {
	return Weights{OffNight: 0.5, GameVolume: 0.5}
}

// ParseWeights reads the recognized keys from settings. Unknown keys are
// ignored and missing keys keep their defaults.
func ParseWeights(settings map[string]float64) Weights {
	return DefaultWeights().With(settings)
}

// With returns w with any recognized keys in settings applied.
func (w Weights) With(settings map[string]float64) Weights {
	if v, ok := settings[OffNightWeightKey]; ok {
		w.OffNight = v
	}
	if v, ok := settings[GameVolumeWeightKey]; ok {
		w.GameVolume = v
	}
	return w
}

// PlayoffStartForWeek returns the first day of fantasy week `week`. Week 1
// begins on the Monday of the week containing seasonStart.
func PlayoffStartForWeek(seasonStart string, week int) (string, error) {
	t, err := time.Parse(setmath.DateLayout, seasonStart)
	if err != nil {
		return "", fmt.Errorf("%w: season start %q is not a YYYY-MM-DD date", ErrInvalidPlayoffStart, seasonStart)
	}
	if week < 1 {
		return "", fmt.Errorf("%w: week must be at least 1, got %d", ErrInvalidPlayoffStart, week)
	}
	back := (int(t.Weekday()) + 6) % 7
	monday := t.AddDate(0, 0, -back)
	return monday.AddDate(0, 0, 7*(week-1)).Format(setmath.DateLayout), nil
}

// Boundary holds the configured playoff defaults a caller can override.
type Boundary struct {
	PlayoffStart string
	SeasonStart  string // anchors week numbers
}

// Resolve picks the playoff start for one request: an explicit date wins,
// then a week number counted from the season start, then the configured
// date. A zero week means none was given.
func (b Boundary) Resolve(date string, week int) (string, error) {
	if date != "" {
		return date, nil
	}
	if week != 0 {
		if b.SeasonStart == "" {
			return "", fmt.Errorf("%w: a playoff week needs a configured season start", ErrInvalidPlayoffStart)
		}
		return PlayoffStartForWeek(b.SeasonStart, week)
	}
	if b.PlayoffStart == "" {
		return "", fmt.Errorf("%w: a playoff start date or week is required", ErrInvalidPlayoffStart)
	}
	return b.PlayoffStart, nil
}
