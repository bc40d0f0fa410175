package strategy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/insightout11/cracked-ice/internal/tiers"
)

// Default is used when no strategy is configured.
const Default = "balanced"

// Strategy is a named weighting of the tier score.
type Strategy struct {
	Name        string
	Description string
	Weights     tiers.Weights
}

var registry = map[string]Strategy{
	"balanced": {
		Name:        "balanced",
		Description: "Weight game volume and off-night share equally",
		Weights:     tiers.DefaultWeights(),
	},
	"off_night": {
		Name:        "off_night",
		Description: "Favor teams that play when few others do",
		Weights:     tiers.Weights{OffNight: 0.8, GameVolume: 0.2},
	},
	"volume": {
		Name:        "volume",
		Description: "Favor teams with the most games",
		Weights:     tiers.Weights{OffNight: 0.2, GameVolume: 0.8},
	},
}

// Get returns a Strategy by name.
func Get(name string) (Strategy, error) {
	if name == "" {
		name = Default
	}
	s, ok := registry[name]
	if !ok {
		return Strategy{}, fmt.Errorf("unknown strategy: %q (valid: %s)", name, strings.Join(Names(), ", "))
	}
	return s, nil
}

// Names lists the registered strategies in order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
