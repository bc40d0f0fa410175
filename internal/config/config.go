package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/insightout11/cracked-ice/internal/roster"
	"github.com/insightout11/cracked-ice/internal/setmath"
	"github.com/insightout11/cracked-ice/internal/strategy"
	"github.com/insightout11/cracked-ice/internal/tiers"
)

// Date is a wrapper around time.Time for YAML date parsing.
type Date struct {
	Time time.Time
}

func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	t, err := time.Parse(setmath.DateLayout, value.Value)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", value.Value, err)
	}
	d.Time = t
	return nil
}

func (d Date) String() string {
	return d.Time.Format(setmath.DateLayout)
}

type Data struct {
	Path   string `yaml:"path"`
	Season string `yaml:"season"`
}

type Lineup struct {
	SlotsPerDay int `yaml:"slots_per_day"`
}

type Tiers struct {
	PlayoffStart *Date    `yaml:"playoff_start"`
	SeasonStart  *Date    `yaml:"season_start"`
	PlayoffWeek  int      `yaml:"playoff_week"`
	Strategy     string   `yaml:"strategy"`
	Weights      *Weights `yaml:"weights"`
}

// Weights holds explicit tier weights. A key left out keeps its default.
type Weights struct {
	OffNight   *float64 `yaml:"off_night"`
	GameVolume *float64 `yaml:"game_volume"`
}

func (w Weights) settings() map[string]float64 {
	settings := make(map[string]float64, 2)
	if w.OffNight != nil {
		settings[tiers.OffNightWeightKey] = *w.OffNight
	}
	if w.GameVolume != nil {
		settings[tiers.GameVolumeWeightKey] = *w.GameVolume
	}
	return settings
}

type Server struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Config struct {
	Data   Data   `yaml:"data"`
	Lineup Lineup `yaml:"lineup"`
	Tiers  Tiers  `yaml:"tiers"`
	Server Server `yaml:"server"`
	Log    Log    `yaml:"log"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Data:   Data{Path: "data/schedule.json"},
		Lineup: Lineup{SlotsPerDay: roster.DefaultSlotsPerDay},
		Tiers:  Tiers{Strategy: strategy.Default},
		Server: Server{Addr: ":8080", CORSOrigins: []string{"*"}},
		Log:    Log{Level: "info", Format: "text"},
	}
}

// LoadFromBytes parses YAML bytes over the defaults and validates the result.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile reads and parses a YAML config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

// Validate checks the configuration. It is exported so callers can re-check
// after applying flag and environment overrides.
func (c *Config) Validate() error {
	if c.Data.Path == "" {
		return fmt.Errorf("data.path is required")
	}

	if c.Lineup.SlotsPerDay < 1 {
		return fmt.Errorf("lineup.slots_per_day must be at least 1, got %d", c.Lineup.SlotsPerDay)
	}

	t := c.Tiers
	if t.PlayoffStart != nil && (t.SeasonStart != nil || t.PlayoffWeek != 0) {
		return fmt.Errorf("tiers: set either playoff_start or season_start/playoff_week, not both")
	}
	if (t.SeasonStart == nil) != (t.PlayoffWeek == 0) {
		return fmt.Errorf("tiers: season_start and playoff_week must be set together")
	}
	if t.PlayoffWeek < 0 {
		return fmt.Errorf("tiers.playoff_week must be at least 1, got %d", t.PlayoffWeek)
	}
	if t.Weights != nil {
		for key, v := range t.Weights.settings() {
			if v < 0 {
				return fmt.Errorf("tiers.weights: %s must not be negative, got %v", key, v)
			}
		}
	}
	if _, err := strategy.Get(t.Strategy); err != nil {
		return fmt.Errorf("tiers.strategy: %w", err)
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	return nil
}

// PlayoffStart returns the configured playoff boundary, or "" when none is set.
func (c *Config) PlayoffStart() (string, error) {
	t := c.Tiers
	switch {
	case t.PlayoffStart != nil:
		return t.PlayoffStart.String(), nil
	case t.SeasonStart != nil:
		return tiers.PlayoffStartForWeek(t.SeasonStart.String(), t.PlayoffWeek)
	default:
		return "", nil
	}
}

// Boundary returns the playoff defaults requests fall back on.
func (c *Config) Boundary() (tiers.Boundary, error) {
	start, err := c.PlayoffStart()
	if err != nil {
		return tiers.Boundary{}, err
	}
	b := tiers.Boundary{PlayoffStart: start}
	if c.Tiers.SeasonStart != nil {
		b.SeasonStart = c.Tiers.SeasonStart.String()
	}
	return b, nil
}

// TierWeights returns explicit weights when present, else the strategy's.
// Explicit weights start from the defaults, so a missing key stays 0.5.
func (c *Config) TierWeights() (tiers.Weights, error) {
	if c.Tiers.Weights != nil {
		return tiers.DefaultWeights().With(c.Tiers.Weights.settings()), nil
	}
	s, err := strategy.Get(c.Tiers.Strategy)
	if err != nil {
		return tiers.Weights{}, err
	}
	return s.Weights, nil
}

// NewLogger builds the process logger from the log section.
func (l Log) NewLogger(out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(l.Level)
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}
	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(level)
	if l.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log, nil
}
