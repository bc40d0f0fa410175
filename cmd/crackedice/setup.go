package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/insightout11/cracked-ice/internal/config"
	"github.com/insightout11/cracked-ice/internal/engine"
	"github.com/insightout11/cracked-ice/internal/outwriter"
)

const defaultConfigFile = "config.yaml"

// initViper maps CRACKEDICE_* environment variables onto the bound flags.
func initViper() {
	viper.SetEnvPrefix("CRACKEDICE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// resolveConfigPath returns "" when no file is named and the default is absent.
func resolveConfigPath(configFlag string) (string, error) {
	if configFlag != "" {
		if _, err := os.Stat(configFlag); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return configFlag, nil
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile, nil
	}
	return "", nil
}

// loadConfig reads the config file, applies flag and environment overrides
// and validates the result.
func loadConfig() (*config.Config, error) {
	path, err := resolveConfigPath(viper.GetString("config"))
	if err != nil {
		return nil, err
	}
	cfg := config.Default()
	if path != "" {
		if cfg, err = config.LoadFromFile(path); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	if viper.IsSet("data-path") {
		cfg.Data.Path = viper.GetString("data-path")
	}
	if viper.IsSet("slots") {
		cfg.Lineup.SlotsPerDay = viper.GetInt("slots")
	}
	if viper.IsSet("log-level") {
		cfg.Log.Level = viper.GetString("log-level")
	}
	if viper.IsSet("log-format") {
		cfg.Log.Format = viper.GetString("log-format")
	}
	if viper.IsSet("addr") {
		cfg.Server.Addr = viper.GetString("addr")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// outputOptions reads the rendering flags.
func outputOptions() (outwriter.Options, error) {
	opts := outwriter.DefaultOptions()
	format, err := outwriter.ParseFormat(viper.GetString("format"))
	if err != nil {
		return opts, err
	}
	opts.Format = format
	if p := viper.GetInt("precision"); p >= 0 {
		opts.Precision = p
	}
	switch strings.ToLower(viper.GetString("color")) {
	case "yes", "true", "1":
		opts.Color = true
	case "no", "false", "0":
		opts.Color = false
	case "auto", "":
		opts.Color = !color.NoColor
	default:
		return opts, fmt.Errorf("--color must be auto, yes or no")
	}
	return opts, nil
}

// app bundles what a query command needs.
type app struct {
	cfg *config.Config
	log *logrus.Logger
	eng *engine.Engine
	out outwriter.Options
}

// newApp loads config and schedule. ready requires the schedule to load.
func newApp(ready bool) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log, err := cfg.Log.NewLogger(os.Stderr)
	if err != nil {
		return nil, err
	}
	out, err := outputOptions()
	if err != nil {
		return nil, err
	}
	eng := engine.New(engine.Options{
		DataPath:    cfg.Data.Path,
		SlotsPerDay: cfg.Lineup.SlotsPerDay,
		Logger:      log,
	})
	if ready {
		if err := eng.Err(); err != nil {
			return nil, fmt.Errorf("loading %s: %w", cfg.Data.Path, err)
		}
	}
	return &app{cfg: cfg, log: log, eng: eng, out: out}, nil
}

func withApp(run func(a *app) error) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	return run(a)
}
