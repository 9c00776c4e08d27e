package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"stoikov-maker-go/strategy/stoikov"
)

// AppConfig holds the main runtime configuration.
type AppConfig struct {
	Env      string         `yaml:"env"`
	Data     DataConfig     `yaml:"data"`
	Strategy stoikov.Config `yaml:"strategy"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Store    StoreConfig    `yaml:"store"`
}

// DataConfig describes the recorded feed and the offline calibration
// window replayed before quoting starts.
type DataConfig struct {
	// Source is a CSV path or a ws:// URL served by cmd/mdserve.
	Source string `yaml:"source"`
	// CalibrationMinutes bounds the historical replay used to estimate
	// the transition model (e.g. 20).
	CalibrationMinutes int `yaml:"calibrationMinutes"`
}

// CalibrationWindow is the replay bound as a duration.
func (d DataConfig) CalibrationWindow() time.Duration {
	return time.Duration(d.CalibrationMinutes) * time.Minute
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or console
}

type MetricsConfig struct {
	Addr string `yaml:"addr"` // empty disables the metrics server
}

type StoreConfig struct {
	Path string `yaml:"path"` // sqlite file; empty disables persistence
}

// Load reads YAML config from path and applies basic validation.
func Load(path string) (AppConfig, error) {
	cfg := AppConfig{
		Strategy: stoikov.DefaultConfig(),
		Logging:  LoggingConfig{Level: "info", Format: "console"},
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate ensures required fields are present.
func Validate(cfg AppConfig) error {
	if cfg.Env == "" {
		return errors.New("env is required")
	}
	if cfg.Data.Source == "" {
		return errors.New("data.source is required")
	}
	if cfg.Data.CalibrationMinutes <= 0 && !strings.HasPrefix(cfg.Data.Source, "ws://") {
		return errors.New("data.calibrationMinutes must be > 0")
	}
	if err := cfg.Strategy.Validate(); err != nil {
		return fmt.Errorf("strategy: %w", err)
	}
	switch cfg.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not a known level", cfg.Logging.Level)
	}
	switch cfg.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("logging.format %q must be json or console", cfg.Logging.Format)
	}
	return nil
}
