// Package config provides configuration loading and access for the
// estimator. Values are loaded once at startup and passed by reference into
// the components that need them; there is no global accessor.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all estimator configuration parameters.
type Config struct {
	Game      GameConfig      `yaml:"game"`
	Estimator EstimatorConfig `yaml:"estimator"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// GameConfig holds world constants the server owns but the estimator needs.
type GameConfig struct {
	BulletSpeed float64 `yaml:"bullet_speed"` // world units per second
	HitRadius   float64 `yaml:"hit_radius"`   // player hit-circle radius in world units
}

// EstimatorConfig holds tunables for the history and prediction layers.
type EstimatorConfig struct {
	ScoreLookbackSec   float64 `yaml:"score_lookback_sec"`   // window for the score-rate estimate
	TrajectorySamples  int     `yaml:"trajectory_samples"`   // position samples retained per player
	ScoreSamples       int     `yaml:"score_samples"`        // score samples retained per player
	ForecastHorizonSec float64 `yaml:"forecast_horizon_sec"` // default collision look-ahead
}

// TelemetryConfig holds session-telemetry parameters.
type TelemetryConfig struct {
	OutputDir string `yaml:"output_dir"` // empty disables CSV output
	LogEvery  int    `yaml:"log_every"`  // ticks between slog stats lines, 0 disables
}

// ScoreLookback returns the score-rate window as a duration.
func (c *Config) ScoreLookback() time.Duration {
	return time.Duration(c.Estimator.ScoreLookbackSec * float64(time.Second))
}

// ForecastHorizon returns the default collision look-ahead as a duration.
func (c *Config) ForecastHorizon() time.Duration {
	return time.Duration(c.Estimator.ForecastHorizonSec * float64(time.Second))
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyFloors()
	return cfg, nil
}

// applyFloors clamps values that would break the estimator if set too low.
func (c *Config) applyFloors() {
	if c.Game.BulletSpeed <= 0 {
		c.Game.BulletSpeed = 1
	}
	if c.Game.HitRadius < 0 {
		c.Game.HitRadius = 0
	}
	if c.Estimator.ScoreLookbackSec <= 0 {
		c.Estimator.ScoreLookbackSec = 10
	}
	if c.Estimator.TrajectorySamples < 2 {
		c.Estimator.TrajectorySamples = 2
	}
	if c.Estimator.ScoreSamples < 2 {
		c.Estimator.ScoreSamples = 2
	}
	if c.Estimator.ForecastHorizonSec <= 0 {
		c.Estimator.ForecastHorizonSec = 5
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
