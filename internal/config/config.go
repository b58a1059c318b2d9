// YAML config loader with CUE validation integration
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"symptom-sim/internal/notify"
	"symptom-sim/internal/severity"
	"symptom-sim/internal/sim"
)

// ErrInvalid is returned when a configuration fails validation.
var ErrInvalid = errors.New("invalid configuration")

// Output formats.
const (
	OutputColor = "color"
	OutputJSON  = "json"
	OutputTUI   = "tui"
)

// Alert configures the notification played before each real-time wait.
type Alert struct {
	FrequencyHz int `yaml:"frequency_hz" env:"FREQUENCY_HZ"`
	DurationMS  int `yaml:"duration_ms" env:"DURATION_MS"`
	Repeats     int `yaml:"repeats" env:"REPEATS"`
	GapMS       int `yaml:"gap_ms" env:"GAP_MS"`
}

// SimulationConfig is the root configuration of a run.
type SimulationConfig struct {
	Severity      string `yaml:"severity" env:"SEVERITY"`
	DurationHours int    `yaml:"duration_hours" env:"DURATION_HOURS"`
	StartHour     int    `yaml:"start_hour" env:"START_HOUR"`
	Realtime      bool   `yaml:"realtime" env:"REALTIME"`
	Seed          uint64 `yaml:"seed" env:"SEED"`
	Output        string `yaml:"output" env:"OUTPUT"`
	LogLevel      string `yaml:"log_level" env:"LOG_LEVEL"`
	Alert         Alert  `yaml:"alert" envPrefix:"ALERT_"`
}

// Default returns the configuration used when nothing else is given.
func Default() *SimulationConfig {
	a := notify.DefaultAlert()
	return &SimulationConfig{
		Severity:      severity.Moderate.String(),
		DurationHours: 24,
		StartHour:     8,
		Output:        OutputColor,
		LogLevel:      "warn",
		Alert: Alert{
			FrequencyHz: a.FrequencyHz,
			DurationMS:  int(a.Duration / time.Millisecond),
			Repeats:     a.Repeats,
			GapMS:       int(a.Gap / time.Millisecond),
		},
	}
}

// Load reads a YAML config over the defaults, validating it against the CUE
// schema first when cueSchemaPath is set. An empty configPath yields the
// defaults.
func Load(configPath, cueSchemaPath string) (*SimulationConfig, error) {
	cfg := Default()
	if configPath == "" {
		return cfg, nil
	}
	if cueSchemaPath != "" {
		if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", configPath, err)
	}
	return cfg, nil
}

// Validate checks the values the schema cannot see, such as values that
// arrived from the environment or flags.
func (c *SimulationConfig) Validate() error {
	var errs []error
	if _, err := severity.Parse(c.Severity); err != nil {
		errs = append(errs, err)
	}
	if c.DurationHours <= 0 {
		errs = append(errs, fmt.Errorf("duration_hours must be positive, got %d", c.DurationHours))
	}
	if c.StartHour < 0 || c.StartHour > 23 {
		errs = append(errs, fmt.Errorf("start_hour %d outside [0,23]", c.StartHour))
	}
	switch c.Output {
	case OutputColor, OutputJSON, OutputTUI:
	default:
		errs = append(errs, fmt.Errorf("unknown output %q", c.Output))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log_level %q", c.LogLevel))
	}
	if c.Alert.DurationMS < 0 || c.Alert.GapMS < 0 || c.Alert.Repeats < 0 {
		errs = append(errs, errors.New("alert timings must not be negative"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w: %w", ErrInvalid, sim.ErrInvalidConfig, err)
	}
	return nil
}

// Level returns the parsed severity tier.
func (c *SimulationConfig) Level() severity.Level {
	l, _ := severity.Parse(c.Severity)
	return l
}

// SimOptions converts the config into simulator options.
func (c *SimulationConfig) SimOptions() sim.Options {
	return sim.Options{
		Severity:      c.Level(),
		DurationHours: c.DurationHours,
		StartHour:     c.StartHour,
		Realtime:      c.Realtime,
		Seed:          c.Seed,
	}
}

// NotifyAlert converts the alert section into notification parameters.
func (c *SimulationConfig) NotifyAlert() notify.Alert {
	return notify.Alert{
		FrequencyHz: c.Alert.FrequencyHz,
		Duration:    time.Duration(c.Alert.DurationMS) * time.Millisecond,
		Repeats:     c.Alert.Repeats,
		Gap:         time.Duration(c.Alert.GapMS) * time.Millisecond,
	}
}
