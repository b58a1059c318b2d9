// Package preset holds named rehearsal profiles: a severity, a duration and
// optionally a start hour and mode.
package preset

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"symptom-sim/internal/config"
	"symptom-sim/internal/severity"
)

// ErrNotFound is returned by Lookup for unknown names.
var ErrNotFound = errors.New("preset not found")

// DurationPresets are the durations offered by the interactive prompt.
var DurationPresets = []int{1, 4, 8, 16, 24}

// Preset is a named run profile.
type Preset struct {
	Name          string `yaml:"name"`
	Description   string `yaml:"description,omitempty"`
	Severity      string `yaml:"severity"`
	DurationHours int    `yaml:"duration_hours"`
	StartHour     *int   `yaml:"start_hour,omitempty"`
	Realtime      bool   `yaml:"realtime,omitempty"`
}

// File is the on-disk layout of a presets file.
type File struct {
	Presets []Preset `yaml:"presets"`
}

// Validate checks a single preset.
func (p Preset) Validate() error {
	if p.Name == "" {
		return errors.New("preset without name")
	}
	if _, err := severity.Parse(p.Severity); err != nil {
		return fmt.Errorf("preset %s: %w", p.Name, err)
	}
	if p.DurationHours <= 0 {
		return fmt.Errorf("preset %s: duration_hours must be positive", p.Name)
	}
	if p.StartHour != nil && (*p.StartHour < 0 || *p.StartHour > 23) {
		return fmt.Errorf("preset %s: start_hour %d outside [0,23]", p.Name, *p.StartHour)
	}
	return nil
}

// Apply copies the preset onto cfg.
func (p Preset) Apply(cfg *config.SimulationConfig) {
	cfg.Severity = p.Severity
	cfg.DurationHours = p.DurationHours
	if p.StartHour != nil {
		cfg.StartHour = *p.StartHour
	}
	cfg.Realtime = p.Realtime
}

// Load reads a YAML presets file from disk.
func Load(path string) (map[string]Preset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}
	out := make(map[string]Preset, len(f.Presets))
	for _, p := range f.Presets {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := out[p.Name]; dup {
			return nil, fmt.Errorf("duplicate preset %s", p.Name)
		}
		out[p.Name] = p
	}
	return out, nil
}

// Merge returns the union of sets; later sets win on name clashes.
func Merge(sets ...map[string]Preset) map[string]Preset {
	out := map[string]Preset{}
	for _, s := range sets {
		for k, v := range s {
			out[k] = v
		}
	}
	return out
}

// Lookup returns the named preset.
func Lookup(presets map[string]Preset, name string) (Preset, error) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return p, nil
}

// Names returns the preset names sorted.
func Names(presets map[string]Preset) []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
