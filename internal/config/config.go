// Package config loads the clock presets and server settings from YAML.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/michaelgov-ctrl/svg-clock/clock"
	"gopkg.in/yaml.v3"
)

// LogLevels are the accepted values of log_level.
var LogLevels = []string{"trace", "debug", "info", "warning", "error"}

// Config represents the top-level configuration.
type Config struct {
	LogLevel string   `yaml:"log_level"`
	Presets  []Preset `yaml:"presets"`
}

// Preset is a named clock configuration. Clock settings sit next to the name
// and start from clock.DefaultConfig, so a preset only lists what it changes.
type Preset struct {
	Name  string       `yaml:"name"`
	Label string       `yaml:"label"`
	Clock clock.Config `yaml:",inline"`
}

func (p *Preset) UnmarshalYAML(value *yaml.Node) error {
	type plain Preset

	raw := plain{Clock: clock.DefaultConfig()}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	*p = Preset(raw)
	return nil
}

func pickerPreset(name, label string, minuteSnap int) Preset {
	cfg := clock.DefaultConfig()
	cfg.Size = 200
	cfg.HourDraggable = true
	cfg.MinuteDraggable = true
	cfg.MinuteDragSnap = minuteSnap

	return Preset{Name: name, Label: label, Clock: cfg}
}

// DefaultConfig returns the default configuration: a plain display clock and
// three time pickers snapping minutes to 5, 1 and 15.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "error",
		Presets: []Preset{
			{Name: "clock", Label: "Clock", Clock: clock.DefaultConfig()},
			pickerPreset("picker-5", "Picker, 5 minute snap", 5),
			pickerPreset("picker-1", "Picker, 1 minute snap", 1),
			pickerPreset("picker-15", "Picker, 15 minute snap", 15),
		},
	}
}

// Load loads configuration from a YAML file. An empty path or a missing file
// gives the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return cfg, nil
}

// Validate rejects unusable presets and coerces drag snaps the clock does not
// support to their defaults.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(LogLevels, c.LogLevel) {
		errs = append(errs, fmt.Errorf("unknown log level %q", c.LogLevel))
	}

	if len(c.Presets) == 0 {
		errs = append(errs, errors.New("no presets"))
	}

	seen := make(map[string]bool, len(c.Presets))
	for i := range c.Presets {
		p := &c.Presets[i]

		switch {
		case p.Name == "":
			errs = append(errs, fmt.Errorf("preset %d has no name", i))
			continue
		case seen[p.Name]:
			errs = append(errs, fmt.Errorf("preset %q defined twice", p.Name))
			continue
		}
		seen[p.Name] = true

		if p.Label == "" {
			p.Label = p.Name
		}

		normalized := p.Clock.Normalized()
		if normalized.MinuteDragSnap != p.Clock.MinuteDragSnap || normalized.HourDragSnap != p.Clock.HourDragSnap {
			slog.Warn("preset drag snap reset",
				slog.String("preset", p.Name),
				slog.Int("minute_drag_snap", normalized.MinuteDragSnap),
				slog.Int("hour_drag_snap", normalized.HourDragSnap),
			)
		}
		p.Clock = normalized
	}

	return errors.Join(errs...)
}

func (c *Config) Preset(name string) (clock.Config, bool) {
	for _, p := range c.Presets {
		if p.Name == name {
			return p.Clock, true
		}
	}

	return clock.Config{}, false
}

func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Presets))
	for _, p := range c.Presets {
		names = append(names, p.Name)
	}

	return names
}
