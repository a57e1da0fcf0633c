// Package config loads engine defaults from a YAML file. There is no
// process-wide default state anywhere else: the values here are data,
// threaded explicitly into the detector and engine by the caller.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/perimetric/clearbox/pkg/collide"
	"github.com/perimetric/clearbox/pkg/obstacle"
	"github.com/perimetric/clearbox/pkg/offset"
)

// Duration wraps time.Duration so YAML values like "5s" decode.
type Duration time.Duration

// UnmarshalYAML accepts either a duration string ("500ms", "5s") or a
// plain number of seconds.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("invalid duration %q", value.Value)
	}
	if parsed, err := time.ParseDuration(s); err == nil {
		*d = Duration(parsed)
		return nil
	}
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		*d = Duration(time.Duration(secs * float64(time.Second)))
		return nil
	}
	return fmt.Errorf("invalid duration %q", s)
}

// MarshalYAML renders the duration in its string form.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Config holds the tunable engine defaults.
type Config struct {
	// MinSpacing is the baseline buffer between raw shapes.
	MinSpacing float64 `yaml:"min_spacing"`
	// BoxGap is the mandatory minimum gap between collision boxes.
	BoxGap float64 `yaml:"box_gap"`
	// DefaultMethod is the expansion method symbol used when a script
	// does not pick one: "generalized", "preserve_shape" or "convex".
	DefaultMethod string `yaml:"default_method"`
	// ArcSamples is the number of interpolated points per arc span
	// when arc boundaries are flattened.
	ArcSamples int `yaml:"arc_samples"`
	// GridSize snaps scene placements when positive.
	GridSize float64 `yaml:"grid_size"`
	// EvalTimeout bounds a single scene-script evaluation.
	EvalTimeout Duration `yaml:"eval_timeout"`
}

// Default returns the built-in defaults, matching the original tool's
// constants.
func Default() Config {
	return Config{
		MinSpacing:    collide.DefaultMinSpacing,
		BoxGap:        collide.DefaultBoxGap,
		DefaultMethod: obstacle.ArcGeneralized.String(),
		ArcSamples:    offset.DefaultArcSamples,
		GridSize:      0,
		EvalTimeout:   Duration(5 * time.Second),
	}
}

// Load reads a YAML config file over the defaults. Fields absent from
// the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the loaded values.
func (c Config) Validate() error {
	if c.MinSpacing < 0 {
		return fmt.Errorf("config: min_spacing %.2f is negative", c.MinSpacing)
	}
	if c.BoxGap < 0 {
		return fmt.Errorf("config: box_gap %.2f is negative", c.BoxGap)
	}
	if _, err := obstacle.ParseMethod(c.DefaultMethod); err != nil {
		return fmt.Errorf("config: default_method: %w", err)
	}
	if c.ArcSamples < 1 {
		return fmt.Errorf("config: arc_samples %d, need at least 1", c.ArcSamples)
	}
	if c.EvalTimeout <= 0 {
		return fmt.Errorf("config: eval_timeout must be positive")
	}
	return nil
}

// Method returns the parsed default expansion method.
func (c Config) Method() obstacle.Method {
	m, err := obstacle.ParseMethod(c.DefaultMethod)
	if err != nil {
		return obstacle.ArcGeneralized
	}
	return m
}

// Detector builds a collide.Detector from the configured buffers.
func (c Config) Detector() *collide.Detector {
	return &collide.Detector{
		MinSpacing: c.MinSpacing,
		BoxGap:     c.BoxGap,
		ArcSamples: c.ArcSamples,
	}
}
