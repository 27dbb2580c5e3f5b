// Package config loads readwell configuration from a YAML file and maps
// the user comfort scale to contrast targets.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// TargetConfig selects the contrast ratio to enforce. When Light or Dark
// are zero they are derived from Scale via TargetFor.
type TargetConfig struct {
	Light float64 `yaml:"light"`
	Dark  float64 `yaml:"dark"`
	Scale float64 `yaml:"scale"`
}

// PassConfig tunes pass scheduling. Correctness does not depend on either
// value; they only keep a host renderer responsive.
type PassConfig struct {
	BatchSize  int           `yaml:"batchSize"`
	YieldDelay time.Duration `yaml:"yieldDelay"`
}

// GateConfig configures the advisory oracle.
type GateConfig struct {
	Endpoints  []string      `yaml:"endpoints"`
	Threshold  float64       `yaml:"threshold"`
	Timeout    time.Duration `yaml:"timeout"`
	Plugin     string        `yaml:"plugin"`
	GenAIModel string        `yaml:"genaiModel"`
}

// Config is the full readwell configuration.
type Config struct {
	Target TargetConfig `yaml:"target"`
	Pass   PassConfig   `yaml:"pass"`
	Gate   GateConfig   `yaml:"gate"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Target: TargetConfig{
			Light: 6.33,
			Dark:  7.0,
			Scale: 0.5,
		},
		Pass: PassConfig{
			BatchSize:  50,
			YieldDelay: 10 * time.Millisecond,
		},
		Gate: GateConfig{
			Threshold: 0.5,
			Timeout:   3 * time.Second,
		},
	}
}

// Load reads a YAML config file over the defaults. A missing path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values outside their documented ranges.
func (c Config) Validate() error {
	for _, target := range []float64{c.Target.Light, c.Target.Dark} {
		if target != 0 && (target < 1 || target > 21) {
			return fmt.Errorf("target ratio %v out of [1, 21]", target)
		}
	}
	if c.Target.Scale < 0 || c.Target.Scale > 1 {
		return fmt.Errorf("comfort scale %v out of [0, 1]", c.Target.Scale)
	}
	if c.Gate.Threshold < 0 || c.Gate.Threshold > 1 {
		return fmt.Errorf("gate threshold %v out of [0, 1]", c.Gate.Threshold)
	}
	if c.Pass.BatchSize < 0 {
		return fmt.Errorf("batch size %d negative", c.Pass.BatchSize)
	}
	return nil
}

// maxTarget caps the comfort curve. Ratios past WCAG AAA buy no extra
// legibility and push every colour toward pure black or white.
const maxTarget = 7.0

// TargetFor maps the 0..1 comfort scale to a contrast target. The curve
// is piecewise linear with a gentle start and a steeper middle, capped at
// maxTarget; dark backgrounds get a slightly higher target because light
// text on dark ground halates at lower ratios.
func TargetFor(scale float64, dark bool) float64 {
	if scale < 0 {
		scale = 0
	}
	if scale > 1 {
		scale = 1
	}

	var target float64
	switch {
	case scale <= 0.5:
		// 3.0 at the low end up to WCAG AA at the midpoint.
		target = 3.0 + (4.5-3.0)*(scale/0.5)
	case scale <= 0.8:
		// AA to the light-mode default.
		target = 4.5 + (6.33-4.5)*((scale-0.5)/0.3)
	default:
		target = 6.33 + (maxTarget-6.33)*((scale-0.8)/0.2)
	}

	if dark {
		target += 0.67
	}
	if target > maxTarget {
		target = maxTarget
	}
	return target
}
