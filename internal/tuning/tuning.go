// Package tuning loads the simulation tunables from a YAML file, with
// compiled defaults for anything the file leaves unset.
package tuning

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/talgya/econsim/internal/sim"
)

// Tuning holds every knob the service reads at startup. Slider-backed
// values (redistribution rate, bread fraction) remain runtime-mutable
// through the API; these are just their starting points and ranges.
type Tuning struct {
	Port int `yaml:"port"`

	InitialValue       float64 `yaml:"initial_value"`
	GrowthRate         float64 `yaml:"growth_rate"`
	RedistributionRate float64 `yaml:"redistribution_rate"`

	BreadFraction    float64 `yaml:"bread_fraction"`
	BreadFractionMin float64 `yaml:"bread_fraction_min"`
	BreadFractionMax float64 `yaml:"bread_fraction_max"`

	AutoPlayIntervalMS    int `yaml:"auto_play_interval_ms"`
	AutoPlayMinIntervalMS int `yaml:"auto_play_min_interval_ms"`
}

// Default returns the compiled defaults: ten agents at 100, 8% growth,
// 15% redistribution, bread at half a percent of the economy.
func Default() Tuning {
	return Tuning{
		Port:                  8080,
		InitialValue:          100,
		GrowthRate:            0.08,
		RedistributionRate:    0.15,
		BreadFraction:         0.005,
		BreadFractionMin:      0.0001,
		BreadFractionMax:      0.05,
		AutoPlayIntervalMS:    800,
		AutoPlayMinIntervalMS: 50,
	}
}

// Load reads tunables from path on top of the defaults. A missing file
// is not an error; a malformed one is.
func Load(path string) (Tuning, error) {
	t := Default()

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return t, nil
	}
	if err != nil {
		return t, fmt.Errorf("read tuning: %w", err)
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("parse %s: %w", path, err)
	}

	return t.validated()
}

// validated rejects values the sliders could never produce.
func (t Tuning) validated() (Tuning, error) {
	if t.InitialValue <= 0 {
		return t, fmt.Errorf("initial_value must be positive, got %v", t.InitialValue)
	}
	if t.GrowthRate < 0 {
		return t, fmt.Errorf("growth_rate must be non-negative, got %v", t.GrowthRate)
	}
	if t.RedistributionRate < 0 || t.RedistributionRate > 1 {
		return t, fmt.Errorf("redistribution_rate must be in [0, 1], got %v", t.RedistributionRate)
	}
	if t.BreadFractionMin <= 0 {
		return t, fmt.Errorf("bread_fraction_min must be strictly positive, got %v", t.BreadFractionMin)
	}
	if t.BreadFraction < t.BreadFractionMin || t.BreadFraction > t.BreadFractionMax {
		return t, fmt.Errorf("bread_fraction %v outside [%v, %v]", t.BreadFraction, t.BreadFractionMin, t.BreadFractionMax)
	}
	if t.AutoPlayMinIntervalMS <= 0 || t.AutoPlayIntervalMS < t.AutoPlayMinIntervalMS {
		return t, fmt.Errorf("auto_play_interval_ms %d below floor %d", t.AutoPlayIntervalMS, t.AutoPlayMinIntervalMS)
	}
	return t, nil
}

// SimConfig builds a sim.Config for the given variant.
func (t Tuning) SimConfig(variant sim.Variant) sim.Config {
	cfg := sim.Config{
		Variant:            variant,
		InitialValue:       t.InitialValue,
		GrowthRate:         t.GrowthRate,
		RedistributionRate: t.RedistributionRate,
	}
	if variant == sim.VariantBread {
		cfg.BreadFraction = t.BreadFraction
		cfg.BreadFractionMin = t.BreadFractionMin
		cfg.BreadFractionMax = t.BreadFractionMax
	}
	return cfg
}

// AutoPlayInterval returns the default auto-play interval.
func (t Tuning) AutoPlayInterval() time.Duration {
	return time.Duration(t.AutoPlayIntervalMS) * time.Millisecond
}

// AutoPlayMinInterval returns the interval floor.
func (t Tuning) AutoPlayMinInterval() time.Duration {
	return time.Duration(t.AutoPlayMinIntervalMS) * time.Millisecond
}
