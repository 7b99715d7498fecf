package tuning

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/talgya/econsim/internal/sim"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != Default() {
		t.Fatalf("got %+v, want defaults", got)
	}
}

func TestLoadPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	body := "growth_rate: 0.12\nauto_play_interval_ms: 250\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.GrowthRate != 0.12 {
		t.Fatalf("growth_rate = %v, want 0.12", got.GrowthRate)
	}
	if got.AutoPlayIntervalMS != 250 {
		t.Fatalf("auto_play_interval_ms = %d, want 250", got.AutoPlayIntervalMS)
	}
	// Untouched fields keep their defaults.
	if got.InitialValue != 100 || got.BreadFraction != 0.005 {
		t.Fatalf("defaults clobbered: %+v", got)
	}
}

func TestLoadRejectsDegenerateValues(t *testing.T) {
	cases := []string{
		"initial_value: 0\n",
		"bread_fraction_min: 0\n",
		"redistribution_rate: 1.5\n",
		"auto_play_interval_ms: 10\n", // below the 50ms floor
		"bread_fraction: 0.9\n",       // above bread_fraction_max
	}
	for _, body := range cases {
		path := filepath.Join(t.TempDir(), "tuning.yaml")
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := Load(path); err == nil {
			t.Fatalf("expected validation error for %q", body)
		}
	}
}

func TestSimConfigPerVariant(t *testing.T) {
	d := Default()

	bread := d.SimConfig(sim.VariantBread)
	if bread.BreadFraction != d.BreadFraction || bread.BreadFractionMin != d.BreadFractionMin {
		t.Fatalf("bread config missing fraction range: %+v", bread)
	}

	gini := d.SimConfig(sim.VariantGini)
	if gini.BreadFraction != 0 {
		t.Fatalf("gini config carries a bread fraction: %+v", gini)
	}
	if gini.GrowthRate != d.GrowthRate {
		t.Fatalf("gini growth rate = %v, want %v", gini.GrowthRate, d.GrowthRate)
	}
}
