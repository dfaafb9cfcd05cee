package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/orrery/internal/control"
	"github.com/san-kum/orrery/internal/sim"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.SpeedMax != 5 {
		t.Errorf("expected speed max 5, got %v", cfg.SpeedMax)
	}
	if got := len(cfg.Catalog()); got != 8 {
		t.Errorf("expected 8 bodies, got %d", got)
	}
	if cfg.Camera.HoldDirected {
		t.Error("hold_directed should default to false")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("inner")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	catalog := cfg.Catalog()
	if len(catalog) != 4 || catalog[3].Name != "Mars" {
		t.Errorf("unexpected inner catalog: %+v", catalog)
	}

	cfg.Bodies = nil
	if again := GetPreset("inner"); len(again.Bodies) != 4 {
		t.Error("presets must not share state")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	want := []string{"fast", "inner", "outer", "solar"}
	if len(presets) != len(want) {
		t.Fatalf("expected %v, got %v", want, presets)
	}
	for i := range want {
		if presets[i] != want[i] {
			t.Errorf("preset %d: expected %s, got %s", i, want[i], presets[i])
		}
	}
	for _, name := range presets {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestValidate(t *testing.T) {
	neg := -1.0
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero speed max", func(c *Config) { c.SpeedMax = 0 }},
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"bad theme", func(c *Config) { c.Theme = "sepia" }},
		{"unknown body", func(c *Config) { c.Bodies = []string{"Pluto"} }},
		{"negative override", func(c *Config) { c.Overrides = map[string]BodyOverride{"Mars": {Speed: &neg}} }},
		{"zero camera radius", func(c *Config) { c.Camera.Radius = 0 }},
		{"zero orbit rate", func(c *Config) { c.Kinematics.OrbitRate = 0 }},
		{"zero frames", func(c *Config) { c.Frames = 0 }},
		{"negative frames", func(c *Config) { c.Frames = -5 }},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got %v", tt.name, err)
		}
	}
}

func TestCatalogOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bodies = []string{"earth", "MARS"}
	cfg.Overrides = map[string]BodyOverride{"Earth": {Speed: ptr(1), Phase: ptr(0.5)}}

	catalog := cfg.Catalog()
	if len(catalog) != 2 {
		t.Fatalf("expected 2 bodies, got %d", len(catalog))
	}
	earth := catalog[0]
	if earth.Speed != 1 {
		t.Errorf("expected overridden speed 1, got %v", earth.Speed)
	}
	if earth.Phase == nil || *earth.Phase != 0.5 {
		t.Errorf("expected pinned phase 0.5, got %v", earth.Phase)
	}
	if catalog[1].Phase != nil {
		t.Error("mars should keep a random phase")
	}
}

func TestSimulation(t *testing.T) {
	cfg := GetPreset("fast")
	cfg.Camera.HoldDirected = true
	simCfg := cfg.Simulation()

	if simCfg.Kinematics.OrbitRate != 0.2 {
		t.Errorf("expected orbit rate 0.2, got %v", simCfg.Kinematics.OrbitRate)
	}
	if !simCfg.Camera.HoldDirected {
		t.Error("hold_directed not carried over")
	}
	if simCfg.Camera.FrameOffset.X() != 30 {
		t.Errorf("frame offset should keep its default, got %+v", simCfg.Camera.FrameOffset)
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orrery.yaml")
	cfg := GetPreset("outer")
	cfg.Theme = "light"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !loaded.LightTheme() || len(loaded.Bodies) != 4 {
		t.Errorf("round trip lost fields: %+v", loaded)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("seed: 7\ncamera:\n  hold_directed: true\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Seed != 7 || !cfg.Camera.HoldDirected {
		t.Errorf("fields not loaded: %+v", cfg)
	}
	if cfg.Camera.Radius != 200 || cfg.FPS != DefaultFPS {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("theme: neon\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadRejectsZeroFrames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orrery.yaml")
	if err := os.WriteFile(path, []byte("frames: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidatedConfigRuns(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		cfg.Frames = 1
		if err := cfg.Validate(); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		s, err := control.New(cfg.Simulation(), nil, nil)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if _, err := sim.NewRunner(s, nil).Run(context.Background(), sim.Config{Frames: cfg.Frames, Dt: cfg.Dt()}); err != nil {
			t.Errorf("%s: validated config failed to run: %v", name, err)
		}
	}
}
