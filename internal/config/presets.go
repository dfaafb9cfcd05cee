package config

import "sort"

func ptr(v float64) *float64 { return &v }

var Presets = map[string]func() *Config{
	"solar": DefaultConfig,
	"inner": func() *Config {
		cfg := DefaultConfig()
		cfg.Bodies = []string{"Mercury", "Venus", "Earth", "Mars"}
		cfg.Camera.Radius = 90
		cfg.Camera.Height = 40
		cfg.Camera.Bob = 10
		return cfg
	},
	"outer": func() *Config {
		cfg := DefaultConfig()
		cfg.Bodies = []string{"Jupiter", "Saturn", "Uranus", "Neptune"}
		cfg.Camera.Radius = 260
		cfg.Camera.Height = 110
		return cfg
	},
	"fast": func() *Config {
		cfg := DefaultConfig()
		cfg.Overrides = map[string]BodyOverride{
			"Uranus":  {Speed: ptr(2)},
			"Neptune": {Speed: ptr(2)},
		}
		cfg.Kinematics.OrbitRate = 0.2
		cfg.Camera.Rate = 0.05
		return cfg
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	build, ok := Presets[name]
	if !ok {
		return nil
	}
	return build()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
